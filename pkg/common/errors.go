package common

import "errors"

var (
	// ErrRange is returned when a value does not fit its encoding, e.g. an
	// amount above 2^128-1.
	ErrRange = errors.New("common: value out of range")

	// ErrInvalidLength indicates a fixed-size value was decoded from the wrong number of bytes.
	ErrInvalidLength = errors.New("common: invalid length")

	// ErrInvalidCurrency indicates an amount string could not be parsed.
	ErrInvalidCurrency = errors.New("common: invalid currency")

	// ErrInvalidHash indicates an identifier string is not 32 bytes of hex.
	ErrInvalidHash = errors.New("common: invalid hash")

	// ErrInvalidAddress indicates a malformed address or a checksum mismatch.
	ErrInvalidAddress = errors.New("common: invalid address")

	// ErrInvalidPublicKey indicates a malformed ed25519 public key.
	ErrInvalidPublicKey = errors.New("common: invalid public key")
)
