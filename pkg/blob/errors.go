package blob

import "errors"

var (
	// ErrMalformedBlob indicates a blob that is truncated, has trailing bytes
	// or carries counts that do not match its length.
	ErrMalformedBlob = errors.New("blob: malformed transaction blob")

	// ErrInvalidHex indicates the blob text is not valid hex.
	ErrInvalidHex = errors.New("blob: invalid hex")
)
