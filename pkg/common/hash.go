package common

import (
	"bytes"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// HashLen is the size of every identifier handled by the tool.
const HashLen = 32

// addressChecksumLen is the number of blake2b bytes appended to an address
// in its text form.
const addressChecksumLen = 6

type (
	// Hash256 is a generic 256-bit identifier.
	Hash256 [HashLen]byte

	// SiacoinOutputID uniquely identifies an unspent output.
	SiacoinOutputID Hash256

	// BlockID identifies a block.
	BlockID Hash256

	// Address is the hash of the unlock conditions that own an output.
	Address Hash256

	// PublicKey is an ed25519 public key.
	PublicKey [32]byte
)

// VoidAddress is the zero address.
var VoidAddress Address

func parseHex(dst []byte, s string) error {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[i+1:]
	}
	if len(s) != hex.EncodedLen(len(dst)) {
		return errors.Wrapf(ErrInvalidHash, "want %d hex chars, got %d", hex.EncodedLen(len(dst)), len(s))
	}
	if _, err := hex.Decode(dst, []byte(s)); err != nil {
		return errors.Wrap(ErrInvalidHash, err.Error())
	}
	return nil
}

// String implements fmt.Stringer.
func (h Hash256) String() string { return hex.EncodeToString(h[:]) }

// MarshalText implements encoding.TextMarshaler.
func (h Hash256) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash256) UnmarshalText(b []byte) error { return parseHex(h[:], string(b)) }

// String implements fmt.Stringer.
func (id SiacoinOutputID) String() string { return Hash256(id).String() }

// MarshalText implements encoding.TextMarshaler.
func (id SiacoinOutputID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler. A "scoid:" style prefix is accepted.
func (id *SiacoinOutputID) UnmarshalText(b []byte) error { return parseHex(id[:], string(b)) }

// ParseOutputID parses a hex output ID.
func ParseOutputID(s string) (id SiacoinOutputID, err error) {
	err = id.UnmarshalText([]byte(s))
	return
}

// String implements fmt.Stringer.
func (id BlockID) String() string { return Hash256(id).String() }

// MarshalText implements encoding.TextMarshaler.
func (id BlockID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *BlockID) UnmarshalText(b []byte) error { return parseHex(id[:], string(b)) }

func (a Address) checksum() []byte {
	sum := blake2b.Sum256(a[:])
	return sum[:addressChecksumLen]
}

// String returns the 76-character hex form of a: 32 bytes followed by a
// 6-byte checksum.
func (a Address) String() string {
	return hex.EncodeToString(append(a[:], a.checksum()...))
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler. The checksum is
// optional; when present it must match.
func (a *Address) UnmarshalText(b []byte) error {
	s := strings.TrimPrefix(string(b), "addr:")
	switch len(s) {
	case hex.EncodedLen(HashLen):
		if err := parseHex(a[:], s); err != nil {
			return errors.Wrap(ErrInvalidAddress, err.Error())
		}
		return nil
	case hex.EncodedLen(HashLen + addressChecksumLen):
		raw, err := hex.DecodeString(s)
		if err != nil {
			return errors.Wrap(ErrInvalidAddress, err.Error())
		}
		var addr Address
		copy(addr[:], raw[:HashLen])
		if !bytes.Equal(addr.checksum(), raw[HashLen:]) {
			return errors.Wrapf(ErrInvalidAddress, "bad checksum for %s", s)
		}
		*a = addr
		return nil
	default:
		return errors.Wrapf(ErrInvalidAddress, "unexpected length %d", len(s))
	}
}

// ParseAddress parses an address string.
func ParseAddress(s string) (a Address, err error) {
	err = a.UnmarshalText([]byte(strings.TrimSpace(s)))
	return
}

// String returns the key as "ed25519:<hex>".
func (pk PublicKey) String() string { return "ed25519:" + hex.EncodeToString(pk[:]) }

// MarshalText implements encoding.TextMarshaler.
func (pk PublicKey) MarshalText() ([]byte, error) { return []byte(pk.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler. The "ed25519:" prefix is optional.
func (pk *PublicKey) UnmarshalText(b []byte) error {
	s := string(b)
	if i := strings.IndexByte(s, ':'); i >= 0 {
		if s[:i] != "ed25519" {
			return errors.Wrapf(ErrInvalidPublicKey, "unsupported algorithm %q", s[:i])
		}
		s = s[i+1:]
	}
	if err := parseHex(pk[:], s); err != nil {
		return errors.Wrap(ErrInvalidPublicKey, err.Error())
	}
	return nil
}

// ParsePublicKey parses an ed25519 public key.
func ParsePublicKey(s string) (pk PublicKey, err error) {
	err = pk.UnmarshalText([]byte(strings.TrimSpace(s)))
	return
}

// ChainIndex is a block height paired with its ID. The broadcast endpoint
// uses it as the consensus basis a transaction is validated against.
type ChainIndex struct {
	Height uint64  `json:"height"`
	ID     BlockID `json:"id"`
}

// String implements fmt.Stringer.
func (ci ChainIndex) String() string {
	return strconv.FormatUint(ci.Height, 10) + "::" + ci.ID.String()
}
