package common

import (
	"encoding/binary"
	"encoding/json"
	"math/big"
	"math/bits"
	"strings"

	"github.com/pkg/errors"
)

// These are the multipliers for siacoin denominations.
// Example: To get the hastings value of an amount in 'SC', use
//
//	new(big.Int).Mul(value, HastingsPerSiacoin)
var (
	HastingsPerSiacoin = new(big.Int).Exp(big.NewInt(10), big.NewInt(24), nil)

	maxCurrency = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

// CurrencyLen is the encoded size of a Currency.
const CurrencyLen = 16

// Currency is an unsigned 128-bit amount of hastings.
type Currency struct {
	Lo, Hi uint64
}

var (
	// ZeroCurrency is 0 H.
	ZeroCurrency Currency
	// MaxCurrency is 2^128-1 H.
	MaxCurrency = Currency{Lo: ^uint64(0), Hi: ^uint64(0)}
)

// NewCurrency returns the Currency with the given halves.
func NewCurrency(lo, hi uint64) Currency { return Currency{Lo: lo, Hi: hi} }

// NewCurrency64 converts a uint64 to a Currency.
func NewCurrency64(c uint64) Currency { return Currency{Lo: c} }

// Siacoins returns n siacoins in hastings.
func Siacoins(n uint32) Currency {
	return NewCurrency64(uint64(n)).Mul64(1e12).Mul64(1e12)
}

// IsZero returns true if c == 0.
func (c Currency) IsZero() bool { return c == ZeroCurrency }

// Equals returns true if c == v.
func (c Currency) Equals(v Currency) bool { return c == v }

// Cmp compares c and v and returns -1, 0 or +1.
func (c Currency) Cmp(v Currency) int {
	switch {
	case c == v:
		return 0
	case c.Hi < v.Hi || (c.Hi == v.Hi && c.Lo < v.Lo):
		return -1
	default:
		return 1
	}
}

// AddWithOverflow returns c+v, along with a boolean indicating whether the
// result overflowed.
func (c Currency) AddWithOverflow(v Currency) (Currency, bool) {
	lo, carry := bits.Add64(c.Lo, v.Lo, 0)
	hi, carry := bits.Add64(c.Hi, v.Hi, carry)
	return Currency{lo, hi}, carry != 0
}

// Add returns c+v, panicking on overflow. Callers handling untrusted values
// use AddWithOverflow.
func (c Currency) Add(v Currency) Currency {
	s, overflow := c.AddWithOverflow(v)
	if overflow {
		panic("overflow")
	}
	return s
}

// SubWithUnderflow returns c-v, along with a boolean indicating whether the
// result underflowed.
func (c Currency) SubWithUnderflow(v Currency) (Currency, bool) {
	lo, borrow := bits.Sub64(c.Lo, v.Lo, 0)
	hi, borrow := bits.Sub64(c.Hi, v.Hi, borrow)
	return Currency{lo, hi}, borrow != 0
}

// Sub returns c-v, panicking on underflow.
func (c Currency) Sub(v Currency) Currency {
	s, underflow := c.SubWithUnderflow(v)
	if underflow {
		panic("underflow")
	}
	return s
}

// MulWithOverflow64 returns c*v, along with a boolean indicating whether the
// result overflowed.
func (c Currency) MulWithOverflow64(v uint64) (Currency, bool) {
	hi0, lo := bits.Mul64(c.Lo, v)
	hi1, hi := bits.Mul64(c.Hi, v)
	hi, carry := bits.Add64(hi, hi0, 0)
	return Currency{lo, hi}, hi1 != 0 || carry != 0
}

// Mul64 returns c*v, panicking on overflow.
func (c Currency) Mul64(v uint64) Currency {
	p, overflow := c.MulWithOverflow64(v)
	if overflow {
		panic("overflow")
	}
	return p
}

// Big returns c as a *big.Int.
func (c Currency) Big() *big.Int {
	b := new(big.Int).SetUint64(c.Hi)
	b.Lsh(b, 64)
	return b.Or(b, new(big.Int).SetUint64(c.Lo))
}

// CurrencyFromBig converts b to a Currency. Negative values and values that
// do not fit in 128 bits are rejected with ErrRange.
func CurrencyFromBig(b *big.Int) (Currency, error) {
	if b.Sign() < 0 {
		return ZeroCurrency, errors.Wrapf(ErrRange, "negative value %s", b)
	}
	if b.Cmp(maxCurrency) > 0 {
		return ZeroCurrency, errors.Wrapf(ErrRange, "value %s exceeds 128 bits", b)
	}
	lo := new(big.Int).And(b, new(big.Int).SetUint64(^uint64(0)))
	hi := new(big.Int).Rsh(b, 64)
	return Currency{Lo: lo.Uint64(), Hi: hi.Uint64()}, nil
}

// EncodeCurrency returns the 16-byte wire form of c: the low 64 bits followed
// by the high 64 bits, both little-endian.
func EncodeCurrency(c Currency) [CurrencyLen]byte {
	var b [CurrencyLen]byte
	binary.LittleEndian.PutUint64(b[:8], c.Lo)
	binary.LittleEndian.PutUint64(b[8:], c.Hi)
	return b
}

// AppendCurrency appends the wire form of c to b.
func AppendCurrency(b []byte, c Currency) []byte {
	b = binary.LittleEndian.AppendUint64(b, c.Lo)
	return binary.LittleEndian.AppendUint64(b, c.Hi)
}

// DecodeCurrency is the inverse of EncodeCurrency.
func DecodeCurrency(b []byte) (Currency, error) {
	if len(b) != CurrencyLen {
		return ZeroCurrency, errors.Wrapf(ErrInvalidLength, "currency must be %d bytes, got %d", CurrencyLen, len(b))
	}
	return Currency{
		Lo: binary.LittleEndian.Uint64(b[:8]),
		Hi: binary.LittleEndian.Uint64(b[8:]),
	}, nil
}

// String returns the base-10 hastings value of c.
func (c Currency) String() string {
	if c.Hi == 0 {
		return new(big.Int).SetUint64(c.Lo).String()
	}
	return c.Big().String()
}

// HumanString formats c in siacoins, e.g. "1.5 SC".
func (c Currency) HumanString() string {
	r := new(big.Rat).SetFrac(c.Big(), HastingsPerSiacoin)
	s := strings.TrimRight(r.FloatString(24), "0")
	s = strings.TrimSuffix(s, ".")
	return s + " SC"
}

// MarshalJSON implements json.Marshaler.
func (c Currency) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON implements json.Unmarshaler. Values are base-10 hastings,
// quoted or bare.
func (c *Currency) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return errors.Wrapf(ErrInvalidCurrency, "%q", s)
	}
	parsed, err := CurrencyFromBig(v)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

var units = []struct {
	suffix string
	exp    int64
}{
	{"pS", 12},
	{"nS", 15},
	{"uS", 18},
	{"mS", 21},
	{"SC", 24},
	{"KS", 27},
	{"MS", 30},
	{"GS", 33},
	{"TS", 36},
}

// ParseCurrency parses an amount. Bare numbers and numbers suffixed with H
// are hastings; the suffixes pS nS uS mS SC KS MS GS TS scale by powers of
// ten and may carry a fractional part.
func ParseCurrency(s string) (Currency, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ZeroCurrency, errors.Wrap(ErrInvalidCurrency, "empty amount")
	}
	if h := strings.TrimSuffix(s, "H"); h != s || !strings.ContainsAny(s, "SC") {
		v, ok := new(big.Int).SetString(strings.TrimSpace(h), 10)
		if !ok {
			return ZeroCurrency, errors.Wrapf(ErrInvalidCurrency, "%q", s)
		}
		return CurrencyFromBig(v)
	}
	for _, u := range units {
		if !strings.HasSuffix(s, u.suffix) {
			continue
		}
		r, ok := new(big.Rat).SetString(strings.TrimSpace(strings.TrimSuffix(s, u.suffix)))
		if !ok {
			return ZeroCurrency, errors.Wrapf(ErrInvalidCurrency, "%q", s)
		}
		r.Mul(r, new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(u.exp), nil)))
		if !r.IsInt() {
			return ZeroCurrency, errors.Wrapf(ErrInvalidCurrency, "%q is not a whole number of hastings", s)
		}
		return CurrencyFromBig(r.Num())
	}
	return ZeroCurrency, errors.Wrapf(ErrInvalidCurrency, "unknown unit in %q", s)
}
