package blob

import (
	"encoding/binary"
	"encoding/hex"
	"strings"

	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
	"github.com/pkg/errors"
)

type reader struct {
	b   []byte
	off int
}

func (r *reader) next(n int) ([]byte, error) {
	if n < 0 || len(r.b)-r.off < n {
		return nil, errors.Wrapf(ErrMalformedBlob, "need %d bytes at offset %d, have %d", n, r.off, len(r.b)-r.off)
	}
	p := r.b[r.off : r.off+n]
	r.off += n
	return p, nil
}

func (r *reader) count(elemLen int) (int, error) {
	p, err := r.next(countLen)
	if err != nil {
		return 0, err
	}
	n := binary.LittleEndian.Uint64(p)
	if n > uint64(len(r.b)-r.off)/uint64(elemLen) {
		return 0, errors.Wrapf(ErrMalformedBlob, "count %d exceeds remaining %d bytes", n, len(r.b)-r.off)
	}
	return int(n), nil
}

func (r *reader) currency() (common.Currency, error) {
	p, err := r.next(common.CurrencyLen)
	if err != nil {
		return common.ZeroCurrency, err
	}
	return common.DecodeCurrency(p)
}

// Decode parses a blob produced by Encode.
func Decode(b []byte) (*Blob, error) {
	r := &reader{b: b}

	n, err := r.count(common.HashLen)
	if err != nil {
		return nil, errors.Wrap(err, "input count")
	}
	blob := &Blob{ParentIDs: make([]common.SiacoinOutputID, n)}
	for i := range blob.ParentIDs {
		p, _ := r.next(common.HashLen)
		copy(blob.ParentIDs[i][:], p)
	}

	n, err = r.count(outputLen)
	if err != nil {
		return nil, errors.Wrap(err, "output count")
	}
	blob.Outputs = make([]common.TransactionOutput, n)
	for i := range blob.Outputs {
		p, _ := r.next(common.HashLen)
		copy(blob.Outputs[i].Address[:], p)
		if blob.Outputs[i].Value, err = r.currency(); err != nil {
			return nil, err
		}
	}

	if blob.Fee, err = r.currency(); err != nil {
		return nil, errors.Wrap(err, "fee")
	}
	if r.off != len(b) {
		return nil, errors.Wrapf(ErrMalformedBlob, "%d trailing bytes", len(b)-r.off)
	}
	return blob, nil
}

// DecodeHex parses the hex form of a blob. Surrounding whitespace is ignored.
func DecodeHex(s string) (*Blob, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.Wrap(ErrInvalidHex, err.Error())
	}
	return Decode(b)
}
