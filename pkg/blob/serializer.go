package blob

import (
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
	"github.com/pkg/errors"
)

const (
	countLen  = 8
	outputLen = common.HashLen + common.CurrencyLen
)

// Blob is the decoded form of the unsigned transaction handed to the signer.
type Blob struct {
	ParentIDs []common.SiacoinOutputID
	Outputs   []common.TransactionOutput
	Fee       common.Currency
}

// Size returns the encoded length of a blob with the given counts.
func Size(inputs, outputs int) int {
	return countLen + inputs*common.HashLen + countLen + outputs*outputLen + common.CurrencyLen
}

// Encode lays out inputs, outputs and fee for the external signer:
//
//	u64 input count
//	32-byte parent ID, per input
//	u64 output count
//	32-byte address, u64 value lo, u64 value hi, per output
//	u64 fee lo, u64 fee hi
//
// All integers are little-endian. Order is kept exactly as given.
func Encode(inputs []common.SiacoinOutputID, outputs []common.TransactionOutput, fee common.Currency) ([]byte, error) {
	if uint64(len(inputs)) > math.MaxUint64/common.HashLen || uint64(len(outputs)) > math.MaxUint64/outputLen {
		return nil, errors.Wrap(common.ErrRange, "too many entries for a u64 count")
	}

	b := make([]byte, 0, Size(len(inputs), len(outputs)))
	b = binary.LittleEndian.AppendUint64(b, uint64(len(inputs)))
	for _, id := range inputs {
		b = append(b, id[:]...)
	}
	b = binary.LittleEndian.AppendUint64(b, uint64(len(outputs)))
	for _, o := range outputs {
		b = append(b, o.Address[:]...)
		b = common.AppendCurrency(b, o.Value)
	}
	return common.AppendCurrency(b, fee), nil
}

// EncodeHex is Encode rendered as lowercase hex.
func EncodeHex(inputs []common.SiacoinOutputID, outputs []common.TransactionOutput, fee common.Currency) (string, error) {
	b, err := Encode(inputs, outputs, fee)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// ParentIDs returns the IDs of utxos, in order.
func ParentIDs(utxos []common.UnspentOutput) []common.SiacoinOutputID {
	ids := make([]common.SiacoinOutputID, len(utxos))
	for i, u := range utxos {
		ids[i] = u.ID
	}
	return ids
}
