package assembly

import (
	"encoding/hex"
	"strings"

	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
	"github.com/pkg/errors"
)

// SignatureLen is the byte length of an ed25519 signature.
const SignatureLen = 64

var (
	// ErrEmptySignature is returned when no signature was supplied. The
	// transaction must never reach the broadcast stage in that case.
	ErrEmptySignature = errors.New("assembly: empty signature")

	// ErrMalformedSignature is returned for a signature that is not 64 bytes of hex.
	ErrMalformedSignature = errors.New("assembly: malformed signature")

	// ErrValueMismatch is returned when inputs do not equal outputs plus fee.
	ErrValueMismatch = errors.New("assembly: input and output values do not balance")

	// ErrNoInputs is returned for a transaction without inputs.
	ErrNoInputs = errors.New("assembly: transaction has no inputs")

	// ErrNoOutputs is returned for a transaction without outputs.
	ErrNoOutputs = errors.New("assembly: transaction has no outputs")

	// ErrForeignInput is returned when an input is not owned by the signing key.
	ErrForeignInput = errors.New("assembly: input not owned by public key")
)

// NormalizeSignature trims s, strips an optional "sig:" prefix and checks
// that what remains is a hex encoded 64 byte signature. The result is
// lowercase hex.
func NormalizeSignature(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptySignature
	}
	s = strings.TrimPrefix(s, "sig:")
	b, err := hex.DecodeString(s)
	if err != nil {
		return "", errors.Wrap(ErrMalformedSignature, err.Error())
	}
	if len(b) != SignatureLen {
		return "", errors.Wrapf(ErrMalformedSignature, "got %d bytes, want %d", len(b), SignatureLen)
	}
	return hex.EncodeToString(b), nil
}

// Assemble builds the signed transaction spending inputs to outputs and fee.
// Every input is satisfied by the standard single key policy of pk with the
// supplied signature; no preimages are attached.
func Assemble(inputs []common.UnspentOutput, outputs []common.TransactionOutput, fee common.Currency,
	pk common.PublicKey, signature string) (*common.SignedTransaction, error) {
	sig, err := NormalizeSignature(signature)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}
	if len(outputs) == 0 {
		return nil, ErrNoOutputs
	}
	if err := CheckBalance(inputs, outputs, fee); err != nil {
		return nil, err
	}

	owner := common.StandardAddress(pk)
	policy := common.SpendPolicy{
		Type:             common.PolicyTypeUnlockConditions,
		UnlockConditions: common.StandardUnlockConditions(pk),
	}

	txn := &common.SignedTransaction{
		SiacoinInputs:  make([]common.SignedInput, 0, len(inputs)),
		SiacoinOutputs: append([]common.TransactionOutput(nil), outputs...),
		MinerFee:       fee,
	}
	for _, in := range inputs {
		if in.Address != (common.Address{}) && in.Address != owner {
			return nil, errors.Wrapf(ErrForeignInput, "output %s belongs to %s", in.ID, in.Address)
		}
		txn.SiacoinInputs = append(txn.SiacoinInputs, common.SignedInput{
			Parent: in,
			SatisfiedPolicy: common.SatisfiedPolicy{
				Policy:     policy,
				Signatures: []string{sig},
			},
		})
	}
	return txn, nil
}

// CheckBalance verifies sum(inputs) == sum(outputs) + fee in 128-bit
// arithmetic.
func CheckBalance(inputs []common.UnspentOutput, outputs []common.TransactionOutput, fee common.Currency) error {
	in, overflow := common.SumUnspent(inputs)
	if overflow {
		return errors.Wrap(common.ErrRange, "input total exceeds 128 bits")
	}
	out, overflow := common.SumOutputs(outputs)
	if overflow {
		return errors.Wrap(common.ErrRange, "output total exceeds 128 bits")
	}
	spent, overflow := out.AddWithOverflow(fee)
	if overflow {
		return errors.Wrap(common.ErrRange, "outputs plus fee exceed 128 bits")
	}
	if !in.Equals(spent) {
		return errors.Wrapf(ErrValueMismatch, "inputs %s H, outputs+fee %s H", in, spent)
	}
	return nil
}
