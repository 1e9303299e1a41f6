package handoff

import (
	"time"

	"github.com/Keyur279/Sia-Cli-tool/pkg/assembly"
	"github.com/Keyur279/Sia-Cli-tool/pkg/blob"
	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Request is an unsigned transaction ready to be handed to the signer.
type Request struct {
	Inputs    []common.UnspentOutput
	Outputs   []common.TransactionOutput
	Fee       common.Currency
	PublicKey common.PublicKey
	Basis     common.ChainIndex
}

// Pending is the state kept between Prepare and Finalize. It is never
// modified after Prepare returns.
type Pending struct {
	ID        string                     `json:"id"`
	Inputs    []common.UnspentOutput     `json:"inputs"`
	Outputs   []common.TransactionOutput `json:"outputs"`
	Fee       common.Currency            `json:"fee"`
	PublicKey common.PublicKey           `json:"publicKey"`
	Basis     common.ChainIndex          `json:"basis"`
	Blob      string                     `json:"blob"`
	CreatedAt time.Time                  `json:"createdAt"`
}

// Prepare serializes req into the signer blob. Nothing is emitted for a
// request whose values do not balance.
func Prepare(req Request) (*Pending, error) {
	if len(req.Inputs) == 0 {
		return nil, assembly.ErrNoInputs
	}
	if len(req.Outputs) == 0 {
		return nil, assembly.ErrNoOutputs
	}
	if err := assembly.CheckBalance(req.Inputs, req.Outputs, req.Fee); err != nil {
		return nil, err
	}

	b, err := blob.EncodeHex(blob.ParentIDs(req.Inputs), req.Outputs, req.Fee)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode blob")
	}

	return &Pending{
		ID:        uuid.NewString(),
		Inputs:    append([]common.UnspentOutput(nil), req.Inputs...),
		Outputs:   append([]common.TransactionOutput(nil), req.Outputs...),
		Fee:       req.Fee,
		PublicKey: req.PublicKey,
		Basis:     req.Basis,
		Blob:      b,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Finalize assembles the signed transaction from the externally produced
// signature.
func (p *Pending) Finalize(signature string) (*common.SignedTransaction, error) {
	return assembly.Assemble(p.Inputs, p.Outputs, p.Fee, p.PublicKey, signature)
}

// Total returns the value sent to outputs, fee excluded.
func (p *Pending) Total() common.Currency {
	sum, _ := common.SumOutputs(p.Outputs)
	return sum
}
