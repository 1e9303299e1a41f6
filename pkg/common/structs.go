package common

import "encoding/json"

// UnspentOutput represents a spendable siacoin output owned by the wallet.
// StateElement is the proof material the upstream API returns alongside the
// output; it is echoed back unchanged at broadcast time.
type UnspentOutput struct {
	ID             SiacoinOutputID
	Value          Currency
	Address        Address
	MaturityHeight uint64
	StateElement   json.RawMessage
}

// TransactionOutput is a destination address paired with a value.
type TransactionOutput struct {
	Value   Currency `json:"value"`
	Address Address  `json:"address"`
}

type siacoinElement struct {
	ID             SiacoinOutputID   `json:"id"`
	StateElement   json.RawMessage   `json:"stateElement,omitempty"`
	SiacoinOutput  TransactionOutput `json:"siacoinOutput"`
	MaturityHeight uint64            `json:"maturityHeight"`
}

// MarshalJSON encodes u in the element shape used by the wallet API.
func (u UnspentOutput) MarshalJSON() ([]byte, error) {
	return json.Marshal(siacoinElement{
		ID:             u.ID,
		StateElement:   u.StateElement,
		SiacoinOutput:  TransactionOutput{Value: u.Value, Address: u.Address},
		MaturityHeight: u.MaturityHeight,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (u *UnspentOutput) UnmarshalJSON(b []byte) error {
	var se siacoinElement
	if err := json.Unmarshal(b, &se); err != nil {
		return err
	}
	*u = UnspentOutput{
		ID:             se.ID,
		Value:          se.SiacoinOutput.Value,
		Address:        se.SiacoinOutput.Address,
		MaturityHeight: se.MaturityHeight,
		StateElement:   se.StateElement,
	}
	return nil
}

// SignedInput is a spent output together with the policy proving the right
// to spend it.
type SignedInput struct {
	Parent          UnspentOutput   `json:"parent"`
	SatisfiedPolicy SatisfiedPolicy `json:"satisfiedPolicy"`
}

// SignedTransaction is the payload handed to the broadcast endpoint.
type SignedTransaction struct {
	SiacoinInputs  []SignedInput       `json:"siacoinInputs"`
	SiacoinOutputs []TransactionOutput `json:"siacoinOutputs"`
	MinerFee       Currency            `json:"minerFee"`
}

// SumOutputs returns the total value of outputs, reporting overflow.
func SumOutputs(outputs []TransactionOutput) (Currency, bool) {
	var sum Currency
	for _, o := range outputs {
		var overflow bool
		if sum, overflow = sum.AddWithOverflow(o.Value); overflow {
			return ZeroCurrency, true
		}
	}
	return sum, false
}

// SumUnspent returns the total value of utxos, reporting overflow.
func SumUnspent(utxos []UnspentOutput) (Currency, bool) {
	var sum Currency
	for _, u := range utxos {
		var overflow bool
		if sum, overflow = sum.AddWithOverflow(u.Value); overflow {
			return ZeroCurrency, true
		}
	}
	return sum, false
}
