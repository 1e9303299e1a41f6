package coinselection

import (
	"errors"
	"fmt"

	linq "github.com/ahmetb/go-linq"
	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
)

// ByAmount sorts outputs by value, ascending.
type ByAmount []*common.UnspentOutput

func (a ByAmount) Len() int           { return len(a) }
func (a ByAmount) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a ByAmount) Less(i, j int) bool { return a[i].Value.Cmp(a[j].Value) < 0 }

// ResultSet represents a coin selection result
type ResultSet struct {
	Coins  []*common.UnspentOutput
	Total  common.Currency
	Change common.Currency
}

var (
	// ErrInsufficientFunds is returned if the candidates cannot cover target+fee
	ErrInsufficientFunds = errors.New("coinselection: insufficient funds")

	// ErrCoinsNoSelectionAvailable is returned when the candidates would cover the
	// requirement but not within the selector's input limit.
	ErrCoinsNoSelectionAvailable = errors.New("coinselection: no coin selection possible")
)

// Strategy interface for coin selection
type Strategy interface {
	SelectCoins(utxos []*common.UnspentOutput, target, fee common.Currency) (*ResultSet, error)
}

// FilterMature returns the outputs spendable at the given chain height,
// preserving their order.
func FilterMature(utxos []*common.UnspentOutput, height uint64) []*common.UnspentOutput {
	mature := make([]*common.UnspentOutput, 0, len(utxos))
	linq.From(utxos).WhereT(func(u *common.UnspentOutput) bool {
		return u.MaturityHeight <= height
	}).ToSlice(&mature)
	return mature
}

// Total returns the sum of utxos in a wide accumulator.
func Total(utxos []*common.UnspentOutput) WideSum {
	var s WideSum
	for _, u := range utxos {
		s = s.Add(u.Value)
	}
	return s
}

// WideSum is an accumulator with 64 bits of headroom above Currency, so
// that summing many outputs cannot wrap.
type WideSum struct {
	Sum   common.Currency
	Carry uint64
}

// Add returns s+c.
func (s WideSum) Add(c common.Currency) WideSum {
	sum, overflow := s.Sum.AddWithOverflow(c)
	if overflow {
		s.Carry++
	}
	s.Sum = sum
	return s
}

// Covers reports whether s >= c.
func (s WideSum) Covers(c common.Currency) bool {
	return s.Carry > 0 || s.Sum.Cmp(c) >= 0
}

// Minus returns s-c as a Currency. ok is false when the difference is
// negative or does not fit in 128 bits.
func (s WideSum) Minus(c common.Currency) (diff common.Currency, ok bool) {
	diff, borrow := s.Sum.SubWithUnderflow(c)
	carry := s.Carry
	if borrow {
		if carry == 0 {
			return common.ZeroCurrency, false
		}
		carry--
	}
	return diff, carry == 0
}

// Currency returns s as a Currency, or false if it exceeds 128 bits.
func (s WideSum) Currency() (common.Currency, bool) {
	return s.Sum, s.Carry == 0
}

// Strategy names accepted by New.
const (
	StrategyLargestFirst = "largest-first"
	StrategyInOrder      = "in-order"
	StrategyRandom       = "random"
)

// New returns the named strategy. An empty name selects largest-first.
func New(name string, maxInputs int) (Strategy, error) {
	switch name {
	case "", StrategyLargestFirst:
		return MinNumberCoinSelector{MaxInputs: maxInputs}, nil
	case StrategyInOrder:
		return MinIndexCoinSelector{MaxInputs: maxInputs}, nil
	case StrategyRandom:
		return RandomCoinSelector{MaxInputs: maxInputs}, nil
	default:
		return nil, fmt.Errorf("coinselection: unknown strategy %q", name)
	}
}
