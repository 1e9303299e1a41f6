package coinselection

import (
	"sort"

	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
	"github.com/pkg/errors"
)

// MinIndexCoinSelector is a CoinSelector that attempts to construct a
// selection of coins whose total value is at least target+fee and prefers
// any number of lower indexes (as in the ordered array) over higher ones.
// A MaxInputs of zero means no limit.
type MinIndexCoinSelector struct {
	MaxInputs int
}

// SelectCoins will attempt to select coins using the algorithm described
// in the MinIndexCoinSelector struct.
func (s MinIndexCoinSelector) SelectCoins(utxos []*common.UnspentOutput, target, fee common.Currency) (*ResultSet, error) {
	needed, overflow := target.AddWithOverflow(fee)
	if overflow {
		return nil, errors.Wrapf(common.ErrRange, "target %s plus fee %s exceeds 128 bits", target, fee)
	}

	set := &ResultSet{Coins: []*common.UnspentOutput{}}
	var running WideSum
	for n := 0; ; n++ {
		if running.Covers(needed) {
			total, ok := running.Currency()
			if !ok {
				return nil, errors.Wrap(common.ErrRange, "selected total exceeds 128 bits")
			}
			change, _ := running.Minus(needed)
			set.Total = total
			set.Change = change
			return set, nil
		}
		if n == len(utxos) {
			break
		}
		if s.MaxInputs > 0 && n == s.MaxInputs {
			if Total(utxos).Covers(needed) {
				return nil, errors.Wrapf(ErrCoinsNoSelectionAvailable, "need more than %d inputs", s.MaxInputs)
			}
			break
		}
		set.Coins = append(set.Coins, utxos[n])
		running = running.Add(utxos[n].Value)
	}

	have, _ := Total(utxos).Currency()
	return nil, errors.Wrapf(ErrInsufficientFunds, "need %s H, have %s H", needed, have)
}

// MinNumberCoinSelector is a CoinSelector that attempts to construct
// a selection of coins whose total value is at least target+fee
// that uses as few of the inputs as possible: the largest outputs are
// taken first, equal values keep their original order.
type MinNumberCoinSelector struct {
	MaxInputs int
}

// SelectCoins will attempt to select coins using the algorithm described
// in the MinNumberCoinSelector struct. utxos is not modified.
func (s MinNumberCoinSelector) SelectCoins(utxos []*common.UnspentOutput, target, fee common.Currency) (*ResultSet, error) {
	sortedCoins := make([]*common.UnspentOutput, 0, len(utxos))
	sortedCoins = append(sortedCoins, utxos...)
	sort.Stable(sort.Reverse(ByAmount(sortedCoins)))

	return MinIndexCoinSelector(s).SelectCoins(sortedCoins, target, fee)
}
