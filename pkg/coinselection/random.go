package coinselection

import (
	"math/rand"
	"time"

	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
)

// RandomCoinSelector accumulates outputs in a random order. Source may be
// set for reproducible runs; it defaults to a time-seeded source.
type RandomCoinSelector struct {
	MaxInputs int
	Source    rand.Source
}

func (s RandomCoinSelector) SelectCoins(utxos []*common.UnspentOutput, target, fee common.Currency) (*ResultSet, error) {
	src := s.Source
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	shuffledUtxos := shuffle(utxos, rand.New(src))

	return MinIndexCoinSelector{MaxInputs: s.MaxInputs}.SelectCoins(shuffledUtxos, target, fee)
}

func shuffle(utxos []*common.UnspentOutput, r *rand.Rand) []*common.UnspentOutput {
	res := make([]*common.UnspentOutput, len(utxos))
	perm := r.Perm(len(utxos))
	for i, randIndex := range perm {
		res[i] = utxos[randIndex]
	}
	return res
}
