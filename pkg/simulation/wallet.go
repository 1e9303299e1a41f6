package simulation

import (
	"context"
	"encoding/binary"
	"math/big"

	"github.com/Keyur279/Sia-Cli-tool/pkg/blockchain"
	"github.com/Keyur279/Sia-Cli-tool/pkg/coinselection"
	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
	"github.com/Keyur279/Sia-Cli-tool/pkg/fees"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	linq "github.com/ahmetb/go-linq"
)

type Wallet struct {
	Address   common.Address
	utxos     *blockchain.MemoryService
	estimator *fees.Estimator
	logger    *zap.Logger

	nextID             uint64
	numberOfTxSent     int
	numberOfTxReceived int
	numberOfTxFailed   int
	estimations        []*fees.EstimationResult
}

// Stats summarizes a run. Averages are in hastings.
type Stats struct {
	Sent, Received, Failed int
	AvgFee                 float64
	AvgChange              float64
	AvgInputs              float64
	Balance                common.Currency
	UTXOs                  int
}

func (w *Wallet) utxoSet() []*common.UnspentOutput {
	utxos, _ := w.utxos.GetUTXOs(context.Background(), w.Address)
	return utxos
}

func (w *Wallet) Balance() common.Currency {
	total, _ := coinselection.Total(w.utxoSet()).Currency()
	return total
}

func (w *Wallet) NumberOfUTXOs() int {
	return len(w.utxoSet())
}

func (w *Wallet) newOutputID() common.SiacoinOutputID {
	var id common.SiacoinOutputID
	binary.LittleEndian.PutUint64(id[:], w.nextID)
	w.nextID++
	return id
}

func (w *Wallet) addOutput(value common.Currency) {
	w.utxos.AddUTXO(common.UnspentOutput{
		ID:      w.newOutputID(),
		Value:   value,
		Address: w.Address,
	})
}

func (w *Wallet) ReceiveTx(tx *Tx) {
	w.numberOfTxReceived++
	w.addOutput(tx.Value)
}

// SendTx pays tx.Value to a foreign address. Payments the wallet cannot
// afford are counted and skipped.
func (w *Wallet) SendTx(ctx context.Context, tx *Tx) error {
	w.numberOfTxSent++
	estimation, err := w.estimator.EstimateFees(ctx, fees.Request{
		From:       w.Address,
		Recipients: []common.TransactionOutput{{Address: common.VoidAddress, Value: tx.Value}},
	})
	if errors.Is(err, coinselection.ErrInsufficientFunds) || errors.Is(err, coinselection.ErrCoinsNoSelectionAvailable) {
		w.numberOfTxFailed++
		w.logger.Debug("payment skipped", zap.Stringer("value", tx.Value), zap.Error(err))
		return nil
	} else if err != nil {
		return err
	}

	ids := make([]common.SiacoinOutputID, len(estimation.Set))
	for i, u := range estimation.Set {
		ids[i] = u.ID
	}
	w.utxos.RemoveUTXOs(ids...)
	if !estimation.Change.IsZero() {
		w.addOutput(estimation.Change)
	}
	w.estimations = append(w.estimations, estimation)
	return nil
}

func toFloat(c common.Currency) float64 {
	f, _ := new(big.Float).SetInt(c.Big()).Float64()
	return f
}

func (w *Wallet) Stats() *Stats {
	stats := &Stats{
		Sent:     w.numberOfTxSent,
		Received: w.numberOfTxReceived,
		Failed:   w.numberOfTxFailed,
		Balance:  w.Balance(),
		UTXOs:    w.NumberOfUTXOs(),
	}
	if len(w.estimations) == 0 {
		return stats
	}

	stats.AvgFee = linq.From(w.estimations).SelectT(func(e *fees.EstimationResult) float64 {
		return toFloat(e.Fee)
	}).Average()

	stats.AvgChange = linq.From(w.estimations).SelectT(func(e *fees.EstimationResult) float64 {
		return toFloat(e.Change)
	}).Average()

	stats.AvgInputs = linq.From(w.estimations).SelectT(func(e *fees.EstimationResult) int {
		return len(e.Set)
	}).Average()
	return stats
}

func (w *Wallet) PrintStats(stats *Stats) {
	w.logger.Info("stats",
		zap.Int("number of tx sent", stats.Sent),
		zap.Int("number of tx received", stats.Received),
		zap.Int("number of tx failed", stats.Failed),
		zap.Float64("avg fee", stats.AvgFee),
		zap.Float64("avg change", stats.AvgChange),
		zap.Float64("avg inputs", stats.AvgInputs),
		zap.Stringer("resulting balance", stats.Balance),
		zap.Int("resulting utxos", stats.UTXOs),
	)
}
