package simulation

import (
	"context"
	"encoding/csv"
	"io"
	"math/big"
	"strings"

	"github.com/Keyur279/Sia-Cli-tool/pkg/blockchain"
	"github.com/Keyur279/Sia-Cli-tool/pkg/coinselection"
	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
	"github.com/Keyur279/Sia-Cli-tool/pkg/feerate"
	"github.com/Keyur279/Sia-Cli-tool/pkg/fees"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrInvalidRecord is returned for a CSV row that is not a signed integer.
var ErrInvalidRecord = errors.New("simulation: invalid record")

type Simulation struct {
	wallet      *Wallet
	logger      *zap.Logger
	txs         []*Tx
	startingSet []*Tx
}

// Tx is one simulated payment. Incoming payments create an output, outgoing
// ones spend Value.
type Tx struct {
	Value    common.Currency
	Incoming bool
}

// Options configures a run.
type Options struct {
	Selector coinselection.Strategy
	FeeRate  common.Currency
	// Limit caps the number of replayed transactions; zero replays all.
	Limit int
}

// NewSimulation replays txs, a CSV of hastings amounts (positive incoming,
// negative outgoing), against a wallet seeded with the outputs in
// startingSet. startingSet may be nil.
func NewSimulation(txs, startingSet io.Reader, opts Options, logger *zap.Logger) (*Simulation, error) {
	history, err := ReadTxs(txs)
	if err != nil {
		return nil, err
	}
	var seed []*Tx
	if startingSet != nil {
		if seed, err = ReadTxs(startingSet); err != nil {
			return nil, err
		}
	}
	if opts.Limit > 0 && opts.Limit < len(history) {
		history = history[:opts.Limit]
	}

	utxos := blockchain.NewMemoryService()
	estimator := &fees.Estimator{
		Feerater: feerate.Static(opts.FeeRate),
		Selector: opts.Selector,
		UTXOs:    utxos,
		Chain:    utxos,
		Logger:   logger.Named("estimator").WithOptions(zap.IncreaseLevel(zap.WarnLevel)),
	}
	wallet := &Wallet{
		Address:   common.StandardAddress(common.PublicKey{}),
		estimator: estimator,
		logger:    logger,
		utxos:     utxos,
	}
	return &Simulation{
		wallet:      wallet,
		logger:      logger,
		txs:         history,
		startingSet: seed,
	}, nil
}

// ReadTxs parses one signed hastings amount per CSV row, first column.
func ReadTxs(r io.Reader) ([]*Tx, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	var txs []*Tx
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Wrapf(ErrInvalidRecord, "line %d: %v", line, err)
		}

		v, ok := new(big.Int).SetString(strings.TrimSpace(record[0]), 10)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidRecord, "line %d: %q", line, record[0])
		}
		incoming := v.Sign() > 0
		value, err := common.CurrencyFromBig(v.Abs(v))
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		if value.IsZero() {
			continue
		}
		txs = append(txs, &Tx{Value: value, Incoming: incoming})
	}
	return txs, nil
}

func (s *Simulation) Run(ctx context.Context) (*Stats, error) {
	// setup
	for _, tx := range s.startingSet {
		s.wallet.ReceiveTx(tx)
	}

	// run
	for _, tx := range s.txs {
		if tx.Incoming {
			s.wallet.ReceiveTx(tx)
			continue
		}
		if err := s.wallet.SendTx(ctx, tx); err != nil {
			return nil, err
		}
	}

	stats := s.wallet.Stats()
	s.wallet.PrintStats(stats)
	return stats, nil
}
