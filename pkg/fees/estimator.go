package fees

import (
	"context"

	"github.com/Keyur279/Sia-Cli-tool/pkg/assembly"
	"github.com/Keyur279/Sia-Cli-tool/pkg/blockchain"
	"github.com/Keyur279/Sia-Cli-tool/pkg/coinselection"
	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
	"github.com/Keyur279/Sia-Cli-tool/pkg/feerate"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoRecipients = errors.New("fees: no recipients")
	ErrZeroAmount   = errors.New("fees: amount must be greater than zero")

	// ErrFeeNotConverged is returned when repricing runs past the number of
	// distinct transaction sizes the candidates allow.
	ErrFeeNotConverged = errors.New("fees: fee estimate did not converge")
)

type Estimator struct {
	Feerater feerate.FeeRater
	Selector coinselection.Strategy
	UTXOs    blockchain.UTXOManager
	Chain    blockchain.ChainManager
	Logger   *zap.Logger
}

// Request describes a payment from From to Recipients.
type Request struct {
	From       common.Address
	Recipients []common.TransactionOutput
	// ChangeAddress receives the change; From when zero.
	ChangeAddress common.Address
	// FixedFee, when set, is used instead of rate based estimation.
	FixedFee *common.Currency
}

type EstimationResult struct {
	Set     []*common.UnspentOutput
	Outputs []common.TransactionOutput
	FeeRate common.Currency
	Fee     common.Currency
	Change  common.Currency
	Size    uint64
	Basis   common.ChainIndex
}

// Inputs returns the selected outputs by value, in selection order.
func (r *EstimationResult) Inputs() []common.UnspentOutput {
	inputs := make([]common.UnspentOutput, len(r.Set))
	for i, u := range r.Set {
		inputs[i] = *u
	}
	return inputs
}

func (e *Estimator) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

func (e *Estimator) selector() coinselection.Strategy {
	if e.Selector == nil {
		return coinselection.MinNumberCoinSelector{}
	}
	return e.Selector
}

type snapshot struct {
	utxos []*common.UnspentOutput
	tip   common.ChainIndex
	rate  common.Currency
}

// fetch queries the UTXO set, the chain tip and optionally the fee rate
// concurrently and waits for all of them.
func (e *Estimator) fetch(ctx context.Context, addr common.Address, withRate bool) (*snapshot, error) {
	var s snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		utxos, err := e.UTXOs.GetUTXOs(ctx, addr)
		if err != nil {
			return errors.Wrap(err, "failed to get UTXOs")
		}
		s.utxos = utxos
		return nil
	})
	g.Go(func() error {
		tip, err := e.Chain.Tip(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to get chain tip")
		}
		s.tip = tip
		return nil
	})
	if withRate {
		g.Go(func() error {
			rate, err := e.Feerater.GetFeeRate(ctx)
			if err != nil {
				return errors.Wrap(err, "failed to get fee rate")
			}
			s.rate = rate
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}

// EstimateFees selects inputs for req and prices the transaction. The fee
// depends on the number of inputs, so selection is repeated until the fee
// no longer grows.
func (e *Estimator) EstimateFees(ctx context.Context, req Request) (*EstimationResult, error) {
	if len(req.Recipients) == 0 {
		return nil, ErrNoRecipients
	}
	target, overflow := common.SumOutputs(req.Recipients)
	if overflow {
		return nil, errors.Wrap(common.ErrRange, "recipient total exceeds 128 bits")
	}
	for _, r := range req.Recipients {
		if r.Value.IsZero() {
			return nil, errors.Wrapf(ErrZeroAmount, "recipient %s", r.Address)
		}
	}

	snap, err := e.fetch(ctx, req.From, req.FixedFee == nil)
	if err != nil {
		return nil, err
	}
	mature := coinselection.FilterMature(snap.utxos, snap.tip.Height)
	e.logger().Debug("candidate outputs",
		zap.Int("total", len(snap.utxos)),
		zap.Int("mature", len(mature)),
		zap.Uint64("height", snap.tip.Height))

	var set *coinselection.ResultSet
	var fee common.Currency
	if req.FixedFee != nil {
		fee = *req.FixedFee
		if set, err = e.selector().SelectCoins(mature, target, fee); err != nil {
			return nil, err
		}
	} else {
		if set, fee, err = e.price(mature, target, snap.rate, len(req.Recipients)); err != nil {
			return nil, err
		}
	}

	outputs := append([]common.TransactionOutput(nil), req.Recipients...)
	if !set.Change.IsZero() {
		changeAddr := req.ChangeAddress
		if changeAddr == (common.Address{}) {
			changeAddr = req.From
		}
		outputs = append(outputs, common.TransactionOutput{Address: changeAddr, Value: set.Change})
	}

	res := &EstimationResult{
		Set:     set.Coins,
		Outputs: outputs,
		FeeRate: snap.rate,
		Fee:     fee,
		Change:  set.Change,
		Size:    EstimateTxSize(len(set.Coins), len(outputs)),
		Basis:   snap.tip,
	}
	if err := assembly.CheckBalance(res.Inputs(), res.Outputs, res.Fee); err != nil {
		return nil, errors.Wrap(err, "estimated transaction does not balance")
	}

	e.logger().Info("estimated transaction",
		zap.Int("inputs", len(res.Set)),
		zap.Int("outputs", len(res.Outputs)),
		zap.Stringer("fee", res.Fee),
		zap.Stringer("change", res.Change))
	return res, nil
}

func feeFor(rate common.Currency, inputs, outputs int) (common.Currency, error) {
	fee, overflow := rate.MulWithOverflow64(EstimateTxSize(inputs, outputs))
	if overflow {
		return common.ZeroCurrency, errors.Wrap(common.ErrRange, "fee exceeds 128 bits")
	}
	return fee, nil
}

func (e *Estimator) price(mature []*common.UnspentOutput, target, rate common.Currency, recipients int) (*coinselection.ResultSet, common.Currency, error) {
	// start from a single input paying change
	fee, err := feeFor(rate, 1, recipients+1)
	if err != nil {
		return nil, common.ZeroCurrency, err
	}
	// every round strictly raises the fee, and with n candidates and at
	// most one change output there are 2(n+1) possible sizes
	rounds := 2*(len(mature)+1) + 1
	for i := 0; i < rounds; i++ {
		set, err := e.selector().SelectCoins(mature, target, fee)
		if err != nil {
			return nil, common.ZeroCurrency, err
		}
		outputs := recipients
		if !set.Change.IsZero() {
			outputs++
		}
		needed, err := feeFor(rate, len(set.Coins), outputs)
		if err != nil {
			return nil, common.ZeroCurrency, err
		}
		if needed.Cmp(fee) <= 0 {
			return set, fee, nil
		}
		e.logger().Debug("repricing", zap.Int("inputs", len(set.Coins)), zap.Stringer("fee", needed))
		fee = needed
	}
	return nil, common.ZeroCurrency, ErrFeeNotConverged
}

// Balance is the value owned by an address split by maturity.
type Balance struct {
	Mature   common.Currency
	Immature common.Currency
	Outputs  int
	Height   uint64
}

// Balance sums the outputs of addr at the current tip.
func (e *Estimator) Balance(ctx context.Context, addr common.Address) (*Balance, error) {
	snap, err := e.fetch(ctx, addr, false)
	if err != nil {
		return nil, err
	}
	var mature, immature coinselection.WideSum
	for _, u := range snap.utxos {
		if u.MaturityHeight <= snap.tip.Height {
			mature = mature.Add(u.Value)
		} else {
			immature = immature.Add(u.Value)
		}
	}
	b := &Balance{Outputs: len(snap.utxos), Height: snap.tip.Height}
	var ok bool
	if b.Mature, ok = mature.Currency(); !ok {
		return nil, errors.Wrap(common.ErrRange, "balance exceeds 128 bits")
	}
	if b.Immature, ok = immature.Currency(); !ok {
		return nil, errors.Wrap(common.ErrRange, "balance exceeds 128 bits")
	}
	return b, nil
}
