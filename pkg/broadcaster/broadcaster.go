package broadcaster

import (
	"context"

	"github.com/Keyur279/Sia-Cli-tool/pkg/blockchain"
	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Upstream is what the broadcaster needs from the API.
type Upstream interface {
	blockchain.UTXOManager
	blockchain.ChainManager
	blockchain.Broadcaster
}

// Broadcaster submits signed transactions against a freshly fetched basis.
type Broadcaster struct {
	upstream Upstream
	logger   *zap.Logger
}

func New(upstream Upstream, logger *zap.Logger) *Broadcaster {
	return &Broadcaster{upstream: upstream, logger: logger}
}

// Submit re-reads the unspent set of owner and the chain tip, then
// broadcasts txn with the tip as basis. The inputs and outputs of txn are
// never changed: a selected output that has since been spent is only
// reported, and the network decides. Proof material of inputs still
// present is refreshed. The basis used is returned.
func (b *Broadcaster) Submit(ctx context.Context, owner common.Address, txn *common.SignedTransaction) (common.ChainIndex, error) {
	var utxos []*common.UnspentOutput
	var tip common.ChainIndex

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		utxos, err = b.upstream.GetUTXOs(gctx, owner)
		return errors.Wrap(err, "failed to refresh UTXOs")
	})
	g.Go(func() (err error) {
		tip, err = b.upstream.Tip(gctx)
		return errors.Wrap(err, "failed to refresh chain tip")
	})
	if err := g.Wait(); err != nil {
		return common.ChainIndex{}, err
	}

	unspent := make(map[common.SiacoinOutputID]*common.UnspentOutput, len(utxos))
	for _, u := range utxos {
		unspent[u.ID] = u
	}
	for i := range txn.SiacoinInputs {
		in := &txn.SiacoinInputs[i]
		fresh, ok := unspent[in.Parent.ID]
		if !ok {
			b.logger.Warn("selected input no longer unspent", zap.Stringer("id", in.Parent.ID))
			continue
		}
		if len(fresh.StateElement) > 0 {
			in.Parent.StateElement = fresh.StateElement
		}
	}

	b.logger.Debug("broadcasting", zap.Stringer("basis", tip))
	if err := b.upstream.Broadcast(ctx, tip, txn); err != nil {
		return tip, err
	}
	return tip, nil
}
