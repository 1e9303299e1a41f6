package blockchain

import (
	"context"

	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
)

// UTXOManager lists the unspent outputs owned by an address.
type UTXOManager interface {
	GetUTXOs(ctx context.Context, addr common.Address) ([]*common.UnspentOutput, error)
}

// ChainManager reports the current chain tip, which doubles as the
// consensus basis for broadcasts.
type ChainManager interface {
	Tip(ctx context.Context) (common.ChainIndex, error)
}

// Broadcaster submits a signed transaction against a basis.
type Broadcaster interface {
	Broadcast(ctx context.Context, basis common.ChainIndex, txn *common.SignedTransaction) error
}

// Service is everything the tool needs from upstream.
type Service interface {
	UTXOManager
	ChainManager
	Broadcaster
	GetFeeRate(ctx context.Context) (common.Currency, error)
}
