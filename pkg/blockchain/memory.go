package blockchain

import (
	"context"
	"net/http"
	"sync"

	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
)

var _ Service = (*MemoryService)(nil)

// MemoryService keeps a UTXO pool in memory. It backs the simulation and
// tests. Outputs keep their insertion order.
type MemoryService struct {
	mu      sync.Mutex
	utxos   map[common.SiacoinOutputID]common.UnspentOutput
	order   []common.SiacoinOutputID
	tip     common.ChainIndex
	feeRate common.Currency

	// Broadcasts records every accepted transaction.
	Broadcasts []*common.SignedTransaction
	// FetchErr, when set, is returned by every query.
	FetchErr error
}

// NewMemoryService creates an empty service at height 0.
func NewMemoryService() *MemoryService {
	return &MemoryService{utxos: make(map[common.SiacoinOutputID]common.UnspentOutput)}
}

// AddUTXO adds u to the pool, replacing an output with the same ID.
func (m *MemoryService) AddUTXO(u common.UnspentOutput) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.utxos[u.ID]; !ok {
		m.order = append(m.order, u.ID)
	}
	m.utxos[u.ID] = u
}

// RemoveUTXOs drops the given outputs from the pool.
func (m *MemoryService) RemoveUTXOs(ids ...common.SiacoinOutputID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remove(ids)
}

func (m *MemoryService) remove(ids []common.SiacoinOutputID) {
	for _, id := range ids {
		delete(m.utxos, id)
	}
	kept := m.order[:0]
	for _, id := range m.order {
		if _, ok := m.utxos[id]; ok {
			kept = append(kept, id)
		}
	}
	m.order = kept
}

// SetTip sets the chain tip.
func (m *MemoryService) SetTip(tip common.ChainIndex) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tip = tip
}

// SetFeeRate sets the fee rate in hastings per byte.
func (m *MemoryService) SetFeeRate(rate common.Currency) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feeRate = rate
}

func (m *MemoryService) GetUTXOs(ctx context.Context, addr common.Address) ([]*common.UnspentOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	utxos := make([]*common.UnspentOutput, 0, len(m.order))
	for _, id := range m.order {
		u := m.utxos[id]
		if u.Address == addr || u.Address == (common.Address{}) {
			utxos = append(utxos, &u)
		}
	}
	return utxos, nil
}

func (m *MemoryService) Tip(ctx context.Context) (common.ChainIndex, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FetchErr != nil {
		return common.ChainIndex{}, m.FetchErr
	}
	return m.tip, nil
}

func (m *MemoryService) GetFeeRate(ctx context.Context) (common.Currency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FetchErr != nil {
		return common.ZeroCurrency, m.FetchErr
	}
	return m.feeRate, nil
}

// Broadcast accepts txn if all of its inputs are unspent and spends them.
func (m *MemoryService) Broadcast(ctx context.Context, basis common.ChainIndex, txn *common.SignedTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]common.SiacoinOutputID, 0, len(txn.SiacoinInputs))
	for _, in := range txn.SiacoinInputs {
		if _, ok := m.utxos[in.Parent.ID]; !ok {
			return &BroadcastError{
				StatusCode: http.StatusBadRequest,
				Detail:     "siacoin input " + in.Parent.ID.String() + " is not in the unspent set",
			}
		}
		ids = append(ids, in.Parent.ID)
	}
	m.remove(ids)
	m.Broadcasts = append(m.Broadcasts, txn)
	return nil
}
