package ledger

import (
	"context"
	"math"
	"sync"
)

// Memory is an in-process ledger
type Memory struct {
	mu       sync.Mutex
	balances map[account]uint64
}

// NewMemory creates an empty in-memory ledger
func NewMemory() *Memory {
	return &Memory{
		balances: make(map[account]uint64),
	}
}

// BalanceOf returns the committed balance of a holder
func (m *Memory) BalanceOf(ctx context.Context, input *BalanceOfInput) (uint64, error) {
	if input == nil || input.Asset == "" || input.Holder == "" {
		return 0, ErrInvalidAccount
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.balances[account{asset: input.Asset, holder: input.Holder}], nil
}

// Begin opens a transaction
func (m *Memory) Begin(ctx context.Context) (Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tx := &memoryTx{ledger: m}
	tx.staging = newStaging(func(_ context.Context, acc account) (uint64, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		return m.balances[acc], nil
	})
	return tx, nil
}

// Mint credits amount to a holder
func (m *Memory) Mint(ctx context.Context, input *MintInput) error {
	if input == nil || input.Asset == "" || input.Holder == "" {
		return ErrInvalidAccount
	}
	if input.Amount == 0 {
		return ErrInvalidAmount
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	acc := account{asset: input.Asset, holder: input.Holder}
	if m.balances[acc] > math.MaxUint64-input.Amount {
		return ErrOverflow
	}
	m.balances[acc] += input.Amount
	return nil
}

type memoryTx struct {
	*staging
	ledger *Memory
}

func (t *memoryTx) BalanceOf(ctx context.Context, input *BalanceOfInput) (uint64, error) {
	return t.balanceOf(ctx, input)
}

func (t *memoryTx) Transfer(ctx context.Context, input *TransferInput) error {
	return t.transfer(ctx, input)
}

func (t *memoryTx) Commit(ctx context.Context) error {
	if t.done {
		return ErrTxDone
	}
	t.done = true

	t.ledger.mu.Lock()
	defer t.ledger.mu.Unlock()

	for acc, seen := range t.read {
		if t.ledger.balances[acc] != seen {
			return ErrConflict
		}
	}

	for acc, balance := range t.writes() {
		t.ledger.balances[acc] = balance
	}
	return nil
}

func (t *memoryTx) Rollback(ctx context.Context) error {
	t.done = true
	return nil
}
