package ledger

import (
	"context"
	"math"

	"github.com/pkg/errors"
)

type account struct {
	asset  string
	holder string
}

// loadFunc reads a committed balance
type loadFunc func(ctx context.Context, acc account) (uint64, error)

// staging tracks what a transaction read and the balances it wants to write.
// Commit implementations verify the reads still hold before writing.
type staging struct {
	load     loadFunc
	read     map[account]uint64
	balances map[account]uint64
	order    []account
	done     bool
}

func newStaging(load loadFunc) *staging {
	return &staging{
		load:     load,
		read:     make(map[account]uint64),
		balances: make(map[account]uint64),
	}
}

func (s *staging) balance(ctx context.Context, acc account) (uint64, error) {
	if acc.asset == "" || acc.holder == "" {
		return 0, ErrInvalidAccount
	}

	if b, ok := s.balances[acc]; ok {
		return b, nil
	}

	b, err := s.load(ctx, acc)
	if err != nil {
		return 0, err
	}

	s.read[acc] = b
	s.balances[acc] = b
	s.order = append(s.order, acc)
	return b, nil
}

func (s *staging) balanceOf(ctx context.Context, input *BalanceOfInput) (uint64, error) {
	if s.done {
		return 0, ErrTxDone
	}
	if input == nil {
		return 0, ErrInvalidAccount
	}
	return s.balance(ctx, account{asset: input.Asset, holder: input.Holder})
}

func (s *staging) transfer(ctx context.Context, input *TransferInput) error {
	if s.done {
		return ErrTxDone
	}
	if input == nil {
		return ErrInvalidAccount
	}
	if input.Amount == 0 {
		return ErrInvalidAmount
	}
	if input.From == input.To {
		return ErrSameAccount
	}

	from := account{asset: input.Asset, holder: input.From}
	to := account{asset: input.Asset, holder: input.To}

	fromBalance, err := s.balance(ctx, from)
	if err != nil {
		return err
	}
	toBalance, err := s.balance(ctx, to)
	if err != nil {
		return err
	}

	if fromBalance < input.Amount {
		return errors.Wrapf(ErrInsufficientBalance, "%s holds %d %s, needs %d", input.From, fromBalance, input.Asset, input.Amount)
	}
	if toBalance > math.MaxUint64-input.Amount {
		return ErrOverflow
	}

	s.balances[from] = fromBalance - input.Amount
	s.balances[to] = toBalance + input.Amount
	return nil
}

// writes returns the staged balances that differ from what was read
func (s *staging) writes() map[account]uint64 {
	out := make(map[account]uint64)
	for _, acc := range s.order {
		if s.balances[acc] != s.read[acc] {
			out[acc] = s.balances[acc]
		}
	}
	return out
}
