package ledger

import (
	"github.com/pkg/errors"
)

var (
	// ErrInsufficientBalance is returned when a holder cannot cover a transfer
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidAmount is returned for zero amounts
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInvalidAccount is returned when an asset or holder is empty
	ErrInvalidAccount = errors.New("asset and holder cannot be empty")

	// ErrSameAccount is returned when a transfer's source and destination match
	ErrSameAccount = errors.New("cannot transfer to the same holder")

	// ErrOverflow is returned when a credit would overflow a balance
	ErrOverflow = errors.New("balance overflow")

	// ErrTxDone is returned when a transaction is used after Commit or Rollback
	ErrTxDone = errors.New("transaction already committed or rolled back")

	// ErrConflict is returned by Commit when a balance read by the transaction changed
	ErrConflict = errors.New("balance changed during transaction")
)
