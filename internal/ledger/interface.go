// Package ledger is the fungible-asset ledger the dice game moves funds on.
//
// All movements happen inside a Tx: transfers are staged against balances
// read through the transaction and only become visible on Commit. A failed
// or abandoned transaction leaves every balance untouched.
package ledger

//go:generate mockgen -package=mocks -destination=mocks/mock_ledger.go github.com/KirkDiggler/dicepool/internal/ledger Ledger,Tx

import (
	"context"
)

// Ledger reads balances and opens transactions
type Ledger interface {
	// BalanceOf returns the committed balance of a holder
	BalanceOf(ctx context.Context, input *BalanceOfInput) (uint64, error)

	// Begin opens a transaction
	Begin(ctx context.Context) (Tx, error)
}

// Tx stages transfers until Commit
type Tx interface {
	// BalanceOf returns the balance of a holder including staged transfers
	BalanceOf(ctx context.Context, input *BalanceOfInput) (uint64, error)

	// Transfer moves an amount between two holders of the same asset
	Transfer(ctx context.Context, input *TransferInput) error

	// Commit applies every staged transfer atomically
	Commit(ctx context.Context) error

	// Rollback discards the transaction; it is safe to call after Commit
	Rollback(ctx context.Context) error
}

// Minter credits new units to a holder, used for genesis and local faucets
type Minter interface {
	Mint(ctx context.Context, input *MintInput) error
}
