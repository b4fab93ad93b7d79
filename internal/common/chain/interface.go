// Package chain holds the collaborators the round controller consults for
// values it does not own: the current ledger height and settlement entropy.
package chain

//go:generate mockgen -package=mocks -destination=mocks/mock_chain.go github.com/KirkDiggler/dicepool/internal/common/chain HeightSource,EntropySource

import (
	"context"

	"github.com/holiman/uint256"
)

// HeightSource reports the current height of the ledger the game runs against
type HeightSource interface {
	// CurrentHeight returns the latest known ledger height
	CurrentHeight(ctx context.Context) (uint64, error)
}

// EntropySource supplies the externally derived value that is combined with
// the operator's revealed secret to pick the winning face. Its
// unpredictability is a property of the implementation, not of the caller.
type EntropySource interface {
	// Entropy returns a fresh unsigned 256-bit value
	Entropy(ctx context.Context) (*uint256.Int, error)
}
