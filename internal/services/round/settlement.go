package round

import (
	"context"
	"fmt"
	"time"

	"github.com/holiman/uint256"

	"github.com/KirkDiggler/dicepool/internal/commitment"
	"github.com/KirkDiggler/dicepool/internal/common/chain"
	"github.com/KirkDiggler/dicepool/internal/dice"
	"github.com/KirkDiggler/dicepool/internal/ledger"
	"github.com/KirkDiggler/dicepool/internal/models"
)

// SettlementEngine pays out a round's pool inside a single ledger transaction
type SettlementEngine struct {
	entropy      chain.EntropySource
	poolAccount  string
	feeCollector string
}

// NewSettlementEngine returns an engine paying from pool and sweeping to feeCollector
func NewSettlementEngine(entropy chain.EntropySource, pool, feeCollector string) *SettlementEngine {
	return &SettlementEngine{
		entropy:      entropy,
		poolAccount:  pool,
		feeCollector: feeCollector,
	}
}

// Settle verifies secret against the round commitment, stages every payout
// and the fee sweep on tx, and clears game's entries and wagers. Nothing is
// visible on the ledger until tx commits.
func (e *SettlementEngine) Settle(ctx context.Context, tx ledger.Tx, game *models.Game, secret *uint256.Int, settledAt time.Time) (*models.Settlement, error) {
	round := game.Round

	revealed, err := commitment.Verify(secret, round.Commitment)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCommitmentMismatch, err)
	}

	entropy, err := e.entropy.Entropy(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get entropy: %w", err)
	}
	if entropy == nil {
		return nil, ErrMissingEntropy
	}

	winning := dice.WinningFace(entropy, revealed)

	pot, err := tx.BalanceOf(ctx, &ledger.BalanceOfInput{
		Asset:  round.AssetRef,
		Holder: e.poolAccount,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	winnerPot := mulDiv(pot, WinnerShareBasisPoints, basisPoints)

	settlement := &models.Settlement{
		RoundID:       round.ID,
		AssetRef:      round.AssetRef,
		WinningNumber: winning,
		Pot:           pot,
		WinnerPot:     winnerPot,
		Payouts:       []*models.Payout{},
		SettledAt:     settledAt,
	}

	wagers := NewWagerLedger(game)
	bucket, err := wagers.Bucket(winning)
	if err != nil {
		return nil, err
	}

	if bucket.Total > 0 {
		for _, participantID := range bucket.ParticipantIDs {
			wager, ok := wagers.Wager(participantID)
			if !ok {
				return nil, fmt.Errorf("bucket %d lists %s without a wager", winning, participantID)
			}

			share := mulDiv(winnerPot, wager.Amount, bucket.Total)
			settlement.Payouts = append(settlement.Payouts, &models.Payout{
				ParticipantID: participantID,
				Guess:         wager.Guess,
				Wagered:       wager.Amount,
				Amount:        share,
			})

			// Zero shares stay on record but move nothing
			if share == 0 {
				continue
			}

			if err := tx.Transfer(ctx, &ledger.TransferInput{
				Asset:  round.AssetRef,
				From:   e.poolAccount,
				To:     participantID,
				Amount: share,
			}); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrTransferFailed, err)
			}
		}
	}

	// Whatever winners did not take, rounding included, goes to the fee collector
	remaining, err := tx.BalanceOf(ctx, &ledger.BalanceOfInput{
		Asset:  round.AssetRef,
		Holder: e.poolAccount,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	if remaining > 0 {
		if err := tx.Transfer(ctx, &ledger.TransferInput{
			Asset:  round.AssetRef,
			From:   e.poolAccount,
			To:     e.feeCollector,
			Amount: remaining,
		}); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTransferFailed, err)
		}
	}
	settlement.Fee = remaining

	NewEntryRegistry(game, 0).Reset()
	wagers.Reset()

	return settlement, nil
}

// mulDiv returns floor(a*b/c) without overflowing the intermediate product.
// Callers guarantee b <= c so the result fits in a uint64.
func mulDiv(a, b, c uint64) uint64 {
	if c == 0 {
		return 0
	}
	product := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	return product.Div(product, uint256.NewInt(c)).Uint64()
}
