package payout

import (
	"errors"
	"math"

	"github.com/KirkDiggler/dicepool/internal/models"
)

var (
	// ErrSettlementNotFound is returned when a round has no archived settlement
	ErrSettlementNotFound = errors.New("settlement not found")

	// ErrSettlementExists is returned when a round is archived twice
	ErrSettlementExists = errors.New("settlement already archived")

	// ErrAmountTooLarge is returned for amounts the archive cannot aggregate
	ErrAmountTooLarge = errors.New("amount exceeds archive range")
)

// AddSettlementInput contains the settlement to archive
type AddSettlementInput struct {
	Settlement *models.Settlement
}

// GetSettlementInput contains parameters for retrieving a settlement
type GetSettlementInput struct {
	RoundID string
}

// ListSettlementsInput contains parameters for listing settlements
type ListSettlementsInput struct {
	// Limit caps the number of settlements returned, zero means all
	Limit int64
}

// ListSettlementsOutput contains archived settlements
type ListSettlementsOutput struct {
	Settlements []*models.Settlement
}

// GetParticipantStatsInput contains parameters for retrieving participant stats
type GetParticipantStatsInput struct {
	ParticipantID string
}

func validateSettlement(input *AddSettlementInput) error {
	if input == nil || input.Settlement == nil {
		return errors.New("input and settlement cannot be nil")
	}

	if input.Settlement.RoundID == "" {
		return errors.New("round ID cannot be empty")
	}

	// Both archives aggregate with signed 64-bit arithmetic
	amounts := []uint64{input.Settlement.Pot, input.Settlement.WinnerPot, input.Settlement.Fee}
	for _, p := range input.Settlement.Payouts {
		amounts = append(amounts, p.Amount, p.Wagered)
	}
	for _, amount := range amounts {
		if amount > math.MaxInt64 {
			return ErrAmountTooLarge
		}
	}

	return nil
}
