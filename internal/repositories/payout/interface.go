package payout

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/dicepool/internal/repositories/payout Repository

import (
	"context"

	"github.com/KirkDiggler/dicepool/internal/models"
)

// Repository defines the interface for the settlement archive
type Repository interface {
	// AddSettlement archives a settled round and credits winner stats
	AddSettlement(ctx context.Context, input *AddSettlementInput) error

	// GetSettlement retrieves the settlement of a round
	GetSettlement(ctx context.Context, input *GetSettlementInput) (*models.Settlement, error)

	// ListSettlements retrieves archived settlements, newest first
	ListSettlements(ctx context.Context, input *ListSettlementsInput) (*ListSettlementsOutput, error)

	// GetParticipantStats retrieves a participant's aggregate winnings
	GetParticipantStats(ctx context.Context, input *GetParticipantStatsInput) (*models.ParticipantStats, error)
}
