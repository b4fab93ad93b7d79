package round

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/dicepool/internal/repositories/round Repository

import (
	"context"

	"github.com/KirkDiggler/dicepool/internal/models"
)

// Repository defines the interface for round state persistence
type Repository interface {
	// GetGame retrieves the live game state
	GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error)

	// SaveGame replaces the live game state if its version is unchanged
	SaveGame(ctx context.Context, input *SaveGameInput) error

	// GetRound retrieves an archived round by ID
	GetRound(ctx context.Context, input *GetRoundInput) (*models.Round, error)

	// ListRounds retrieves archived rounds, newest first
	ListRounds(ctx context.Context, input *ListRoundsInput) (*ListRoundsOutput, error)
}
