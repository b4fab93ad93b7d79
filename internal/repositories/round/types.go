package round

import "github.com/KirkDiggler/dicepool/internal/models"

type GetGameInput struct {
}

type SaveGameInput struct {
	Game *models.Game

	// ExpectedVersion is the version the caller loaded; the save fails
	// with ErrVersionConflict if the stored game has moved on
	ExpectedVersion int64
}

type GetRoundInput struct {
	RoundID string
}

type ListRoundsInput struct {
	// Limit caps the number of rounds returned, zero means all
	Limit int64
}

type ListRoundsOutput struct {
	Rounds []*models.Round
}
