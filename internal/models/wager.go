package models

import (
	"time"
)

// Wager is a participant's stake and guess for the current round
type Wager struct {
	// ParticipantID identifies who placed the wager
	ParticipantID string

	// Amount is the number of asset units staked
	Amount uint64

	// Guess is the face the participant expects to win, 1 through 6
	Guess int

	// PlacedAt is when the wager was accepted
	PlacedAt time.Time
}

// GuessBucket aggregates every wager placed on one face
type GuessBucket struct {
	// Guess is the face this bucket collects
	Guess int

	// ParticipantIDs lists participants in the order their wagers arrived
	ParticipantIDs []string

	// Total is the sum of all amounts wagered on this face
	Total uint64
}
