package models

import (
	"time"
)

// Payout is the amount paid to a single winner
type Payout struct {
	// ParticipantID is the winner receiving the payout
	ParticipantID string

	// Guess is the face the winner wagered on
	Guess int

	// Wagered is the amount the winner staked
	Wagered uint64

	// Amount is the share of the winner pot transferred to the participant
	Amount uint64
}

// Settlement records how a round's pot was distributed
type Settlement struct {
	// RoundID is the round that was settled
	RoundID string

	// AssetRef is the asset the pot was held in
	AssetRef string

	// WinningNumber is the face derived from the revealed secret and entropy
	WinningNumber int

	// Pot is the pool balance at the start of settlement
	Pot uint64

	// WinnerPot is the portion of the pot reserved for winners
	WinnerPot uint64

	// Fee is what was swept to the fee collector, including rounding remainder
	Fee uint64

	// Payouts lists winner transfers in bucket order
	Payouts []*Payout

	// SettledAt is when the settlement was committed
	SettledAt time.Time
}

// Distributed returns the sum of all winner payouts
func (s *Settlement) Distributed() uint64 {
	var total uint64
	for _, p := range s.Payouts {
		total += p.Amount
	}
	return total
}

// ParticipantStats summarises a participant's winnings across settled rounds
type ParticipantStats struct {
	// ParticipantID identifies the participant
	ParticipantID string

	// RoundsWon is the number of rounds in which the participant was paid
	RoundsWon int64

	// TotalWon is the sum of all payouts the participant received
	TotalWon uint64
}
