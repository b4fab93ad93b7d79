package round

import (
	"context"
)

// Service defines the interface for the round controller
type Service interface {
	// OpenRound starts a new round against a published commitment
	OpenRound(ctx context.Context, input *OpenRoundInput) (*OpenRoundOutput, error)

	// PlaceWager enters a participant and stakes their guess
	PlaceWager(ctx context.Context, input *PlaceWagerInput) (*PlaceWagerOutput, error)

	// CloseAndSettle reveals the secret, picks the winning face and pays out the pool
	CloseAndSettle(ctx context.Context, input *CloseAndSettleInput) (*CloseAndSettleOutput, error)

	// GetRound returns the live round with its entries and pot
	GetRound(ctx context.Context, input *GetRoundInput) (*GetRoundOutput, error)

	// GetBucket returns the participants and total wagered on one face
	GetBucket(ctx context.Context, input *GetBucketInput) (*GetBucketOutput, error)

	// GetWager returns a participant's wager in the live round
	GetWager(ctx context.Context, input *GetWagerInput) (*GetWagerOutput, error)

	// ListRounds returns archived round metadata, newest first
	ListRounds(ctx context.Context, input *ListRoundsInput) (*ListRoundsOutput, error)

	// GetSettlement returns the archived settlement of a round
	GetSettlement(ctx context.Context, input *GetSettlementInput) (*GetSettlementOutput, error)

	// ListSettlements returns archived settlements, newest first
	ListSettlements(ctx context.Context, input *ListSettlementsInput) (*ListSettlementsOutput, error)

	// GetParticipantStats returns a participant's aggregate winnings
	GetParticipantStats(ctx context.Context, input *GetParticipantStatsInput) (*GetParticipantStatsOutput, error)
}
