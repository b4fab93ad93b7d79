package round

import (
	"log/slog"

	"github.com/KirkDiggler/dicepool/internal/common/chain"
	"github.com/KirkDiggler/dicepool/internal/common/clock"
	"github.com/KirkDiggler/dicepool/internal/common/uuid"
	"github.com/KirkDiggler/dicepool/internal/ledger"
	"github.com/KirkDiggler/dicepool/internal/models"
	payoutRepo "github.com/KirkDiggler/dicepool/internal/repositories/payout"
	roundRepo "github.com/KirkDiggler/dicepool/internal/repositories/round"
)

const (
	// DefaultMaxEntries is the entry cap used when Config.MaxEntries is zero,
	// and the largest cap a round may be configured with
	DefaultMaxEntries = 250

	// WinnerShareBasisPoints is the part of the pot paid to winners, out of 10000
	WinnerShareBasisPoints = 9000

	basisPoints = 10000
)

// Config holds configuration for the round service
type Config struct {
	// Maximum number of entries per round
	MaxEntries int

	// Operator is the only identity allowed to open and settle rounds
	Operator string

	// FeeCollector receives access fees and the undistributed part of each pot
	FeeCollector string

	// PoolAccount holds wagers until settlement
	PoolAccount string

	// AccessAsset must be held to place a wager and is the asset access fees are charged in
	AccessAsset string

	// AccessFee is charged per wager, zero disables it
	AccessFee uint64

	// Repository dependencies
	RoundRepo  roundRepo.Repository
	PayoutRepo payoutRepo.Repository

	// Ledger moves wagers, fees and payouts
	Ledger ledger.Ledger

	// Chain collaborators
	Heights chain.HeightSource
	Entropy chain.EntropySource

	// Utility dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Logger defaults to slog.Default()
	Logger *slog.Logger
}

// OpenRoundInput contains parameters for opening a round
type OpenRoundInput struct {
	Caller      string
	AssetRef    string
	OpenHeight  uint64
	CloseHeight uint64

	// Commitment is the hex keccak256 digest of the operator's secret
	Commitment string
}

// OpenRoundOutput contains the result of opening a round
type OpenRoundOutput struct {
	Round *models.Round
}

// PlaceWagerInput contains parameters for placing a wager
type PlaceWagerInput struct {
	ParticipantID string
	Guess         int
	Amount        uint64
}

// PlaceWagerOutput contains the result of placing a wager
type PlaceWagerOutput struct {
	Wager      *models.Wager
	Bucket     *models.GuessBucket
	EntryCount int
}

// CloseAndSettleInput contains parameters for settling the open round
type CloseAndSettleInput struct {
	Caller string

	// Secret is the committed value, decimal or 0x-prefixed hex
	Secret string
}

// CloseAndSettleOutput contains the result of settling a round
type CloseAndSettleOutput struct {
	Settlement *models.Settlement

	// Archived is false when the settlement committed but could not be written to the archive
	Archived bool
}

// GetRoundInput contains parameters for reading the live round
type GetRoundInput struct {
}

// GetRoundOutput contains the observable state of the live round
type GetRoundOutput struct {
	// Round is nil until the first round is opened
	Round      *models.Round
	Status     models.RoundStatus
	Entries    []string
	EntryCount int

	// Pot is the pool balance in the round's asset
	Pot uint64
}

// GetBucketInput contains parameters for reading a guess bucket
type GetBucketInput struct {
	Guess int
}

// GetBucketOutput contains a guess bucket
type GetBucketOutput struct {
	Bucket *models.GuessBucket
}

// GetWagerInput contains parameters for reading a wager
type GetWagerInput struct {
	ParticipantID string
}

// GetWagerOutput contains a wager
type GetWagerOutput struct {
	Wager *models.Wager
}

// ListRoundsInput contains parameters for listing rounds
type ListRoundsInput struct {
	Limit int64
}

// ListRoundsOutput contains archived rounds
type ListRoundsOutput struct {
	Rounds []*models.Round
}

// GetSettlementInput contains parameters for reading a settlement
type GetSettlementInput struct {
	RoundID string
}

// GetSettlementOutput contains a settlement
type GetSettlementOutput struct {
	Settlement *models.Settlement
}

// ListSettlementsInput contains parameters for listing settlements
type ListSettlementsInput struct {
	Limit int64
}

// ListSettlementsOutput contains archived settlements
type ListSettlementsOutput struct {
	Settlements []*models.Settlement
}

// GetParticipantStatsInput contains parameters for reading participant stats
type GetParticipantStatsInput struct {
	ParticipantID string
}

// GetParticipantStatsOutput contains participant stats
type GetParticipantStatsOutput struct {
	Stats *models.ParticipantStats
}
