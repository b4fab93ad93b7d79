package round

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/holiman/uint256"

	"github.com/KirkDiggler/dicepool/internal/commitment"
	"github.com/KirkDiggler/dicepool/internal/common/chain"
	"github.com/KirkDiggler/dicepool/internal/common/clock"
	"github.com/KirkDiggler/dicepool/internal/common/uuid"
	"github.com/KirkDiggler/dicepool/internal/ledger"
	"github.com/KirkDiggler/dicepool/internal/models"
	payoutRepo "github.com/KirkDiggler/dicepool/internal/repositories/payout"
	roundRepo "github.com/KirkDiggler/dicepool/internal/repositories/round"
)

// service implements the Service interface
type service struct {
	maxEntries   int
	operator     string
	feeCollector string
	poolAccount  string
	accessAsset  string
	accessFee    uint64

	roundRepo  roundRepo.Repository
	payoutRepo payoutRepo.Repository
	ledger     ledger.Ledger
	heights    chain.HeightSource
	settlement *SettlementEngine
	clock      clock.Clock
	uuid       uuid.UUID
	logger     *slog.Logger

	// mu serializes every state-changing operation
	mu sync.Mutex
}

// New creates a new round service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.RoundRepo == nil {
		return nil, ErrNilRoundRepo
	}

	if cfg.PayoutRepo == nil {
		return nil, ErrNilPayoutRepo
	}

	if cfg.Ledger == nil {
		return nil, ErrNilLedger
	}

	if cfg.Heights == nil {
		return nil, ErrNilHeightSource
	}

	if cfg.Entropy == nil {
		return nil, ErrNilEntropySource
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	if cfg.Operator == "" || cfg.FeeCollector == "" || cfg.PoolAccount == "" || cfg.AccessAsset == "" {
		return nil, ErrMissingAccount
	}

	if cfg.MaxEntries > DefaultMaxEntries {
		return nil, ErrInvalidMaxEntries
	}

	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		maxEntries:   maxEntries,
		operator:     cfg.Operator,
		feeCollector: cfg.FeeCollector,
		poolAccount:  cfg.PoolAccount,
		accessAsset:  cfg.AccessAsset,
		accessFee:    cfg.AccessFee,
		roundRepo:    cfg.RoundRepo,
		payoutRepo:   cfg.PayoutRepo,
		ledger:       cfg.Ledger,
		heights:      cfg.Heights,
		settlement:   NewSettlementEngine(cfg.Entropy, cfg.PoolAccount, cfg.FeeCollector),
		clock:        cfg.Clock,
		uuid:         cfg.UUIDGenerator,
		logger:       logger.With("component", "round"),
	}, nil
}

// OpenRound starts a new round against a published commitment
func (s *service) OpenRound(ctx context.Context, input *OpenRoundInput) (*OpenRoundOutput, error) {
	if input == nil {
		return nil, ErrInvalidRound
	}

	if !s.isOperator(input.Caller) {
		return nil, ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	game, err := s.loadGame(ctx)
	if err != nil {
		return nil, err
	}

	if game.Status() != models.RoundStatusClosed {
		return nil, ErrRoundAlreadyOpen
	}

	if strings.TrimSpace(input.AssetRef) == "" || input.CloseHeight < input.OpenHeight {
		return nil, ErrInvalidRound
	}

	if _, err := commitment.DecodeCommitment(input.Commitment); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRound, err)
	}

	// The commitment must be on record before betting can close
	height, err := s.heights.CurrentHeight(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current height: %w", err)
	}

	if height >= input.CloseHeight {
		return nil, ErrTooLate
	}

	now := s.clock.Now()
	next := game.Clone()
	next.ResetRoundState()
	next.Round = &models.Round{
		ID:          s.uuid.NewUUID(),
		AssetRef:    input.AssetRef,
		OpenHeight:  input.OpenHeight,
		CloseHeight: input.CloseHeight,
		Commitment:  strings.ToLower(strings.TrimPrefix(strings.TrimSpace(input.Commitment), "0x")),
		Status:      models.RoundStatusOpen,
		OpenedAt:    now,
		UpdatedAt:   now,
	}

	if err := s.persist(ctx, game.Version, next, game, nil); err != nil {
		return nil, err
	}

	s.logger.Info("round opened",
		"round_id", next.Round.ID,
		"asset", next.Round.AssetRef,
		"open_height", next.Round.OpenHeight,
		"close_height", next.Round.CloseHeight,
	)

	round := *next.Round
	return &OpenRoundOutput{
		Round: &round,
	}, nil
}

// PlaceWager charges the access fee, moves the stake into the pool and
// records the entry and wager, all or nothing
func (s *service) PlaceWager(ctx context.Context, input *PlaceWagerInput) (*PlaceWagerOutput, error) {
	if input == nil || strings.TrimSpace(input.ParticipantID) == "" {
		return nil, ErrInvalidParticipant
	}

	if input.ParticipantID == s.feeCollector || input.ParticipantID == s.poolAccount {
		return nil, ErrInvalidParticipant
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	game, err := s.loadGame(ctx)
	if err != nil {
		return nil, err
	}

	if !game.Round.IsOpen() {
		return nil, ErrRoundNotOpen
	}

	height, err := s.heights.CurrentHeight(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current height: %w", err)
	}

	if height < game.Round.OpenHeight {
		return nil, ErrTooEarly
	}

	if height >= game.Round.CloseHeight {
		return nil, ErrBettingClosed
	}

	next := game.Clone()
	wagers := NewWagerLedger(next)
	registry := NewEntryRegistry(next, s.maxEntries)

	wager, err := wagers.Place(input.ParticipantID, input.Guess, input.Amount, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := registry.Enter(input.ParticipantID); err != nil {
		return nil, err
	}

	tx, err := s.ledger.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	if err := s.stageWager(ctx, tx, next.Round.AssetRef, wager); err != nil {
		s.rollback(ctx, tx)
		return nil, err
	}

	next.Round.UpdatedAt = wager.PlacedAt

	if err := s.persist(ctx, game.Version, next, game, tx); err != nil {
		return nil, err
	}

	bucket, _ := wagers.Bucket(wager.Guess)

	s.logger.Info("wager accepted",
		"round_id", next.Round.ID,
		"participant", wager.ParticipantID,
		"guess", wager.Guess,
		"amount", wager.Amount,
		"entries", registry.Len(),
	)

	return &PlaceWagerOutput{
		Wager:      wager,
		Bucket:     bucket,
		EntryCount: registry.Len(),
	}, nil
}

// stageWager checks the access asset and stages the fee and stake transfers
func (s *service) stageWager(ctx context.Context, tx ledger.Tx, asset string, wager *models.Wager) error {
	access, err := tx.BalanceOf(ctx, &ledger.BalanceOfInput{
		Asset:  s.accessAsset,
		Holder: wager.ParticipantID,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	if access == 0 {
		return ErrInsufficientBalance
	}

	if s.accessFee > 0 {
		if err := tx.Transfer(ctx, &ledger.TransferInput{
			Asset:  s.accessAsset,
			From:   wager.ParticipantID,
			To:     s.feeCollector,
			Amount: s.accessFee,
		}); err != nil {
			return transferError(err)
		}
	}

	if err := tx.Transfer(ctx, &ledger.TransferInput{
		Asset:  asset,
		From:   wager.ParticipantID,
		To:     s.poolAccount,
		Amount: wager.Amount,
	}); err != nil {
		return transferError(err)
	}

	return nil
}

// CloseAndSettle reveals the secret and pays out the pool. The round is marked
// settling while payouts are staged and returns to open on any failure.
func (s *service) CloseAndSettle(ctx context.Context, input *CloseAndSettleInput) (*CloseAndSettleOutput, error) {
	if input == nil || !s.isOperator(input.Caller) {
		return nil, ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	game, err := s.loadGame(ctx)
	if err != nil {
		return nil, err
	}

	if !game.Round.IsOpen() {
		return nil, ErrRoundNotOpen
	}

	height, err := s.heights.CurrentHeight(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current height: %w", err)
	}

	if height < game.Round.CloseHeight {
		return nil, ErrTooEarly
	}

	secret, err := commitment.ParseSecret(input.Secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCommitmentMismatch, err)
	}

	settling := game.Clone()
	settling.Round.Status = models.RoundStatusSettling
	settling.Round.UpdatedAt = s.clock.Now()
	if err := s.persist(ctx, game.Version, settling, nil, nil); err != nil {
		return nil, err
	}

	settlement, err := s.settle(ctx, settling, secret)
	if err != nil {
		s.restore(ctx, game)
		return nil, err
	}

	s.logger.Info("round settled",
		"round_id", settlement.RoundID,
		"winning_number", settlement.WinningNumber,
		"pot", settlement.Pot,
		"winners", len(settlement.Payouts),
		"fee", settlement.Fee,
	)

	archived := true
	if err := s.payoutRepo.AddSettlement(ctx, &payoutRepo.AddSettlementInput{
		Settlement: settlement,
	}); err != nil {
		archived = false
		s.logger.Warn("failed to archive settlement",
			"round_id", settlement.RoundID,
			"error", err,
		)
	}

	return &CloseAndSettleOutput{
		Settlement: settlement,
		Archived:   archived,
	}, nil
}

// settle stages the payout of the settling game and persists the closed round
func (s *service) settle(ctx context.Context, settling *models.Game, secret *uint256.Int) (*models.Settlement, error) {
	tx, err := s.ledger.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	now := s.clock.Now()
	next := settling.Clone()

	settlement, err := s.settlement.Settle(ctx, tx, next, secret, now)
	if err != nil {
		s.rollback(ctx, tx)
		return nil, err
	}

	next.Round.Status = models.RoundStatusClosed
	next.Round.Completed = true
	next.Round.UpdatedAt = now

	if err := s.persist(ctx, settling.Version, next, nil, tx); err != nil {
		return nil, err
	}

	return settlement, nil
}

// GetRound returns the live round with its entries and pot
func (s *service) GetRound(ctx context.Context, input *GetRoundInput) (*GetRoundOutput, error) {
	game, err := s.loadGame(ctx)
	if err != nil {
		return nil, err
	}

	output := &GetRoundOutput{
		Status:     game.Status(),
		Entries:    NewEntryRegistry(game, s.maxEntries).Entries(),
		EntryCount: len(game.Entries),
	}

	if game.Round == nil {
		return output, nil
	}

	pot, err := s.ledger.BalanceOf(ctx, &ledger.BalanceOfInput{
		Asset:  game.Round.AssetRef,
		Holder: s.poolAccount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get pot: %w", err)
	}

	output.Round = game.Round
	output.Pot = pot
	return output, nil
}

// GetBucket returns the participants and total wagered on one face
func (s *service) GetBucket(ctx context.Context, input *GetBucketInput) (*GetBucketOutput, error) {
	if input == nil {
		return nil, ErrInvalidGuess
	}

	game, err := s.loadGame(ctx)
	if err != nil {
		return nil, err
	}

	bucket, err := NewWagerLedger(game).Bucket(input.Guess)
	if err != nil {
		return nil, err
	}

	return &GetBucketOutput{
		Bucket: bucket,
	}, nil
}

// GetWager returns a participant's wager in the live round
func (s *service) GetWager(ctx context.Context, input *GetWagerInput) (*GetWagerOutput, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, ErrInvalidParticipant
	}

	game, err := s.loadGame(ctx)
	if err != nil {
		return nil, err
	}

	wager, ok := NewWagerLedger(game).Wager(input.ParticipantID)
	if !ok {
		return nil, ErrWagerNotFound
	}

	return &GetWagerOutput{
		Wager: wager,
	}, nil
}

// ListRounds returns archived round metadata, newest first
func (s *service) ListRounds(ctx context.Context, input *ListRoundsInput) (*ListRoundsOutput, error) {
	var limit int64
	if input != nil {
		limit = input.Limit
	}

	output, err := s.roundRepo.ListRounds(ctx, &roundRepo.ListRoundsInput{
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	return &ListRoundsOutput{
		Rounds: output.Rounds,
	}, nil
}

// GetSettlement returns the archived settlement of a round
func (s *service) GetSettlement(ctx context.Context, input *GetSettlementInput) (*GetSettlementOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	settlement, err := s.payoutRepo.GetSettlement(ctx, &payoutRepo.GetSettlementInput{
		RoundID: input.RoundID,
	})
	if err != nil {
		return nil, err
	}

	return &GetSettlementOutput{
		Settlement: settlement,
	}, nil
}

// ListSettlements returns archived settlements, newest first
func (s *service) ListSettlements(ctx context.Context, input *ListSettlementsInput) (*ListSettlementsOutput, error) {
	var limit int64
	if input != nil {
		limit = input.Limit
	}

	output, err := s.payoutRepo.ListSettlements(ctx, &payoutRepo.ListSettlementsInput{
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	return &ListSettlementsOutput{
		Settlements: output.Settlements,
	}, nil
}

// GetParticipantStats returns a participant's aggregate winnings
func (s *service) GetParticipantStats(ctx context.Context, input *GetParticipantStatsInput) (*GetParticipantStatsOutput, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, ErrInvalidParticipant
	}

	stats, err := s.payoutRepo.GetParticipantStats(ctx, &payoutRepo.GetParticipantStatsInput{
		ParticipantID: input.ParticipantID,
	})
	if err != nil {
		return nil, err
	}

	return &GetParticipantStatsOutput{
		Stats: stats,
	}, nil
}

func (s *service) isOperator(caller string) bool {
	return subtle.ConstantTimeCompare([]byte(caller), []byte(s.operator)) == 1
}

// loadGame returns the stored game, or an empty one before the first round
func (s *service) loadGame(ctx context.Context) (*models.Game, error) {
	game, err := s.roundRepo.GetGame(ctx, &roundRepo.GetGameInput{})
	if err != nil {
		if errors.Is(err, roundRepo.ErrGameNotFound) {
			return models.NewGame(), nil
		}
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	return game, nil
}

// persist saves next over the stored version expected and then commits tx.
// If the commit fails and fallback is set the stored game is put back to it.
func (s *service) persist(ctx context.Context, expected int64, next, fallback *models.Game, tx ledger.Tx) error {
	if err := s.roundRepo.SaveGame(ctx, &roundRepo.SaveGameInput{
		Game:            next,
		ExpectedVersion: expected,
	}); err != nil {
		if tx != nil {
			s.rollback(ctx, tx)
		}
		return fmt.Errorf("failed to save game: %w", err)
	}

	if tx == nil {
		return nil
	}

	if err := tx.Commit(ctx); err != nil {
		if fallback != nil {
			s.restore(ctx, fallback)
		}
		return fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	return nil
}

// restore overwrites whatever is stored with previous
func (s *service) restore(ctx context.Context, previous *models.Game) {
	ctx = context.WithoutCancel(ctx)

	stored, err := s.loadGame(ctx)
	if err != nil {
		s.logger.Error("failed to restore round state", "error", err)
		return
	}

	restored := previous.Clone()
	if err := s.roundRepo.SaveGame(ctx, &roundRepo.SaveGameInput{
		Game:            restored,
		ExpectedVersion: stored.Version,
	}); err != nil {
		s.logger.Error("failed to restore round state",
			"version", stored.Version,
			"error", err,
		)
		return
	}

	s.logger.Warn("restored round state", "version", restored.Version)
}

func (s *service) rollback(ctx context.Context, tx ledger.Tx) {
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil {
		s.logger.Error("failed to roll back ledger transaction", "error", err)
	}
}

// transferError maps a participant-side ledger failure onto the round's error kinds
func transferError(err error) error {
	if errors.Is(err, ledger.ErrInsufficientBalance) {
		return fmt.Errorf("%w: %w", ErrInsufficientBalance, err)
	}
	return fmt.Errorf("%w: %w", ErrTransferFailed, err)
}
