package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dicepool/internal/common/chain"
	"github.com/KirkDiggler/dicepool/internal/common/clock"
	"github.com/KirkDiggler/dicepool/internal/common/uuid"
	"github.com/KirkDiggler/dicepool/internal/config"
	"github.com/KirkDiggler/dicepool/internal/ledger"
	payoutRepo "github.com/KirkDiggler/dicepool/internal/repositories/payout"
	roundRepo "github.com/KirkDiggler/dicepool/internal/repositories/round"
	roundService "github.com/KirkDiggler/dicepool/internal/services/round"
)

// app holds the wired dependencies a command runs against
type app struct {
	ctx     context.Context
	cfg     *config.Config
	logger  *slog.Logger
	redis   *redis.Client
	ledger  *ledger.Redis
	heights *chain.BlockClock
	rounds  roundService.Service
	closers []func() error
}

// newApp connects to Redis and wires the round service
func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{
		ctx:    ctx,
		cfg:    cfg,
		logger: logger,
	}

	// Initialize Redis client
	a.redis = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	a.closers = append(a.closers, a.redis.Close)

	// Test Redis connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := a.redis.Ping(pingCtx).Err(); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.RedisAddr, err)
	}

	var err error
	a.ledger, err = ledger.NewRedis(&ledger.Config{
		RedisClient: a.redis,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create ledger: %w", err)
	}

	a.heights, err = chain.NewBlockClock(&chain.BlockClockConfig{
		Genesis:  cfg.Genesis,
		Interval: cfg.BlockInterval,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create block clock: %w", err)
	}

	return a, nil
}

// withRounds wires the repositories and the round service
func (a *app) withRounds() error {
	rounds, err := roundRepo.NewRedis(&roundRepo.Config{
		RedisClient: a.redis,
		Table:       a.cfg.Table,
	})
	if err != nil {
		return fmt.Errorf("failed to create round repository: %w", err)
	}

	payouts, err := a.payoutRepository()
	if err != nil {
		return err
	}

	a.rounds, err = roundService.New(&roundService.Config{
		MaxEntries:    a.cfg.MaxEntries,
		Operator:      a.cfg.Operator,
		FeeCollector:  a.cfg.FeeCollector,
		PoolAccount:   a.cfg.PoolAccount,
		AccessAsset:   a.cfg.AccessAsset,
		AccessFee:     a.cfg.AccessFee,
		RoundRepo:     rounds,
		PayoutRepo:    payouts,
		Ledger:        a.ledger,
		Heights:       a.heights,
		Entropy:       chain.NewBeacon(nil),
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
		Logger:        a.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create round service: %w", err)
	}

	return nil
}

// payoutRepository archives settlements in SQLite when a history database is
// configured and in Redis otherwise
func (a *app) payoutRepository() (payoutRepo.Repository, error) {
	if a.cfg.HistoryDB == "" {
		repo, err := payoutRepo.NewRedis(&payoutRepo.Config{
			RedisClient: a.redis,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create payout repository: %w", err)
		}
		return repo, nil
	}

	store, err := payoutRepo.Open(a.cfg.HistoryDB)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	a.closers = append(a.closers, store.Close)
	return store, nil
}

// Close releases every connection the app opened
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("failed to close resource", "error", err)
		}
	}
	a.closers = nil
}
