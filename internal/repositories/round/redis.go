package round

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/dicepool/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	gameKeyPrefix  = "dice:game:"
	roundKeyPrefix = "dice:round:"
	roundsIndexKey = "dice:rounds"

	defaultTable = "default"
)

var (
	// ErrGameNotFound is returned when no game has been saved yet
	ErrGameNotFound = errors.New("game not found")

	// ErrRoundNotFound is returned when a round is not in the archive
	ErrRoundNotFound = errors.New("round not found")

	// ErrVersionConflict is returned when the stored game changed since it was loaded
	ErrVersionConflict = errors.New("game was modified concurrently")
)

// Config holds configuration for the Redis round repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Table namespaces the live game so several tables can share a Redis
	Table string
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	table  string
}

// NewRedis creates a new Redis-backed round repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	table := cfg.Table
	if table == "" {
		table = defaultTable
	}

	return &redisRepository{
		client: cfg.RedisClient,
		table:  table,
	}, nil
}

func (r *redisRepository) gameKey() string {
	return fmt.Sprintf("%s%s", gameKeyPrefix, r.table)
}

func (r *redisRepository) roundsKey() string {
	return fmt.Sprintf("%s:%s", roundsIndexKey, r.table)
}

func decodeGame(raw string) (*models.Game, error) {
	var game models.Game
	if err := json.Unmarshal([]byte(raw), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}
	return &game, nil
}

// GetGame retrieves the live game state from Redis
func (r *redisRepository) GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error) {
	gameJSON, err := r.client.Get(ctx, r.gameKey()).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return decodeGame(gameJSON)
}

// SaveGame persists the game and archives its round. The stored version is
// checked under WATCH so two writers cannot both save from the same version.
func (r *redisRepository) SaveGame(ctx context.Context, input *SaveGameInput) error {
	if input == nil || input.Game == nil {
		return errors.New("input and game cannot be nil")
	}

	gameKey := r.gameKey()
	next := *input.Game
	next.Version = input.ExpectedVersion + 1

	gameJSON, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	var roundJSON []byte
	if next.Round != nil {
		roundJSON, err = json.Marshal(next.Round)
		if err != nil {
			return fmt.Errorf("failed to marshal round: %w", err)
		}
	}

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		var stored int64
		raw, err := tx.Get(ctx, gameKey).Result()
		switch {
		case err == redis.Nil:
			stored = 0
		case err != nil:
			return fmt.Errorf("failed to get game: %w", err)
		default:
			current, err := decodeGame(raw)
			if err != nil {
				return err
			}
			stored = current.Version
		}

		if stored != input.ExpectedVersion {
			return ErrVersionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, gameKey, gameJSON, 0) // No expiration

			// Keep every round's latest metadata for history queries
			if next.Round != nil {
				roundKey := fmt.Sprintf("%s%s", roundKeyPrefix, next.Round.ID)
				pipe.Set(ctx, roundKey, roundJSON, 0)
				pipe.ZAdd(ctx, r.roundsKey(), redis.Z{
					Score:  float64(next.Round.OpenedAt.UnixNano()),
					Member: next.Round.ID,
				})
			}
			return nil
		})
		return err
	}, gameKey)

	if err == redis.TxFailedErr {
		return ErrVersionConflict
	}
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return err
		}
		return fmt.Errorf("failed to save game: %w", err)
	}

	input.Game.Version = next.Version
	return nil
}

// GetRound retrieves an archived round by ID from Redis
func (r *redisRepository) GetRound(ctx context.Context, input *GetRoundInput) (*models.Round, error) {
	if input == nil || input.RoundID == "" {
		return nil, errors.New("input and round ID cannot be empty")
	}

	roundKey := fmt.Sprintf("%s%s", roundKeyPrefix, input.RoundID)
	roundJSON, err := r.client.Get(ctx, roundKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to get round: %w", err)
	}

	var round models.Round
	if err := json.Unmarshal([]byte(roundJSON), &round); err != nil {
		return nil, fmt.Errorf("failed to unmarshal round: %w", err)
	}

	return &round, nil
}

// ListRounds retrieves archived rounds from Redis, newest first
func (r *redisRepository) ListRounds(ctx context.Context, input *ListRoundsInput) (*ListRoundsOutput, error) {
	stop := int64(-1)
	if input != nil && input.Limit > 0 {
		stop = input.Limit - 1
	}

	roundIDs, err := r.client.ZRevRange(ctx, r.roundsKey(), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list round IDs: %w", err)
	}

	if len(roundIDs) == 0 {
		return &ListRoundsOutput{
			Rounds: []*models.Round{},
		}, nil
	}

	// Fetch all rounds in one round trip
	pipe := r.client.Pipeline()
	roundCommands := make([]*redis.StringCmd, len(roundIDs))
	for i, roundID := range roundIDs {
		roundCommands[i] = pipe.Get(ctx, fmt.Sprintf("%s%s", roundKeyPrefix, roundID))
	}

	// redis.Nil from a missing key surfaces per command below
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get rounds: %w", err)
	}

	rounds := make([]*models.Round, 0, len(roundIDs))
	for i, cmd := range roundCommands {
		roundJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get round %s: %w", roundIDs[i], err)
		}

		var round models.Round
		if err := json.Unmarshal([]byte(roundJSON), &round); err != nil {
			return nil, fmt.Errorf("failed to unmarshal round %s: %w", roundIDs[i], err)
		}

		rounds = append(rounds, &round)
	}

	return &ListRoundsOutput{
		Rounds: rounds,
	}, nil
}
