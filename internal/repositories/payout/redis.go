package payout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/KirkDiggler/dicepool/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	settlementKeyPrefix       = "dice:settlement:"
	settlementsIndexKey       = "dice:settlements"
	participantPayoutsPrefix  = "dice:participant_payouts:"
	participantStatsKeyPrefix = "dice:participant_stats:"
)

// Config holds configuration for the Redis settlement archive
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed settlement archive
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

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// AddSettlement archives a settlement and updates winner stats in one MULTI block
func (r *redisRepository) AddSettlement(ctx context.Context, input *AddSettlementInput) error {
	if err := validateSettlement(input); err != nil {
		return err
	}

	settlement := input.Settlement

	// Marshal the settlement to JSON
	settlementJSON, err := json.Marshal(settlement)
	if err != nil {
		return fmt.Errorf("failed to marshal settlement: %w", err)
	}

	settlementKey := fmt.Sprintf("%s%s", settlementKeyPrefix, settlement.RoundID)
	score := float64(settlement.SettledAt.UnixNano())

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, settlementKey).Result()
		if err != nil {
			return fmt.Errorf("failed to check settlement: %w", err)
		}
		if exists > 0 {
			return ErrSettlementExists
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			// Store the settlement
			pipe.Set(ctx, settlementKey, settlementJSON, 0) // No expiration

			// Add to the settlements sorted set
			pipe.ZAdd(ctx, settlementsIndexKey, redis.Z{
				Score:  score,
				Member: settlement.RoundID,
			})

			// Index and credit each paid winner
			for _, p := range settlement.Payouts {
				if p.Amount == 0 {
					continue
				}

				payoutsKey := fmt.Sprintf("%s%s", participantPayoutsPrefix, p.ParticipantID)
				pipe.ZAdd(ctx, payoutsKey, redis.Z{
					Score:  score,
					Member: settlement.RoundID,
				})

				statsKey := fmt.Sprintf("%s%s", participantStatsKeyPrefix, p.ParticipantID)
				pipe.HIncrBy(ctx, statsKey, "rounds_won", 1)
				pipe.HIncrBy(ctx, statsKey, "total_won", int64(p.Amount))
			}
			return nil
		})
		return err
	}, settlementKey)

	if err == redis.TxFailedErr {
		return ErrSettlementExists
	}
	if err != nil {
		if errors.Is(err, ErrSettlementExists) {
			return err
		}
		return fmt.Errorf("failed to add settlement: %w", err)
	}

	return nil
}

// GetSettlement retrieves the settlement of a round from Redis
func (r *redisRepository) GetSettlement(ctx context.Context, input *GetSettlementInput) (*models.Settlement, error) {
	if input == nil || input.RoundID == "" {
		return nil, errors.New("input and round ID cannot be empty")
	}

	settlementKey := fmt.Sprintf("%s%s", settlementKeyPrefix, input.RoundID)
	settlementJSON, err := r.client.Get(ctx, settlementKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSettlementNotFound
		}
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}

	var settlement models.Settlement
	if err := json.Unmarshal([]byte(settlementJSON), &settlement); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settlement: %w", err)
	}

	return &settlement, nil
}

// ListSettlements retrieves archived settlements from Redis, newest first
func (r *redisRepository) ListSettlements(ctx context.Context, input *ListSettlementsInput) (*ListSettlementsOutput, error) {
	stop := int64(-1)
	if input != nil && input.Limit > 0 {
		stop = input.Limit - 1
	}

	roundIDs, err := r.client.ZRevRange(ctx, settlementsIndexKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement IDs: %w", err)
	}

	// If there are no settlements, return an empty slice
	if len(roundIDs) == 0 {
		return &ListSettlementsOutput{
			Settlements: []*models.Settlement{},
		}, nil
	}

	// Get all settlements using a pipeline
	pipe := r.client.Pipeline()
	settlementCommands := make([]*redis.StringCmd, len(roundIDs))
	for i, roundID := range roundIDs {
		settlementCommands[i] = pipe.Get(ctx, fmt.Sprintf("%s%s", settlementKeyPrefix, roundID))
	}

	// Missing keys surface per command below
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get settlements: %w", err)
	}

	settlements := make([]*models.Settlement, 0, len(roundIDs))
	for i, cmd := range settlementCommands {
		settlementJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get settlement %s: %w", roundIDs[i], err)
		}

		var settlement models.Settlement
		if err := json.Unmarshal([]byte(settlementJSON), &settlement); err != nil {
			return nil, fmt.Errorf("failed to unmarshal settlement %s: %w", roundIDs[i], err)
		}

		settlements = append(settlements, &settlement)
	}

	return &ListSettlementsOutput{
		Settlements: settlements,
	}, nil
}

// GetParticipantStats retrieves a participant's aggregate winnings from Redis
func (r *redisRepository) GetParticipantStats(ctx context.Context, input *GetParticipantStatsInput) (*models.ParticipantStats, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, errors.New("input and participant ID cannot be empty")
	}

	statsKey := fmt.Sprintf("%s%s", participantStatsKeyPrefix, input.ParticipantID)
	fields, err := r.client.HGetAll(ctx, statsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get participant stats: %w", err)
	}

	stats := &models.ParticipantStats{
		ParticipantID: input.ParticipantID,
	}

	if v, ok := fields["rounds_won"]; ok {
		if stats.RoundsWon, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("failed to parse rounds won: %w", err)
		}
	}

	if v, ok := fields["total_won"]; ok {
		if stats.TotalWon, err = strconv.ParseUint(v, 10, 64); err != nil {
			return nil, fmt.Errorf("failed to parse total won: %w", err)
		}
	}

	return stats, nil
}
