package ledger

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for per-asset balance hashes, one field per holder
	balanceKeyPrefix = "ledger:balance:"
)

// Config holds configuration for the Redis ledger
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// Redis keeps balances in Redis hashes and commits transactions with
// WATCH/MULTI so concurrent writers cannot interleave.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed ledger
func NewRedis(cfg *Config) (*Redis, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to connect to Redis")
	}

	return &Redis{
		client: cfg.RedisClient,
	}, nil
}

func balanceKey(asset string) string {
	return fmt.Sprintf("%s%s", balanceKeyPrefix, asset)
}

func parseBalance(value string) (uint64, error) {
	b, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "corrupt balance %q", value)
	}
	return b, nil
}

func (r *Redis) load(ctx context.Context, acc account) (uint64, error) {
	value, err := r.client.HGet(ctx, balanceKey(acc.asset), acc.holder).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "failed to read balance")
	}
	return parseBalance(value)
}

// BalanceOf returns the committed balance of a holder
func (r *Redis) BalanceOf(ctx context.Context, input *BalanceOfInput) (uint64, error) {
	if input == nil || input.Asset == "" || input.Holder == "" {
		return 0, ErrInvalidAccount
	}
	return r.load(ctx, account{asset: input.Asset, holder: input.Holder})
}

// Begin opens a transaction. Reads go straight to Redis; writes are held
// locally until Commit.
func (r *Redis) Begin(ctx context.Context) (Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &redisTx{
		staging: newStaging(r.load),
		client:  r.client,
	}, nil
}

// Mint credits amount to a holder
func (r *Redis) Mint(ctx context.Context, input *MintInput) error {
	if input == nil || input.Asset == "" || input.Holder == "" {
		return ErrInvalidAccount
	}
	if input.Amount == 0 {
		return ErrInvalidAmount
	}

	key := balanceKey(input.Asset)
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		current := uint64(0)
		value, err := tx.HGet(ctx, key, input.Holder).Result()
		if err != nil && err != redis.Nil {
			return errors.Wrap(err, "failed to read balance")
		}
		if err == nil {
			if current, err = parseBalance(value); err != nil {
				return err
			}
		}

		if current > math.MaxUint64-input.Amount {
			return ErrOverflow
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, input.Holder, strconv.FormatUint(current+input.Amount, 10))
			return nil
		})
		return err
	}, key)
	if err == redis.TxFailedErr {
		return ErrConflict
	}
	return err
}

type redisTx struct {
	*staging
	client *redis.Client
}

func (t *redisTx) BalanceOf(ctx context.Context, input *BalanceOfInput) (uint64, error) {
	return t.balanceOf(ctx, input)
}

func (t *redisTx) Transfer(ctx context.Context, input *TransferInput) error {
	return t.transfer(ctx, input)
}

// Commit watches every hash the transaction read from, confirms the balances
// are unchanged and writes the staged balances in a single MULTI block.
func (t *redisTx) Commit(ctx context.Context) error {
	if t.done {
		return ErrTxDone
	}
	t.done = true

	writes := t.writes()
	if len(writes) == 0 {
		return nil
	}

	keys := make([]string, 0)
	seenKeys := make(map[string]bool)
	for acc := range t.read {
		key := balanceKey(acc.asset)
		if !seenKeys[key] {
			seenKeys[key] = true
			keys = append(keys, key)
		}
	}

	err := t.client.Watch(ctx, func(tx *redis.Tx) error {
		for acc, seen := range t.read {
			current := uint64(0)
			value, err := tx.HGet(ctx, balanceKey(acc.asset), acc.holder).Result()
			if err != nil && err != redis.Nil {
				return errors.Wrap(err, "failed to read balance")
			}
			if err == nil {
				if current, err = parseBalance(value); err != nil {
					return err
				}
			}
			if current != seen {
				return ErrConflict
			}
		}

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for acc, balance := range writes {
				pipe.HSet(ctx, balanceKey(acc.asset), acc.holder, strconv.FormatUint(balance, 10))
			}
			return nil
		})
		return err
	}, keys...)

	if err == redis.TxFailedErr {
		return ErrConflict
	}
	if err != nil && !errors.Is(err, ErrConflict) {
		return errors.Wrap(err, "failed to commit transfers")
	}
	return err
}

func (t *redisTx) Rollback(ctx context.Context) error {
	t.done = true
	return nil
}
