package chain

import (
	"context"
	"errors"
	"time"

	"github.com/KirkDiggler/dicepool/internal/common/clock"
)

// BlockClockConfig configures a height source derived from wall time
type BlockClockConfig struct {
	// Genesis is the time of height zero
	Genesis time.Time

	// Interval is the duration of one height step
	Interval time.Duration

	// Clock defaults to the system clock
	Clock clock.Clock
}

// BlockClock derives ledger heights from elapsed time since a genesis instant.
// Heights before genesis are reported as zero.
type BlockClock struct {
	genesis  time.Time
	interval time.Duration
	clock    clock.Clock
}

// NewBlockClock creates a BlockClock
func NewBlockClock(cfg *BlockClockConfig) (*BlockClock, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Interval <= 0 {
		return nil, errors.New("interval must be positive")
	}

	c := cfg.Clock
	if c == nil {
		c = &clock.DefaultClock{}
	}

	return &BlockClock{
		genesis:  cfg.Genesis,
		interval: cfg.Interval,
		clock:    c,
	}, nil
}

// CurrentHeight returns the number of whole intervals elapsed since genesis
func (b *BlockClock) CurrentHeight(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	elapsed := b.clock.Now().Sub(b.genesis)
	if elapsed <= 0 {
		return 0, nil
	}

	return uint64(elapsed / b.interval), nil
}
