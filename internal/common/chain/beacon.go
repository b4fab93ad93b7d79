package chain

import (
	"context"
	crand "crypto/rand"
	"fmt"
	"io"

	"github.com/holiman/uint256"
)

// Beacon is an EntropySource backed by the operating system's CSPRNG
type Beacon struct {
	reader io.Reader
}

// NewBeacon creates a Beacon reading from crypto/rand. A nil reader selects
// crypto/rand; tests may pass a deterministic reader.
func NewBeacon(reader io.Reader) *Beacon {
	if reader == nil {
		reader = crand.Reader
	}
	return &Beacon{reader: reader}
}

// Entropy returns 32 random bytes as an unsigned 256-bit integer
func (b *Beacon) Entropy(ctx context.Context) (*uint256.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf [32]byte
	if _, err := io.ReadFull(b.reader, buf[:]); err != nil {
		return nil, fmt.Errorf("read entropy: %w", err)
	}

	return new(uint256.Int).SetBytes32(buf[:]), nil
}
