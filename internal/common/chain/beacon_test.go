package chain

import (
	"bytes"
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeacon_ReadsThirtyTwoBytes(t *testing.T) {
	raw := make([]byte, 32)
	raw[31] = 7
	beacon := NewBeacon(bytes.NewReader(raw))

	value, err := beacon.Entropy(context.Background())

	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(7), value)
}

func TestBeacon_ShortRead(t *testing.T) {
	beacon := NewBeacon(bytes.NewReader([]byte{1, 2, 3}))

	_, err := beacon.Entropy(context.Background())

	assert.Error(t, err)
}

func TestBeacon_DefaultReader(t *testing.T) {
	beacon := NewBeacon(nil)

	first, err := beacon.Entropy(context.Background())
	require.NoError(t, err)
	second, err := beacon.Entropy(context.Background())
	require.NoError(t, err)

	assert.False(t, first.Eq(second))
}
