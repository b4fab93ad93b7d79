package dice

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestValidGuess(t *testing.T) {
	for n := 1; n <= 6; n++ {
		assert.True(t, ValidGuess(n), "face %d", n)
	}
	assert.False(t, ValidGuess(0))
	assert.False(t, ValidGuess(7))
	assert.False(t, ValidGuess(-1))
}

func TestWinningFace(t *testing.T) {
	tests := []struct {
		name     string
		entropy  *uint256.Int
		revealed *uint256.Int
		want     int
	}{
		{name: "zero product", entropy: uint256.NewInt(0), revealed: uint256.NewInt(99), want: 1},
		{name: "small product", entropy: uint256.NewInt(2), revealed: uint256.NewInt(7), want: 3},
		{name: "remainder five", entropy: uint256.NewInt(1), revealed: uint256.NewInt(11), want: 6},
		// (2^256-1)^2 mod 6: 2^256-1 is 3 mod 6, and 9 mod 6 is 3
		{name: "no wraparound", entropy: new(uint256.Int).SetAllOne(), revealed: new(uint256.Int).SetAllOne(), want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WinningFace(tt.entropy, tt.revealed)
			assert.Equal(t, tt.want, got)
			assert.True(t, ValidGuess(got))
		})
	}
}
