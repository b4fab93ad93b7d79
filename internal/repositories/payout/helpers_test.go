package payout

import (
	"testing"
	"time"

	"github.com/KirkDiggler/dicepool/internal/models"
	"github.com/stretchr/testify/assert"
)

// testSettlement builds the 100/200/300 round where face 3 wins.
func testSettlement(roundID string, settledAt time.Time) *models.Settlement {
	return &models.Settlement{
		RoundID:       roundID,
		AssetRef:      "chip",
		WinningNumber: 3,
		Pot:           600,
		WinnerPot:     540,
		Fee:           60,
		Payouts: []*models.Payout{
			{ParticipantID: "alice", Guess: 3, Wagered: 100, Amount: 180},
			{ParticipantID: "bob", Guess: 3, Wagered: 200, Amount: 360},
			{ParticipantID: "dust", Guess: 3, Wagered: 1, Amount: 0},
		},
		SettledAt: settledAt,
	}
}

func assertSettlementEqual(t *testing.T, want, got *models.Settlement) {
	t.Helper()

	assert.Equal(t, want.RoundID, got.RoundID)
	assert.Equal(t, want.AssetRef, got.AssetRef)
	assert.Equal(t, want.WinningNumber, got.WinningNumber)
	assert.Equal(t, want.Pot, got.Pot)
	assert.Equal(t, want.WinnerPot, got.WinnerPot)
	assert.Equal(t, want.Fee, got.Fee)
	assert.True(t, want.SettledAt.Equal(got.SettledAt), "settled at %v, want %v", got.SettledAt, want.SettledAt)
	assert.Equal(t, want.Payouts, got.Payouts)
}
