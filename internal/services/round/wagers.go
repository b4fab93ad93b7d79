package round

import (
	"time"

	"github.com/KirkDiggler/dicepool/internal/dice"
	"github.com/KirkDiggler/dicepool/internal/models"
)

// WagerLedger tracks one wager per participant and the per-face buckets.
// The sum of bucket totals always equals the sum of wager amounts.
type WagerLedger struct {
	game *models.Game
}

// NewWagerLedger returns a wager ledger over game's wagers and buckets
func NewWagerLedger(game *models.Game) *WagerLedger {
	return &WagerLedger{
		game: game,
	}
}

// Place records a wager and adds it to the bucket of its guess
func (l *WagerLedger) Place(participantID string, guess int, amount uint64, placedAt time.Time) (*models.Wager, error) {
	if !dice.ValidGuess(guess) {
		return nil, ErrInvalidGuess
	}

	if amount == 0 {
		return nil, ErrInvalidAmount
	}

	if _, exists := l.game.Wagers[participantID]; exists {
		return nil, ErrAlreadyEntered
	}

	bucket := l.game.Buckets[guess-1]
	if bucket.Total+amount < bucket.Total {
		return nil, ErrInvalidAmount
	}

	wager := &models.Wager{
		ParticipantID: participantID,
		Amount:        amount,
		Guess:         guess,
		PlacedAt:      placedAt,
	}
	l.game.Wagers[participantID] = wager
	bucket.ParticipantIDs = append(bucket.ParticipantIDs, participantID)
	bucket.Total += amount

	return wager, nil
}

// Wager returns a participant's wager
func (l *WagerLedger) Wager(participantID string) (*models.Wager, bool) {
	wager, ok := l.game.Wagers[participantID]
	return wager, ok
}

// Bucket returns the bucket of a face
func (l *WagerLedger) Bucket(guess int) (*models.GuessBucket, error) {
	if !dice.ValidGuess(guess) {
		return nil, ErrInvalidGuess
	}
	return l.game.Buckets[guess-1], nil
}

// Total returns the sum of every bucket
func (l *WagerLedger) Total() uint64 {
	var total uint64
	for _, bucket := range l.game.Buckets {
		total += bucket.Total
	}
	return total
}

// Reset clears every wager and bucket
func (l *WagerLedger) Reset() {
	l.game.Wagers = make(map[string]*models.Wager)
	l.game.Buckets = make([]*models.GuessBucket, models.Faces)
	for i := range l.game.Buckets {
		l.game.Buckets[i] = &models.GuessBucket{
			Guess:          i + 1,
			ParticipantIDs: []string{},
		}
	}
}
