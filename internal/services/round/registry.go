package round

import (
	"github.com/KirkDiggler/dicepool/internal/models"
)

// EntryRegistry is the ordered, bounded list of participants entered in a round.
// It does not reject duplicates; the wager ledger does.
type EntryRegistry struct {
	game     *models.Game
	capacity int
}

// NewEntryRegistry returns a registry over game's entries. Capacities outside
// 1..DefaultMaxEntries fall back to DefaultMaxEntries.
func NewEntryRegistry(game *models.Game, capacity int) *EntryRegistry {
	if capacity <= 0 || capacity > DefaultMaxEntries {
		capacity = DefaultMaxEntries
	}
	return &EntryRegistry{
		game:     game,
		capacity: capacity,
	}
}

// Enter appends a participant
func (r *EntryRegistry) Enter(participantID string) error {
	if len(r.game.Entries) >= r.capacity {
		return ErrCapacityExceeded
	}
	r.game.Entries = append(r.game.Entries, participantID)
	return nil
}

// Entries returns a copy of the entry list in insertion order
func (r *EntryRegistry) Entries() []string {
	return append([]string{}, r.game.Entries...)
}

// Len returns the number of entries
func (r *EntryRegistry) Len() int {
	return len(r.game.Entries)
}

// Reset empties the list
func (r *EntryRegistry) Reset() {
	r.game.Entries = []string{}
}
