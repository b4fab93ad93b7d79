package models

import (
	"time"
)

// RoundStatus represents where the live round is in its lifecycle
type RoundStatus string

const (
	// RoundStatusClosed indicates no round is accepting wagers
	RoundStatusClosed RoundStatus = "closed"

	// RoundStatusOpen indicates a round is accepting wagers
	RoundStatusOpen RoundStatus = "open"

	// RoundStatusSettling indicates a round is being paid out
	RoundStatusSettling RoundStatus = "settling"
)

// Faces is the number of sides on the die participants guess against
const Faces = 6

// Round is the metadata of the live (or most recently settled) round
type Round struct {
	// ID is the unique identifier for the round
	ID string

	// AssetRef names the ledger asset wagers are placed in
	AssetRef string

	// OpenHeight is the first ledger height at which wagers are accepted
	OpenHeight uint64

	// CloseHeight is the ledger height at which betting closes and settlement may run
	CloseHeight uint64

	// Commitment is the hex encoded keccak256 digest of the operator's secret
	Commitment string

	// Status is the current lifecycle state of the round
	Status RoundStatus

	// Completed is set once the round has been settled
	Completed bool

	// OpenedAt is when the round was opened
	OpenedAt time.Time

	// UpdatedAt is when the round was last changed
	UpdatedAt time.Time
}

// IsOpen reports whether the round is accepting wagers
func (r *Round) IsOpen() bool {
	return r != nil && r.Status == RoundStatusOpen
}

// Game is the complete round-scoped state. It is persisted as a single
// document so every operation replaces it as one unit.
type Game struct {
	// Version increases by one on every successful save
	Version int64

	// Round is nil until the first round is opened
	Round *Round

	// Entries is the ordered list of participants who entered this round
	Entries []string

	// Wagers holds the single active wager of each participant
	Wagers map[string]*Wager

	// Buckets holds one bucket per face, index 0 is face 1
	Buckets []*GuessBucket
}

// NewGame returns an empty game with no round and empty buckets
func NewGame() *Game {
	g := &Game{}
	g.ResetRoundState()
	return g
}

// ResetRoundState clears entries, wagers and buckets
func (g *Game) ResetRoundState() {
	g.Entries = []string{}
	g.Wagers = make(map[string]*Wager)
	g.Buckets = make([]*GuessBucket, Faces)
	for i := range g.Buckets {
		g.Buckets[i] = &GuessBucket{
			Guess:          i + 1,
			ParticipantIDs: []string{},
		}
	}
}

// Status returns the round status, closed when no round was ever opened
func (g *Game) Status() RoundStatus {
	if g.Round == nil {
		return RoundStatusClosed
	}
	return g.Round.Status
}

// Clone returns a deep copy so a failed operation can fall back to the original
func (g *Game) Clone() *Game {
	c := &Game{
		Version: g.Version,
		Entries: append([]string{}, g.Entries...),
		Wagers:  make(map[string]*Wager, len(g.Wagers)),
		Buckets: make([]*GuessBucket, len(g.Buckets)),
	}
	if g.Round != nil {
		r := *g.Round
		c.Round = &r
	}
	for id, w := range g.Wagers {
		wc := *w
		c.Wagers[id] = &wc
	}
	for i, b := range g.Buckets {
		c.Buckets[i] = &GuessBucket{
			Guess:          b.Guess,
			ParticipantIDs: append([]string{}, b.ParticipantIDs...),
			Total:          b.Total,
		}
	}
	return c
}
