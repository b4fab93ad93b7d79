// Package uuid issues round identifiers.
package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/dicepool/internal/common/uuid UUID

// UUID generates identifiers for rounds
type UUID interface {
	NewUUID() string
}

// DefaultUUID issues time-ordered (v7) UUIDs so round IDs sort by creation
type DefaultUUID struct{}

func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a new UUID, falling back to a random v4 if the v7 clock read fails
func (d *DefaultUUID) NewUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
