package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultClock_Now(t *testing.T) {
	c := &DefaultClock{}

	now := c.Now()

	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%int(Precision))
	assert.WithinDuration(t, time.Now(), now, time.Second)
}
