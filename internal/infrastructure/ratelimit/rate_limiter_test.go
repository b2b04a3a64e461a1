package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestAllowConsumesBurstThenBlocks(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(map[string]Policy{"ping": {Burst: 2, Every: time.Minute}})
	rl.now = fixedClock(now)

	ok, _ := rl.Allow("u1", "ping")
	assert.True(t, ok)
	ok, _ = rl.Allow("u1", "ping")
	assert.True(t, ok)

	ok, wait := rl.Allow("u1", "ping")
	assert.False(t, ok)
	assert.InDelta(t, float64(time.Minute), float64(wait), float64(time.Millisecond))

	rl.now = fixedClock(now.Add(61 * time.Second))
	ok, _ = rl.Allow("u1", "ping")
	assert.True(t, ok)
}

func TestSubjectsAndActionsAreIndependent(t *testing.T) {
	rl := NewRateLimiter(map[string]Policy{
		"ping": {Burst: 1, Every: time.Hour},
		"pong": {Burst: 1, Every: time.Hour},
	})
	rl.now = fixedClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	ok, _ := rl.Allow("u1", "ping")
	assert.True(t, ok)
	ok, _ = rl.Allow("u2", "ping")
	assert.True(t, ok)
	ok, _ = rl.Allow("u1", "pong")
	assert.True(t, ok)
	ok, _ = rl.Allow("u1", "ping")
	assert.False(t, ok)
}

func TestCleanupDropsIdleBuckets(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(nil)
	rl.now = fixedClock(now)
	rl.Allow("u1", ActionSendMessage)

	rl.now = fixedClock(now.Add(2 * time.Hour))
	rl.Cleanup(time.Hour)

	assert.Empty(t, rl.buckets)
}
