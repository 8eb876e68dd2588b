package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_BurstThenRefill(t *testing.T) {
	now := time.Unix(1700000000, 0)
	l := NewRateLimiter(1, 2)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"), "burst exhausted")

	now = now.Add(time.Second)
	assert.True(t, l.Allow("10.0.0.1"), "one token refilled")
	assert.False(t, l.Allow("10.0.0.1"))
}

func TestRateLimiter_ClientsIsolated(t *testing.T) {
	now := time.Unix(1700000000, 0)
	l := NewRateLimiter(1, 1)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"), "separate bucket per client")
}

func TestRateLimiter_DisabledWhenRPSZero(t *testing.T) {
	l := NewRateLimiter(0, 1)
	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow("10.0.0.1"))
	}
}

func TestRateLimiter_UpdateAppliesToExistingBuckets(t *testing.T) {
	now := time.Unix(1700000000, 0)
	l := NewRateLimiter(1, 1)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))

	// Ten tokens per second now refill the same bucket.
	l.Update(10, 5)
	now = now.Add(500 * time.Millisecond)
	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow("10.0.0.1"))
	}
	assert.False(t, l.Allow("10.0.0.1"))
}

func TestRateLimiter_RefillCapsAtBurst(t *testing.T) {
	now := time.Unix(1700000000, 0)
	l := NewRateLimiter(10, 2)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("10.0.0.1"))

	// A long idle period must not accumulate more than burst tokens.
	now = now.Add(time.Hour)
	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
}
