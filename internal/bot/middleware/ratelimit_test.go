package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	defer rl.Close()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("user1"), "request %d should pass", i+1)
	}
	assert.False(t, rl.Allow("user1"))
}

func TestRateLimiterIsPerUser(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Close()

	assert.True(t, rl.Allow("user1"))
	assert.False(t, rl.Allow("user1"))
	assert.True(t, rl.Allow("user2"))
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)
	defer rl.Close()

	assert.True(t, rl.Allow("user1"))
	assert.False(t, rl.Allow("user1"))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, rl.Allow("user1"))
}
