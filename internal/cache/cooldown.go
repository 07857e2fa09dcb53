package cache

import (
	"math"
	"sync"
	"time"
)

// CooldownTracker is a process-lifetime rate limiter keyed by user. It is
// deliberately not persisted: cooldowns reset on restart.
type CooldownTracker struct {
	mu     sync.Mutex
	window time.Duration
	last   map[string]time.Time
	now    func() time.Time
}

// NewCooldownTracker creates a tracker with the given cooldown window.
func NewCooldownTracker(window time.Duration) *CooldownTracker {
	return &CooldownTracker{
		window: window,
		last:   make(map[string]time.Time),
		now:    time.Now,
	}
}

// Try records an attempt for the key. Inside the window it returns false
// and the remaining wait in whole seconds, rounded up.
func (c *CooldownTracker) Try(key string) (bool, int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if at, ok := c.last[key]; ok {
		elapsed := now.Sub(at)
		if elapsed < c.window {
			remaining := int(math.Ceil((c.window - elapsed).Seconds()))
			return false, remaining
		}
	}
	c.last[key] = now
	return true, 0
}

// Prune drops expired cooldown records; keeps the map from growing
// unbounded over the process lifetime.
func (c *CooldownTracker) Prune() {
	c.mu.Lock()
	defer c.mu.Unlock()
	cutoff := c.now().Add(-c.window)
	for key, at := range c.last {
		if at.Before(cutoff) {
			delete(c.last, key)
		}
	}
}
