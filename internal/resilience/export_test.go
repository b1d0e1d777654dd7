package resilience

import "time"

// SetNowForTest fixes the breaker clock so tests can step past the cooldown.
func SetNowForTest(b *Breaker, at time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.now = func() time.Time { return at }
}
