package commands

import (
	"sync"
	"time"

	"freightline/internal/core/domain/model/kernel"
)

// acceptCooldown tracks bids whose acceptance recently failed on the payment
// side. Re-acceptance of such a bid is rejected until the cooldown passes, so
// a flapping gateway does not get hammered by immediate retries.
type acceptCooldown struct {
	mu       sync.Mutex
	until    map[kernel.UUID]time.Time
	duration time.Duration
}

func newAcceptCooldown(duration time.Duration) *acceptCooldown {
	return &acceptCooldown{
		until:    make(map[kernel.UUID]time.Time),
		duration: duration,
	}
}

// active reports whether the bid is still cooling down. Expired records are
// pruned on sight.
func (c *acceptCooldown) active(bidID kernel.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	deadline, ok := c.until[bidID]
	if !ok {
		return false
	}
	if time.Now().After(deadline) {
		delete(c.until, bidID)
		return false
	}
	return true
}

// set starts the cooldown for the bid.
func (c *acceptCooldown) set(bidID kernel.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.until[bidID] = time.Now().Add(c.duration)
}
