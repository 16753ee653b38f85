// Package keyedmutex provides per-key mutual exclusion for the race-critical
// sections of bid acceptance: the per-driver capacity check and the per-order
// cancellation path both serialize on the owning entity's identifier.
package keyedmutex

import "sync"

// KeyedMutex hands out one mutex per string key. Locks for distinct keys are
// independent; operations on the same key serialize. Mutexes are never evicted,
// which is acceptable for the bounded key space of active drivers and orders.
type KeyedMutex struct {
	mutexes sync.Map
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{}
}

// Lock acquires the mutex for the given key, creating it on first use.
// The returned function releases the lock.
func (m *KeyedMutex) Lock(key string) (unlock func()) {
	value, _ := m.mutexes.LoadOrStore(key, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
