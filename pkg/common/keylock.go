package common

import "sync"

// KeyedMutex serializes read-modify-write cycles against a single storage key.
// Two concurrent writers racing the same Redis key would otherwise both read
// the old value and the second write would silently drop the first (lost
// update). Locking is in-process only; this service is the sole writer of its
// keys.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it on first use. Mutexes are
// never removed; the key space here is a handful of fixed storage keys.
func (k *KeyedMutex) Lock(key string) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
}

// Unlock releases the mutex for key. Panics if Lock was never called for key.
func (k *KeyedMutex) Unlock(key string) {
	k.mu.Lock()
	m := k.locks[key]
	k.mu.Unlock()

	m.Unlock()
}
