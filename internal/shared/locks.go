package shared

import (
	"fmt"
	"sync"
)

// TransitionLockKey builds the advisory lock key for a document state transition.
func TransitionLockKey(employeeID, payPeriod string) string {
	return fmt.Sprintf("timecard:%s:%s:lock", employeeID, payPeriod)
}

// KeyedMutex serializes operations per string key. Validation and unvalidation
// acquire the transition lock for the duration of a rename-plus-ledger step so
// at most one transition per (employee, pay period) is in flight.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex returns an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedLock)}
}

// Lock acquires the mutex for key, blocking until it is available.
func (k *KeyedMutex) Lock(key string) {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()
	l.mu.Lock()
}

// Unlock releases the mutex for key and drops it once nothing waits on it.
func (k *KeyedMutex) Unlock(key string) {
	k.mu.Lock()
	l, ok := k.locks[key]
	if ok {
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
	}
	k.mu.Unlock()
	if ok {
		l.mu.Unlock()
	}
}
