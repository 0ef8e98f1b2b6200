// Package keylock serializes work per key (one mutex per user id).
package keylock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// Locker hands out per-key mutexes and forgets keys nobody holds.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*entry
}

func New() *Locker {
	return &Locker{locks: make(map[string]*entry)}
}

// Lock blocks until key is free and returns the matching unlock func.
func (l *Locker) Lock(key string) func() {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

// LockPair locks two keys in a fixed order so concurrent callers cannot deadlock.
func (l *Locker) LockPair(a, b string) func() {
	if a == b {
		return l.Lock(a)
	}
	if a > b {
		a, b = b, a
	}
	ua := l.Lock(a)
	ub := l.Lock(b)
	return func() {
		ub()
		ua()
	}
}

// Len reports how many keys are currently tracked.
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
