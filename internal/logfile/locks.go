package logfile

import (
	"path/filepath"
	"sync"
)

// PathLocks hands out one mutex per resolved log path so that engines created
// for separate requests append to a shared file one entry at a time.
// Entries are removed once no holder or waiter remains.
type PathLocks struct {
	mu    sync.Mutex
	locks map[string]*pathLock
}

type pathLock struct {
	mu   sync.Mutex
	refs int
}

// NewPathLocks creates an empty registry.
func NewPathLocks() *PathLocks {
	return &PathLocks{locks: make(map[string]*pathLock)}
}

// Lock blocks until the caller holds the lock for path and returns the
// function that releases it.
func (p *PathLocks) Lock(path string) (unlock func()) {
	key := lockKey(path)

	p.mu.Lock()
	l, ok := p.locks[key]
	if !ok {
		l = &pathLock{}
		p.locks[key] = l
	}
	l.refs++
	p.mu.Unlock()

	l.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Unlock()
			p.mu.Lock()
			l.refs--
			if l.refs == 0 {
				delete(p.locks, key)
			}
			p.mu.Unlock()
		})
	}
}

// Len returns the number of paths currently locked or awaited.
func (p *PathLocks) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.locks)
}

func lockKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
