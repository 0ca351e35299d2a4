package usecase

import "sync"

// sessionLocks hands out one mutex per session id. An entry lives only while
// someone holds or waits for it.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{
		locks: make(map[string]*sessionLock),
	}
}

// lock blocks until sessionID is free and returns the func that releases it.
func (that *sessionLocks) lock(sessionID string) func() {
	that.mu.Lock()
	entry, ok := that.locks[sessionID]
	if !ok {
		entry = &sessionLock{}
		that.locks[sessionID] = entry
	}
	entry.refs++
	that.mu.Unlock()

	entry.Lock()

	return func() {
		entry.Unlock()

		that.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(that.locks, sessionID)
		}
		that.mu.Unlock()
	}
}

func (that *sessionLocks) len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.locks)
}
