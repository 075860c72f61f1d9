package chat

import "sync"

// sessionLocks serializes turns per session id: a session's
// read-modify-persist cycle is a critical section, while distinct sessions
// proceed with unbounded parallelism. Entries are reference counted and
// dropped when the last holder releases, so the map tracks in-flight
// sessions rather than every session ever seen.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// acquire blocks until the session's critical section is free.
func (s *sessionLocks) acquire(sessionID string) *sessionLock {
	s.mu.Lock()
	if s.locks == nil {
		s.locks = make(map[string]*sessionLock)
	}
	l, exists := s.locks[sessionID]
	if !exists {
		l = &sessionLock{}
		s.locks[sessionID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return l
}

// release leaves the critical section and evicts the entry once no other
// turn holds or awaits it.
func (s *sessionLocks) release(sessionID string, l *sessionLock) {
	l.mu.Unlock()

	s.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, sessionID)
	}
	s.mu.Unlock()
}

// inFlight reports how many sessions currently hold or await their lock.
func (s *sessionLocks) inFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}
