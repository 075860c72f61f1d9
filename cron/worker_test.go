package cron

import (
	"sync"
	"testing"
	"time"
)

type countingSweeper struct {
	mu     sync.Mutex
	sweeps int
}

func (s *countingSweeper) SweepExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweeps++
	return 1
}

func (s *countingSweeper) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweeps
}

func TestInitHoldSweeper_RunsPeriodically(t *testing.T) {
	sweeper := &countingSweeper{}
	InitHoldSweeper(sweeper, 10*time.Millisecond)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if sweeper.count() >= 2 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("sweeper never ticked")
}

func TestInitHoldSweeper_NilSweeper(t *testing.T) {
	// Must not panic or spin anything up.
	InitHoldSweeper(nil, time.Millisecond)
}
