package scheduler

import (
	"sync/atomic"
	"testing"
	"time"
)

type fakeSweeper struct {
	sweeps int32
}

func (f *fakeSweeper) Sweep() int {
	atomic.AddInt32(&f.sweeps, 1)
	return 1
}

func (f *fakeSweeper) Len() int { return 0 }

func TestRunOnce(t *testing.T) {
	f := &fakeSweeper{}
	s := New(f, time.Minute)

	s.RunOnce()
	if n := atomic.LoadInt32(&f.sweeps); n != 1 {
		t.Fatalf("expected 1 sweep, got %d", n)
	}
}

func TestStartRunsPeriodically(t *testing.T) {
	f := &fakeSweeper{}
	s := New(f, time.Second)

	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Stop()

	deadline := time.Now().Add(5 * time.Second)
	for atomic.LoadInt32(&f.sweeps) == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("sweep job never ran")
		}
		time.Sleep(50 * time.Millisecond)
	}
}
