package session

import (
	"errors"
	"testing"
	"time"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestStore(maxSessions int, maxAge time.Duration) (*MemoryStore, *clock) {
	c := &clock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	s := NewMemoryStore(nil, nil, maxSessions, maxAge)
	s.now = c.now
	return s, c
}

func TestCreateAndGet(t *testing.T) {
	s, _ := newTestStore(10, time.Hour)

	sess := s.Create()
	if sess.ID == "" || sess.Cities == nil || sess.Weather == nil {
		t.Fatalf("session not initialised: %+v", sess)
	}

	got, err := s.Get(sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != sess {
		t.Fatalf("expected the same session back")
	}

	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetExpiredSession(t *testing.T) {
	s, c := newTestStore(10, time.Minute)
	sess := s.Create()

	c.t = c.t.Add(2 * time.Minute)
	if _, err := s.Get(sess.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for expired session, got %v", err)
	}
}

func TestGetRefreshesIdleTimer(t *testing.T) {
	s, c := newTestStore(10, time.Minute)
	sess := s.Create()

	for i := 0; i < 3; i++ {
		c.t = c.t.Add(40 * time.Second)
		if _, err := s.Get(sess.ID); err != nil {
			t.Fatalf("step %d: unexpected error: %v", i, err)
		}
	}
}

func TestSweep(t *testing.T) {
	s, c := newTestStore(10, time.Minute)
	old := s.Create()

	c.t = c.t.Add(50 * time.Second)
	fresh := s.Create()

	c.t = c.t.Add(20 * time.Second)
	if n := s.Sweep(); n != 1 {
		t.Fatalf("expected 1 session swept, got %d", n)
	}
	if _, err := s.Get(old.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected old session to be gone")
	}
	if _, err := s.Get(fresh.ID); err != nil {
		t.Fatalf("expected fresh session to survive: %v", err)
	}
}

func TestMaxSessionsEvictsLeastRecentlySeen(t *testing.T) {
	s, c := newTestStore(2, 0)

	a := s.Create()
	c.t = c.t.Add(time.Second)
	b := s.Create()
	c.t = c.t.Add(time.Second)
	if _, err := s.Get(a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.t = c.t.Add(time.Second)
	s.Create()

	if s.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", s.Len())
	}
	if _, err := s.Get(b.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected b to be evicted")
	}
	if _, err := s.Get(a.ID); err != nil {
		t.Fatalf("expected a to survive: %v", err)
	}
}

func TestNotices(t *testing.T) {
	s, _ := newTestStore(0, 0)
	sess := s.Create()

	sess.Notify(LevelSuccess, "loaded")
	sess.Notify(LevelError, "failed")

	got := sess.DrainNotices()
	if len(got) != 2 || got[0].Message != "loaded" || got[1].Level != LevelError {
		t.Fatalf("unexpected notices: %+v", got)
	}
	if again := sess.DrainNotices(); len(again) != 0 {
		t.Fatalf("expected notices to be drained, got %+v", again)
	}
}
