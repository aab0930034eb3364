package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/city-weather/internal/cities"
	"github.com/i474232898/city-weather/internal/weather"
)

var (
	// ErrNotFound is returned when a session id is unknown or has expired.
	ErrNotFound = errors.New("session not found")
)

// Level is the severity of a notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a transient message shown once on the next rendered page.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Session is the per-browser state: one view-model per view plus pending notices.
type Session struct {
	ID      string
	Cities  *cities.ViewModel
	Weather *weather.ViewModel

	mu       sync.Mutex
	notices  []Notice
	lastSeen time.Time
}

// Notify queues a notice for the next page render.
func (s *Session) Notify(level Level, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, Notice{Level: level, Message: message})
}

// DrainNotices returns and clears the pending notices.
func (s *Session) DrainNotices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.notices
	s.notices = nil
	return out
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) seen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// MemoryStore is a concurrency-safe in-memory session store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: session id
	data map[string]*Session

	cityProvider    cities.Provider
	weatherProvider weather.Provider

	// retention configuration
	maxSessions int           // max number of live sessions
	maxAge      time.Duration // idle lifetime

	now func() time.Time
}

// NewMemoryStore creates a store whose sessions fetch from the given providers.
// If maxSessions or maxAge is <= 0, that limit is not enforced.
func NewMemoryStore(cityProvider cities.Provider, weatherProvider weather.Provider, maxSessions int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:            make(map[string]*Session),
		cityProvider:    cityProvider,
		weatherProvider: weatherProvider,
		maxSessions:     maxSessions,
		maxAge:          maxAge,
		now:             time.Now,
	}
}

// Create starts a new session and enforces the session count limit
// by evicting the least recently seen sessions.
func (s *MemoryStore) Create() *Session {
	now := s.now()
	sess := &Session{
		ID:       uuid.NewString(),
		Cities:   cities.NewViewModel(s.cityProvider),
		Weather:  weather.NewViewModel(s.weatherProvider),
		lastSeen: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[sess.ID] = sess

	for s.maxSessions > 0 && len(s.data) > s.maxSessions {
		var oldestID string
		var oldest time.Time
		for id, other := range s.data {
			if id == sess.ID {
				continue
			}
			if seen := other.seen(); oldestID == "" || seen.Before(oldest) {
				oldestID, oldest = id, seen
			}
		}
		if oldestID == "" {
			break
		}
		delete(s.data, oldestID)
	}

	return sess
}

// Get returns a live session and refreshes its idle timer.
func (s *MemoryStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.data[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	now := s.now()
	if s.maxAge > 0 && now.Sub(sess.seen()) > s.maxAge {
		return nil, ErrNotFound
	}
	sess.touch(now)
	return sess, nil
}

// Sweep removes sessions idle for longer than maxAge and reports how many were removed.
func (s *MemoryStore) Sweep() int {
	if s.maxAge <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.data {
		if sess.seen().Before(cutoff) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
