package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"tabib-chatbot/internal/core"
	"tabib-chatbot/internal/logger"
)

// ErrSessionNotFound is returned for unknown or expired session IDs.
var ErrSessionNotFound = errors.New("session not found")

// Handle couples a session with the lock that serializes input events for
// it. Callers hold the lock for the whole of an Accept call.
type Handle struct {
	ID        string
	CreatedAt time.Time

	mu      sync.Mutex
	session *core.Session
}

// Do runs fn with exclusive access to the session.
func (h *Handle) Do(fn func(*core.Session) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.session)
}

// SessionStore keeps live sessions in memory. Idle sessions expire after the
// configured TTL; nothing outlives the process.
type SessionStore struct {
	cache   *cache.Cache
	scripts core.Scripts
}

// NewSessionStore builds a store whose sessions all use scripts.
func NewSessionStore(scripts core.Scripts, ttl time.Duration, log *logger.Logger) *SessionStore {
	c := cache.New(ttl, ttl)
	if log != nil {
		c.OnEvicted(func(id string, _ interface{}) {
			log.Debug("session evicted", logrus.Fields{"session_id": id})
		})
	}
	return &SessionStore{cache: c, scripts: scripts}
}

// Create registers a new session awaiting its language choice.
func (s *SessionStore) Create() *Handle {
	h := &Handle{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		session:   core.NewSession(s.scripts),
	}
	s.cache.Set(h.ID, h, cache.DefaultExpiration)
	return h
}

// Get looks up a session and refreshes its expiry.
func (s *SessionStore) Get(id string) (*Handle, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	h := v.(*Handle)
	s.cache.Set(id, h, cache.DefaultExpiration)
	return h, nil
}

// Delete ends a session. Deleting an unknown ID is a no-op.
func (s *SessionStore) Delete(id string) {
	s.cache.Delete(id)
}

// Count returns the number of stored sessions, including expired ones not
// yet cleaned up.
func (s *SessionStore) Count() int {
	return s.cache.ItemCount()
}
