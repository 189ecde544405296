// Package session provides a cookie-keyed, server-side session store with
// one-shot flash messages. Session data lives in memory; only the opaque
// session id travels in the cookie.
package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const CookieName = "blog_session"

// Flash is a one-shot user-facing message with a display category
// (success, error, info, warning).
type Flash struct {
	Message  string
	Category string
}

// Session holds the per-browser key/value state for one session id.
type Session struct {
	id        string
	expiresAt time.Time
	permanent bool

	mutex   sync.Mutex
	values  map[string]string
	flashes []Flash
}

// Get returns the value stored under key, or "" when absent.
func (s *Session) Get(key string) string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.values[key]
}

// Has reports whether key is present in the session.
func (s *Session) Has(key string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	_, ok := s.values[key]
	return ok
}

// Set stores value under key.
func (s *Session) Set(key, value string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.values[key] = value
}

// Clear drops every value and pending flash, leaving the session usable.
func (s *Session) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.values = make(map[string]string)
	s.flashes = nil
}

// AddFlash queues a message for the next rendered page.
func (s *Session) AddFlash(message, category string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.flashes = append(s.flashes, Flash{Message: message, Category: category})
}

// Flashes returns and consumes all queued messages.
func (s *Session) Flashes() []Flash {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	out := s.flashes
	s.flashes = nil
	return out
}

// Manager owns every live session, keyed by the opaque id carried in the
// session cookie.
type Manager struct {
	mutex       sync.RWMutex
	sessions    map[string]*Session
	ttl         time.Duration
	rememberTTL time.Duration
	now         func() time.Time
}

// NewManager creates a Manager. ttl bounds ordinary sessions; rememberTTL
// applies when the login asked to be remembered.
func NewManager(ttl, rememberTTL time.Duration) *Manager {
	return &Manager{
		sessions:    make(map[string]*Session),
		ttl:         ttl,
		rememberTTL: rememberTTL,
		now:         time.Now,
	}
}

// Load returns the session for the request, creating a fresh one (and
// setting its cookie) when the request carries no valid session id.
// Expired sessions are evicted lazily here.
func (m *Manager) Load(w http.ResponseWriter, r *http.Request) *Session {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		m.mutex.Lock()
		if sess, ok := m.sessions[cookie.Value]; ok {
			if m.now().Before(sess.expiresAt) {
				m.mutex.Unlock()
				return sess
			}
			delete(m.sessions, cookie.Value)
		}
		m.mutex.Unlock()
	}
	return m.create(w)
}

func (m *Manager) create(w http.ResponseWriter) *Session {
	sess := &Session{
		id:        uuid.NewString(),
		expiresAt: m.now().Add(m.ttl),
		values:    make(map[string]string),
	}

	m.mutex.Lock()
	m.sessions[sess.id] = sess
	m.mutex.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// Remember extends the session lifetime and reissues a persistent cookie,
// honoring the login form's remember-me flag.
func (m *Manager) Remember(w http.ResponseWriter, sess *Session) {
	m.mutex.Lock()
	sess.permanent = true
	sess.expiresAt = m.now().Add(m.rememberTTL)
	m.mutex.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.rememberTTL / time.Second),
	})
}

// Count reports the number of live sessions.
func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}
