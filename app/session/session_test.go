package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadWithCookie(m *Manager, cookie *http.Cookie) (*Session, *httptest.ResponseRecorder) {
	r := httptest.NewRequest("GET", "/", nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	return m.Load(w, r), w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	return nil
}

func TestManagerCreatesAndReusesSessions(t *testing.T) {
	m := NewManager(time.Hour, 24*time.Hour)

	sess, w := loadWithCookie(m, nil)
	require.NotNil(t, sess)

	cookie := sessionCookie(w)
	require.NotNil(t, cookie, "first load must set the session cookie")
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 1, m.Count())

	sess.Set("user_id", "a@x.com")

	again, _ := loadWithCookie(m, cookie)
	assert.Equal(t, "a@x.com", again.Get("user_id"))
	assert.Equal(t, 1, m.Count())
}

func TestSessionValuesAndClear(t *testing.T) {
	m := NewManager(time.Hour, 24*time.Hour)
	sess, _ := loadWithCookie(m, nil)

	assert.False(t, sess.Has("user_id"))
	sess.Set("user_id", "a@x.com")
	sess.Set("username", "alice")
	assert.True(t, sess.Has("user_id"))
	assert.Equal(t, "alice", sess.Get("username"))

	sess.AddFlash("hello", "info")
	sess.Clear()

	assert.False(t, sess.Has("user_id"))
	assert.Equal(t, "", sess.Get("username"))
	assert.Empty(t, sess.Flashes())
}

func TestFlashesAreConsumed(t *testing.T) {
	m := NewManager(time.Hour, 24*time.Hour)
	sess, _ := loadWithCookie(m, nil)

	sess.AddFlash("saved", "success")
	sess.AddFlash("careful", "warning")

	flashes := sess.Flashes()
	require.Len(t, flashes, 2)
	assert.Equal(t, Flash{Message: "saved", Category: "success"}, flashes[0])

	assert.Empty(t, sess.Flashes(), "flashes are one-shot")
}

func TestExpiredSessionsAreReplaced(t *testing.T) {
	m := NewManager(time.Hour, 24*time.Hour)

	current := time.Now()
	m.now = func() time.Time { return current }

	sess, w := loadWithCookie(m, nil)
	sess.Set("user_id", "a@x.com")
	cookie := sessionCookie(w)

	current = current.Add(2 * time.Hour)

	fresh, _ := loadWithCookie(m, cookie)
	assert.False(t, fresh.Has("user_id"), "expired session must not be reused")
	assert.Equal(t, 1, m.Count(), "expired session is evicted")
}

func TestRememberExtendsLifetime(t *testing.T) {
	m := NewManager(time.Hour, 24*time.Hour)

	current := time.Now()
	m.now = func() time.Time { return current }

	sess, w := loadWithCookie(m, nil)
	cookie := sessionCookie(w)

	w2 := httptest.NewRecorder()
	m.Remember(w2, sess)

	persistent := sessionCookie(w2)
	require.NotNil(t, persistent)
	assert.Equal(t, int(24*time.Hour/time.Second), persistent.MaxAge)

	// still valid after the ordinary ttl
	current = current.Add(2 * time.Hour)
	again, _ := loadWithCookie(m, cookie)
	assert.Same(t, sess, again)
}
