package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Steller12/blogging-platform/app/models"
	"github.com/Steller12/blogging-platform/app/services"
	"github.com/Steller12/blogging-platform/app/session"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRecoverer(t *testing.T) {
	handler := Recoverer(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLoggerPassesThrough(t *testing.T) {
	handler := Logger(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestHTTPMetricsPassesThrough(t *testing.T) {
	handler := HTTPMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
}

type noopAccounts struct{}

func (noopAccounts) LoadAll() ([]models.Account, error) { return nil, nil }
func (noopAccounts) Append(models.Account) error        { return nil }

func TestRequireLogin(t *testing.T) {
	sessions := session.NewManager(time.Hour, 24*time.Hour)
	auth := services.NewAuthService(noopAccounts{}, testLogger())

	called := false
	handler := RequireLogin(sessions, auth)(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	t.Run("anonymous is redirected to login", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest("GET", "/posts/drafts", nil))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login?next=%2Fposts%2Fdrafts", w.Header().Get("Location"))
		assert.False(t, called)
	})

	t.Run("authenticated passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/posts/drafts", nil)
		sess := sessions.Load(w, r)
		sess.Set(services.SessionUserID, "a@x.com")

		cookie := w.Result().Cookies()[0]
		w2 := httptest.NewRecorder()
		r2 := httptest.NewRequest("GET", "/posts/drafts", nil)
		r2.AddCookie(cookie)

		handler(w2, r2)
		require.True(t, called)
	})
}
