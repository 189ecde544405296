package services

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Steller12/blogging-platform/app/forms"
	"github.com/Steller12/blogging-platform/app/models"
	"github.com/Steller12/blogging-platform/app/session"
)

type mockAccountStore struct {
	accounts  []models.Account
	appendErr error
}

func (m *mockAccountStore) LoadAll() ([]models.Account, error) {
	return m.accounts, nil
}

func (m *mockAccountStore) Append(account models.Account) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.accounts = append(m.accounts, account)
	return nil
}

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	m := session.NewManager(time.Hour, 24*time.Hour)
	return m.Load(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
}

func TestAuthServiceRegister(t *testing.T) {
	t.Run("success routes to login", func(t *testing.T) {
		store := &mockAccountStore{}
		s := NewAuthService(store, testLogger())

		res, err := s.Register(forms.SignupForm{Username: "alice", Email: "a@x.com", Password: "p1"})
		require.NoError(t, err)
		assert.Equal(t, LoginPath, res.Redirect)
		assert.Equal(t, "success", res.Flash.Category)
		require.Len(t, store.accounts, 1)
	})

	t.Run("duplicate email", func(t *testing.T) {
		store := &mockAccountStore{accounts: []models.Account{{Username: "alice", Email: "a@x.com", Password: "p1"}}}
		s := NewAuthService(store, testLogger())

		res, err := s.Register(forms.SignupForm{Username: "bob", Email: "a@x.com", Password: "p2"})
		assert.ErrorIs(t, err, ErrDuplicateEmail)
		assert.Equal(t, SignupPath, res.Redirect)
		assert.Len(t, store.accounts, 1)
	})

	t.Run("duplicate username", func(t *testing.T) {
		store := &mockAccountStore{accounts: []models.Account{{Username: "alice", Email: "a@x.com", Password: "p1"}}}
		s := NewAuthService(store, testLogger())

		_, err := s.Register(forms.SignupForm{Username: "alice", Email: "other@x.com", Password: "p2"})
		assert.ErrorIs(t, err, ErrDuplicateUsername)
	})

	t.Run("invalid form", func(t *testing.T) {
		s := NewAuthService(&mockAccountStore{}, testLogger())

		_, err := s.Register(forms.SignupForm{Username: "alice", Email: "not-an-email", Password: "p"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("storage failure", func(t *testing.T) {
		store := &mockAccountStore{appendErr: errors.New("disk full")}
		s := NewAuthService(store, testLogger())

		res, err := s.Register(forms.SignupForm{Username: "alice", Email: "a@x.com", Password: "p1"})
		assert.ErrorIs(t, err, ErrStorage)
		assert.Equal(t, SignupPath, res.Redirect)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	store := &mockAccountStore{accounts: []models.Account{{Username: "alice", Email: "a@x.com", Password: "p1"}}}
	s := NewAuthService(store, testLogger())

	t.Run("success establishes identity", func(t *testing.T) {
		sess := newTestSession(t)
		res, err := s.Login(sess, forms.LoginForm{Email: "a@x.com", Password: "p1"}, "")
		require.NoError(t, err)
		assert.Equal(t, PublishedListPath, res.Redirect)
		assert.Equal(t, "a@x.com", sess.Get(SessionUserID))
		assert.Equal(t, "alice", sess.Get(SessionUsername))
		assert.True(t, s.IsLoggedIn(sess))
	})

	t.Run("honors next target", func(t *testing.T) {
		sess := newTestSession(t)
		res, err := s.Login(sess, forms.LoginForm{Email: "a@x.com", Password: "p1"}, "/posts/drafts")
		require.NoError(t, err)
		assert.Equal(t, "/posts/drafts", res.Redirect)
	})

	t.Run("wrong password", func(t *testing.T) {
		sess := newTestSession(t)
		res, err := s.Login(sess, forms.LoginForm{Email: "a@x.com", Password: "wrong"}, "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, LoginPath, res.Redirect)
		assert.False(t, s.IsLoggedIn(sess))
	})

	t.Run("password match is case-sensitive", func(t *testing.T) {
		sess := newTestSession(t)
		_, err := s.Login(sess, forms.LoginForm{Email: "a@x.com", Password: "P1"}, "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		sess := newTestSession(t)
		_, err := s.Login(sess, forms.LoginForm{Email: "nobody@x.com", Password: "p1"}, "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthServiceLogout(t *testing.T) {
	store := &mockAccountStore{accounts: []models.Account{{Username: "alice", Email: "a@x.com", Password: "p1"}}}
	s := NewAuthService(store, testLogger())

	sess := newTestSession(t)
	_, err := s.Login(sess, forms.LoginForm{Email: "a@x.com", Password: "p1"}, "")
	require.NoError(t, err)

	res := s.Logout(sess)
	assert.Equal(t, LoginPath, res.Redirect)
	assert.False(t, s.IsLoggedIn(sess))
	assert.Nil(t, s.CurrentUser(sess))

	// logging out an anonymous session still succeeds
	res = s.Logout(newTestSession(t))
	assert.Equal(t, LoginPath, res.Redirect)
}

func TestAuthServiceCurrentUser(t *testing.T) {
	store := &mockAccountStore{accounts: []models.Account{{Username: "alice", Email: "a@x.com", Password: "p1"}}}
	s := NewAuthService(store, testLogger())

	sess := newTestSession(t)
	assert.Nil(t, s.CurrentUser(sess))

	_, err := s.Login(sess, forms.LoginForm{Email: "a@x.com", Password: "p1"}, "")
	require.NoError(t, err)

	user := s.CurrentUser(sess)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)

	// account disappears from the store
	store.accounts = nil
	assert.Nil(t, s.CurrentUser(sess))
}

func TestAuthServiceRequireLogin(t *testing.T) {
	s := NewAuthService(&mockAccountStore{}, testLogger())

	sess := newTestSession(t)
	res := s.RequireLogin(sess, "/posts/drafts")
	require.NotNil(t, res)
	assert.Equal(t, "/login?next=%2Fposts%2Fdrafts", res.Redirect)
	assert.Equal(t, "warning", res.Flash.Category)

	sess.Set(SessionUserID, "a@x.com")
	assert.Nil(t, s.RequireLogin(sess, "/posts/drafts"))
}
