package services

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/Steller12/blogging-platform/app/forms"
	"github.com/Steller12/blogging-platform/app/models"
	"github.com/Steller12/blogging-platform/app/repositories"
	"github.com/Steller12/blogging-platform/app/session"
)

// Session keys carrying the logged-in identity.
const (
	SessionUserID   = "user_id"
	SessionUsername = "username"
	SessionEmail    = "email"
)

// AuthService handles registration, login and session identity over the
// account store. Passwords are stored and compared in cleartext to stay
// compatible with the existing accounts file; do not expose this outside a
// trusted deployment.
type AuthService struct {
	accounts repositories.AccountStore
	log      *slog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(accounts repositories.AccountStore, log *slog.Logger) *AuthService {
	return &AuthService{accounts: accounts, log: log}
}

func (s *AuthService) loadAccounts() []models.Account {
	accounts, err := s.accounts.LoadAll()
	if err != nil {
		s.log.Error("failed to load accounts", "err", err)
		return nil
	}
	return accounts
}

// Register creates a new account after checking email and username
// uniqueness. On success the caller is routed to the login page.
func (s *AuthService) Register(form forms.SignupForm) (Result, error) {
	if err := form.Validate(); err != nil {
		return redirectWith(SignupPath, "Please fill in all fields with a valid email.", "error"), ErrValidation
	}

	for _, account := range s.loadAccounts() {
		if account.Email == form.Email {
			return redirectWith(SignupPath, "Email already registered. Please use a different email.", "error"), ErrDuplicateEmail
		}
		if account.Username == form.Username {
			return redirectWith(SignupPath, "Username already exists. Please choose a different one.", "error"), ErrDuplicateUsername
		}
	}

	account := models.Account{Username: form.Username, Email: form.Email, Password: form.Password}
	if err := s.accounts.Append(account); err != nil {
		s.log.Error("failed to save account", "err", err)
		return redirectWith(SignupPath, "An error occurred while creating your account. Please try again.", "error"), fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return redirectWith(LoginPath, "Account created successfully! Please log in.", "success"), nil
}

// Login checks the credentials and, on an exact password match, stores the
// identity in the session. next overrides the default landing page.
func (s *AuthService) Login(sess *session.Session, form forms.LoginForm, next string) (Result, error) {
	var account *models.Account
	for _, a := range s.loadAccounts() {
		if a.Email == form.Email {
			account = &a
			break
		}
	}

	if account == nil || account.Password != form.Password {
		return redirectWith(LoginPath, "Invalid email or password. Please try again.", "error"), ErrInvalidCredentials
	}

	sess.Set(SessionUserID, account.Email)
	sess.Set(SessionUsername, account.Username)
	sess.Set(SessionEmail, account.Email)

	target := PublishedListPath
	if next != "" {
		target = next
	}
	return redirectWith(target, fmt.Sprintf("Welcome back, %s!", account.Username), "success"), nil
}

// Logout clears the whole session, even a corrupt one, and always succeeds.
func (s *AuthService) Logout(sess *session.Session) Result {
	username := sess.Get(SessionUsername)
	sess.Clear()
	if username == "" {
		username = "User"
	}
	return redirectWith(LoginPath, fmt.Sprintf("Goodbye, %s! You have been logged out.", username), "info")
}

// CurrentUser returns the account matching the session identity, or nil if
// nobody is logged in or the account no longer exists.
func (s *AuthService) CurrentUser(sess *session.Session) *models.Account {
	userID := sess.Get(SessionUserID)
	if userID == "" {
		return nil
	}
	for _, a := range s.loadAccounts() {
		if a.Email == userID {
			return &a
		}
	}
	return nil
}

// IsLoggedIn reports whether the session carries a user identity.
func (s *AuthService) IsLoggedIn(sess *session.Session) bool {
	return sess.Has(SessionUserID)
}

// RequireLogin returns nil when the session is authenticated; otherwise a
// redirect to the login page that remembers where the caller was going.
func (s *AuthService) RequireLogin(sess *session.Session, returnTo string) *Result {
	if s.IsLoggedIn(sess) {
		return nil
	}
	target := LoginPath
	if returnTo != "" {
		target = LoginPath + "?next=" + url.QueryEscape(returnTo)
	}
	r := redirectWith(target, "Please log in to access this page.", "warning")
	return &r
}
