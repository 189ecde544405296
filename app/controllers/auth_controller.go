package controllers

import (
	"html/template"
	"net/http"

	"github.com/Steller12/blogging-platform/app/forms"
	"github.com/Steller12/blogging-platform/app/metrics"
	"github.com/Steller12/blogging-platform/app/services"
	"github.com/Steller12/blogging-platform/app/session"
)

// AuthController handles the login, signup and logout pages.
type AuthController struct {
	auth      *services.AuthService
	sessions  *session.Manager
	templates map[string]*template.Template
}

// NewAuthController creates a new AuthController. basePath locates the view
// directory, "" for the working directory.
func NewAuthController(auth *services.AuthService, sessions *session.Manager, basePath string) *AuthController {
	return &AuthController{
		auth:      auth,
		sessions:  sessions,
		templates: loadTemplates(basePath),
	}
}

// Index redirects to the published posts when logged in, to login otherwise.
func (ac *AuthController) Index(w http.ResponseWriter, r *http.Request) {
	sess := ac.sessions.Load(w, r)
	if ac.auth.IsLoggedIn(sess) {
		http.Redirect(w, r, services.PublishedListPath, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, services.LoginPath, http.StatusSeeOther)
}

// LoginPage renders the login form. Logged-in visitors are sent to the
// published list instead.
func (ac *AuthController) LoginPage(w http.ResponseWriter, r *http.Request) {
	sess := ac.sessions.Load(w, r)
	if ac.auth.IsLoggedIn(sess) {
		http.Redirect(w, r, services.PublishedListPath, http.StatusSeeOther)
		return
	}
	ac.render(w, r, sess, "auth/login", viewData{
		Title: "Log in",
		Next:  r.URL.Query().Get("next"),
	})
}

// Login handles the login form submission.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	sess := ac.sessions.Load(w, r)

	values, err := forms.FromRequest(r)
	if err != nil {
		sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	form := forms.NewLoginForm(values)
	if err := form.Validate(); err != nil {
		sess.AddFlash("Please enter a valid email and password.", "error")
		http.Redirect(w, r, services.LoginPath, http.StatusSeeOther)
		return
	}

	res, err := ac.auth.Login(sess, form, r.URL.Query().Get("next"))
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
	} else {
		metrics.LoginsTotal.WithLabelValues("success").Inc()
		if form.Remember {
			ac.sessions.Remember(w, sess)
		}
	}
	applyResult(w, r, sess, res)
}

// SignupPage renders the registration form.
func (ac *AuthController) SignupPage(w http.ResponseWriter, r *http.Request) {
	sess := ac.sessions.Load(w, r)
	if ac.auth.IsLoggedIn(sess) {
		http.Redirect(w, r, services.PublishedListPath, http.StatusSeeOther)
		return
	}
	ac.render(w, r, sess, "auth/signup", viewData{Title: "Sign up"})
}

// Signup handles the registration form submission.
func (ac *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	sess := ac.sessions.Load(w, r)

	values, err := forms.FromRequest(r)
	if err != nil {
		sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	res, _ := ac.auth.Register(forms.NewSignupForm(values))
	applyResult(w, r, sess, res)
}

// Logout clears the session unconditionally.
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := ac.sessions.Load(w, r)
	applyResult(w, r, sess, ac.auth.Logout(sess))
}

func (ac *AuthController) render(w http.ResponseWriter, r *http.Request, sess *session.Session, name string, data viewData) {
	data.User = ac.auth.CurrentUser(sess)
	data.Flashes = sess.Flashes()
	if err := ac.templates[name].ExecuteTemplate(w, "layout", data); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}
