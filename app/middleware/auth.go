package middleware

import (
	"net/http"

	"github.com/Steller12/blogging-platform/app/services"
	"github.com/Steller12/blogging-platform/app/session"
)

// RequireLogin guards handlers that need an authenticated session. Anonymous
// requests are flashed a warning and sent to the login page, which remembers
// where they were going.
func RequireLogin(sessions *session.Manager, auth *services.AuthService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			sess := sessions.Load(w, r)
			if res := auth.RequireLogin(sess, r.URL.RequestURI()); res != nil {
				sess.AddFlash(res.Flash.Message, res.Flash.Category)
				http.Redirect(w, r, res.Redirect, http.StatusSeeOther)
				return
			}
			next(w, r)
		}
	}
}
