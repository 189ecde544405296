package services

import "github.com/Steller12/blogging-platform/app/session"

// Result is a navigation instruction handed back to the HTTP layer: where to
// send the browser and what to tell the user.
type Result struct {
	Redirect string
	Flash    session.Flash
}

func redirectWith(target, message, category string) Result {
	return Result{
		Redirect: target,
		Flash:    session.Flash{Message: message, Category: category},
	}
}

// Route targets used across both services.
const (
	PublishedListPath = "/posts/"
	DraftListPath     = "/posts/drafts"
	LoginPath         = "/login"
	SignupPath        = "/signup"
)
