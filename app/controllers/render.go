package controllers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Steller12/blogging-platform/app/models"
	"github.com/Steller12/blogging-platform/app/services"
	"github.com/Steller12/blogging-platform/app/session"
)

// viewData is the payload every template render receives.
type viewData struct {
	Title   string
	User    *models.Account
	Flashes []session.Flash
	Posts   []models.Post
	Post    *models.Post
	Tags    []string
	Next    string
}

// loadTemplates loads and parses all templates
func loadTemplates(basePath string) map[string]*template.Template {
	layout := filepath.Join(basePath, "app/views/layout.html")
	pages := map[string]string{
		"posts/index": "app/views/posts/index.html",
		"posts/show":  "app/views/posts/show.html",
		"posts/form":  "app/views/posts/form.html",
		"auth/login":  "app/views/auth/login.html",
		"auth/signup": "app/views/auth/signup.html",
	}

	templates := make(map[string]*template.Template)
	for name, page := range pages {
		templates[name] = template.Must(template.ParseFiles(layout, filepath.Join(basePath, page)))
	}
	return templates
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func sendJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": message})
		return
	}
	http.Error(w, message, status)
}

// applyResult queues the result's flash message and redirects the browser.
func applyResult(w http.ResponseWriter, r *http.Request, sess *session.Session, res services.Result) {
	if res.Flash.Message != "" {
		sess.AddFlash(res.Flash.Message, res.Flash.Category)
	}
	http.Redirect(w, r, res.Redirect, http.StatusSeeOther)
}
