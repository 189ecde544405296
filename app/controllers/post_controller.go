package controllers

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Steller12/blogging-platform/app/forms"
	"github.com/Steller12/blogging-platform/app/metrics"
	"github.com/Steller12/blogging-platform/app/services"
	"github.com/Steller12/blogging-platform/app/session"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	posts     *services.PostService
	auth      *services.AuthService
	sessions  *session.Manager
	templates map[string]*template.Template
}

// NewPostController creates a new PostController. basePath locates the view
// directory, "" for the working directory.
func NewPostController(posts *services.PostService, auth *services.AuthService, sessions *session.Manager, basePath string) *PostController {
	return &PostController{
		posts:     posts,
		auth:      auth,
		sessions:  sessions,
		templates: loadTemplates(basePath),
	}
}

// Index lists the published posts, newest first.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	sess := pc.sessions.Load(w, r)
	posts := pc.posts.List(true)

	if wantsJSON(r) {
		sendJSON(w, map[string]interface{}{"posts": posts})
		return
	}
	pc.render(w, r, sess, "posts/index", viewData{Title: "Published Posts", Posts: posts})
}

// Drafts lists the unpublished posts. Requires login.
func (pc *PostController) Drafts(w http.ResponseWriter, r *http.Request) {
	sess := pc.sessions.Load(w, r)
	drafts := pc.posts.ListDrafts()

	if wantsJSON(r) {
		sendJSON(w, map[string]interface{}{"posts": drafts})
		return
	}
	pc.render(w, r, sess, "posts/index", viewData{Title: "Drafts", Posts: drafts})
}

// Show displays a single post. An unknown id flashes a message and routes
// back to the published list.
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	sess := pc.sessions.Load(w, r)
	id, ok := pc.postID(w, r)
	if !ok {
		return
	}

	post, err := pc.posts.Get(id)
	if err != nil {
		if wantsJSON(r) {
			sendError(w, r, "Post not found", http.StatusNotFound)
			return
		}
		sess.AddFlash("Post not found.", "error")
		http.Redirect(w, r, services.PublishedListPath, http.StatusSeeOther)
		return
	}

	if wantsJSON(r) {
		sendJSON(w, post)
		return
	}
	pc.render(w, r, sess, "posts/show", viewData{Title: post.Title, Post: &post})
}

// NewForm renders the creation form with the tag catalog as choices.
func (pc *PostController) NewForm(w http.ResponseWriter, r *http.Request) {
	sess := pc.sessions.Load(w, r)
	pc.render(w, r, sess, "posts/form", viewData{Title: "New Post", Tags: pc.posts.Tags()})
}

// Create handles the creation form submission.
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	sess := pc.sessions.Load(w, r)

	values, err := forms.FromRequest(r)
	if err != nil {
		sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	author := sess.Get(services.SessionUsername)
	res, err := pc.posts.Create(author, forms.NewPostForm(values))
	if err == nil {
		metrics.PostsCreated.Inc()
	}
	applyResult(w, r, sess, res)
}

// EditForm renders the edit form for an existing post.
func (pc *PostController) EditForm(w http.ResponseWriter, r *http.Request) {
	sess := pc.sessions.Load(w, r)
	id, ok := pc.postID(w, r)
	if !ok {
		return
	}

	post, err := pc.posts.Get(id)
	if err != nil {
		sess.AddFlash("Post not found.", "error")
		http.Redirect(w, r, services.PublishedListPath, http.StatusSeeOther)
		return
	}
	pc.render(w, r, sess, "posts/form", viewData{Title: "Edit Post", Post: &post, Tags: pc.posts.Tags()})
}

// Update handles the edit form submission.
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	sess := pc.sessions.Load(w, r)
	id, ok := pc.postID(w, r)
	if !ok {
		return
	}

	values, err := forms.FromRequest(r)
	if err != nil {
		sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	res, _ := pc.posts.Update(id, forms.NewPostForm(values))
	applyResult(w, r, sess, res)
}

// Delete removes a post.
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	sess := pc.sessions.Load(w, r)
	id, ok := pc.postID(w, r)
	if !ok {
		return
	}

	res, _ := pc.posts.Delete(id)
	applyResult(w, r, sess, res)
}

// Publish moves a draft to the published list.
func (pc *PostController) Publish(w http.ResponseWriter, r *http.Request) {
	sess := pc.sessions.Load(w, r)
	id, ok := pc.postID(w, r)
	if !ok {
		return
	}

	res, err := pc.posts.Publish(id)
	if err == nil {
		metrics.PostsPublished.Inc()
	}
	applyResult(w, r, sess, res)
}

// Unpublish moves a published post back to drafts.
func (pc *PostController) Unpublish(w http.ResponseWriter, r *http.Request) {
	sess := pc.sessions.Load(w, r)
	id, ok := pc.postID(w, r)
	if !ok {
		return
	}

	res, _ := pc.posts.Unpublish(id)
	applyResult(w, r, sess, res)
}

func (pc *PostController) postID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (pc *PostController) render(w http.ResponseWriter, r *http.Request, sess *session.Session, name string, data viewData) {
	data.User = pc.auth.CurrentUser(sess)
	data.Flashes = sess.Flashes()
	if err := pc.templates[name].ExecuteTemplate(w, "layout", data); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}
