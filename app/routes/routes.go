package routes

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Steller12/blogging-platform/app/controllers"
	"github.com/Steller12/blogging-platform/app/metrics"
	"github.com/Steller12/blogging-platform/app/middleware"
	"github.com/Steller12/blogging-platform/app/repositories"
	"github.com/Steller12/blogging-platform/app/services"
	"github.com/Steller12/blogging-platform/app/session"
)

// Deps carries everything the router needs wired in.
type Deps struct {
	Accounts repositories.AccountStore
	Posts    repositories.PostRepository
	Tags     repositories.TagCatalog
	Sessions *session.Manager
	Log      *slog.Logger

	// ViewPath locates the app/views directory, "" for the working directory.
	ViewPath string
}

// Setup builds the full application router.
func Setup(d Deps) *mux.Router {
	authService := services.NewAuthService(d.Accounts, d.Log)
	postService := services.NewPostService(d.Posts, d.Tags, d.Log)

	authController := controllers.NewAuthController(authService, d.Sessions, d.ViewPath)
	postController := controllers.NewPostController(postService, authService, d.Sessions, d.ViewPath)

	loginRequired := middleware.RequireLogin(d.Sessions, authService)

	router := mux.NewRouter()
	router.Use(middleware.Logger(d.Log))
	router.Use(middleware.Recoverer(d.Log))
	router.Use(middleware.HTTPMetrics)

	router.HandleFunc("/", authController.Index).Methods("GET")
	router.HandleFunc("/login", authController.LoginPage).Methods("GET")
	router.HandleFunc("/login", authController.Login).Methods("POST")
	router.HandleFunc("/signup", authController.SignupPage).Methods("GET")
	router.HandleFunc("/signup", authController.Signup).Methods("POST")
	router.HandleFunc("/logout", authController.Logout).Methods("GET")

	posts := router.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("/", postController.Index).Methods("GET")
	posts.HandleFunc("/drafts", loginRequired(postController.Drafts)).Methods("GET")
	posts.HandleFunc("/new", loginRequired(postController.NewForm)).Methods("GET")
	posts.HandleFunc("/new", loginRequired(postController.Create)).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}/edit", loginRequired(postController.EditForm)).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}/edit", loginRequired(postController.Update)).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/delete", loginRequired(postController.Delete)).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/publish", loginRequired(postController.Publish)).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/unpublish", loginRequired(postController.Unpublish)).Methods("POST")

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	return router
}
