package controllers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Steller12/blogging-platform/app/models"
	"github.com/Steller12/blogging-platform/app/repositories"
	"github.com/Steller12/blogging-platform/app/services"
	"github.com/Steller12/blogging-platform/app/session"
)

func setupPostController(t *testing.T) (*PostController, *repositories.FilePostRepository) {
	t.Helper()
	dir := t.TempDir()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	accounts := repositories.NewFileAccountStore(filepath.Join(dir, "users.txt"), log)
	posts := repositories.NewFilePostRepository(filepath.Join(dir, "posts.json"), log)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tags.json"), []byte(`["go"]`), 0o644))
	tags := repositories.NewFileTagCatalog(filepath.Join(dir, "tags.json"), log)

	authService := services.NewAuthService(accounts, log)
	postService := services.NewPostService(posts, tags, log)
	sessions := session.NewManager(time.Hour, 24*time.Hour)

	return NewPostController(postService, authService, sessions, "../.."), posts
}

func testRouter(pc *PostController) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/posts/", pc.Index).Methods("GET")
	router.HandleFunc("/posts/{id:[0-9]+}", pc.Show).Methods("GET")
	return router
}

func TestShowJSON(t *testing.T) {
	pc, repo := setupPostController(t)
	require.NoError(t, repo.SaveAll([]models.Post{{
		ID: 1, Title: "Hi", Body: "World", Author: "alice", IsPublished: true,
		Tags: []string{"go"}, CreatedAt: "2025-03-01T12:00:00Z", UpdatedAt: "2025-03-01T12:00:00Z",
	}}))
	router := testRouter(pc)

	t.Run("found", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/posts/1", nil)
		r.Header.Set("Accept", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var post models.Post
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
		assert.Equal(t, "Hi", post.Title)
		assert.Equal(t, []string{"go"}, post.Tags)
	})

	t.Run("not found", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/posts/99", nil)
		r.Header.Set("Accept", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Post not found"}`, w.Body.String())
	})

	t.Run("not found html redirects with flash", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/posts/99", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, services.PublishedListPath, w.Header().Get("Location"))
	})
}

func TestIndexRendersHTML(t *testing.T) {
	pc, repo := setupPostController(t)
	require.NoError(t, repo.SaveAll([]models.Post{{
		ID: 1, Title: "Visible", Body: "b", Author: "alice", IsPublished: true,
		Tags: []string{}, CreatedAt: "2025-03-01T12:00:00Z", UpdatedAt: "2025-03-01T12:00:00Z",
	}, {
		ID: 2, Title: "Hidden draft", Body: "b", Author: "alice",
		Tags: []string{}, CreatedAt: "2025-03-02T12:00:00Z", UpdatedAt: "2025-03-02T12:00:00Z",
	}}))
	router := testRouter(pc)

	r := httptest.NewRequest("GET", "/posts/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Visible")
	assert.NotContains(t, body, "Hidden draft")
}
