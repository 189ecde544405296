package services

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Steller12/blogging-platform/app/forms"
	"github.com/Steller12/blogging-platform/app/models"
	"github.com/Steller12/blogging-platform/app/repositories"
)

// PostService handles business logic for blog posts: the draft/published
// lifecycle over the post repository.
type PostService struct {
	posts repositories.PostRepository
	tags  repositories.TagCatalog
	log   *slog.Logger
	now   func() time.Time
}

// NewPostService creates a new PostService
func NewPostService(posts repositories.PostRepository, tags repositories.TagCatalog, log *slog.Logger) *PostService {
	return &PostService{posts: posts, tags: tags, log: log, now: time.Now}
}

// SetClock overrides the service clock for tests.
func (s *PostService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *PostService) loadAll() []models.Post {
	posts, err := s.posts.LoadAll()
	if err != nil {
		s.log.Error("failed to load posts", "err", err)
		return nil
	}
	return posts
}

// List returns the posts whose published state matches, newest first.
// The timestamps are fixed-layout RFC3339 strings, so the string sort is a
// chronological sort.
func (s *PostService) List(published bool) []models.Post {
	var out []models.Post
	for _, p := range s.loadAll() {
		if p.IsPublished == published {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}

// ListDrafts is List(published = false).
func (s *PostService) ListDrafts() []models.Post {
	return s.List(false)
}

// Get returns the post with the given id, or repositories.ErrNotFound.
func (s *PostService) Get(id int) (models.Post, error) {
	for _, p := range s.loadAll() {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Post{}, repositories.ErrNotFound
}

// Tags returns the tag catalog, empty on a soft read failure.
func (s *PostService) Tags() []string {
	tags, err := s.tags.LoadAll()
	if err != nil {
		s.log.Error("failed to load tags", "err", err)
		return nil
	}
	return tags
}

// filterTags keeps only the submitted tags the catalog knows, preserving the
// submitted order.
func (s *PostService) filterTags(submitted []string) []string {
	known := make(map[string]bool)
	for _, t := range s.Tags() {
		known[t] = true
	}
	out := []string{}
	for _, t := range submitted {
		if known[t] {
			out = append(out, t)
		}
	}
	return out
}

// Create validates the form, assigns the next id and persists the new post.
// The caller is routed to the published list or the drafts list depending on
// the post's initial state.
func (s *PostService) Create(author string, form forms.PostForm) (Result, error) {
	if author == "" {
		return redirectWith(LoginPath, "Please log in to access this page.", "warning"), ErrUnauthenticated
	}
	if form.Title == "" || form.Body == "" {
		return redirectWith(PublishedListPath, "Title and body are required.", "error"), ErrValidation
	}

	id, err := s.posts.NextID()
	if err != nil {
		return s.storageFailure(err)
	}
	now := models.Timestamp(s.now())
	post := models.Post{
		ID:          id,
		Title:       form.Title,
		Body:        form.Body,
		Author:      author,
		IsPublished: form.IsPublished,
		Tags:        s.filterTags(form.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	posts := append(s.loadAll(), post)
	if err := s.posts.SaveAll(posts); err != nil {
		return s.storageFailure(err)
	}

	return redirectWith(listPathFor(post.IsPublished), "Post created successfully.", "success"), nil
}

// Update overwrites the mutable fields of an existing post and bumps its
// updated_at stamp. The caller is routed based on the new published state.
func (s *PostService) Update(id int, form forms.PostForm) (Result, error) {
	if form.Title == "" || form.Body == "" {
		return redirectWith(PublishedListPath, "Title and body cannot be empty.", "error"), ErrValidation
	}

	posts := s.loadAll()
	idx := indexOf(posts, id)
	if idx < 0 {
		return s.notFound()
	}

	posts[idx].Title = form.Title
	posts[idx].Body = form.Body
	posts[idx].IsPublished = form.IsPublished
	posts[idx].Tags = s.filterTags(form.Tags)
	posts[idx].UpdatedAt = models.Timestamp(s.now())

	if err := s.posts.SaveAll(posts); err != nil {
		return s.storageFailure(err)
	}
	return redirectWith(listPathFor(form.IsPublished), "Post updated successfully.", "success"), nil
}

// Delete removes the post entirely. Its id may be reissued later; the
// repository derives ids from what is on disk.
func (s *PostService) Delete(id int) (Result, error) {
	posts := s.loadAll()
	idx := indexOf(posts, id)
	if idx < 0 {
		return s.notFound()
	}

	posts = append(posts[:idx], posts[idx+1:]...)
	if err := s.posts.SaveAll(posts); err != nil {
		return s.storageFailure(err)
	}
	return redirectWith(PublishedListPath, "Post deleted.", "success"), nil
}

// Publish moves a draft to the published list. Publishing a published post
// is a domain error surfaced as a message, not a fault.
func (s *PostService) Publish(id int) (Result, error) {
	return s.transition(id, func(p *models.Post) error {
		return p.Publish(s.now())
	}, "Post published.", PublishedListPath)
}

// Unpublish moves a published post back to drafts, symmetric to Publish.
func (s *PostService) Unpublish(id int) (Result, error) {
	return s.transition(id, func(p *models.Post) error {
		return p.Unpublish(s.now())
	}, "Post moved back to drafts.", DraftListPath)
}

func (s *PostService) transition(id int, apply func(*models.Post) error, success, target string) (Result, error) {
	posts := s.loadAll()
	idx := indexOf(posts, id)
	if idx < 0 {
		return s.notFound()
	}

	if err := apply(&posts[idx]); err != nil {
		switch {
		case errors.Is(err, models.ErrAlreadyPublished):
			return redirectWith(PublishedListPath, "Post is already published.", "error"), err
		case errors.Is(err, models.ErrAlreadyUnpublished):
			return redirectWith(DraftListPath, "Post is already a draft.", "error"), err
		default:
			return s.storageFailure(err)
		}
	}

	if err := s.posts.SaveAll(posts); err != nil {
		return s.storageFailure(err)
	}
	return redirectWith(target, success, "success"), nil
}

func (s *PostService) notFound() (Result, error) {
	return redirectWith(PublishedListPath, "Post not found.", "error"), repositories.ErrNotFound
}

func (s *PostService) storageFailure(err error) (Result, error) {
	s.log.Error("post storage failure", "err", err)
	return redirectWith(PublishedListPath, "Something went wrong. Please try again.", "error"),
		fmt.Errorf("%w: %v", ErrStorage, err)
}

func listPathFor(published bool) string {
	if published {
		return PublishedListPath
	}
	return DraftListPath
}

func indexOf(posts []models.Post, id int) int {
	for i, p := range posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}
