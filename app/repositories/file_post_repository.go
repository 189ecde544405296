package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/Steller12/blogging-platform/app/models"
)

// FilePostRepository keeps the full post set in a single JSON document,
// pretty-printed with 2-space indentation when rewritten. Every mutation by
// the service layer is a load-all/save-all cycle; the mutex keeps a single
// writer per store.
type FilePostRepository struct {
	path  string
	mutex sync.RWMutex
	log   *slog.Logger
}

// NewFilePostRepository creates a FilePostRepository backed by path.
func NewFilePostRepository(path string, log *slog.Logger) *FilePostRepository {
	return &FilePostRepository{path: path, log: log}
}

// LoadAll deserializes the JSON document. A missing file yields an empty
// sequence; a malformed one is logged and treated as empty.
func (r *FilePostRepository) LoadAll() ([]models.Post, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.loadLocked()
}

func (r *FilePostRepository) loadLocked() ([]models.Post, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.log.Error("failed to read posts file", "path", r.path, "err", err)
		}
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	var posts []models.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		r.log.Error("malformed posts file", "path", r.path, "err", err)
		return nil, nil
	}
	return posts, nil
}

// SaveAll serializes the full sequence back over the document.
func (r *FilePostRepository) SaveAll(posts []models.Post) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if posts == nil {
		posts = []models.Post{}
	}
	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal posts: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		r.log.Error("failed to write posts file", "path", r.path, "err", err)
		return fmt.Errorf("write posts file: %w", err)
	}
	return nil
}

// NextID returns 1 for an empty repository, max(id)+1 otherwise.
func (r *FilePostRepository) NextID() (int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	posts, err := r.loadLocked()
	if err != nil {
		return 0, err
	}
	ids := make([]int, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return nextID(ids), nil
}

var _ PostRepository = (*FilePostRepository)(nil)
