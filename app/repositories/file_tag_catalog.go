package repositories

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"
)

// FileTagCatalog reads the tag list from a JSON array of strings.
type FileTagCatalog struct {
	path  string
	mutex sync.RWMutex
	log   *slog.Logger
}

// NewFileTagCatalog creates a FileTagCatalog backed by path.
func NewFileTagCatalog(path string, log *slog.Logger) *FileTagCatalog {
	return &FileTagCatalog{path: path, log: log}
}

// LoadAll deserializes the tag document. Missing or malformed files yield an
// empty sequence, matching the account and post stores.
func (c *FileTagCatalog) LoadAll() ([]string, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.log.Error("failed to read tags file", "path", c.path, "err", err)
		}
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		c.log.Error("malformed tags file", "path", c.path, "err", err)
		return nil, nil
	}
	return tags, nil
}

var _ TagCatalog = (*FileTagCatalog)(nil)
