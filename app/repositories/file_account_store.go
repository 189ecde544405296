package repositories

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/Steller12/blogging-platform/app/models"
)

// FileAccountStore keeps accounts in a line-delimited text file, one
// "username,email,password" record per line.
type FileAccountStore struct {
	path  string
	mutex sync.RWMutex
	log   *slog.Logger
}

// NewFileAccountStore creates a FileAccountStore backed by path.
func NewFileAccountStore(path string, log *slog.Logger) *FileAccountStore {
	return &FileAccountStore{path: path, log: log}
}

// LoadAll parses the backing file. Lines with fewer than three
// comma-separated fields are skipped. A missing or unreadable file is
// logged and treated as an empty store.
func (s *FileAccountStore) LoadAll() ([]models.Account, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Error("failed to read accounts file", "path", s.path, "err", err)
		}
		return nil, nil
	}

	var accounts []models.Account
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, ",") {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 3 {
			continue
		}
		accounts = append(accounts, models.Account{
			Username: parts[0],
			Email:    parts[1],
			Password: parts[2],
		})
	}
	return accounts, nil
}

// Append writes one record to the end of the backing file. It does not
// check for duplicates.
func (s *FileAccountStore) Append(account models.Account) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		s.log.Error("failed to open accounts file", "path", s.path, "err", err)
		return fmt.Errorf("open accounts file: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("%s,%s,%s\n", account.Username, account.Email, account.Password)
	if _, err := f.WriteString(line); err != nil {
		s.log.Error("failed to append account", "path", s.path, "err", err)
		return fmt.Errorf("append account: %w", err)
	}
	return nil
}

var _ AccountStore = (*FileAccountStore)(nil)
