package repositories

import "github.com/Steller12/blogging-platform/app/models"

// AccountStore defines the interface for account data access. Accounts are
// append-only; duplicate suppression is the caller's responsibility.
type AccountStore interface {
	LoadAll() ([]models.Account, error)
	Append(account models.Account) error
}

// PostRepository defines the interface for post data access. Every mutation
// is a full load-all/save-all cycle over the backing document.
type PostRepository interface {
	LoadAll() ([]models.Post, error)
	SaveAll(posts []models.Post) error
	NextID() (int, error)
}

// TagCatalog defines the interface for the read-only tag list.
type TagCatalog interface {
	LoadAll() ([]string, error)
}
