package repositories

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/Steller12/blogging-platform/app/models"
)

// OpenBadger opens a BadgerDB instance at path with logging silenced.
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", path, err)
	}
	return db, nil
}

// loadDoc reads the document stored under key into out. A missing key leaves
// out untouched, matching the empty-store behavior of the file backends.
func loadDoc(db *badger.DB, key string, out interface{}) error {
	return db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalDoc(val, out)
		})
	})
}

// saveDoc overwrites the document stored under key.
func saveDoc(db *badger.DB, key string, doc interface{}) error {
	return db.Update(func(txn *badger.Txn) error {
		data, err := marshalDoc(doc)
		if err != nil {
			return err
		}
		return txn.Set([]byte(key), data)
	})
}

// BadgerPostRepository implements PostRepository over a single BadgerDB
// document, an alternative to the flat-file backend with the same
// load-all/save-all semantics.
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// LoadAll retrieves every post in the repository.
func (r *BadgerPostRepository) LoadAll() ([]models.Post, error) {
	var posts []models.Post
	if err := loadDoc(r.db, PostDocKey, &posts); err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	return posts, nil
}

// SaveAll replaces the full post set.
func (r *BadgerPostRepository) SaveAll(posts []models.Post) error {
	if posts == nil {
		posts = []models.Post{}
	}
	if err := saveDoc(r.db, PostDocKey, posts); err != nil {
		return fmt.Errorf("save posts: %w", err)
	}
	return nil
}

// NextID returns 1 for an empty repository, max(id)+1 otherwise.
func (r *BadgerPostRepository) NextID() (int, error) {
	posts, err := r.LoadAll()
	if err != nil {
		return 0, err
	}
	ids := make([]int, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return nextID(ids), nil
}

// BadgerAccountStore implements AccountStore over a single BadgerDB document.
type BadgerAccountStore struct {
	db *badger.DB
}

// NewBadgerAccountStore creates a new BadgerAccountStore
func NewBadgerAccountStore(db *badger.DB) *BadgerAccountStore {
	return &BadgerAccountStore{db: db}
}

// LoadAll retrieves every account in the store.
func (s *BadgerAccountStore) LoadAll() ([]models.Account, error) {
	var accounts []models.Account
	if err := loadDoc(s.db, AccountDocKey, &accounts); err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	return accounts, nil
}

// Append adds one account to the end of the stored document.
func (s *BadgerAccountStore) Append(account models.Account) error {
	accounts, err := s.LoadAll()
	if err != nil {
		return err
	}
	accounts = append(accounts, account)
	if err := saveDoc(s.db, AccountDocKey, accounts); err != nil {
		return fmt.Errorf("append account: %w", err)
	}
	return nil
}

// BadgerTagCatalog implements TagCatalog over a single BadgerDB document.
type BadgerTagCatalog struct {
	db *badger.DB
}

// NewBadgerTagCatalog creates a new BadgerTagCatalog
func NewBadgerTagCatalog(db *badger.DB) *BadgerTagCatalog {
	return &BadgerTagCatalog{db: db}
}

// LoadAll retrieves the tag list.
func (c *BadgerTagCatalog) LoadAll() ([]string, error) {
	var tags []string
	if err := loadDoc(c.db, TagDocKey, &tags); err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	return tags, nil
}

// SeedTags stores the tag list if none exists yet, so a fresh badger backend
// starts with the same catalog a fresh file backend would.
func (c *BadgerTagCatalog) SeedTags(tags []string) error {
	existing, err := c.LoadAll()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	return saveDoc(c.db, TagDocKey, tags)
}

var (
	_ PostRepository = (*BadgerPostRepository)(nil)
	_ AccountStore   = (*BadgerAccountStore)(nil)
	_ TagCatalog     = (*BadgerTagCatalog)(nil)
)
