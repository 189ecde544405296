package repositories

import "errors"

var (
	ErrNotFound = errors.New("record not found")
)

// nextID derives the next post id from the records currently on disk:
// 1 for an empty repository, max(id)+1 otherwise. Ids freed by deletion
// can therefore be reissued; that matches the persisted-file semantics.
func nextID(ids []int) int {
	next := 1
	for _, id := range ids {
		if id >= next {
			next = id + 1
		}
	}
	return next
}
