package models

import (
	"errors"
	"time"
)

// Timestamps are persisted as RFC3339 UTC strings so that a lexicographic
// sort over created_at is also a chronological sort.
const TimestampLayout = time.RFC3339

var (
	ErrAlreadyPublished   = errors.New("post is already published")
	ErrAlreadyUnpublished = errors.New("post is already a draft")
)

// Timestamp formats t in the persisted timestamp layout.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	return validate.Struct(p)
}

// Publish moves the post from draft to published. Publishing an already
// published post is rejected, not ignored.
func (p *Post) Publish(now time.Time) error {
	if p.IsPublished {
		return ErrAlreadyPublished
	}
	p.IsPublished = true
	p.UpdatedAt = Timestamp(now)
	return nil
}

// Unpublish moves the post back to draft, symmetric to Publish.
func (p *Post) Unpublish(now time.Time) error {
	if !p.IsPublished {
		return ErrAlreadyUnpublished
	}
	p.IsPublished = false
	p.UpdatedAt = Timestamp(now)
	return nil
}
