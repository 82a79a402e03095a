package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when an operation targets an entry id that does not exist.
var ErrNotFound = errors.New("entry not found")

// Entry is one guestbook submission.
type Entry struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Note      string    `json:"note"`
	Photos    []string  `json:"photos"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewEntry carries the fields of an entry about to be inserted. The store
// assigns id and created_at.
type NewEntry struct {
	Name     string
	Note     string
	Photos   []string
	Approved bool
}

// EntryStore is the durable record of guestbook entries. Implementations must
// never reuse ids and must order listings by created_at descending.
type EntryStore interface {
	Insert(ctx context.Context, e NewEntry) (Entry, error)
	ListApproved(ctx context.Context) ([]Entry, error)
	ListAll(ctx context.Context) ([]Entry, error)
	SetApproval(ctx context.Context, id int64, approved bool) (Entry, error)
	Delete(ctx context.Context, id int64) error
}
