package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory EntryStore used in tests and local development.
// It mirrors the postgres semantics: monotonic ids that are never reused,
// listings ordered by created_at descending.
type MemoryStore struct {
	mu      sync.Mutex
	nextID  int64
	entries map[int64]Entry
	// now is swappable so tests can control created_at.
	now func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:  1,
		entries: make(map[int64]Entry),
		now:     time.Now,
	}
}

// SetClock replaces the timestamp source. Test use only.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *MemoryStore) Insert(_ context.Context, e NewEntry) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := Entry{
		ID:        s.nextID,
		Name:      e.Name,
		Note:      e.Note,
		Photos:    append([]string{}, e.Photos...),
		Approved:  e.Approved,
		CreatedAt: s.now(),
	}
	s.nextID++
	s.entries[entry.ID] = entry
	return entry, nil
}

func (s *MemoryStore) ListApproved(ctx context.Context) ([]Entry, error) {
	return s.list(func(e Entry) bool { return e.Approved }), nil
}

func (s *MemoryStore) ListAll(ctx context.Context) ([]Entry, error) {
	return s.list(func(Entry) bool { return true }), nil
}

func (s *MemoryStore) list(keep func(Entry) bool) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []Entry{}
	for _, e := range s.entries {
		if keep(e) {
			e.Photos = append([]string{}, e.Photos...)
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (s *MemoryStore) SetApproval(_ context.Context, id int64, approved bool) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	e.Approved = approved
	s.entries[id] = e
	e.Photos = append([]string{}, e.Photos...)
	return e, nil
}

func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}
