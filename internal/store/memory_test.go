package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreInsertAssignsIDs(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	a, err := s.Insert(ctx, NewEntry{Name: "Ana", Note: "hello", Approved: true})
	require.NoError(t, err)
	b, err := s.Insert(ctx, NewEntry{Name: "Ben", Note: "hi", Approved: true})
	require.NoError(t, err)

	require.Equal(t, int64(1), a.ID)
	require.Equal(t, int64(2), b.ID)
	require.False(t, a.CreatedAt.IsZero())
}

func TestMemoryStoreIDsNeverReused(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	a, err := s.Insert(ctx, NewEntry{Name: "Ana", Note: "hello"})
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, a.ID))

	b, err := s.Insert(ctx, NewEntry{Name: "Ben", Note: "hi"})
	require.NoError(t, err)
	require.Greater(t, b.ID, a.ID)
}

func TestMemoryStoreListOrdering(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	times := []time.Time{base, base.Add(time.Hour), base.Add(2 * time.Hour)}
	i := 0
	s.SetClock(func() time.Time { t := times[i]; i++; return t })

	for _, name := range []string{"first", "second", "third"} {
		_, err := s.Insert(ctx, NewEntry{Name: name, Note: "n", Approved: true})
		require.NoError(t, err)
	}

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "third", all[0].Name)
	require.Equal(t, "first", all[2].Name)
}

func TestMemoryStoreListApprovedFilters(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Insert(ctx, NewEntry{Name: "public", Note: "n", Approved: true})
	require.NoError(t, err)
	hidden, err := s.Insert(ctx, NewEntry{Name: "pending", Note: "n", Approved: false})
	require.NoError(t, err)

	approved, err := s.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	require.Equal(t, "public", approved[0].Name)

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	_, err = s.SetApproval(ctx, hidden.ID, true)
	require.NoError(t, err)
	approved, err = s.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, approved, 2)
}

func TestMemoryStorePhotoRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	photos := []string{"http://a/1.jpg"}
	e, err := s.Insert(ctx, NewEntry{Name: "Ana", Note: "n", Photos: photos, Approved: true})
	require.NoError(t, err)
	require.Equal(t, photos, e.Photos)

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, photos, all[0].Photos)

	approved, err := s.ListApproved(ctx)
	require.NoError(t, err)
	require.Equal(t, photos, approved[0].Photos)
}

func TestMemoryStoreNotFound(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.SetApproval(ctx, 5, true)
	require.ErrorIs(t, err, ErrNotFound)

	err = s.Delete(ctx, 5)
	require.ErrorIs(t, err, ErrNotFound)

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}
