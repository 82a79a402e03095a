package guestbook

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rowanberg/guestbook-server/internal/store"
)

// fakeIngestor returns a deterministic URL per call and can be told to fail
// on specific photo indexes.
type fakeIngestor struct {
	calls    int
	failOn   map[int]bool
	ingested []string
}

func (f *fakeIngestor) Ingest(_ context.Context, data []byte, mimeType string) (string, error) {
	call := f.calls
	f.calls++
	if f.failOn[call] {
		return "", errors.New("upload failed")
	}
	url := fmt.Sprintf("http://media.test/photo-%d.jpg", call)
	f.ingested = append(f.ingested, url)
	return url, nil
}

func newTestService(ingestor Ingestor) (*Service, *store.MemoryStore) {
	s := store.NewMemoryStore()
	return NewService(s, ingestor, nil, zap.NewNop().Sugar()), s
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name    string
		in      SubmitInput
		wantErr string
	}{
		{"missing name", SubmitInput{Note: "hi"}, "name is required"},
		{"missing note", SubmitInput{Name: "Ana"}, "note is required"},
		{"name too long", SubmitInput{Name: strings.Repeat("x", 121), Note: "hi"}, "at most 120"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, entries := newTestService(nil)
			_, err := svc.Submit(context.Background(), tt.in)
			require.ErrorIs(t, err, ErrValidation)
			require.Contains(t, err.Error(), tt.wantErr)

			// No entry may be created on validation failure.
			all, err := entries.ListAll(context.Background())
			require.NoError(t, err)
			require.Empty(t, all)
		})
	}
}

func TestSubmitNameBoundary(t *testing.T) {
	svc, _ := newTestService(nil)

	entry, err := svc.Submit(context.Background(), SubmitInput{
		Name: strings.Repeat("x", 120),
		Note: "hello",
	})
	require.NoError(t, err)
	require.True(t, entry.Approved)
	require.Empty(t, entry.Photos)
}

func TestSubmitPrivateCreatesUnapproved(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	entry, err := svc.Submit(ctx, SubmitInput{Name: "Ana", Note: "just for you", Private: true})
	require.NoError(t, err)
	require.False(t, entry.Approved)

	feed, err := svc.PublicFeed(ctx)
	require.NoError(t, err)
	require.Empty(t, feed)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestSubmitPublicAppearsInFeed(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	entry, err := svc.Submit(ctx, SubmitInput{Name: "Alex & Jo", Note: "Congrats!<3"})
	require.NoError(t, err)
	require.True(t, entry.Approved)
	require.Empty(t, entry.Photos)

	feed, err := svc.PublicFeed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	require.Equal(t, "Alex & Jo", feed[0].Name)
	require.Equal(t, "Congrats!<3", feed[0].Note)
}

func TestSubmitPartialPhotoFailure(t *testing.T) {
	ingestor := &fakeIngestor{failOn: map[int]bool{1: true}}
	svc, _ := newTestService(ingestor)

	photos := []PhotoUpload{
		{Data: []byte("a"), MimeType: "image/jpeg"},
		{Data: []byte("b"), MimeType: "image/jpeg"},
		{Data: []byte("c"), MimeType: "image/jpeg"},
	}
	entry, err := svc.Submit(context.Background(), SubmitInput{Name: "Ana", Note: "pics", Photos: photos})
	require.NoError(t, err)

	// Failed photo is dropped, the surviving ones keep submission order.
	require.Len(t, entry.Photos, 2)
	require.Equal(t, ingestor.ingested, entry.Photos)
}

func TestSubmitCapsPhotosAtFive(t *testing.T) {
	ingestor := &fakeIngestor{}
	svc, _ := newTestService(ingestor)

	photos := make([]PhotoUpload, 7)
	for i := range photos {
		photos[i] = PhotoUpload{Data: []byte("x"), MimeType: "image/jpeg"}
	}
	entry, err := svc.Submit(context.Background(), SubmitInput{Name: "Ana", Note: "pics", Photos: photos})
	require.NoError(t, err)
	require.Len(t, entry.Photos, 5)
}

func TestFeedOrderingNewestFirst(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		_, err := svc.Submit(ctx, SubmitInput{Name: name, Note: "n"})
		require.NoError(t, err)
	}

	feed, err := svc.PublicFeed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	require.Equal(t, "third", feed[0].Name)
	require.Equal(t, "first", feed[2].Name)
}

func TestModerationNotFound(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	_, err := svc.SetApproval(ctx, 5, true)
	require.ErrorIs(t, err, store.ErrNotFound)

	err = svc.Remove(ctx, 5)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestApprovalFlipMakesEntryVisible(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	entry, err := svc.Submit(ctx, SubmitInput{Name: "Ana", Note: "n", Private: true})
	require.NoError(t, err)

	updated, err := svc.SetApproval(ctx, entry.ID, true)
	require.NoError(t, err)
	require.True(t, updated.Approved)

	feed, err := svc.PublicFeed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)

	require.NoError(t, svc.Remove(ctx, entry.ID))
	feed, err = svc.PublicFeed(ctx)
	require.NoError(t, err)
	require.Empty(t, feed)
}
