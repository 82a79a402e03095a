package guestbook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rowanberg/guestbook-server/internal/store"
)

// MaxPhotosPerEntry bounds how many photos one submission may carry.
const MaxPhotosPerEntry = 5

// MaxNameLength bounds the submitter name.
const MaxNameLength = 120

const (
	feedCacheKey = "guestbook:public_feed"
	feedCacheTTL = 5 * time.Minute
)

// ErrValidation is returned for user-correctable input problems. The wrapped
// message is safe to surface to the caller.
var ErrValidation = errors.New("validation failed")

// PhotoUpload is one uploaded file as received by the accepting layer.
type PhotoUpload struct {
	Data     []byte
	MimeType string
}

// SubmitInput carries a visitor submission.
type SubmitInput struct {
	Name    string
	Note    string
	Photos  []PhotoUpload
	Private bool
}

// FeedEntry is the public projection of an entry; the approval flag is
// omitted since every served entry is approved.
type FeedEntry struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Note      string    `json:"note"`
	Photos    []string  `json:"photos"`
	CreatedAt time.Time `json:"createdAt"`
}

// Ingestor is the slice of media ingest the service needs.
type Ingestor interface {
	Ingest(ctx context.Context, data []byte, mimeType string) (string, error)
}

// Service implements submission, moderation and the public feed over an
// entry store and a media ingestor.
type Service struct {
	store    store.EntryStore
	ingestor Ingestor
	redis    *redis.Client // optional feed cache; nil disables caching
	logger   *zap.SugaredLogger
}

// NewService creates a new guestbook service
func NewService(entries store.EntryStore, ingestor Ingestor, redisClient *redis.Client, logger *zap.SugaredLogger) *Service {
	return &Service{
		store:    entries,
		ingestor: ingestor,
		redis:    redisClient,
		logger:   logger,
	}
}

// Submit validates a visitor submission, ingests its photos and creates the
// entry. Individual photo failures are logged and dropped; the submission
// itself only fails on invalid name/note or a store error.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (store.Entry, error) {
	if in.Name == "" {
		return store.Entry{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if len(in.Name) > MaxNameLength {
		return store.Entry{}, fmt.Errorf("%w: name must be at most %d characters", ErrValidation, MaxNameLength)
	}
	if in.Note == "" {
		return store.Entry{}, fmt.Errorf("%w: note is required", ErrValidation)
	}

	photos := in.Photos
	if len(photos) > MaxPhotosPerEntry {
		photos = photos[:MaxPhotosPerEntry]
	}

	urls := []string{}
	for i, p := range photos {
		if s.ingestor == nil {
			s.logger.Warnw("no media ingestor configured, dropping photo", "index", i)
			continue
		}
		url, err := s.ingestor.Ingest(ctx, p.Data, p.MimeType)
		if err != nil {
			s.logger.Warnw("photo ingest failed, dropping photo",
				"index", i,
				"mime_type", p.MimeType,
				"size", len(p.Data),
				"error", err,
			)
			continue
		}
		urls = append(urls, url)
	}

	entry, err := s.store.Insert(ctx, store.NewEntry{
		Name:     in.Name,
		Note:     in.Note,
		Photos:   urls,
		Approved: !in.Private,
	})
	if err != nil {
		return store.Entry{}, err
	}

	s.invalidateFeedCache(ctx)
	return entry, nil
}

// PublicFeed returns approved entries, newest first, without the approval flag.
func (s *Service) PublicFeed(ctx context.Context) ([]FeedEntry, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, feedCacheKey).Result()
		if err == nil {
			var feed []FeedEntry
			if err := json.Unmarshal([]byte(cached), &feed); err == nil {
				return feed, nil
			}
		}
	}

	entries, err := s.store.ListApproved(ctx)
	if err != nil {
		return nil, err
	}

	feed := make([]FeedEntry, 0, len(entries))
	for _, e := range entries {
		feed = append(feed, FeedEntry{
			ID:        e.ID,
			Name:      e.Name,
			Note:      e.Note,
			Photos:    e.Photos,
			CreatedAt: e.CreatedAt,
		})
	}

	if s.redis != nil {
		if data, err := json.Marshal(feed); err == nil {
			if err := s.redis.Set(ctx, feedCacheKey, data, feedCacheTTL).Err(); err != nil {
				s.logger.Warnw("failed to cache public feed", "error", err)
			}
		}
	}
	return feed, nil
}

// ListAll returns every entry, newest first, including unapproved ones.
func (s *Service) ListAll(ctx context.Context) ([]store.Entry, error) {
	return s.store.ListAll(ctx)
}

// SetApproval flips an entry's visibility. Returns store.ErrNotFound for
// unknown ids.
func (s *Service) SetApproval(ctx context.Context, id int64, approved bool) (store.Entry, error) {
	entry, err := s.store.SetApproval(ctx, id, approved)
	if err != nil {
		return store.Entry{}, err
	}
	s.invalidateFeedCache(ctx)
	return entry, nil
}

// Remove permanently deletes an entry. Externally stored photos are left in
// place; orphaned objects are an accepted operational cost.
func (s *Service) Remove(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateFeedCache(ctx)
	return nil
}

func (s *Service) invalidateFeedCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, feedCacheKey).Err(); err != nil {
		s.logger.Warnw("failed to invalidate feed cache", "error", err)
	}
}
