package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/rowanberg/guestbook-server/internal/store"
)

// PhotoDirName is the subdirectory of the output dir holding downloaded
// photo files.
const PhotoDirName = "photos"

// rawBackupName is the structured export written before any rendering, so
// the backup survives a later rendering failure.
const rawBackupName = "entries.json"

// Exporter is the offline batch job that reduces the whole guestbook,
// including photo binaries, to self-contained filesystem artifacts.
type Exporter struct {
	store       store.EntryStore
	resolver    PhotoResolver
	outDir      string
	excludedIDs map[int64]bool
	logger      *zap.SugaredLogger

	// now is swappable in tests; only the export-date stamp depends on it.
	now func() time.Time
}

// NewExporter creates a new exporter writing into outDir. excludedIDs are the
// known seed entries left out of the clean snapshot variants.
func NewExporter(entries store.EntryStore, resolver PhotoResolver, outDir string, excludedIDs []int64, logger *zap.SugaredLogger) *Exporter {
	excluded := make(map[int64]bool, len(excludedIDs))
	for _, id := range excludedIDs {
		excluded[id] = true
	}
	return &Exporter{
		store:       entries,
		resolver:    resolver,
		outDir:      outDir,
		excludedIDs: excluded,
		logger:      logger,
		now:         time.Now,
	}
}

// variant is one filtered rendering of the corpus.
type variant struct {
	Title    string
	FileName string
	Keep     func(store.Entry) bool
}

func (ex *Exporter) variants() []variant {
	notExcluded := func(e store.Entry) bool { return !ex.excludedIDs[e.ID] }
	return []variant{
		{
			Title:    "Guestbook — Full Archive",
			FileName: "guestbook-full.html",
			Keep:     func(store.Entry) bool { return true },
		},
		{
			Title:    "Guestbook",
			FileName: "guestbook-public.html",
			Keep:     func(e store.Entry) bool { return e.Approved },
		},
		{
			Title:    "Guestbook — Full Archive",
			FileName: "guestbook-full-clean.html",
			Keep:     notExcluded,
		},
		{
			Title:    "Guestbook",
			FileName: "guestbook-public-clean.html",
			Keep:     func(e store.Entry) bool { return e.Approved && notExcluded(e) },
		},
	}
}

// Run performs one full export pass. Individual photo failures are logged
// and skipped; the run fails only when the store is unreachable or output
// files cannot be written.
func (ex *Exporter) Run(ctx context.Context) error {
	entries, err := ex.store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch entries: %w", err)
	}

	// Snapshots read chronologically, oldest first, unlike the live feed.
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].ID < entries[j].ID
	})

	photoDir := filepath.Join(ex.outDir, PhotoDirName)
	if err := os.MkdirAll(photoDir, 0755); err != nil {
		return fmt.Errorf("failed to create export directories: %w", err)
	}

	if err := ex.writeRawBackup(entries); err != nil {
		return err
	}

	photos := ex.resolvePhotos(ctx, entries)

	exportedAt := ex.now()
	for _, v := range ex.variants() {
		kept := []store.Entry{}
		for _, e := range entries {
			if v.Keep(e) {
				kept = append(kept, e)
			}
		}

		doc, photoCount, err := renderSnapshot(v.Title, kept, photos, exportedAt)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", v.FileName, err)
		}
		path := filepath.Join(ex.outDir, v.FileName)
		if err := os.WriteFile(path, doc, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", v.FileName, err)
		}

		ex.logger.Infow("snapshot written",
			"file", v.FileName,
			"entries", len(kept),
			"photos", photoCount,
			"bytes", len(doc),
		)
	}

	return nil
}

// resolvePhotos fetches or reads every photo, preserving per-entry order.
// Failures are recorded and the photo is simply omitted.
func (ex *Exporter) resolvePhotos(ctx context.Context, entries []store.Entry) map[int64][]EmbeddedImage {
	photos := make(map[int64][]EmbeddedImage)
	for _, e := range entries {
		for i, url := range e.Photos {
			img, err := ex.resolver.Resolve(ctx, e.ID, i+1, url)
			if err != nil {
				ex.logger.Warnw("failed to resolve photo, omitting",
					"entry_id", e.ID,
					"photo", i+1,
					"url", url,
					"error", err,
				)
				continue
			}
			photos[e.ID] = append(photos[e.ID], img)
		}
	}
	return photos
}

// writeRawBackup persists the structured export of every entry, original
// photo URLs included, independent of rendering.
func (ex *Exporter) writeRawBackup(entries []store.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}
	path := filepath.Join(ex.outDir, rawBackupName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", rawBackupName, err)
	}
	ex.logger.Infow("raw backup written", "file", rawBackupName, "entries", len(entries))
	return nil
}

// SetClock replaces the export-date source. Test use only.
func (ex *Exporter) SetClock(now func() time.Time) {
	ex.now = now
}
