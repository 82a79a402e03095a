package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements EntryStore on top of a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new postgres-backed entry store
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Insert(ctx context.Context, e NewEntry) (Entry, error) {
	query := `
		INSERT INTO entries (name, note, photos, approved)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	entry := Entry{
		Name:     e.Name,
		Note:     e.Note,
		Photos:   e.Photos,
		Approved: e.Approved,
	}
	if entry.Photos == nil {
		entry.Photos = []string{}
	}
	err := s.pool.QueryRow(ctx, query, e.Name, e.Note, entry.Photos, e.Approved).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to insert entry: %w", err)
	}
	return entry, nil
}

func (s *PostgresStore) ListApproved(ctx context.Context) ([]Entry, error) {
	query := `
		SELECT id, name, note, photos, approved, created_at
		FROM entries
		WHERE approved
		ORDER BY created_at DESC, id DESC
	`
	return s.list(ctx, query)
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]Entry, error) {
	query := `
		SELECT id, name, note, photos, approved, created_at
		FROM entries
		ORDER BY created_at DESC, id DESC
	`
	return s.list(ctx, query)
}

func (s *PostgresStore) list(ctx context.Context, query string) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.Note, &e.Photos, &e.Approved, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		if e.Photos == nil {
			e.Photos = []string{}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	return entries, nil
}

func (s *PostgresStore) SetApproval(ctx context.Context, id int64, approved bool) (Entry, error) {
	query := `
		UPDATE entries
		SET approved = $1
		WHERE id = $2
		RETURNING id, name, note, photos, approved, created_at
	`
	var e Entry
	err := s.pool.QueryRow(ctx, query, approved, id).
		Scan(&e.ID, &e.Name, &e.Note, &e.Photos, &e.Approved, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("failed to update entry approval: %w", err)
	}
	if e.Photos == nil {
		e.Photos = []string{}
	}
	return e, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
