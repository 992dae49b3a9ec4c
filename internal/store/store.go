// Package store persists raw lyrics text in a local SQLite database.
// Parsed sequences are never stored; they are rebuilt from text on load.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	verrors "github.com/tessro/verse/internal/errors"
	_ "modernc.org/sqlite"
)

// Entry is the raw lyrics text stored for one track.
type Entry struct {
	TrackID   string    `json:"track_id"`
	Title     string    `json:"title"`
	Artist    string    `json:"artist"`
	Body      string    `json:"body"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is a SQLite-backed lyrics text store.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS lyrics (
	track_id TEXT PRIMARY KEY,
	title TEXT NOT NULL DEFAULT '',
	artist TEXT NOT NULL DEFAULT '',
	body TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_lyrics_updated_at ON lyrics(updated_at);
`

// Open opens (creating if needed) the store at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps writes serialized without busy retries.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put inserts or replaces the entry for e.TrackID.
func (s *Store) Put(ctx context.Context, e Entry) error {
	if strings.TrimSpace(e.TrackID) == "" {
		return errors.New("track id must not be empty")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO lyrics (track_id, title, artist, body, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(track_id) DO UPDATE SET
			title = excluded.title,
			artist = excluded.artist,
			body = excluded.body,
			updated_at = excluded.updated_at`,
		e.TrackID, e.Title, e.Artist, e.Body, s.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", e.TrackID, err)
	}
	return nil
}

// Get returns the entry for trackID, or an error wrapping ErrTrackNotFound.
func (s *Store) Get(ctx context.Context, trackID string) (*Entry, error) {
	var e Entry
	var updated int64
	err := s.db.QueryRowContext(ctx,
		"SELECT track_id, title, artist, body, updated_at FROM lyrics WHERE track_id = ?", trackID).
		Scan(&e.TrackID, &e.Title, &e.Artist, &e.Body, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", trackID, verrors.ErrTrackNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", trackID, err)
	}
	e.UpdatedAt = time.UnixMilli(updated)
	return &e, nil
}

// List returns all entries, most recently updated first. Bodies are omitted.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT track_id, title, artist, updated_at FROM lyrics ORDER BY updated_at DESC, track_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list lyrics: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var updated int64
		if err := rows.Scan(&e.TrackID, &e.Title, &e.Artist, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		e.UpdatedAt = time.UnixMilli(updated)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes the entry for trackID. Deleting a missing track returns an
// error wrapping ErrTrackNotFound.
func (s *Store) Delete(ctx context.Context, trackID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM lyrics WHERE track_id = ?", trackID)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", trackID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", trackID, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", trackID, verrors.ErrTrackNotFound)
	}
	return nil
}
