package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	verrors "github.com/tessro/verse/internal/errors"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "lyrics.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStorePutGet(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	entry := Entry{
		TrackID: "song-1",
		Title:   "Song",
		Artist:  "Band",
		Body:    "[00:01] hello\n[00:02] world",
	}
	if err := s.Put(ctx, entry); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get(ctx, "song-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Body != entry.Body {
		t.Errorf("Body = %q, want %q", got.Body, entry.Body)
	}
	if got.Title != "Song" || got.Artist != "Band" {
		t.Errorf("Title/Artist = %q/%q, want Song/Band", got.Title, got.Artist)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt is zero")
	}
}

func TestStorePutReplaces(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_ = s.Put(ctx, Entry{TrackID: "a", Body: "old"})
	if err := s.Put(ctx, Entry{TrackID: "a", Body: "new"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Body != "new" {
		t.Errorf("Body = %q, want %q", got.Body, "new")
	}
}

func TestStoreGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(context.Background(), "nope")
	if !errors.Is(err, verrors.ErrTrackNotFound) {
		t.Errorf("Get() error = %v, want ErrTrackNotFound", err)
	}
}

func TestStorePutRequiresID(t *testing.T) {
	s := openTestStore(t)
	if err := s.Put(context.Background(), Entry{TrackID: "  ", Body: "x"}); err == nil {
		t.Error("Put() error = nil, want error for empty id")
	}
}

func TestStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	_ = s.Put(ctx, Entry{TrackID: "older", Body: "a"})
	now = now.Add(time.Minute)
	_ = s.Put(ctx, Entry{TrackID: "newer", Body: "b"})

	entries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("List() len = %d, want 2", len(entries))
	}
	if entries[0].TrackID != "newer" || entries[1].TrackID != "older" {
		t.Errorf("List() order = %s, %s; want newer, older", entries[0].TrackID, entries[1].TrackID)
	}
	if entries[0].Body != "" {
		t.Errorf("List() Body = %q, want omitted", entries[0].Body)
	}

	if err := s.Delete(ctx, "older"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(ctx, "older"); !errors.Is(err, verrors.ErrTrackNotFound) {
		t.Errorf("second Delete() error = %v, want ErrTrackNotFound", err)
	}

	entries, _ = s.List(ctx)
	if len(entries) != 1 {
		t.Errorf("List() len after delete = %d, want 1", len(entries))
	}
}
