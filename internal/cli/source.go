package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tessro/verse/internal/core"
	verrors "github.com/tessro/verse/internal/errors"
	"github.com/tessro/verse/internal/lyrics"
	"github.com/tessro/verse/internal/store"
)

// storePrefix marks a source argument that names a stored track.
const storePrefix = "store:"

// source is lyrics text together with the track it belongs to.
type source struct {
	Text  string
	Track *core.Track
	Meta  lyrics.Metadata
}

// Lines parses the source text. An empty result is reported as
// ErrNoLyrics so commands never operate on nothing.
func (s *source) Lines(mode lyrics.Mode) ([]lyrics.Line, error) {
	lines := lyrics.Parse(s.Text, mode)
	if len(lines) == 0 {
		return nil, fmt.Errorf("%s: %w", s.Track.DisplayName(), verrors.ErrNoLyrics)
	}
	return lines, nil
}

// sourceLoader resolves source arguments: a file path, "-" for stdin, or
// "store:<track-id>".
type sourceLoader struct {
	stdin     io.Reader
	storePath string
}

func newSourceLoader() *sourceLoader {
	return &sourceLoader{
		stdin:     os.Stdin,
		storePath: cfg.Store.Path,
	}
}

func (l *sourceLoader) Load(ctx context.Context, arg string) (*source, error) {
	switch {
	case arg == "-":
		data, err := io.ReadAll(l.stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return newSource(string(data), &core.Track{ID: "stdin", Source: core.SourceStdin}), nil

	case strings.HasPrefix(arg, storePrefix):
		id := strings.TrimPrefix(arg, storePrefix)
		if id == "" {
			return nil, fmt.Errorf("%q: missing track ID", arg)
		}
		return l.loadStored(ctx, id)

	default:
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, err
		}
		id := strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
		return newSource(string(data), &core.Track{ID: id, Source: core.SourceFile}), nil
	}
}

func (l *sourceLoader) loadStored(ctx context.Context, id string) (*source, error) {
	st, err := store.Open(l.storePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = st.Close() }()

	entry, err := st.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return sourceFromEntry(entry), nil
}

func sourceFromEntry(e *store.Entry) *source {
	return newSource(e.Body, &core.Track{
		ID:     e.TrackID,
		Title:  e.Title,
		Artist: e.Artist,
		Source: core.SourceStore,
	})
}

// newSource fills in track details from the text's ID tags where the
// caller did not already know them.
func newSource(text string, track *core.Track) *source {
	meta := lyrics.ParseMetadata(text)
	if track.Title == "" {
		track.Title = meta.Title
	}
	if track.Artist == "" {
		track.Artist = meta.Artist
	}
	if track.Album == "" {
		track.Album = meta.Album
	}
	if track.Duration == 0 && meta.LengthMs > 0 {
		track.Duration = time.Duration(meta.LengthMs) * time.Millisecond
	}
	return &source{Text: text, Track: track, Meta: meta}
}

// offset returns the sync offset for this source: the flag value when the
// user set one, otherwise the configured offset plus any [offset:] tag.
func (s *source) offset(flagSet bool, flagValue int) int {
	if flagSet {
		return flagValue
	}
	return cfg.Lyrics.OffsetMs + s.Meta.OffsetMs
}
