package core

import "time"

// Source indicates where a track's lyrics text came from.
type Source string

const (
	SourceFile  Source = "file"
	SourceStdin Source = "stdin"
	SourceStore Source = "store"
)

// Track represents the song whose lyrics are being followed.
type Track struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Artist   string        `json:"artist"`
	Album    string        `json:"album"`
	Duration time.Duration `json:"duration"`
	Source   Source        `json:"source"`
}

// DisplayName returns "Artist — Title", or whichever of the two is known.
func (t *Track) DisplayName() string {
	if t == nil {
		return ""
	}
	switch {
	case t.Artist != "" && t.Title != "":
		return t.Artist + " — " + t.Title
	case t.Title != "":
		return t.Title
	case t.Artist != "":
		return t.Artist
	default:
		return t.ID
	}
}
