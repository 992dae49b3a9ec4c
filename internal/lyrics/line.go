// Package lyrics parses timestamped lyrics text and maps playback positions
// to the active line.
//
// Both Parse and Locate are pure: they keep no state between calls, never
// modify their inputs and are safe to call from any goroutine.
package lyrics

import (
	"fmt"
	"strings"
)

// FallbackSpacingMs is the gap given to a line without a time tag, measured
// from the line parsed before it.
const FallbackSpacingMs = 1000

// Line is one unit of a song's text.
type Line struct {
	// TimestampMs is when the line becomes active, in milliseconds from the
	// start of the track.
	TimestampMs int `json:"timestamp_ms"`
	// Text is the line content. Empty text marks a pause or a bare tag.
	Text string `json:"text"`
	// Explicit is true when the source line carried a time tag, false when
	// the timestamp was synthesized.
	Explicit bool `json:"explicit"`
}

// Mode selects the blank line policy of Parse.
type Mode int

const (
	// ModePlayback keeps untagged blank lines as empty placeholders.
	ModePlayback Mode = iota
	// ModeEditorPreview drops untagged blank lines.
	ModeEditorPreview
)

// String returns the canonical name of the mode.
func (m Mode) String() string {
	switch m {
	case ModePlayback:
		return "playback"
	case ModeEditorPreview:
		return "editorPreview"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Set implements pflag.Value so a Mode can be bound directly to a flag.
func (m *Mode) Set(s string) error {
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value.
func (m *Mode) Type() string {
	return "mode"
}

// ParseMode converts a mode name into a Mode. Matching is case-insensitive.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "playback":
		return ModePlayback, nil
	case "editorpreview", "editor-preview", "editor", "preview":
		return ModeEditorPreview, nil
	default:
		return ModePlayback, fmt.Errorf("invalid mode %q (must be playback or editorPreview)", s)
	}
}
