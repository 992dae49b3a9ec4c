package components

import (
	"strings"
	"testing"
	"time"

	"github.com/tessro/verse/internal/core"
	"github.com/tessro/verse/internal/lyrics"
	"github.com/tessro/verse/internal/tui/styles"
)

func TestLineStyle(t *testing.T) {
	tests := []struct {
		name   string
		i      int
		active int
		want   string
	}{
		{"active", 3, 3, styles.CurrentLine.Render("x")},
		{"past", 1, 3, styles.PastLine.Render("x")},
		{"next", 4, 3, styles.NextLine.Render("x")},
		{"future", 6, 3, styles.FutureLine.Render("x")},
		{"nothing active", 0, -1, styles.NextLine.Render("x")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineStyle(tt.i, tt.active).Render("x"); got != tt.want {
				t.Errorf("LineStyle(%d, %d) rendered %q, want %q", tt.i, tt.active, got, tt.want)
			}
		})
	}
}

func TestLyricsRenderShowsPauseMarker(t *testing.T) {
	lines := []lyrics.Line{
		{TimestampMs: 0, Text: "first"},
		{TimestampMs: 1000, Text: ""},
		{TimestampMs: 2000, Text: "third"},
	}
	out := NewLyrics(0).Render(lines, 1, 1, 40, 12, true)
	for _, want := range []string{"first", pauseMarker, "third"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
}

func TestLyricsRenderContextLimit(t *testing.T) {
	var lines []lyrics.Line
	for i, text := range []string{"l0", "l1", "l2", "l3", "l4", "l5", "l6"} {
		lines = append(lines, lyrics.Line{TimestampMs: i * 1000, Text: text})
	}
	out := NewLyrics(1).Render(lines, 3, 3, 40, 20, true)
	for _, want := range []string{"l2", "l3", "l4"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q", want)
		}
	}
	for _, unwanted := range []string{"l0", "l1", "l5", "l6"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("Render() shows %q outside the context window", unwanted)
		}
	}
}

func TestLyricsRenderEmpty(t *testing.T) {
	out := NewLyrics(0).Render(nil, -1, -1, 40, 10, false)
	if !strings.Contains(out, "No lyrics") {
		t.Errorf("Render() = %q, want a no lyrics message", out)
	}
}

func TestEditorPreview(t *testing.T) {
	e := NewEditor()
	_ = e.Open("[00:02]b\n\n[00:01]a\nno tag\n")

	preview := e.Preview()
	want := []string{"a", "b", "no tag"}
	if len(preview) != len(want) {
		t.Fatalf("Preview() has %d lines, want %d: %+v", len(preview), len(want), preview)
	}
	for i, l := range preview {
		if l.Text != want[i] {
			t.Errorf("Preview()[%d].Text = %q, want %q", i, l.Text, want[i])
		}
	}
	if len(e.diags) != 2 || e.diags[0].Kind != lyrics.DiagBackwards || e.diags[1].Kind != lyrics.DiagUntagged {
		t.Errorf("diagnostics = %+v, want backwards then untagged", e.diags)
	}
	if got := summarizeDiagnostics(e.diags); got != "1 untagged · 1 backwards" {
		t.Errorf("summarizeDiagnostics() = %q", got)
	}
	if got := e.Close(); got != "[00:02]b\n\n[00:01]a\nno tag\n" {
		t.Errorf("Close() = %q", got)
	}
}

func TestNowPlayingRender(t *testing.T) {
	state := &core.PlaybackState{
		Track:     &core.Track{ID: "x", Title: "Yellow", Artist: "Coldplay", Duration: 4 * time.Minute},
		IsPlaying: true,
		Progress:  75 * time.Second,
	}
	out := NewNowPlaying().Render(state, -300, false, 80)
	for _, want := range []string{"Coldplay — Yellow", "1:15", "4:00", "sync -0.3s", "browsing"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}

	if out := NewNowPlaying().Render(nil, 0, true, 80); !strings.Contains(out, "Waiting") {
		t.Errorf("Render(nil) = %q", out)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{61*time.Second + 600*time.Millisecond, "1:02"},
		{62 * time.Minute, "62:00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
