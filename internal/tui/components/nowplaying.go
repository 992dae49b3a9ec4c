package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/verse/internal/core"
	"github.com/tessro/verse/internal/tui/styles"
)

// NowPlaying displays the track, progress and sync offset
type NowPlaying struct{}

// NewNowPlaying creates a new NowPlaying component
func NewNowPlaying() *NowPlaying {
	return &NowPlaying{}
}

// Render renders the now playing header
func (n *NowPlaying) Render(state *core.PlaybackState, offsetMs int, follow bool, width int) string {
	if state == nil || state.Track == nil {
		return styles.Muted.Render("Waiting for playback…")
	}

	track := state.Track
	icon := styles.StatusIcon(state.IsPlaying)
	title := styles.Title.Render(track.DisplayName())

	// Progress bar
	progressWidth := width - 16 // Account for times on either side
	if progressWidth < 10 {
		progressWidth = 10
	}
	progressBar := styles.ProgressBar(state.ProgressPercent(), progressWidth)
	progress := fmt.Sprintf("%s %s %s", FormatDuration(state.Progress), progressBar, FormatDuration(track.Duration))

	return lipgloss.JoinVertical(lipgloss.Left,
		icon+" "+title,
		progress,
		n.renderIndicators(offsetMs, follow),
	)
}

func (n *NowPlaying) renderIndicators(offsetMs int, follow bool) string {
	var s string
	if offsetMs != 0 {
		s += styles.Paused.Render(fmt.Sprintf("sync %+.1fs", float64(offsetMs)/1000)) + "  "
	}
	if follow {
		s += styles.Dim.Render("following")
	} else {
		s += styles.Dim.Render("browsing (f to follow)")
	}
	return s
}

// FormatDuration formats a duration as m:ss.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d", m, s)
}
