package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/tessro/verse/internal/lyrics"
	"github.com/tessro/verse/internal/tui/styles"
)

// pauseMarker stands in for lines with no text.
const pauseMarker = "♪"

// Lyrics displays a scrolling window of lines around the active one.
type Lyrics struct {
	context   int // lines shown either side of the centre line; 0 fills the panel
	showTimes bool
}

// NewLyrics creates a new Lyrics component
func NewLyrics(context int) *Lyrics {
	return &Lyrics{context: context}
}

// ToggleTimes shows or hides line timestamps.
func (l *Lyrics) ToggleTimes() {
	l.showTimes = !l.showTimes
}

// Render renders the lyrics panel. active is the line the position maps to
// and cursor is the line the view centres on; they differ while browsing.
func (l *Lyrics) Render(lines []lyrics.Line, active, cursor, width, height int, focused bool) string {
	title := styles.PanelTitle("Lyrics", focused)

	var content string
	if len(lines) == 0 {
		content = styles.Muted.Render("No lyrics available")
	} else {
		content = l.renderLines(lines, active, cursor, width-4, height-4)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (l *Lyrics) renderLines(lines []lyrics.Line, active, cursor, width, maxLines int) string {
	if l.context > 0 {
		maxLines = min(maxLines, 2*l.context+1)
	}
	if maxLines < 1 {
		maxLines = 1
	}
	if width < 1 {
		width = 1
	}

	center := cursor
	if center < 0 {
		center = active
	}
	half := (maxLines - 1) / 2
	start, end := lyrics.Window(lines, center, half, maxLines-1-half)

	// Keep the centre line in the middle of the panel near the top.
	pad := 0
	if center >= 0 {
		pad = half - (center - start)
	}

	rows := make([]string, 0, maxLines)
	for i := 0; i < pad; i++ {
		rows = append(rows, "")
	}
	for i := start; i < end; i++ {
		rows = append(rows, l.renderLine(lines[i], i, active, cursor, width))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func (l *Lyrics) renderLine(line lyrics.Line, i, active, cursor, width int) string {
	text := line.Text
	if text == "" {
		text = pauseMarker
	}
	if l.showTimes {
		text = fmt.Sprintf("%s  %s", lyrics.FormatTimestamp(line.TimestampMs), text)
	}
	text = runewidth.Truncate(text, width, "…")

	style := LineStyle(i, active)
	if i == cursor && cursor != active {
		style = styles.SelectedLine
	}
	return style.Width(width).Align(lipgloss.Center).Render(text)
}

// LineStyle returns the style for line i given the active index: past lines
// are dim, the active line highlighted, the next line accented.
func LineStyle(i, active int) lipgloss.Style {
	switch {
	case i == active:
		return styles.CurrentLine
	case i < active:
		return styles.PastLine
	case i == active+1:
		return styles.NextLine
	default:
		return styles.FutureLine
	}
}
