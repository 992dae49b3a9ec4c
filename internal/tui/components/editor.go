package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/tessro/verse/internal/lyrics"
	"github.com/tessro/verse/internal/tui/styles"
)

// Editor is a lyrics text editor with a live preview. The preview is a
// fresh editor-preview parse of the text after every change.
type Editor struct {
	input   textarea.Model
	preview []lyrics.Line
	diags   []lyrics.Diagnostic
	last    string
}

// NewEditor creates a new Editor component
func NewEditor() *Editor {
	ta := textarea.New()
	ta.Placeholder = "[00:00.00] First line…"
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	return &Editor{input: ta}
}

// Open loads text into the editor and focuses it.
func (e *Editor) Open(text string) tea.Cmd {
	e.input.SetValue(text)
	e.refresh()
	return e.input.Focus()
}

// Close blurs the editor and returns its text.
func (e *Editor) Close() string {
	e.input.Blur()
	return e.input.Value()
}

// Value returns the current text.
func (e *Editor) Value() string {
	return e.input.Value()
}

// Preview returns the lines parsed from the current text.
func (e *Editor) Preview() []lyrics.Line {
	return e.preview
}

// Update forwards a message to the text area and reparses on change.
func (e *Editor) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	e.refresh()
	return cmd
}

func (e *Editor) refresh() {
	text := e.input.Value()
	if text == e.last && e.preview != nil {
		return
	}
	e.last = text
	e.preview = lyrics.Parse(text, lyrics.ModeEditorPreview)
	e.diags = lyrics.Diagnose(text)
}

// Render renders the editor and preview side by side.
func (e *Editor) Render(width, height int) string {
	editorWidth := width * 55 / 100
	previewWidth := width - editorWidth - 2

	e.input.SetWidth(editorWidth - 4)
	e.input.SetHeight(height - 5)

	left := styles.Panel(true).
		Width(editorWidth).
		Height(height - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			styles.PanelTitle("Edit", true),
			"",
			e.input.View(),
		))

	right := styles.Panel(false).
		Width(previewWidth).
		Height(height - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			styles.PanelTitle("Preview", false),
			"",
			e.renderPreview(previewWidth-4, height-6),
		))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (e *Editor) renderPreview(width, maxLines int) string {
	if len(e.preview) == 0 {
		return styles.Muted.Render("No lyrics yet")
	}

	rows := make([]string, 0, maxLines)
	for i, l := range e.preview {
		if i >= maxLines-1 {
			rows = append(rows, styles.Dim.Render(fmt.Sprintf("… and %d more", len(e.preview)-i)))
			break
		}
		ts := lyrics.FormatTimestamp(l.TimestampMs)
		if !l.Explicit {
			ts = styles.Paused.Render(ts)
		} else {
			ts = styles.Dim.Render(ts)
		}
		text := l.Text
		if text == "" {
			text = pauseMarker
		}
		rows = append(rows, ts+" "+runewidth.Truncate(text, max(width-10, 1), "…"))
	}

	if len(e.diags) > 0 {
		rows = append(rows, "", styles.Paused.Render(summarizeDiagnostics(e.diags)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func summarizeDiagnostics(diags []lyrics.Diagnostic) string {
	counts := make(map[lyrics.DiagnosticKind]int)
	for _, d := range diags {
		counts[d.Kind]++
	}
	var parts []string
	for _, k := range []lyrics.DiagnosticKind{lyrics.DiagUntagged, lyrics.DiagOutOfRange, lyrics.DiagMalformedTag, lyrics.DiagBackwards} {
		if n := counts[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, k))
		}
	}
	return strings.Join(parts, " · ")
}
