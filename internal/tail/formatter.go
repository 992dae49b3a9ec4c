package tail

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"github.com/tessro/verse/internal/lyrics"
)

// Formatter formats events for output.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
	width         int
	template      *template.Template
	output        *termenv.Output
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables wall-clock timestamp output.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// WithWidth truncates lines to width display cells. Zero disables it.
func WithWidth(width int) FormatterOption {
	return func(f *Formatter) {
		f.width = width
	}
}

// WithTemplate sets a custom format template.
func WithTemplate(tmpl string) FormatterOption {
	return func(f *Formatter) {
		if tmpl != "" {
			t, err := template.New("format").Parse(tmpl)
			if err == nil {
				f.template = t
			}
		}
	}
}

// WithColor styles the active line when w is a terminal. Output to pipes
// and files stays plain.
func WithColor(w io.Writer) FormatterOption {
	return func(f *Formatter) {
		if file, ok := w.(*os.File); ok && isatty.IsTerminal(file.Fd()) {
			f.output = termenv.NewOutput(w)
		}
	}
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		showEmoji:     true,
		showTimestamp: false,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats an event as a string.
func (f *Formatter) Format(e Event) string {
	if f.template != nil {
		return f.formatTemplate(e)
	}
	return f.formatLine(e)
}

// formatLine formats an event as a simple line.
func (f *Formatter) formatLine(e Event) string {
	var parts []string

	// Timestamp
	if f.showTimestamp {
		parts = append(parts, e.Timestamp.Format("15:04:05"))
	}

	// Emoji
	if f.showEmoji {
		parts = append(parts, eventEmoji(e.Type))
	}

	// Position in the track
	parts = append(parts, "["+lyrics.FormatTimestamp(e.Current.PositionMs())+"]")

	prefix := strings.Join(parts, " ") + " "
	desc := f.eventDescription(e)
	if f.width > 0 {
		desc = runewidth.Truncate(desc, max(f.width-runewidth.StringWidth(prefix), 1), "…")
	}
	if e.Type == EventLine && f.output != nil {
		desc = f.output.String(desc).Bold().String()
	}
	return prefix + desc
}

// formatTemplate formats an event using a custom template.
func (f *Formatter) formatTemplate(e Event) string {
	data := templateData{
		Type:      eventTypeName(e.Type),
		Emoji:     eventEmoji(e.Type),
		Timestamp: e.Timestamp,
		Time:      e.Timestamp.Format("15:04:05"),
		Index:     e.Index,
	}

	if e.Line != nil {
		data.Text = e.Line.Text
		data.LineTime = lyrics.FormatTimestamp(e.Line.TimestampMs)
		data.Explicit = e.Line.Explicit
	}

	if e.Current != nil {
		data.Position = lyrics.FormatTimestamp(e.Current.PositionMs())
		if e.Current.Track != nil {
			data.Title = e.Current.Track.Title
			data.Artist = e.Current.Track.Artist
		}
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		return f.formatLine(e)
	}
	return buf.String()
}

type templateData struct {
	Type      string
	Emoji     string
	Timestamp time.Time
	Time      string
	Index     int
	Text      string
	LineTime  string
	Explicit  bool
	Position  string
	Title     string
	Artist    string
}

// eventDescription returns a human-readable description of the event.
func (f *Formatter) eventDescription(e Event) string {
	switch e.Type {
	case EventLine:
		return lineText(e.Line)
	case EventSeek:
		if e.Previous != nil {
			return fmt.Sprintf("Seeked from %s", lyrics.FormatTimestamp(e.Previous.PositionMs()))
		}
		return "Seeked"
	case EventPause:
		return "Paused"
	case EventResume:
		return "Resumed"
	case EventEnd:
		return "End of track"
	default:
		return "Unknown event"
	}
}

// lineText returns the text to show for a line; empty lines show as a pause.
func lineText(l *lyrics.Line) string {
	if l == nil {
		return ""
	}
	if l.Text == "" {
		return "♪"
	}
	return l.Text
}

// eventEmoji returns an emoji for the event type.
func eventEmoji(t EventType) string {
	switch t {
	case EventLine:
		return "🎤"
	case EventSeek:
		return "⏩"
	case EventPause:
		return "⏸️"
	case EventResume:
		return "▶️"
	case EventEnd:
		return "⏹️"
	default:
		return "❓"
	}
}

func (t EventType) String() string {
	return eventTypeName(t)
}

// eventTypeName returns the name of the event type.
func eventTypeName(t EventType) string {
	switch t {
	case EventLine:
		return "line"
	case EventSeek:
		return "seek"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventEnd:
		return "end"
	default:
		return "unknown"
	}
}
