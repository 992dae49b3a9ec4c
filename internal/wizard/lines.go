package wizard

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/tessro/verse/internal/lyrics"
)

// LineModel is the bubbletea model for the lyric line picker.
type LineModel struct {
	lines    []lyrics.Line
	active   int
	cursor   int
	selected int
	width    int
	height   int
}

// Styles for the line picker
var (
	lineTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	lineItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	lineSelectedStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Background(lipgloss.Color("237"))

	lineActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	lineTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// NewLineModel creates a new line picker model. The cursor starts on the
// active line, or the first line when none is active.
func NewLineModel(lines []lyrics.Line, active int) LineModel {
	return LineModel{
		lines:    lines,
		active:   active,
		cursor:   max(active, 0),
		selected: -1,
		width:    80,
		height:   20,
	}
}

// Init initializes the model.
func (m LineModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit

		case "enter", " ":
			if m.cursor < len(m.lines) {
				m.selected = m.cursor
				return m, tea.Quit
			}

		case "up", "k", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j", "ctrl+n":
			if m.cursor < len(m.lines)-1 {
				m.cursor++
			}

		case "home", "g":
			m.cursor = 0

		case "end", "G":
			m.cursor = max(len(m.lines)-1, 0)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the model.
func (m LineModel) View() string {
	var b strings.Builder

	b.WriteString(lineTitleStyle.Render("🎤 Select Line"))
	b.WriteString("\n\n")

	if len(m.lines) == 0 {
		b.WriteString(lineTimeStyle.Render("No lyrics"))
		b.WriteString("\n")
	} else {
		visible := max(m.height-6, 3)
		start, end := lyrics.Window(m.lines, m.cursor, visible/2, visible-visible/2-1)
		for i := start; i < end; i++ {
			b.WriteString(m.renderLine(i))
			b.WriteString("\n")
		}
	}

	// Help
	b.WriteString("\n")
	b.WriteString(lineTimeStyle.Render("↑/↓ navigate • enter select • esc quit"))
	b.WriteString("\n")
	b.WriteString(lineActiveStyle.Render("● ") + lineTimeStyle.Render("current line"))

	return b.String()
}

func (m LineModel) renderLine(i int) string {
	l := m.lines[i]

	var line strings.Builder
	if i == m.active {
		line.WriteString(lineActiveStyle.Render("● "))
	} else {
		line.WriteString("  ")
	}
	line.WriteString(lineTimeStyle.Render(lyrics.FormatTimestamp(l.TimestampMs)))
	line.WriteString(" ")

	text := l.Text
	if text == "" {
		text = "♪"
	}
	line.WriteString(runewidth.Truncate(text, max(m.width-20, 10), "…"))

	if i == m.cursor {
		return lineSelectedStyle.Render("▸ " + line.String())
	}
	return lineItemStyle.Render("  " + line.String())
}

// Selected returns the selected line index, or -1 if none.
func (m LineModel) Selected() int {
	return m.selected
}

// RunLinePicker runs the line picker and returns the selected index, or -1
// if cancelled.
func RunLinePicker(lines []lyrics.Line, active int) (int, error) {
	model := NewLineModel(lines, active)
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return -1, err
	}
	return finalModel.(LineModel).Selected(), nil
}
