package wizard

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/tessro/verse/internal/store"
)

// EntryModel is the bubbletea model for picking a stored track. Typing
// filters the list by track ID, title and artist.
type EntryModel struct {
	input    textinput.Model
	entries  []store.Entry
	matches  []int
	cursor   int
	selected *store.Entry
	width    int
	height   int
}

// Styles
var (
	entryTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	entryItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	entrySelectedStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Background(lipgloss.Color("237"))

	entrySubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))
)

// NewEntryModel creates a new stored-track picker model.
func NewEntryModel(entries []store.Entry) EntryModel {
	ti := textinput.New()
	ti.Placeholder = "Filter by title, artist or ID..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 50

	m := EntryModel{
		input:   ti,
		entries: entries,
		width:   80,
		height:  20,
	}
	m.filter()
	return m
}

// Init initializes the model.
func (m EntryModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m EntryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			if m.cursor < len(m.matches) {
				e := m.entries[m.matches[m.cursor]]
				m.selected = &e
				return m, tea.Quit
			}
			return m, nil

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	prev := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != prev {
		m.filter()
	}
	return m, cmd
}

func (m *EntryModel) filter() {
	query := strings.ToLower(strings.TrimSpace(m.input.Value()))
	m.matches = make([]int, 0, len(m.entries))
	for i, e := range m.entries {
		if query == "" || matchesEntry(e, query) {
			m.matches = append(m.matches, i)
		}
	}
	m.cursor = 0
}

func matchesEntry(e store.Entry, query string) bool {
	for _, field := range []string{e.TrackID, e.Title, e.Artist} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// View renders the model.
func (m EntryModel) View() string {
	var b strings.Builder

	b.WriteString(entryTitleStyle.Render("📚 Stored Lyrics"))
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.matches) == 0 {
		b.WriteString("No matching tracks")
		b.WriteString("\n")
	} else {
		maxResults := max(m.height-8, 5)
		for i, idx := range m.matches {
			if i >= maxResults {
				b.WriteString(entrySubtitleStyle.Render("  ...and more"))
				b.WriteString("\n")
				break
			}

			e := m.entries[idx]
			line := entryLabel(e)
			line += " " + entrySubtitleStyle.Render(e.TrackID+", "+humanize.Time(e.UpdatedAt))

			if i == m.cursor {
				b.WriteString(entrySelectedStyle.Render("▸ " + line))
			} else {
				b.WriteString(entryItemStyle.Render("  " + line))
			}
			b.WriteString("\n")
		}
	}

	// Help
	b.WriteString("\n")
	b.WriteString(entrySubtitleStyle.Render("↑/↓ navigate • enter select • esc quit"))

	return b.String()
}

func entryLabel(e store.Entry) string {
	switch {
	case e.Artist != "" && e.Title != "":
		return e.Artist + " — " + e.Title
	case e.Title != "":
		return e.Title
	default:
		return e.TrackID
	}
}

// Selected returns the selected entry, or nil if none.
func (m EntryModel) Selected() *store.Entry {
	return m.selected
}

// RunEntryPicker runs the stored-track picker and returns the selected
// entry, or nil if cancelled.
func RunEntryPicker(entries []store.Entry) (*store.Entry, error) {
	model := NewEntryModel(entries)
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	return finalModel.(EntryModel).Selected(), nil
}
