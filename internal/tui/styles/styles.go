package styles

import (
	"strings"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Colors, resolved from a catppuccin flavor by Apply.
var (
	Primary   lipgloss.TerminalColor
	Secondary lipgloss.TerminalColor
	Accent    lipgloss.TerminalColor
	Warning   lipgloss.TerminalColor
	Error     lipgloss.TerminalColor
	Border    lipgloss.TerminalColor
	Text      lipgloss.TerminalColor
	TextMuted lipgloss.TerminalColor
	TextDim   lipgloss.TerminalColor
	Surface   lipgloss.TerminalColor
)

// Text styles
var (
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style
	Highlight lipgloss.Style
	Muted     lipgloss.Style
	Dim       lipgloss.Style
	Playing   lipgloss.Style
	Paused    lipgloss.Style
	ErrorText lipgloss.Style

	// Lyric line styles
	CurrentLine  lipgloss.Style
	PastLine     lipgloss.Style
	NextLine     lipgloss.Style
	FutureLine   lipgloss.Style
	SelectedLine lipgloss.Style
)

// Border styles
var (
	BorderStyle   lipgloss.Style
	FocusedBorder lipgloss.Style
)

func init() {
	Apply("auto")
}

// color picks a flavor color for a theme. "auto" adapts to the terminal
// background, using Latte on light terminals and Mocha on dark ones.
func color(theme string, pick func(catppuccin.Flavor) catppuccin.Color) lipgloss.TerminalColor {
	switch theme {
	case "light":
		return lipgloss.Color(pick(catppuccin.Latte).Hex)
	case "dark":
		return lipgloss.Color(pick(catppuccin.Mocha).Hex)
	default:
		return lipgloss.AdaptiveColor{
			Light: pick(catppuccin.Latte).Hex,
			Dark:  pick(catppuccin.Mocha).Hex,
		}
	}
}

// Apply rebuilds every style for the given theme (auto, dark or light).
func Apply(theme string) {
	Primary = color(theme, catppuccin.Flavor.Mauve)
	Secondary = color(theme, catppuccin.Flavor.Green)
	Accent = color(theme, catppuccin.Flavor.Peach)
	Warning = color(theme, catppuccin.Flavor.Yellow)
	Error = color(theme, catppuccin.Flavor.Red)
	Border = color(theme, catppuccin.Flavor.Surface2)
	Text = color(theme, catppuccin.Flavor.Text)
	TextMuted = color(theme, catppuccin.Flavor.Subtext0)
	TextDim = color(theme, catppuccin.Flavor.Overlay0)
	Surface = color(theme, catppuccin.Flavor.Surface0)

	Title = lipgloss.NewStyle().Bold(true).Foreground(Text)
	Subtitle = lipgloss.NewStyle().Foreground(TextMuted)
	Label = lipgloss.NewStyle().Foreground(TextDim)
	Highlight = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Muted = lipgloss.NewStyle().Foreground(TextMuted)
	Dim = lipgloss.NewStyle().Foreground(TextDim)
	Playing = lipgloss.NewStyle().Foreground(Secondary)
	Paused = lipgloss.NewStyle().Foreground(Warning)
	ErrorText = lipgloss.NewStyle().Foreground(Error)

	CurrentLine = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	PastLine = lipgloss.NewStyle().Foreground(TextDim)
	NextLine = lipgloss.NewStyle().Foreground(Accent)
	FutureLine = lipgloss.NewStyle().Foreground(TextMuted)
	SelectedLine = lipgloss.NewStyle().Background(Surface).Foreground(Text)

	BorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)
	FocusedBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary)
}

// Panel creates a styled panel with optional focus
func Panel(focused bool) lipgloss.Style {
	if focused {
		return FocusedBorder.Padding(0, 1)
	}
	return BorderStyle.Padding(0, 1)
}

// PanelTitle creates a styled panel title
func PanelTitle(title string, focused bool) string {
	style := Label
	if focused {
		style = Highlight
	}
	return style.Render(" " + title + " ")
}

// ProgressBar creates a progress bar string
func ProgressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	filledStyle := lipgloss.NewStyle().Foreground(Primary)
	emptyStyle := lipgloss.NewStyle().Foreground(Border)

	return filledStyle.Render(strings.Repeat("━", filled)) +
		emptyStyle.Render(strings.Repeat("─", width-filled))
}

// StatusIcon returns an icon for playback status
func StatusIcon(playing bool) string {
	if playing {
		return Playing.Render("▶")
	}
	return Paused.Render("⏸")
}
