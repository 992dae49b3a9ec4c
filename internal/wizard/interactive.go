package wizard

import (
	"os"

	"github.com/tessro/verse/internal/lyrics"
	"github.com/tessro/verse/internal/store"
	"golang.org/x/term"
)

// Interactive provides interactive fallback functionality.
type Interactive struct {
	enabled bool
}

// NewInteractive creates a new interactive handler.
func NewInteractive() *Interactive {
	return &Interactive{
		enabled: true,
	}
}

// SetEnabled enables or disables interactive mode.
func (i *Interactive) SetEnabled(enabled bool) {
	i.enabled = enabled
}

// IsTerminal returns true if stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// CanInteract returns true if interactive mode is available.
func (i *Interactive) CanInteract() bool {
	return i.enabled && IsTerminal()
}

// PromptLine launches the line picker if interactive mode is available.
// Returns the selected index, or -1 if cancelled or not interactive.
func (i *Interactive) PromptLine(lines []lyrics.Line, active int) (int, error) {
	if !i.CanInteract() || len(lines) == 0 {
		return -1, nil
	}
	return RunLinePicker(lines, active)
}

// PromptEntry launches the stored-track picker if interactive mode is
// available. Returns the selected entry, or nil if cancelled or not
// interactive.
func (i *Interactive) PromptEntry(entries []store.Entry) (*store.Entry, error) {
	if !i.CanInteract() || len(entries) == 0 {
		return nil, nil
	}
	return RunEntryPicker(entries)
}

// NeedsSource returns true if a lyrics source argument is required but
// missing.
func NeedsSource(args []string) bool {
	return len(args) == 0
}
