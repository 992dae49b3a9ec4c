package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tessro/verse/internal/clock"
	verrors "github.com/tessro/verse/internal/errors"
	"github.com/tessro/verse/internal/logging"
	"github.com/tessro/verse/internal/lyrics"
	"github.com/tessro/verse/internal/store"
	"github.com/tessro/verse/internal/tui"
	"github.com/tessro/verse/internal/wizard"
)

var (
	tuiRefresh int
	tuiOffset  int
	tuiTrackID string
	tuiTheme   string
)

var tuiCmd = &cobra.Command{
	Use:     "ui [src]",
	Aliases: []string{"tui"},
	Short:   "Launch the interactive lyrics view",
	Long: `Launch the interactive lyrics view.

Without a source, pick one of the stored tracks.

The view provides:
  • Now Playing - track, progress and sync offset
  • Lyrics - the active line with the lines around it
  • Editor - edit the lyrics with a live preview

Keyboard shortcuts:
  q, Ctrl+C    Quit
  ?            Help
  Space        Play/Pause
  ←/→          Seek
  ↑/↓          Browse lines
  Enter        Seek to selected line
  f            Follow playback
  +/-          Sync offset
  e            Edit lyrics
  y            Copy as LRC`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().IntVar(&tuiRefresh, "refresh", 0, "refresh interval in milliseconds (default from config)")
	tuiCmd.Flags().IntVarP(&tuiOffset, "offset", "o", 0, "sync offset in ms (positive shows lines earlier)")
	tuiCmd.Flags().StringVar(&tuiTrackID, "id", "", "track ID to save edits under")
	tuiCmd.Flags().StringVar(&tuiTheme, "theme", "", "color theme: auto, dark or light (default from config)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !wizard.IsTerminal() {
		return verrors.ErrNotTerminal
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	src, err := tuiSource(cmd, st, args)
	if err != nil {
		return err
	}
	if src == nil {
		return nil
	}

	track := src.Track
	if tuiTrackID != "" {
		track.ID = tuiTrackID
	}
	if track.Duration == 0 {
		if lines := lyrics.Parse(src.Text, lyrics.ModePlayback); len(lines) > 0 {
			track.Duration = time.Duration(lines[len(lines)-1].TimestampMs)*time.Millisecond + trailingTime
		}
	}

	refresh := tuiRefresh
	if refresh <= 0 {
		refresh = cfg.TUI.RefreshInterval
	}
	theme := tuiTheme
	if theme == "" {
		theme = cfg.TUI.Theme
	}

	// Log output would corrupt the screen
	uiLogger := logger
	if cfg.Log.File == "" {
		uiLogger = logging.Discard()
	}

	return tui.Run(tui.Options{
		Player:   clock.New(track),
		Track:    track,
		Text:     src.Text,
		OffsetMs: src.offset(cmd.Flags().Changed("offset"), tuiOffset),
		Refresh:  time.Duration(refresh) * time.Millisecond,
		SeekStep: time.Duration(cfg.TUI.SeekStep) * time.Millisecond,
		Context:  cfg.TUI.Context,
		Theme:    theme,
		Store:    st,
		Logger:   uiLogger,
	})
}

// tuiSource loads the source argument, or lets the user pick a stored
// track. It returns nil if the picker was cancelled.
func tuiSource(cmd *cobra.Command, st *store.Store, args []string) (*source, error) {
	if !wizard.NeedsSource(args) {
		return newSourceLoader().Load(cmd.Context(), args[0])
	}

	entries, err := st.List(cmd.Context())
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, verrors.WithSuggestion(
			fmt.Errorf("no stored lyrics"),
			"Pass a lyrics file, or add one with 'verse store put <track-id> <file>'")
	}

	picked, err := wizard.NewInteractive().PromptEntry(entries)
	if err != nil || picked == nil {
		return nil, err
	}

	// List omits bodies
	entry, err := st.Get(cmd.Context(), picked.TrackID)
	if err != nil {
		return nil, err
	}
	return sourceFromEntry(entry), nil
}
