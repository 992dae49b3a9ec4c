package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	verrors "github.com/tessro/verse/internal/errors"
	"github.com/tessro/verse/internal/lyrics"
	"github.com/tessro/verse/internal/tail"
	"github.com/tessro/verse/internal/wizard"
)

var (
	locateOffset int
	locatePick   bool
)

var locateCmd = &cobra.Command{
	Use:   "locate <src> <position>...",
	Short: "Show the active line at playback positions",
	Long: `Show which line is active at each playback position.

Positions are mm:ss, mm:ss.fff or milliseconds, and are answered in the
order given. Before the first line nothing is active (index -1).

With --pick, choose a line interactively and print the position to seek
to so that it becomes active.

Examples:
  verse locate song.lrc 00:15 1:02.5 90000
  verse locate --offset 250 song.lrc 00:15
  verse locate --pick song.lrc`,
	Args: func(cmd *cobra.Command, args []string) error {
		if locatePick {
			return cobra.RangeArgs(1, 2)(cmd, args)
		}
		return cobra.MinimumNArgs(2)(cmd, args)
	},
	RunE: runLocate,
}

func init() {
	locateCmd.Flags().IntVarP(&locateOffset, "offset", "o", 0, "sync offset in ms (positive shows lines earlier)")
	locateCmd.Flags().BoolVarP(&locatePick, "pick", "p", false, "pick a line interactively and print its seek position")
	rootCmd.AddCommand(locateCmd)
}

// locateResult is one answered position.
type locateResult struct {
	PositionMs int          `json:"position_ms"`
	Index      int          `json:"index"`
	Line       *lyrics.Line `json:"line"`
}

func runLocate(cmd *cobra.Command, args []string) error {
	src, err := newSourceLoader().Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	lines, err := src.Lines(lyrics.ModePlayback)
	if err != nil {
		return err
	}
	offset := src.offset(cmd.Flags().Changed("offset"), locateOffset)

	if locatePick {
		return runLocatePick(cmd, lines, args[1:], offset)
	}

	// Validate every position before answering any.
	positions := make([]int, 0, len(args)-1)
	for _, arg := range args[1:] {
		pos, err := lyrics.ParsePosition(arg)
		if err != nil {
			return err
		}
		positions = append(positions, pos)
	}

	results := make([]locateResult, 0, len(positions))
	for _, pos := range positions {
		idx := lyrics.Locate(lines, tail.OffsetPosition(pos, offset))
		r := locateResult{PositionMs: pos, Index: idx}
		if idx >= 0 {
			r.Line = &lines[idx]
		}
		results = append(results, r)
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, results)
	}

	t := NewTable(out, "POSITION", "#", "TIME", "TEXT")
	for _, r := range results {
		if r.Line == nil {
			t.Row(lyrics.FormatTimestamp(r.PositionMs), "-1", "", "(before first line)")
			continue
		}
		t.Row(lyrics.FormatTimestamp(r.PositionMs), fmt.Sprint(r.Index),
			lyrics.FormatTimestamp(r.Line.TimestampMs), r.Line.Text)
	}
	t.Flush()
	return nil
}

// runLocatePick lets the user choose a line, starting from the line active
// at the optional position argument, and prints where to seek.
func runLocatePick(cmd *cobra.Command, lines []lyrics.Line, rest []string, offset int) error {
	active := -1
	if len(rest) > 0 {
		pos, err := lyrics.ParsePosition(rest[0])
		if err != nil {
			return err
		}
		active = lyrics.Locate(lines, tail.OffsetPosition(pos, offset))
	}

	interactive := wizard.NewInteractive()
	if !interactive.CanInteract() {
		return verrors.ErrNotTerminal
	}
	idx, err := interactive.PromptLine(lines, active)
	if err != nil {
		return err
	}
	if idx < 0 {
		return nil
	}

	target := max(lines[idx].TimestampMs-offset, 0)
	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, locateResult{PositionMs: target, Index: idx, Line: &lines[idx]})
	}
	fmt.Fprintln(out, lyrics.FormatTimestamp(target))
	return nil
}
