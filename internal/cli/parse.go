package cli

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tessro/verse/internal/lyrics"
)

var (
	parseMode lyrics.Mode
	parseLRC  bool
)

var _ pflag.Value = (*lyrics.Mode)(nil)

var parseCmd = &cobra.Command{
	Use:   "parse <src>",
	Short: "Parse lyrics into timed lines",
	Long: `Parse lyrics text into a sorted sequence of timed lines.

The source is a file path, "-" for stdin, or "store:<track-id>".

Lines without a time tag are placed one second after the line before them.
In playback mode blank lines are kept as instrumental pauses; in
editorPreview mode they are dropped.

Examples:
  verse parse song.lrc
  verse parse --mode editorPreview song.lrc
  cat song.lrc | verse parse --lrc -`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().Var(&parseMode, "mode", "parse mode (playback or editorPreview)")
	parseCmd.Flags().BoolVar(&parseLRC, "lrc", false, "print lines as LRC with every line tagged")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("mode") {
		parseMode = cfg.ParsedMode()
	}

	src, err := newSourceLoader().Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	lines, err := src.Lines(parseMode)
	if err != nil {
		return err
	}
	logger.Debug("parsed", "source", args[0], "mode", parseMode, "lines", len(lines))

	out := cmd.OutOrStdout()
	switch {
	case JSONOutput():
		return writeJSON(out, lines)
	case parseLRC:
		text, err := lyrics.Format(lines)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, text)
		return err
	}

	t := NewTable(out, "#", "TIME", "TAG", "TEXT")
	for i, l := range lines {
		tag := "implied"
		if l.Explicit {
			tag = "explicit"
		}
		t.Row(strconv.Itoa(i), lyrics.FormatTimestamp(l.TimestampMs), tag, l.Text)
	}
	t.Flush()

	fmt.Fprintf(out, "\n%s (%s mode)\n", english.Plural(len(lines), "line", ""), parseMode)
	return nil
}
