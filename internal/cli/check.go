package cli

import (
	"fmt"

	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"
	verrors "github.com/tessro/verse/internal/errors"
	"github.com/tessro/verse/internal/lyrics"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check <src>...",
	Short: "Report problems in lyrics files",
	Long: `Check lyrics for problems that parse silently works around:
content lines without a time tag, seconds of 60 or more, malformed tags,
and tags that go backwards.

Every source is checked even if some fail to load.

Examples:
  verse check song.lrc
  verse check --strict lyrics/*.lrc`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "fail if any problems are found")
	rootCmd.AddCommand(checkCmd)
}

// checkReport is the result of checking one source.
type checkReport struct {
	Source      string              `json:"source"`
	Lines       int                 `json:"lines"`
	Diagnostics []lyrics.Diagnostic `json:"diagnostics"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	loader := newSourceLoader()
	result := &verrors.PartialResult[[]checkReport]{}

	for _, arg := range args {
		src, err := loader.Load(cmd.Context(), arg)
		if err != nil {
			result.AddError(fmt.Errorf("%s: %w", arg, err))
			continue
		}
		result.Data = append(result.Data, checkReport{
			Source:      arg,
			Lines:       len(lyrics.Parse(src.Text, lyrics.ModeEditorPreview)),
			Diagnostics: lyrics.Diagnose(src.Text),
		})
	}

	out := cmd.OutOrStdout()
	problems := 0
	if JSONOutput() {
		if err := writeJSON(out, result.Data); err != nil {
			return err
		}
		for _, r := range result.Data {
			problems += len(r.Diagnostics)
		}
	} else {
		for _, r := range result.Data {
			problems += len(r.Diagnostics)
			fmt.Fprintf(out, "%s: %s, %s\n", r.Source,
				english.Plural(r.Lines, "line", ""),
				english.Plural(len(r.Diagnostics), "problem", ""))
			for _, d := range r.Diagnostics {
				fmt.Fprintf(out, "  %s\n", d)
			}
		}
	}

	if result.HasErrors() {
		logger.Debug("check failed", "sources", len(args), "errors", len(result.Errors))
		return result.Err()
	}
	if checkStrict && problems > 0 {
		return fmt.Errorf("found %s", english.Plural(problems, "problem", ""))
	}
	return nil
}
