package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tessro/verse/internal/clock"
	"github.com/tessro/verse/internal/core"
	verrors "github.com/tessro/verse/internal/errors"
	"github.com/tessro/verse/internal/lyrics"
	"github.com/tessro/verse/internal/tail"
	"golang.org/x/term"
)

// trailingTime is how long playback runs past the last line when the
// track length is unknown.
const trailingTime = 5 * time.Second

// reloadInterval is how often --watch checks the lyrics file for changes.
const reloadInterval = 500 * time.Millisecond

var (
	followStart     string
	followOffset    int
	followInterval  time.Duration
	followNoEmoji   bool
	followTimestamp bool
	followFormat    string
	followWatch     bool
)

var followCmd = &cobra.Command{
	Use:     "follow <src>",
	Aliases: []string{"tail"},
	Short:   "Print lyrics as they are sung",
	Long: `Play the track on a local clock and print each line when it becomes
active. Seeks, pauses and the end of the track are reported too.

The track length comes from a [length:] tag, or runs a few seconds past the
last line.

With --watch, edits to the lyrics file are picked up while following, so
timings can be tuned in an editor next to the running printer.

Template fields for --format:
  .Type .Emoji .Timestamp .Time .Index .Text .LineTime .Explicit
  .Position .Title .Artist

Examples:
  verse follow song.lrc
  verse follow --start 1:30 --offset -250 song.lrc
  verse follow --watch song.lrc
  verse follow --format '{{.LineTime}} {{.Text}}' store:yellow`,
	Args: cobra.ExactArgs(1),
	RunE: runFollow,
}

func init() {
	followCmd.Flags().StringVarP(&followStart, "start", "s", "", "start position (mm:ss, mm:ss.fff or ms)")
	followCmd.Flags().IntVarP(&followOffset, "offset", "o", 0, "sync offset in ms (positive shows lines earlier)")
	followCmd.Flags().DurationVarP(&followInterval, "interval", "i", 0, "poll interval (default from config)")
	followCmd.Flags().BoolVar(&followNoEmoji, "no-emoji", false, "disable emoji output")
	followCmd.Flags().BoolVarP(&followTimestamp, "timestamp", "t", false, "show wall-clock timestamps")
	followCmd.Flags().StringVarP(&followFormat, "format", "f", "", "custom format template")
	followCmd.Flags().BoolVarP(&followWatch, "watch", "w", false, "reload the lyrics file when it changes")

	rootCmd.AddCommand(followCmd)
}

func runFollow(cmd *cobra.Command, args []string) error {
	src, err := newSourceLoader().Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	lines, err := src.Lines(lyrics.ModePlayback)
	if err != nil {
		return err
	}

	var reloader *fileReloader
	if followWatch {
		if src.Track.Source != core.SourceFile {
			return verrors.WithSuggestion(
				fmt.Errorf("--watch needs a lyrics file, not %q", args[0]),
				"Pass a file path, or drop --watch")
		}
		if reloader, err = newFileReloader(args[0], lyrics.ModePlayback); err != nil {
			return err
		}
	}

	track := src.Track
	if track.Duration == 0 {
		track.Duration = time.Duration(lines[len(lines)-1].TimestampMs)*time.Millisecond + trailingTime
	}

	interval := followInterval
	if interval <= 0 {
		interval = time.Duration(cfg.Follow.Interval) * time.Millisecond
	}
	offset := src.offset(cmd.Flags().Changed("offset"), followOffset)

	player := clock.New(track)
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := startPlayer(ctx, player, followStart); err != nil {
		return err
	}

	// Handle Ctrl+C gracefully
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	formatter := newFollowFormatter(cmd)
	watcher := tail.NewWatcher(player, lines, interval, tail.WithOffset(offset))

	logger.Debug("following", "track", track.DisplayName(), "lines", len(lines),
		"duration", track.Duration, "offset", offset, "interval", interval)

	out := cmd.OutOrStdout()
	if !JSONOutput() && (track.Title != "" || track.Artist != "") {
		fmt.Fprintln(out, track.DisplayName())
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- watcher.Start(ctx)
	}()
	if reloader != nil {
		go reloader.run(ctx, watcher)
	}

	// Print events until the watcher closes the channel
	enc := json.NewEncoder(out)
	for event := range watcher.Events() {
		if JSONOutput() {
			if err := enc.Encode(newFollowRecord(event)); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintln(out, formatter.Format(event))
	}

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// followRecord is one event in --json output, written as a JSON line.
type followRecord struct {
	Type       string       `json:"type"`
	Time       time.Time    `json:"time"`
	PositionMs int          `json:"position_ms"`
	Index      int          `json:"index"`
	Line       *lyrics.Line `json:"line,omitempty"`
}

func newFollowRecord(e tail.Event) followRecord {
	return followRecord{
		Type:       e.Type.String(),
		Time:       e.Timestamp,
		PositionMs: e.Current.PositionMs(),
		Index:      e.Index,
		Line:       e.Line,
	}
}

// fileReloader reparses a lyrics file when its modification time or size
// changes.
type fileReloader struct {
	path    string
	mode    lyrics.Mode
	modTime time.Time
	size    int64
}

func newFileReloader(path string, mode lyrics.Mode) (*fileReloader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &fileReloader{path: path, mode: mode, modTime: info.ModTime(), size: info.Size()}, nil
}

// poll returns the reparsed lines and true when the file changed since the
// last poll. A file that parses to nothing is reported as ErrNoLyrics and
// the caller keeps its current lines.
func (r *fileReloader) poll() ([]lyrics.Line, bool, error) {
	info, err := os.Stat(r.path)
	if err != nil {
		return nil, false, err
	}
	if info.ModTime().Equal(r.modTime) && info.Size() == r.size {
		return nil, false, nil
	}
	r.modTime, r.size = info.ModTime(), info.Size()

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, false, err
	}
	lines := lyrics.Parse(string(data), r.mode)
	if len(lines) == 0 {
		return nil, false, fmt.Errorf("%s: %w", r.path, verrors.ErrNoLyrics)
	}
	return lines, true, nil
}

// run feeds file changes to the watcher until ctx is done.
func (r *fileReloader) run(ctx context.Context, w *tail.Watcher) {
	ticker := time.NewTicker(reloadInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			lines, changed, err := r.poll()
			if err != nil {
				logger.Warn("reload failed", "path", r.path, "err", err)
				continue
			}
			if changed {
				logger.Debug("reloaded lyrics", "path", r.path, "lines", len(lines))
				w.SetLines(lines)
			}
		}
	}
}

// startPlayer seeks to the start position, if any, and starts playback.
func startPlayer(ctx context.Context, p core.Player, start string) error {
	if start != "" {
		pos, err := lyrics.ParsePosition(start)
		if err != nil {
			return err
		}
		if err := p.Seek(ctx, pos); err != nil {
			return fmt.Errorf("seek: %w", err)
		}
	}
	return p.Play(ctx)
}

func newFollowFormatter(cmd *cobra.Command) *tail.Formatter {
	format := followFormat
	if format == "" {
		format = cfg.Follow.Format
	}

	opts := []tail.FormatterOption{
		tail.WithEmoji(!followNoEmoji && !cfg.Follow.NoEmoji),
		tail.WithTimestamp(followTimestamp || cfg.Follow.Timestamp),
		tail.WithTemplate(format),
		tail.WithColor(cmd.OutOrStdout()),
	}
	if f, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil {
			opts = append(opts, tail.WithWidth(width))
		}
	}
	return tail.NewFormatter(opts...)
}
