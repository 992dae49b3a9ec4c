package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"
	verrors "github.com/tessro/verse/internal/errors"
	"github.com/tessro/verse/internal/lyrics"
	"github.com/tessro/verse/internal/store"
	"github.com/tessro/verse/internal/wizard"
)

var (
	storeTitle  string
	storeArtist string
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage stored lyrics",
	Long: `Commands for keeping lyrics text in the local store.

Stored lyrics can be used anywhere a source is accepted as
"store:<track-id>".`,
}

var storePutCmd = &cobra.Command{
	Use:   "put <track-id> <src>",
	Short: "Store lyrics for a track",
	Long: `Store lyrics text for a track, replacing any existing text.

Title and artist default to the [ti:] and [ar:] tags in the text.

Examples:
  verse store put yellow yellow.lrc
  cat yellow.lrc | verse store put --artist Coldplay yellow -`,
	Args: cobra.ExactArgs(2),
	RunE: runStorePut,
}

var storeGetCmd = &cobra.Command{
	Use:   "get [track-id]",
	Short: "Print stored lyrics",
	Long:  `Print the stored lyrics text for a track. Without a track ID, pick one.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStoreGet,
}

var storeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored tracks",
	RunE:    runStoreList,
}

var storeRmCmd = &cobra.Command{
	Use:     "rm <track-id>...",
	Aliases: []string{"remove"},
	Short:   "Remove stored lyrics",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runStoreRm,
}

func init() {
	storePutCmd.Flags().StringVar(&storeTitle, "title", "", "track title")
	storePutCmd.Flags().StringVar(&storeArtist, "artist", "", "track artist")

	storeCmd.AddCommand(storePutCmd)
	storeCmd.AddCommand(storeGetCmd)
	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeRmCmd)
	rootCmd.AddCommand(storeCmd)
}

func openStore() (*store.Store, error) {
	logger.Debug("opening store", "path", cfg.Store.Path)
	return store.Open(cfg.Store.Path)
}

func runStorePut(cmd *cobra.Command, args []string) error {
	id := args[0]
	src, err := newSourceLoader().Load(cmd.Context(), args[1])
	if err != nil {
		return err
	}
	// Refuse to store text with nothing to show
	lines, err := src.Lines(lyrics.ModeEditorPreview)
	if err != nil {
		return err
	}

	entry := store.Entry{
		TrackID: id,
		Title:   storeTitle,
		Artist:  storeArtist,
		Body:    src.Text,
	}
	if entry.Title == "" {
		entry.Title = src.Meta.Title
	}
	if entry.Artist == "" {
		entry.Artist = src.Meta.Artist
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.Put(cmd.Context(), entry); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, map[string]any{
			"status":   "stored",
			"track_id": id,
			"lines":    len(lines),
		})
	}
	fmt.Fprintf(out, "Stored %s for %s\n", english.Plural(len(lines), "line", ""), id)
	return nil
}

func runStoreGet(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	var id string
	if len(args) == 1 {
		id = args[0]
	} else {
		entries, err := st.List(cmd.Context())
		if err != nil {
			return err
		}
		interactive := wizard.NewInteractive()
		if !interactive.CanInteract() {
			return verrors.WithSuggestion(fmt.Errorf("missing track ID"), "Run 'verse store list' to see stored tracks")
		}
		picked, err := interactive.PromptEntry(entries)
		if err != nil || picked == nil {
			return err
		}
		id = picked.TrackID
	}

	entry, err := st.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, entry)
	}
	_, err = fmt.Fprint(out, entry.Body)
	return err
}

func runStoreList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	entries, err := st.List(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		if entries == nil {
			entries = []store.Entry{}
		}
		return writeJSON(out, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No stored lyrics")
		return nil
	}

	t := NewTable(out, "ID", "TITLE", "ARTIST", "UPDATED")
	for _, e := range entries {
		t.Row(e.TrackID, TruncateString(e.Title, 40), TruncateString(e.Artist, 30), humanize.Time(e.UpdatedAt))
	}
	t.Flush()
	return nil
}

func runStoreRm(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	result := &verrors.PartialResult[[]string]{Data: []string{}}
	for _, id := range args {
		if err := st.Delete(cmd.Context(), id); err != nil {
			result.AddError(err)
			continue
		}
		result.Data = append(result.Data, id)
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		if err := writeJSON(out, map[string]any{"removed": result.Data}); err != nil {
			return err
		}
	} else {
		for _, id := range result.Data {
			fmt.Fprintf(out, "Removed %s\n", id)
		}
	}
	return result.Err()
}
