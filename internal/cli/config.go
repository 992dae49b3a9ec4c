package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/tessro/verse/internal/config"
	verrors "github.com/tessro/verse/internal/errors"
	"github.com/tessro/verse/internal/lyrics"
	"github.com/tessro/verse/internal/wizard"
)

var configInteractive bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing verse configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration values, including defaults and environment overrides.`,
	RunE:  runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long:  `Open the configuration file in your default editor.`,
	RunE:  runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  `Create a new configuration file with default values.`,
	RunE:  runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Supported keys:
  lyrics.mode           Parse mode (playback/editorPreview)
  lyrics.offset_ms      Sync offset in ms (positive shows lines earlier)
  store.path            Lyrics database path
  follow.interval       Follow poll interval in ms
  follow.no_emoji       Disable emoji in follow output (true/false)
  follow.timestamp      Show timestamps in follow output (true/false)
  follow.format         Follow output template
  tui.theme             Color theme (auto/dark/light)
  tui.refresh_interval  UI refresh interval in ms
  tui.context           Lines shown either side of the active line
  tui.seek_step         Seek step in ms
  log.level             Log level (debug/info/warn/error)
  log.file              Log file path

Examples:
  verse config set lyrics.offset_ms -250
  verse config set tui.theme light`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

// configKeyKind is the TOML value type of a settable key.
type configKeyKind int

const (
	kindString configKeyKind = iota
	kindInt
	kindBool
)

var configKeys = map[string]configKeyKind{
	"lyrics.mode":          kindString,
	"lyrics.offset_ms":     kindInt,
	"store.path":           kindString,
	"follow.interval":      kindInt,
	"follow.no_emoji":      kindBool,
	"follow.timestamp":     kindBool,
	"follow.format":        kindString,
	"tui.theme":            kindString,
	"tui.refresh_interval": kindInt,
	"tui.context":          kindInt,
	"tui.seek_step":        kindInt,
	"log.level":            kindString,
	"log.file":             kindString,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInteractive, "interactive", "i", false, "answer questions instead of writing defaults")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, cfg)
	}

	// Pretty print as TOML
	encoder := toml.NewEncoder(out)
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	path := configPath()

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", path, verrors.ErrConfigNotFound)
	}

	// Find editor
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		// Try common editors
		for _, e := range []string{"nano", "vim", "vi", "notepad"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set EDITOR environment variable")
	}

	// Open editor
	editorCmd := exec.Command(editor, path)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	return editorCmd.Run()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath()

	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	newCfg := config.Default()
	if configInteractive {
		if !wizard.IsTerminal() {
			return verrors.ErrNotTerminal
		}
		if err := promptConfig(newCfg); err != nil {
			return fmt.Errorf("config init cancelled: %w", err)
		}
	}

	if err := writeConfigFile(path, newCfg); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, map[string]string{
			"status": "created",
			"path":   path,
		})
	}

	fmt.Fprintf(out, "Created config file: %s\n", path)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Store some lyrics with 'verse store put <track-id> <file>'")
	fmt.Fprintln(out, "  2. Run 'verse ui' to pick a track and follow along")
	return nil
}

// promptConfig asks for the settings most people change.
func promptConfig(c *config.Config) error {
	offset := strconv.Itoa(c.Lyrics.OffsetMs)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Blank lines").
				Description("How blank lines in lyrics are treated").
				Options(
					huh.NewOption("Keep as instrumental pauses", lyrics.ModePlayback.String()),
					huh.NewOption("Drop them", lyrics.ModeEditorPreview.String()),
				).
				Value(&c.Lyrics.Mode),
			huh.NewInput().
				Title("Sync offset (ms)").
				Description("Positive values show lines earlier").
				Value(&offset).
				Validate(func(s string) error {
					_, err := strconv.Atoi(s)
					return err
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(
					huh.NewOption("Match terminal", "auto"),
					huh.NewOption("Dark", "dark"),
					huh.NewOption("Light", "light"),
				).
				Value(&c.TUI.Theme),
			huh.NewInput().
				Title("Lyrics database").
				Value(&c.Store.Path),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	c.Lyrics.OffsetMs, _ = strconv.Atoi(offset)
	return c.Validate()
}

// configPath returns the --config path or the standard location.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.Path()
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	path := configPath()

	if err := setConfigValue(path, key, value); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	}
	fmt.Fprintf(out, "Set %s = %s\n", key, value)
	return nil
}

// setConfigValue updates one key in the raw TOML file at path, keeping any
// other keys as they are. The result must still be a valid configuration.
func setConfigValue(path, key, value string) error {
	kind, ok := configKeys[key]
	if !ok {
		return verrors.WithSuggestion(
			fmt.Errorf("unknown config key %q", key),
			"Run 'verse config set --help' to see supported keys")
	}

	// Check if file exists
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", path, verrors.ErrConfigNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	rawConfig := make(map[string]any)
	if _, err := toml.Decode(string(data), &rawConfig); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	var typedValue any
	switch kind {
	case kindInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("value must be an integer for %s", key)
		}
		typedValue = i
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("value must be true or false for %s", key)
		}
		typedValue = b
	default:
		typedValue = value
	}

	section, field, _ := strings.Cut(key, ".")
	sectionMap, ok := rawConfig[section].(map[string]any)
	if !ok {
		sectionMap = make(map[string]any)
		rawConfig[section] = sectionMap
	}
	sectionMap[field] = typedValue

	// Round-trip through Config to reject invalid values
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(rawConfig); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	var check config.Config
	if _, err := toml.Decode(buf.String(), &check); err != nil {
		return fmt.Errorf("%w: %w", verrors.ErrInvalidConfig, err)
	}
	check.ApplyDefaults()
	if err := check.Validate(); err != nil {
		return fmt.Errorf("%w: %w", verrors.ErrInvalidConfig, err)
	}

	return writeConfigFile(path, rawConfig)
}

// writeConfigFile writes v as TOML with the standard header.
func writeConfigFile(path string, v any) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer func() { _ = f.Close() }()

	return encodeConfig(f, v)
}

func encodeConfig(w io.Writer, v any) error {
	// Write header comment
	_, _ = fmt.Fprintln(w, "# Verse Configuration")
	_, _ = fmt.Fprintln(w, "# https://github.com/tessro/verse")
	_, _ = fmt.Fprintln(w, "")

	encoder := toml.NewEncoder(w)
	encoder.Indent = "  "
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
