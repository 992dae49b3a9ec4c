package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/tessro/verse/internal/lyrics"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.verserc, $XDG_CONFIG_HOME/verse/config.toml, ~/.config/verse/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	// Try loading from file
	path := findConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// Apply defaults, then environment variable overrides
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// ParsedMode returns the configured default parse mode.
func (c *Config) ParsedMode() lyrics.Mode {
	mode, _ := lyrics.ParseMode(c.Lyrics.Mode)
	return mode
}

// Path returns the config file that Load would read, or the default
// location for a new one.
func Path() string {
	if p := findConfigFile(); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".verserc"
	}
	return filepath.Join(home, ".verserc")
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	paths := []string{
		filepath.Join(home, ".verserc"),
	}

	// XDG_CONFIG_HOME or default
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	paths = append(paths, filepath.Join(xdgConfig, "verse", "config.toml"))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
// A .env file in the working directory is loaded first; variables already
// set in the environment win over it.
func applyEnvOverrides(cfg *Config) {
	_ = godotenv.Load()

	// Lyrics
	if v := os.Getenv("VERSE_LYRICS_MODE"); v != "" {
		cfg.Lyrics.Mode = v
	}
	if v := os.Getenv("VERSE_LYRICS_OFFSET_MS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Lyrics.OffsetMs = i
		}
	}

	// Store
	if v := os.Getenv("VERSE_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}

	// Follow
	if v := os.Getenv("VERSE_FOLLOW_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Follow.Interval = i
		}
	}

	// TUI
	if v := os.Getenv("VERSE_TUI_THEME"); v != "" {
		cfg.TUI.Theme = v
	}
	if v := os.Getenv("VERSE_TUI_REFRESH_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.TUI.RefreshInterval = i
		}
	}

	// Log
	if v := os.Getenv("VERSE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("VERSE_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
