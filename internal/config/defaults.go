package config

import (
	"os"
	"path/filepath"
)

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Lyrics: LyricsConfig{
			Mode: "playback",
		},
		Store: StoreConfig{
			Path: DefaultStorePath(),
		},
		Follow: FollowConfig{
			Interval: 100,
		},
		TUI: TUIConfig{
			Theme:           "auto",
			RefreshInterval: 100,
			Context:         6,
			SeekStep:        5000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultStorePath returns $XDG_DATA_HOME/verse/lyrics.db, falling back to
// ~/.local/share.
func DefaultStorePath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "lyrics.db"
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "verse", "lyrics.db")
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Lyrics
	if c.Lyrics.Mode == "" {
		c.Lyrics.Mode = d.Lyrics.Mode
	}

	// Store
	if c.Store.Path == "" {
		c.Store.Path = d.Store.Path
	}

	// Follow
	if c.Follow.Interval == 0 {
		c.Follow.Interval = d.Follow.Interval
	}

	// TUI
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}
	if c.TUI.RefreshInterval == 0 {
		c.TUI.RefreshInterval = d.TUI.RefreshInterval
	}
	if c.TUI.Context == 0 {
		c.TUI.Context = d.TUI.Context
	}
	if c.TUI.SeekStep == 0 {
		c.TUI.SeekStep = d.TUI.SeekStep
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
