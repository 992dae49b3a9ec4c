package config

// Config is the root configuration structure.
type Config struct {
	Lyrics LyricsConfig `toml:"lyrics"`
	Store  StoreConfig  `toml:"store"`
	Follow FollowConfig `toml:"follow"`
	TUI    TUIConfig    `toml:"tui"`
	Log    LogConfig    `toml:"log"`
}

// LyricsConfig holds parsing and sync settings.
type LyricsConfig struct {
	Mode     string `toml:"mode"`
	OffsetMs int    `toml:"offset_ms"`
}

// StoreConfig holds the lyrics store location.
type StoreConfig struct {
	Path string `toml:"path"`
}

// FollowConfig holds settings for follow mode.
type FollowConfig struct {
	Interval  int    `toml:"interval"`
	NoEmoji   bool   `toml:"no_emoji"`
	Timestamp bool   `toml:"timestamp"`
	Format    string `toml:"format"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme           string `toml:"theme"`
	RefreshInterval int    `toml:"refresh_interval"`
	Context         int    `toml:"context"`
	SeekStep        int    `toml:"seek_step"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
