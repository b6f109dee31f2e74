package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// IsTUI is set when the interactive interface owns the terminal
var IsTUI bool

// FullVersion returns a concatenated version string
func FullVersion() string {
	return fmt.Sprintf("%s-%s-%s", Version, GitCommit, BuildDate)
}

type IconType string

const (
	IconTypeASCII IconType = "ascii"
	IconTypeEmoji IconType = "emoji"
)

// Config holds the global configuration for vidstrip
type Config struct {
	OutputFormat string   `mapstructure:"output"`
	Verbosity    int      `mapstructure:"verbose"`
	Theme        string   `mapstructure:"theme"`     // light, dark
	IconType     IconType `mapstructure:"icon_type"` // ascii, emoji
	CacheDir     string   `mapstructure:"cache_dir"`
	NoCache      bool     `mapstructure:"no_cache"`
	DefaultToTui bool     `mapstructure:"default_to_tui"`
	DefaultURL   string   `mapstructure:"default_url"`

	// mpv
	MpvPath    string   `mapstructure:"mpv_path"`
	MpvArgs    []string `mapstructure:"mpv_args"`
	SocketPath string   `mapstructure:"socket_path"`

	// Runtime only
	ConfigPath string       `mapstructure:"-"`
	LogFile    string       `mapstructure:"-"`
	Logger     *slog.Logger `mapstructure:"-"`
	LogLevel   *slog.LevelVar
}

var (
	instance *Config
	once     sync.Once
)

const (
	LevelTrace slog.Level = -8
)

// Get returns the global configuration singleton
func Get() *Config {
	once.Do(func() {
		instance = Default()
	})
	return instance
}

// Default builds a configuration populated with defaults only.
func Default() *Config {
	home, _ := os.UserHomeDir()
	lvl := &slog.LevelVar{}
	lvl.Set(slog.LevelInfo)
	return &Config{
		Logger:       slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})),
		LogLevel:     lvl,
		Theme:        "light",
		IconType:     IconTypeASCII,
		CacheDir:     filepath.Join(home, ".vidstrip", "cache"),
		DefaultToTui: true,
		MpvPath:      "mpv",
	}
}

// MpvSocket returns the IPC socket path, derived from the cache dir unless set explicitly
func (c *Config) MpvSocket() string {
	if c.SocketPath != "" {
		return c.SocketPath
	}
	return filepath.Join(c.CacheDir, "mpv.sock")
}

// LevelFor maps a -v count to a log level
func LevelFor(verbosity int) slog.Level {
	switch {
	case verbosity >= 2:
		return LevelTrace
	case verbosity >= 1:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// SetupLogging initializes the global logger based on verbosity
func (c *Config) SetupLogging() {
	c.LogLevel.Set(LevelFor(c.Verbosity))

	opts := &slog.HandlerOptions{
		Level: c.LogLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				level := a.Value.Any().(slog.Level)
				if level == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}

	var writer io.Writer = os.Stderr
	if c.LogFile != "" {
		_ = os.MkdirAll(filepath.Dir(c.LogFile), 0755)
		f, err := os.OpenFile(c.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			writer = f
		}
	}

	handler := slog.NewTextHandler(writer, opts)
	c.Logger = slog.New(handler)
	slog.SetDefault(c.Logger)
}

// Enabled returns true if the given level is enabled
func (c *Config) Enabled(level slog.Level) bool {
	return c.LogLevel.Level() <= level
}

// Save persists the current configuration to disk
func (c *Config) Save() error {
	viper.Set("output", c.OutputFormat)
	viper.Set("verbose", c.Verbosity)
	viper.Set("theme", c.Theme)
	viper.Set("icon_type", c.IconType)
	viper.Set("cache_dir", c.CacheDir)
	viper.Set("no_cache", c.NoCache)
	viper.Set("default_to_tui", c.DefaultToTui)
	viper.Set("default_url", c.DefaultURL)
	viper.Set("mpv_path", c.MpvPath)
	viper.Set("mpv_args", c.MpvArgs)
	viper.Set("socket_path", c.SocketPath)

	if c.ConfigPath != "" {
		return viper.WriteConfigAs(c.ConfigPath)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	c.ConfigPath = filepath.Join(home, ".vidstrip.yaml")
	return viper.WriteConfigAs(c.ConfigPath)
}
