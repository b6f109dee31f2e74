package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ygelfand/vidstrip/internal/config"
	"github.com/ygelfand/vidstrip/internal/theme"
	"github.com/ygelfand/vidstrip/internal/ui"
)

var (
	cfgFile    string
	outputType string
)

var rootCmd = &cobra.Command{
	Use:           "vidstrip",
	Short:         "A terminal video player with a thumbnail filmstrip",
	Version:       config.Version,
	Long:          `vidstrip drives mpv from the terminal and shows a navigable strip of preview frames for the loaded video`,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.Get().DefaultToTui {
			return runTUI(cmd, args)
		}
		return cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.RenderError(err)
		os.Exit(1)
	}
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("vidstrip version {{.Version}} (commit: %s, date: %s)\n", config.GitCommit, config.BuildDate))
	cobra.OnInitialize(initConfig)

	rootCmd.AddGroup(&cobra.Group{ID: "tui", Title: "Interactive"})
	rootCmd.AddGroup(&cobra.Group{ID: "media", Title: "Playback & Thumbnails"})

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.vidstrip.yaml)")
	pf.StringVarP(&outputType, "output", "o", "table", "Output format (table, json, json-pretty, yaml, csv, txt)")
	pf.CountP("verbose", "v", "increase verbosity")
	viper.BindPFlag("verbose", pf.Lookup("verbose"))

	pf.String("theme", "", "Color theme (light, dark)")
	viper.BindPFlag("theme", pf.Lookup("theme"))
	pf.String("icon-type", "", "Status icons (ascii, emoji)")
	viper.BindPFlag("icon_type", pf.Lookup("icon-type"))
	pf.String("cache-dir", "", "Directory for the cell cache, logs and the mpv socket")
	viper.BindPFlag("cache_dir", pf.Lookup("cache-dir"))
	pf.Bool("no-cache", false, "Disable caching")
	viper.BindPFlag("no_cache", pf.Lookup("no-cache"))
	pf.String("mpv-path", "", "mpv binary to launch")
	viper.BindPFlag("mpv_path", pf.Lookup("mpv-path"))
	pf.String("socket", "", "mpv IPC socket path")
	viper.BindPFlag("socket_path", pf.Lookup("socket"))
}

func initConfig() {
	cfg := config.Get()
	cfg.Verbosity = viper.GetInt("verbose")
	cfg.SetupLogging()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			ui.RenderError(fmt.Errorf("failed to get home directory: %w", err))
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".vidstrip")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("VIDSTRIP")

	if err := viper.ReadInConfig(); err == nil {
		cfg.ConfigPath = viper.ConfigFileUsed()
	}

	// Defaults outrank the empty flag defaults bound above
	d := config.Default()
	viper.SetDefault("theme", d.Theme)
	viper.SetDefault("icon_type", string(d.IconType))
	viper.SetDefault("cache_dir", d.CacheDir)
	viper.SetDefault("default_to_tui", d.DefaultToTui)
	viper.SetDefault("mpv_path", d.MpvPath)

	if err := viper.Unmarshal(cfg); err != nil {
		ui.RenderError(fmt.Errorf("failed to parse config: %w", err))
		os.Exit(1)
	}

	if outputType != "" && outputType != "table" {
		cfg.OutputFormat = outputType
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "table"
	}

	validFormats := map[string]bool{
		"table": true, "json": true, "json-pretty": true, "yaml": true, "csv": true, "txt": true, "text": true,
	}
	if !validFormats[cfg.OutputFormat] {
		ui.RenderError(fmt.Errorf("invalid output format: %s", cfg.OutputFormat))
		os.Exit(1)
	}
	if _, err := theme.ParseMode(cfg.Theme); err != nil {
		ui.RenderError(err)
		os.Exit(1)
	}
	switch cfg.IconType {
	case config.IconTypeASCII, config.IconTypeEmoji:
	default:
		ui.RenderError(fmt.Errorf("invalid icon type: %s", cfg.IconType))
		os.Exit(1)
	}

	cfg.SetupLogging()
	viper.Set("output", cfg.OutputFormat)
}
