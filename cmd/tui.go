package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/ygelfand/vidstrip/internal/cache"
	"github.com/ygelfand/vidstrip/internal/config"
	"github.com/ygelfand/vidstrip/internal/theme"
	"github.com/ygelfand/vidstrip/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:     "tui [url|example]",
	Short:   "Launch the interactive player",
	Args:    cobra.MaximumNArgs(1),
	GroupID: "tui",
	RunE:    runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	config.IsTUI = true
	cfg := config.Get()
	// Always log TUI sessions to a file for easier debugging
	cfg.LogFile = filepath.Join(cfg.CacheDir, "tui.log")
	cfg.SetupLogging()
	slog.Info("TUI Starting", "log_file", cfg.LogFile, "verbosity", cfg.Verbosity)

	src, err := resolveSource(cfg, args)
	if err != nil {
		return err
	}

	mode, err := theme.ParseMode(cfg.Theme)
	if err != nil {
		return err
	}

	cm, err := cache.Get()
	if err != nil {
		slog.Warn("TUI: cache unavailable, rendering cells uncached", "error", err)
		cm = nil
	}

	ctx, cancel := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	p := newPlayer(cfg)
	defer p.Close()
	go p.Run(ctx)

	ctrl := tui.NewController(ctx, p, theme.NewContext(mode), tui.Options{
		InitialURL: src,
		Cache:      cm,
		IconType:   cfg.IconType,
		Config:     cfg,
		Save:       cfg.Save,
	})

	slog.Debug("TUI: Initializing program", "url", src)
	prog := tea.NewProgram(ctrl, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := prog.Run(); err != nil && ctx.Err() == nil {
		slog.Error("TUI: Program run failed", "error", err)
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	slog.Info("TUI Finished normally")
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
