package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ygelfand/vidstrip/internal/config"
	"github.com/ygelfand/vidstrip/internal/media"
	"github.com/ygelfand/vidstrip/internal/player"
)

// newPlayer wires a Player to an mpv element built from the configuration
func newPlayer(cfg *config.Config) *player.Player {
	el := media.NewMPV(cfg.MpvSocket(), media.WithBinary(cfg.MpvPath), media.WithArgs(cfg.MpvArgs...))
	slog.Debug("Session: mpv element ready", "socket", cfg.MpvSocket(), "binary", cfg.MpvPath)
	return player.New(el)
}

// resolveSource turns a command argument into a playable URL. Anything that
// looks like a URL or path is used as is; other text names an example video.
func resolveSource(cfg *config.Config, args []string) (string, error) {
	if len(args) == 0 {
		if cfg.DefaultURL != "" {
			return cfg.DefaultURL, nil
		}
		return player.DefaultURL, nil
	}

	arg := strings.TrimSpace(args[0])
	if strings.Contains(arg, "://") || strings.HasPrefix(arg, "/") || strings.HasPrefix(arg, ".") {
		return arg, nil
	}
	ex, err := player.FindExample(arg)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", arg, err)
	}
	slog.Debug("Session: matched example", "query", arg, "name", ex.Name)
	return ex.URL, nil
}
