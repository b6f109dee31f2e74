package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/ygelfand/vidstrip/internal/cache"
	"github.com/ygelfand/vidstrip/internal/config"
	"github.com/ygelfand/vidstrip/internal/schedule"
	"github.com/ygelfand/vidstrip/internal/theme"
	"github.com/ygelfand/vidstrip/internal/thumbnail"
	"github.com/ygelfand/vidstrip/internal/ui"
)

const stripTTL = 7 * 24 * time.Hour

var (
	stripDuration float64
	stripSeed     uint64
	stripOutDir   string
	stripHTML     string
	stripOpen     bool
)

var thumbnailsCmd = &cobra.Command{
	Use:     "thumbnails",
	Aliases: []string{"strip"},
	Short:   "Generate the preview strip for a video duration",
	Long: `Generates the six-frame preview strip the player shows for a video of the given
duration. Frames can be written out as JPEG files or as an HTML contact sheet.`,
	Args:    cobra.NoArgs,
	GroupID: "media",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		if stripOpen && stripHTML == "" {
			return errors.New("--open requires --html")
		}

		entries, err := loadStrip(contextOf(cmd), stripDuration, stripSeed)
		if err != nil {
			return err
		}

		if stripOutDir != "" {
			if err := writeFrames(stripOutDir, entries); err != nil {
				return err
			}
			notify(cfg, fmt.Sprintf("Wrote %d frames to %s", len(entries), stripOutDir))
		}
		if stripHTML != "" {
			if err := writeSheet(cfg, stripHTML, entries); err != nil {
				return err
			}
			notify(cfg, "Wrote contact sheet "+stripHTML)
			if stripOpen {
				if err := browser.OpenFile(stripHTML); err != nil {
					return fmt.Errorf("opening contact sheet: %w", err)
				}
			}
		}

		rows := make([][]string, 0, len(entries))
		for i, e := range entries {
			rows = append(rows, []string{fmt.Sprintf("%d", i+1), e.Label(), fmt.Sprintf("%g", e.Time), fmt.Sprintf("%d", len(e.Image))})
		}
		return ui.OutputData{
			Title:   fmt.Sprintf("Strip for %s", thumbnail.Entry{Time: stripDuration}.Label()),
			Headers: []string{"#", "TIME", "SECONDS", "URI BYTES"},
			Rows:    rows,
			Raw:     entries,
		}.Print()
	},
}

// notify prints a success line unless the output is meant for machines
func notify(cfg *config.Config, msg string) {
	if cfg.OutputFormat == "table" {
		ui.RenderSuccess(msg)
		return
	}
	slog.Info(msg)
}

// loadStrip returns the cached strip for duration or generates a fresh one
func loadStrip(ctx context.Context, duration float64, seed uint64) ([]thumbnail.Entry, error) {
	cm, err := cache.Get()
	if err != nil {
		return nil, err
	}
	key := cache.Key("strip", duration, seed)

	var entries []thumbnail.Entry
	err = cache.WithCache(cm, key, stripTTL, &entries, func() ([]thumbnail.Entry, error) {
		return generateStrip(ctx, duration, seed)
	})
	return entries, err
}

func generateStrip(ctx context.Context, duration float64, seed uint64) ([]thumbnail.Entry, error) {
	reg := schedule.NewRegistry(clockwork.NewRealClock())
	defer reg.Close()

	done := make(chan []thumbnail.Entry, 1)
	gen := thumbnail.NewGenerator(thumbnail.NewRenderer(seed), reg)
	slog.Debug("Thumbnails: generating", "duration", duration)
	job := gen.Generate(duration, func(e []thumbnail.Entry) { done <- e })

	select {
	case entries := <-done:
		return entries, nil
	case <-ctx.Done():
		job.Cancel()
		return nil, ctx.Err()
	}
}

func writeFrames(dir string, entries []thumbnail.Entry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for i, e := range entries {
		mime, data, err := thumbnail.DataURIBytes(e.Image)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i+1, err)
		}
		ext := "." + strings.TrimPrefix(mime, "image/")
		name := filepath.Join(dir, fmt.Sprintf("frame-%02d%s", i+1, ext))
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return err
		}
		slog.Debug("Thumbnails: wrote frame", "path", name)
	}
	return nil
}

func writeSheet(cfg *config.Config, path string, entries []thumbnail.Entry) error {
	mode, err := theme.ParseMode(cfg.Theme)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	title := fmt.Sprintf("vidstrip preview (%s)", thumbnail.Entry{Time: stripDuration}.Label())
	if err := thumbnail.WriteSheet(f, title, theme.NewContext(mode).BodyClass(), entries); err != nil {
		return fmt.Errorf("writing contact sheet: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(thumbnailsCmd)
	thumbnailsCmd.Flags().Float64VarP(&stripDuration, "duration", "d", 596, "Video duration in seconds")
	thumbnailsCmd.Flags().Uint64Var(&stripSeed, "seed", 1, "Noise seed for the rendered frames")
	thumbnailsCmd.Flags().StringVar(&stripOutDir, "out", "", "Write each frame as an image file into this directory")
	thumbnailsCmd.Flags().StringVar(&stripHTML, "html", "", "Write an HTML contact sheet to this path")
	thumbnailsCmd.Flags().BoolVar(&stripOpen, "open", false, "Open the contact sheet in the default browser")
}
