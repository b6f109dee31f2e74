package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ygelfand/vidstrip/internal/config"
	"github.com/ygelfand/vidstrip/internal/player"
	"github.com/ygelfand/vidstrip/internal/tui/widget/icons"
	"github.com/ygelfand/vidstrip/internal/ui"
	"golang.org/x/term"
)

var (
	startAt   float64
	playSpeed float64
	muted     bool
)

var playCmd = &cobra.Command{
	Use:     "play [url|example]",
	Short:   "Play a video in mpv without the interactive interface",
	Args:    cobra.MaximumNArgs(1),
	GroupID: "media",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		interactive := term.IsTerminal(int(os.Stdout.Fd()))

		if len(args) == 0 && interactive && cfg.DefaultURL == "" {
			picked, err := pickExample()
			if err != nil {
				return err
			}
			args = []string{picked}
		}
		src, err := resolveSource(cfg, args)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		p := newPlayer(cfg)
		defer p.Close()
		go p.Run(ctx)

		slog.Info("Playing", "url", src)
		if err := p.LoadURL(ctx, src); err != nil {
			return err
		}
		if s := p.State(); s.HasError() {
			return errors.New(s.ErrorMessage)
		}
		if playSpeed != 0 {
			p.SetSpeed(playSpeed)
		}
		if muted {
			p.ToggleMute()
		}
		if startAt > 0 {
			p.Seek(startAt)
		}

		fmt.Fprintf(ui.Stdout, "Playing %s. Press Ctrl+C to stop.\n", src)
		set := icons.For(cfg.IconType)
		for {
			select {
			case <-ctx.Done():
				if interactive {
					fmt.Fprintln(ui.Stdout)
				}
				return nil
			case <-p.Updates():
				s := p.State()
				if s.HasError() {
					return errors.New(s.ErrorMessage)
				}
				if interactive {
					fmt.Fprintf(ui.Stdout, "\r\033[K%s", statusLine(set, s))
				}
			}
		}
	},
}

func pickExample() (string, error) {
	opts := make([]ui.Option, 0, len(player.Examples))
	for _, ex := range player.Examples {
		opts = append(opts, ui.Option{Title: ex.Name, Desc: ex.URL, Value: ex.URL})
	}
	return ui.SelectOption("Pick a video", opts)
}

func statusLine(set icons.Set, s player.State) string {
	status := set.Pause
	if s.Playing {
		status = set.Play
	}
	if s.Loading {
		status = set.Loading
	}
	volume := fmt.Sprintf("%s %d%%", set.Volume, int(s.Volume*100+0.5))
	if s.Muted {
		volume = set.Muted + " muted"
	}
	return fmt.Sprintf("%s %s / %s  %s %sx  %s",
		status, s.CurrentTimeLabel(), s.DurationLabel(),
		set.Speed, strconv.FormatFloat(s.PlaybackRate, 'g', -1, 64), volume)
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().Float64Var(&startAt, "start", 0, "Seek to this many seconds once playback begins")
	playCmd.Flags().Float64Var(&playSpeed, "speed", 0, "Playback rate (0.5, 0.75, 1, 1.25, 1.5, 2)")
	playCmd.Flags().BoolVar(&muted, "mute", false, "Start muted")
}
