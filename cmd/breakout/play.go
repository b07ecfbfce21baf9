package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/levelpack"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagWatch bool
	flagMute  bool
	flagLevel int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Breakout",
	Long: `Start a game of Breakout.

Controls:
  Left/A, Right/D   - Move the paddle
  Space             - Launch the ball
  Enter             - Start (menu) / Retry (after a win)
  N/Tab             - Next level (menu)
  S                 - Scores (menu)
  Mouse             - Hold the lower left/right half to move, click to launch
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - 5 lives, wide paddle, slow ball
  normal - config values
  hard   - 2 lives, narrow paddle, fast ball

Examples:
  breakout play
  breakout play --difficulty easy
  breakout play --level 3
  breakout play --config ./my-breakout.toml
  breakout play --levels-dir ./levels --watch`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload --levels-dir when level files change")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to start on (1-based)")
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := play(); err != nil {
		fatalf("%v", err)
	}
}

// play runs one session. It returns instead of exiting so deferred
// cleanup always runs.
func play() error {
	if flagWatch && flagLevelsDir == "" {
		return errors.New("--watch needs --levels-dir")
	}
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	layouts, err := loadLayouts()
	if err != nil {
		return fmt.Errorf("cannot load levels: %w", err)
	}

	logger, closeLog, err := newLogger(io.Discard, "breakout")
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	var sound breakout.Audio = audio.Nop{}
	if !flagMute && cfg.Audio.Enabled {
		sm := audio.NewSoundManager(cfg.Audio)
		if err := sm.Initialize(); err != nil {
			logger.Warn("audio disabled", "error", err)
		} else {
			defer sm.Cleanup()
			sound = sm
		}
	}

	player := ""
	if u, err := user.Current(); err == nil {
		player = u.Username
	}

	model, err := tui.NewModel(cfg, layouts, tui.Options{
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Store:      store,
		Logger:     logger,
		Audio:      sound,
		Player:     player,
		Difficulty: flagDifficulty,
		Level:      flagLevel - 1,
	})
	if err != nil {
		return err
	}

	p := tui.NewProgram(model)

	if flagWatch {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			err := levelpack.Watch(ctx, flagLevelsDir, func(l []breakout.Layout, err error) {
				p.Send(tui.LevelsChangedMsg{Layouts: l, Err: err})
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("level watcher stopped", "error", err)
			}
		}()
		logger.Info("watching levels", "dir", flagLevelsDir)
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
