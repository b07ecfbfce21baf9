// breakout plays Breakout in the terminal.
//
// Usage:
//
//	breakout play              - Play the built-in or a custom level pack
//	breakout levels [dir]      - List and validate level files
//	breakout scores [level]    - Show run history
//	breakout serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/breakout.db)
//	--log-level <level>   - debug, info, warn or error (default: info)
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/levelpack"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string

	// Game flags shared by play and serve
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Breakout in your terminal",
	Long: `Breakout is the classic brick breaker played in a terminal, with
power-ups, particles, screen effects and level packs you can edit live.

Available commands:
  play     - Play a level pack
  levels   - List and validate level files
  scores   - View run history
  serve    - Start SSH server for remote play

Examples:
  breakout play
  breakout play --difficulty hard --level 3
  breakout play --levels-dir ./levels --watch
  breakout levels ./levels
  breakout serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/breakout.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	cmd.Flags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory of *.lvl files (default: built-in levels)")
}

// newLogger builds the logger for a command. Without --log-file logs go to
// fallback, which is io.Discard while the TUI owns the terminal.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	out, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadGameConfig resolves the game config and applies --difficulty.
func loadGameConfig() (config.BreakoutConfig, error) {
	preset := config.ParseDifficulty(flagDifficulty)
	if flagDifficulty != "" && preset == "" {
		return config.BreakoutConfig{}, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
	}

	cfg, err := config.LoadBreakout(flagConfig)
	if err != nil {
		return config.BreakoutConfig{}, err
	}
	config.ApplyBreakoutPreset(&cfg, preset)
	return cfg, nil
}

// loadLayouts loads --levels-dir, or the built-in levels when unset.
func loadLayouts() ([]breakout.Layout, error) {
	if flagLevelsDir == "" {
		return levelpack.Builtin()
	}
	return levelpack.LoadDir(flagLevelsDir)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
