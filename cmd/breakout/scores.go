package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/levelpack"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var flagInteractive bool

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show run history",
	Long: `Without a level, shows statistics for every level played.
With a level name, shows the top 10 runs on that level.

Examples:
  breakout scores
  breakout scores "space invader"
  breakout scores -i`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in a full-screen table")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatalf("opening run history: %v", err)
	}
	defer store.Close()

	switch {
	case flagInteractive:
		err = browseScores(store)
	case len(args) == 1:
		err = printTopRuns(store, args[0])
	default:
		err = printStats(store)
	}
	if err != nil {
		store.Close()
		fatalf("%v", err)
	}
}

func browseScores(store *storage.Store) error {
	var names []string
	if layouts, err := levelpack.Builtin(); err == nil {
		for _, l := range layouts {
			names = append(names, l.Name)
		}
	}
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	return tui.RunScoreboard(store, names, width, height)
}

func printTopRuns(store *storage.Store, level string) error {
	runs, err := store.TopRuns(level, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", level)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-12s  %-8s  %s\n", "Rank", "Score", "Result", "Player", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-12s  %-8s  %s\n", "----", "-----", "------", "------", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-6s  %-12s  %-8s  %s\n",
			i+1, r.Score, r.Outcome, r.Player, r.Duration.Round(time.Second), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", runs[0].Score)
	return nil
}

func printStats(store *storage.Store) error {
	stats, err := store.Stats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'breakout play' to set the first high score!")
		return nil
	}

	maxName := 5 // "Level" header
	for _, st := range stats {
		maxName = max(maxName, len(st.Level))
	}

	fmt.Printf("  %-*s  %-5s  %-5s  %-6s  %-7s  %s\n", maxName, "Level", "Runs", "Wins", "Best", "Avg", "Last played")
	fmt.Printf("  %-*s  %-5s  %-5s  %-6s  %-7s  %s\n", maxName, "-----", "----", "----", "----", "---", "-----------")
	for _, st := range stats {
		fmt.Printf("  %-*s  %-5d  %-5d  %-6d  %-7.1f  %s\n",
			maxName, st.Level, st.Runs, st.Wins, st.HighScore, st.AvgScore, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
