package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/levelpack"
)

var levelsCmd = &cobra.Command{
	Use:   "levels [dir]",
	Short: "List and validate level files",
	Long: `Shows every level in a directory of *.lvl files, or the built-in
levels when no directory is given. Invalid files are reported with the
parse error and make the command exit non-zero.

Level format: one row per line, digits separated by spaces.
  0 empty, 1 solid, 2-5 colored bricks, any other number a white brick.

Examples:
  breakout levels
  breakout levels ./levels`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, args []string) {
	var infos []levelpack.Info
	if len(args) == 0 {
		layouts, err := levelpack.Builtin()
		if err != nil {
			fatalf("%v", err)
		}
		for _, l := range layouts {
			infos = append(infos, levelpack.Info{
				File:      "(built-in)",
				Name:      l.Name,
				Width:     l.Width(),
				Height:    l.Height(),
				Breakable: l.Breakable(),
			})
		}
	} else {
		var err error
		infos, err = levelpack.Inspect(args[0])
		if err != nil {
			fatalf("%v", err)
		}
	}

	if len(infos) == 0 {
		fmt.Println("No levels found.")
		os.Exit(1)
	}

	maxName := 4 // "Name" header
	for _, info := range infos {
		maxName = max(maxName, len(info.Name))
	}

	fmt.Printf("  %-3s  %-*s  %-7s  %-9s  %s\n", "#", maxName, "Name", "Grid", "Breakable", "File")
	fmt.Printf("  %-3s  %-*s  %-7s  %-9s  %s\n", "-", maxName, "----", "----", "---------", "----")

	invalid := 0
	for i, info := range infos {
		if info.Err != nil {
			invalid++
			fmt.Printf("  %-3d  %-*s  %-7s  %-9s  %s: %v\n", i+1, maxName, info.Name, "-", "-", info.File, info.Err)
			continue
		}
		grid := fmt.Sprintf("%dx%d", info.Width, info.Height)
		fmt.Printf("  %-3d  %-*s  %-7s  %-9d  %s\n", i+1, maxName, info.Name, grid, info.Breakable, info.File)
	}

	fmt.Println()
	if invalid > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d levels are invalid.\n", invalid, len(infos))
		os.Exit(1)
	}
	fmt.Println("Run 'breakout play --level <#>' to start on a level.")
}
