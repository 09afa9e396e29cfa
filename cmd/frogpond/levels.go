package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long: `Shows the built-in levels and those found in --levels.

Examples:
  frogpond levels
  frogpond levels --levels ./my-levels`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	defs, err := loadLevels()
	if err != nil {
		return err
	}

	if len(defs) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxNameLen := 2, 4 // "ID", "Name" headers
	for _, def := range defs {
		maxIDLen = max(maxIDLen, len(def.ID))
		maxNameLen = max(maxNameLen, len(def.Name))
	}

	fmt.Printf("  %-*s  %-*s  %-7s  %-7s  %s\n", maxIDLen, "ID", maxNameLen, "Name", "Size", "Colours", "Pixels")
	fmt.Printf("  %-*s  %-*s  %-7s  %-7s  %s\n", maxIDLen, "--", maxNameLen, "----", "----", "-------", "------")

	for _, def := range defs {
		l := def.Level
		size := fmt.Sprintf("%dx%d", l.Width, l.Height)
		fmt.Printf("  %-*s  %-*s  %-7s  %-7d  %d\n",
			maxIDLen, def.ID, maxNameLen, def.Name, size, l.Palette.Len(), l.AliveCount())
	}

	fmt.Println()
	fmt.Println("Run 'frogpond play <id>' to play a level.")
	return nil
}
