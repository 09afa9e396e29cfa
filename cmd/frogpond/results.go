package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/frogpond/internal/storage"
)

var (
	flagResultsLimit int
	flagRecent       bool
	flagClear        bool
	flagResultID     int64
)

var resultsCmd = &cobra.Command{
	Use:   "results [level]",
	Short: "Show best times",
	Long: `Display the fastest wins of a level, recent games of all levels,
or a single stored result with its share code.

Examples:
  frogpond results 01-pond
  frogpond results --recent
  frogpond results --id 12
  frogpond results 02-heart --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagResultsLimit, "limit", 10, "Number of results to show")
	resultsCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show recent games of all levels")
	resultsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all results of the level")
	resultsCmd.Flags().Int64Var(&flagResultID, "id", 0, "Show one result by id")
}

func runResults(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening results database: %w", err)
	}
	defer store.Close()

	switch {
	case flagResultID != 0:
		return showResult(store, flagResultID)
	case flagRecent || len(args) == 0:
		return showRecent(store)
	}

	levelID := args[0]
	if flagClear {
		if err := store.ClearResults(levelID); err != nil {
			return err
		}
		logger.Info("results cleared", "level", levelID)
		return nil
	}
	return showLevel(store, levelID)
}

func showLevel(store *storage.Store, levelID string) error {
	results, err := store.TopResults(levelID, flagResultsLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best Times - %s\n", levelID)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No wins recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'frogpond play %s' to set the first time!\n", levelID)
		return nil
	}

	fmt.Printf("  %-4s  %-5s  %-9s  %-7s  %-10s  %-10s  %s\n", "Rank", "ID", "Time", "Deploys", "Seed", "Player", "Date")
	fmt.Printf("  %-4s  %-5s  %-9s  %-7s  %-10s  %-10s  %s\n", "----", "--", "----", "-------", "----", "------", "----")
	for i, r := range results {
		fmt.Printf("  %-4d  %-5d  %-9s  %-7d  %-10d  %-10s  %s\n",
			i+1, r.ID, formatMs(r.ElapsedMs), r.Deploys, r.Seed, playerName(r.Player), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetLevelStats(levelID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Plays: %d  Wins: %d  Best: %s  Average win: %s\n",
			stats.Plays, stats.Wins, formatMs(stats.BestMs), formatMs(stats.AvgWinMs))
	}
	return nil
}

func showRecent(store *storage.Store) error {
	results, err := store.RecentResults(flagResultsLimit)
	if err != nil {
		return err
	}

	fmt.Println("Recent games")
	fmt.Println()
	if len(results) == 0 {
		fmt.Println("No games recorded yet.")
		return nil
	}

	fmt.Printf("  %-5s  %-14s  %-7s  %-9s  %-7s  %s\n", "ID", "Level", "Outcome", "Time", "Deploys", "Date")
	fmt.Printf("  %-5s  %-14s  %-7s  %-9s  %-7s  %s\n", "--", "-----", "-------", "----", "-------", "----")
	for _, r := range results {
		fmt.Printf("  %-5d  %-14s  %-7s  %-9s  %-7d  %s\n",
			r.ID, r.LevelID, r.Outcome, formatMs(r.ElapsedMs), r.Deploys, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func showResult(store *storage.Store, id int64) error {
	r, err := store.ResultByID(id)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("no result with id %d", id)
	}

	fmt.Printf("Result #%d\n\n", r.ID)
	fmt.Printf("  Level:    %s\n", r.LevelID)
	fmt.Printf("  Outcome:  %s\n", r.Outcome)
	if r.LostReason != "" {
		fmt.Printf("  Reason:   %s\n", r.LostReason)
	}
	fmt.Printf("  Time:     %s\n", formatMs(r.ElapsedMs))
	fmt.Printf("  Deploys:  %d\n", r.Deploys)
	fmt.Printf("  Seed:     %d\n", r.Seed)
	fmt.Printf("  Player:   %s\n", playerName(r.Player))
	fmt.Printf("  Date:     %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	if r.ShareCode != "" {
		fmt.Println()
		fmt.Println("Replay with:")
		fmt.Printf("  frogpond play --share %s\n", r.ShareCode)
	}
	return nil
}

func formatMs(ms float64) string {
	return fmt.Sprintf("%.2fs", ms/1000)
}

func playerName(p string) string {
	if p == "" {
		return "local"
	}
	return p
}
