package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/circlepop/internal/registry"
	"github.com/vovakirdan/circlepop/internal/storage"
)

var flagRecent int

var scoresCmd = &cobra.Command{
	Use:   "scores [board]",
	Short: "Show high scores for a board",
	Long: `Display each player's best score, aggregate statistics and the most
recent games. Without a board, the recent games of every board are listed.

Examples:
  circlepop scores circlepop4
  circlepop scores --recent 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 5, "Number of recent games to show")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown board %q (run 'circlepop list')", gameID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if gameID != "" {
		if err := printLeaders(store, gameID); err != nil {
			return err
		}
	}
	return printRecent(store, gameID)
}

func printLeaders(store *storage.Store, gameID string) error {
	title := gameID
	if info, ok := registry.Info(gameID); ok {
		title = info.Title
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	leaders, err := store.Leaderboard().Top(ctx, gameID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(leaders) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'circlepop play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %s\n", "Rank", "Player", "Best")
	fmt.Printf("  %-4s  %-16s  %s\n", "----", "------", "----")
	for i, e := range leaders {
		name := e.Player
		if name == "" {
			name = "anonymous"
		}
		fmt.Printf("  %-4d  %-16s  %d\n", i+1, name, e.Score)
	}

	stats, err := store.Stats(gameID)
	if err != nil {
		return err
	}
	if stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Games: %d  Average: %.0f  Largest pop: %d  Circles popped: %d\n",
			stats.GamesCount, stats.AvgScore, stats.LargestGroup, stats.TotalCleared)
	}
	return nil
}

func printRecent(store *storage.Store, gameID string) error {
	games, err := store.RecentGames(gameID, flagRecent)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		if gameID == "" {
			fmt.Println("No games recorded yet.")
		}
		return nil
	}

	fmt.Println()
	fmt.Println("Recent games:")
	fmt.Printf("  %-16s  %-12s  %-12s  %6s  %5s  %s\n", "Date", "Board", "Player", "Score", "Moves", "End")
	for _, g := range games {
		date := "-"
		if !g.CreatedAt.IsZero() {
			date = g.CreatedAt.Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-16s  %-12s  %-12s  %6d  %5d  %s\n",
			date, g.GameID, g.Player, g.Score, g.MovesUsed, g.EndReason)
	}
	return nil
}
