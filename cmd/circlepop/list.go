package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/circlepop/internal/games/circlepop"
	"github.com/vovakirdan/circlepop/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all boards",
	Long:  `Shows every CirclePop board variant with its color count and move budget.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No boards available.")
		return
	}

	fmt.Println("Available boards:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	active := circlepop.ActiveConfig()
	fmt.Printf("  %-*s  %-6s  %-5s  %s\n", maxIDLen, "ID", "Colors", "Moves", "Title")
	fmt.Printf("  %-*s  %-6s  %-5s  %s\n", maxIDLen, "--", "------", "-----", "-----")

	for _, g := range games {
		v, ok := active.Variant(g.ID)
		if !ok {
			fmt.Printf("  %-*s  %-6s  %-5s  %s\n", maxIDLen, g.ID, "-", "-", g.Title)
			continue
		}
		fmt.Printf("  %-*s  %-6d  %-5d  %s\n", maxIDLen, g.ID, v.Colors, v.StartingMoves, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'circlepop play <id>' to play a board.")
}
