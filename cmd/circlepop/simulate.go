package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/circlepop/internal/core"
	"github.com/vovakirdan/circlepop/internal/games/circlepop"
	"github.com/vovakirdan/circlepop/internal/games/circlepop/board"
	"github.com/vovakirdan/circlepop/internal/storage"
)

var (
	flagSimVariant  string
	flagSimMoves    int
	flagSimStrategy string
	flagSimQuiet    bool
	flagSimSave     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play a board headlessly with a fixed strategy",
	Long: `Play a board without a terminal UI and print the board after every pop.

Strategies:
  largest - always pop the largest group
  first   - pop the first poppable group, scanning from the bottom-left

The same --seed always produces the same game.

Examples:
  circlepop simulate --seed 7
  circlepop simulate --variant circlepop5 --strategy first --moves 10
  circlepop simulate --quiet --save`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagSimVariant, "variant", "circlepop4", "Board to play")
	simulateCmd.Flags().IntVar(&flagSimMoves, "moves", 0, "Stop after this many pops (0 = play to the end)")
	simulateCmd.Flags().StringVar(&flagSimStrategy, "strategy", "largest", "Move strategy: largest, first")
	simulateCmd.Flags().BoolVar(&flagSimQuiet, "quiet", false, "Only print the final board and result")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the finished game in the scores database")
}

// strategy picks the region to pop next. ok is false when nothing can be popped.
type strategy func(g *board.Grid, minGroup int) (board.Region, bool)

func largestStrategy(g *board.Grid, minGroup int) (board.Region, bool) {
	r, ok := board.LargestRegion(g)
	return r, ok && r.Len() >= minGroup
}

func firstStrategy(g *board.Grid, minGroup int) (board.Region, bool) {
	for _, r := range board.Regions(g) {
		if r.Len() >= minGroup {
			return r, true
		}
	}
	return board.Region{}, false
}

func strategyFor(name string) (strategy, error) {
	switch name {
	case "largest":
		return largestStrategy, nil
	case "first":
		return firstStrategy, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want largest or first)", name)
	}
}

func runSimulate(_ *cobra.Command, _ []string) error {
	pick, err := strategyFor(flagSimStrategy)
	if err != nil {
		return err
	}
	if _, ok := circlepop.ActiveConfig().Variant(flagSimVariant); !ok {
		return fmt.Errorf("unknown board %q (run 'circlepop list')", flagSimVariant)
	}

	logger, err := newLogger(os.Stderr, "simulate")
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	game := circlepop.New(flagSimVariant)
	game.Reset(core.RuntimeConfig{TickRate: flagFPS, Seed: seed})
	logger.Debug("starting", "variant", flagSimVariant, "seed", seed, "strategy", flagSimStrategy)

	if !flagSimQuiet {
		fmt.Println(game.Grid().String())
		fmt.Println()
	}

	for pops := 0; !game.State().GameOver; pops++ {
		if flagSimMoves > 0 && pops >= flagSimMoves {
			break
		}
		r, ok := pick(game.Grid(), game.Rules().MinGroup)
		if !ok {
			break
		}

		origin := r.Origin()
		ev := game.Play(origin.X, origin.Y)
		if !ev.Accepted() {
			return fmt.Errorf("move at (%d, %d) rejected: %w", origin.X, origin.Y, ev.Err)
		}
		game.SkipAnimation()
		logger.Debug("pop", "x", origin.X, "y", origin.Y, "popped", ev.Popped, "gained", ev.Gained)

		if !flagSimQuiet {
			fmt.Printf("pop (%d, %d): %d circles, +%d, %d moves left\n",
				origin.X, origin.Y, ev.Popped, ev.Gained, ev.MovesLeft)
			fmt.Println(game.Grid().String())
			fmt.Println()
		}
	}

	snap := game.Snapshot()
	if flagSimQuiet {
		for _, row := range snap.Rows {
			fmt.Println(row)
		}
		fmt.Println()
	}

	summary := game.Summary()
	fmt.Printf("seed %d  score %d  pops %d  moves left %d  largest %d  cleared %d  state %s",
		snap.Seed, snap.Score, snap.MovesUsed, snap.MovesLeft, summary.LargestGroup, summary.TotalCleared, snap.State)
	if snap.EndReason != "" {
		fmt.Printf(" (%s)", snap.EndReason)
	}
	fmt.Println()

	if flagSimSave && summary.EndReason != "" {
		return saveSummary(summary)
	}
	return nil
}

func saveSummary(s core.Summary) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.SaveGame(storage.GameRecord{
		GameID:       s.GameID,
		Player:       "simulate-" + flagSimStrategy,
		Score:        s.Score,
		MovesUsed:    s.MovesUsed,
		LargestGroup: s.LargestGroup,
		TotalCleared: s.TotalCleared,
		Seed:         s.Seed,
		EndReason:    s.EndReason,
	})
	return err
}
