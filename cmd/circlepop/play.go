package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/circlepop/internal/config"
	"github.com/vovakirdan/circlepop/internal/core"
	"github.com/vovakirdan/circlepop/internal/games/circlepop"
	"github.com/vovakirdan/circlepop/internal/platform/tui"
	"github.com/vovakirdan/circlepop/internal/registry"
	"github.com/vovakirdan/circlepop/internal/storage"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start playing the given board, or the one matching --difficulty.

Controls:
  Mouse click      - Pop the group under the pointer
  Arrows/WASD/HJKL - Move the cursor
  Space/Enter      - Pop the group under the cursor
  X                - Show the largest group
  P                - Pause
  R                - Restart (after game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - 3 colors
  normal - 4 colors
  hard   - 5 colors

Examples:
  circlepop play circlepop4
  circlepop play --difficulty easy
  circlepop play circlepop5 --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

// resolveBoard picks the variant from the argument or the difficulty preset.
func resolveBoard(args []string) (string, error) {
	if len(args) == 1 {
		if !registry.Exists(args[0]) {
			return "", fmt.Errorf("unknown board %q (run 'circlepop list')", args[0])
		}
		return args[0], nil
	}

	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return "", err
	}
	v, err := circlepop.ActiveConfig().VariantForPreset(preset)
	if err != nil {
		return "", err
	}
	return v.ID, nil
}

func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID, err := resolveBoard(args)
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	logger, closeLog, err := fileLogger()
	defer closeLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Continue without storage, the game still works.
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	} else {
		defer store.Close()
	}

	opts := tui.Options{
		Store:  store,
		Logger: logger,
		Player: player(),
	}
	if err := tui.Run(game, terminalConfig(), opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
