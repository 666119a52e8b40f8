// circlepop is a tile-matching puzzle for the terminal: pop groups of
// same-colored circles before you run out of moves.
//
// Usage:
//
//	circlepop list                 - List available boards
//	circlepop play [board]         - Play a board
//	circlepop menu                 - Pick boards interactively
//	circlepop serve                - Host games over SSH
//	circlepop scores [board]       - Show high scores and recent games
//	circlepop simulate             - Play a board headlessly with a fixed strategy
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible boards
//	--db <path>         - Set database path (default: ~/.circlepop/scores.db)
//	--config <path>     - Load board variants from a YAML file
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/circlepop/internal/config"
	"github.com/vovakirdan/circlepop/internal/games/circlepop"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "circlepop",
	Short: "CirclePop - pop circles in your terminal",
	Long: `CirclePop is a tile-matching puzzle. Click or select a group of three or
more touching circles of one color to pop it. The circles above fall down and
new ones drop in from the top. Big pops earn a bonus and give the move back.

Available commands:
  list      - Show all boards
  play      - Play a board directly
  menu      - Interactive board picker
  serve     - Start SSH server for remote play
  scores    - View high scores
  simulate  - Run a headless game

Examples:
  circlepop list
  circlepop play circlepop4
  circlepop play --difficulty hard
  circlepop serve --ssh :2222 --metrics :9090
  circlepop simulate --seed 7 --strategy largest`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.circlepop/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a board variants YAML file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
}

// loadConfig applies the variant configuration before any board is created.
func loadConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadCirclePop(flagConfig)
	if err != nil {
		return err
	}
	return circlepop.UseConfig(cfg)
}

// newLogger builds a logger writing to w at the --log-level threshold.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          prefix,
	}), nil
}

// fileLogger logs to ~/.circlepop/circlepop.log so output does not tear the
// full-screen UI. The returned close func is never nil.
func fileLogger() (*log.Logger, func(), error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, func() {}, err
	}
	dir := filepath.Join(home, ".circlepop")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, func() {}, err
	}
	f, err := os.OpenFile(filepath.Join(dir, "circlepop.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, func() {}, err
	}
	logger, err := newLogger(f, "circlepop")
	if err != nil {
		f.Close()
		return nil, func() {}, err
	}
	return logger, func() { f.Close() }, nil
}

// player names local games after the OS user.
func player() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return os.Getenv("USERNAME")
}
