package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/circlepop/internal/metrics"
	"github.com/vovakirdan/circlepop/internal/platform/tui"
	"github.com/vovakirdan/circlepop/internal/storage"
)

var (
	flagSSHAddr       string
	flagHostKey       string
	flagIdleTimeout   int
	flagMetricsAddr   string
	flagRedisAddr     string
	flagRedisPassword string
	flagRedisDB       int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the CirclePop SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the board menu. Games are
recorded under the SSH user name. With --redis, best scores go to a shared
Redis leaderboard so several servers can rank players together.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.circlepop/host_key

Examples:
  circlepop serve                              # Listen on :23234
  circlepop serve --ssh :2222                  # Listen on port 2222
  circlepop serve --metrics :9090              # Expose /metrics
  circlepop serve --redis localhost:6379       # Shared leaderboard

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Serve Prometheus metrics on this address (disabled if empty)")
	serveCmd.Flags().StringVar(&flagRedisAddr, "redis", "", "Redis address for a shared leaderboard (disabled if empty)")
	serveCmd.Flags().StringVar(&flagRedisPassword, "redis-password", "", "Redis password")
	serveCmd.Flags().IntVar(&flagRedisDB, "redis-db", 0, "Redis database number")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "circlepop-ssh")
	if err != nil {
		return err
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
	}
	opts := []tui.SSHOption{tui.WithLogger(logger)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if flagMetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		opts = append(opts, tui.WithMetrics(metrics.NewRecorder(reg)))

		go func() {
			logger.Info("serving metrics", "address", flagMetricsAddr)
			if err := metrics.Serve(ctx, flagMetricsAddr, reg); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	if flagRedisAddr != "" {
		board := storage.NewRedisLeaderboard(flagRedisAddr, flagRedisPassword, flagRedisDB)
		defer board.Close()

		pingCtx, pingCancel := context.WithTimeout(ctx, 3*time.Second)
		err := board.Ping(pingCtx)
		pingCancel()
		if err != nil {
			return err
		}
		logger.Info("using shared leaderboard", "redis", flagRedisAddr)
		opts = append(opts, tui.WithLeaderboard(board))
	}

	server, err := tui.NewSSHServer(cfg, opts...)
	if err != nil {
		return err
	}

	fmt.Printf("Starting CirclePop SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
