package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var (
	flagServerConfig string
	flagSSHAddr      string
	flagHostKey      string
	flagIdleTimeout  time.Duration
	flagMode         string
	flagMaxSessions  int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own game. Scores are stored per server, so all
users share one leaderboard, recorded under their SSH user name.

Settings come from --server-config (YAML), then TETRIS_* environment
variables, then the flags below:
  TETRIS_SSH_ADDR, TETRIS_HOST_KEY, TETRIS_DB, TETRIS_MODE,
  TETRIS_IDLE_TIMEOUT, TETRIS_MAX_SESSIONS, TETRIS_LOG_LEVEL

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tetris/host_key

Examples:
  tetris serve                           # Listen on :23234, marathon mode
  tetris serve --ssh :2222               # Listen on port 2222
  tetris serve --mode menu               # Let players pick a mode
  tetris serve --server-config ./server.yaml

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServerConfig, "server-config", "", "Path to server config YAML")
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Disconnect idle sessions after this long")
	serveCmd.Flags().StringVar(&flagMode, "mode", "", "Game mode for sessions, or \"menu\"")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", 0, "Maximum concurrent sessions")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	serveCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadServer(flagServerConfig)
	if err != nil {
		return err
	}
	applyServeFlags(cmd, &cfg)

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "tetris-ssh",
	})
	if !flagDebug {
		tetris.SetLogger(logger.WithPrefix("tetris"))
	}

	keys, err := setupGame()
	if err != nil {
		return err
	}

	server, err := tui.NewSSHServer(cfg, keys, logger)
	if err != nil {
		return err
	}

	fmt.Printf("Starting tetris SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}

// applyServeFlags overrides config values with flags the user set.
func applyServeFlags(cmd *cobra.Command, cfg *config.ServerConfig) {
	if cmd.Flags().Changed("ssh") {
		cfg.Address = flagSSHAddr
	}
	if cmd.Flags().Changed("host-key") {
		cfg.HostKeyPath = flagHostKey
	}
	if f := cmd.Flag("db"); f != nil && f.Changed {
		cfg.DBPath = flagDBPath
	}
	if cmd.Flags().Changed("idle-timeout") {
		cfg.IdleTimeout = flagIdleTimeout
	}
	if cmd.Flags().Changed("mode") {
		cfg.Mode = flagMode
	}
	if cmd.Flags().Changed("max-sessions") && flagMaxSessions > 0 {
		cfg.MaxSessions = flagMaxSessions
	}
}
