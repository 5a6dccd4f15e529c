package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing. The mode defaults to marathon (tetris).

Modes:
  tetris         - Marathon: play until the stack tops out
  tetris_sprint  - Sprint: clear 40 lines as fast as possible

Default controls (change them in the keys section of tetris.yaml):
  Left/Right, A/D   - Move
  Up, X             - Rotate clockwise
  Z                 - Rotate counter-clockwise
  Down, S           - Soft drop
  Space             - Hard drop
  C                 - Hold
  P/Esc             - Pause
  R                 - Restart (after game over)
  Q/Ctrl+C          - Quit
  ?                 - Toggle help

Difficulty options:
  easy   - Slow start, speeds up with lines
  normal - Default speed curve
  hard   - Starts fast
  fixed  - No progression, stays at config's initial level

Examples:
  tetris play
  tetris play tetris_sprint
  tetris play --difficulty hard
  tetris play --config ./my-tetris.yaml`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: registry.IDs(),
	RunE:      runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Name recorded with your scores")

	menuCmd.Flags().AddFlagSet(playCmd.Flags())
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := tetris.IDMarathon
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'tetris list' to see modes", gameID)
	}

	keys, err := setupGame()
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	runErr := tui.Run(game, store, tui.Options{
		Runtime: runtimeConfig(),
		Keys:    keys,
		Player:  flagPlayer,
	})

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}

// setupGame applies --config and --difficulty to the game package and
// builds the key map from the same config.
func setupGame() (tui.KeyMap, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return tui.KeyMap{}, err
	}

	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return tui.KeyMap{}, err
	}

	tetris.SetConfigPath(flagConfig)
	tetris.SetDifficultyPreset(preset)
	return tui.NewKeyMap(cfg.Keys)
}

// runtimeConfig builds the runtime config from the terminal size and the
// global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
