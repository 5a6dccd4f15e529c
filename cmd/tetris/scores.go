package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresPlayer string
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the leaderboard for a mode (default: tetris). Sprint runs are
ranked by completion time, marathon games by score.

Examples:
  tetris scores
  tetris scores tetris_sprint
  tetris scores --player alice
  tetris scores --limit 25`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: registry.IDs(),
	RunE:      runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Only show scores for this player")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := tetris.IDMarathon
	if len(args) == 1 {
		gameID = args[0]
	}
	info, ok := registry.Info(gameID)
	if !ok {
		return fmt.Errorf("unknown mode %q, run 'tetris list' to see modes", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", info.Title)
		return nil
	}

	var scores []storage.ScoreEntry
	if flagScoresPlayer != "" {
		scores, err = store.PlayerScores(gameID, flagScoresPlayer, flagScoresLimit)
	} else {
		scores, err = tui.Rankings(store, info, flagScoresLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	heading := "High Scores"
	if info.Race {
		heading = "Fastest Runs"
	}
	fmt.Printf("%s - %s\n", heading, info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tetris play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-9s  %-5s  %-5s  %-8s  %-14s  %s\n", "Rank", "Score", "Lines", "Level", "Time", "Player", "Date")
	fmt.Printf("  %-4s  %-9s  %-5s  %-5s  %-8s  %-14s  %s\n", "----", "-----", "-----", "-----", "----", "------", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-9d  %-5d  %-5d  %-8s  %-14s  %s\n",
			i+1, e.Score, e.Lines, e.Level,
			tui.FormatRunTime(e.Duration), e.Player,
			e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if info.Race {
		if best, ok, err := store.BestTime(gameID); err == nil && ok {
			fmt.Printf("Best time: %s\n", tui.FormatRunTime(best))
		}
		return nil
	}
	if best, err := store.HighScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}
