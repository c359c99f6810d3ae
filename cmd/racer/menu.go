package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-racer/internal/games/racer"
	"github.com/vovakirdan/lane-racer/internal/platform/tui"
	"github.com/vovakirdan/lane-racer/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the title menu",
	Long: `Start Lane Racer with the title menu.

Pick Play to start a run or High Scores to browse the run history.
Press B during a run to come back to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  racer menu
  racer menu --fps 30
  racer menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	sess := openSession(true)
	defer sess.Close()

	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg, sess.bestScore())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		switch menuResult.Choice {
		case tui.ChoiceScores:
			goBack, sbErr := tui.RunScoreboard(scoreSource(sess), tui.ScoreboardConfig{
				GameID:    racer.GameID,
				Title:     "Lane Racer",
				BestScore: sess.bestScore(),
				TickRate:  cfg.TickRate,
				Width:     cfg.ScreenW,
				Height:    cfg.ScreenH,
			})
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return

		case tui.ChoicePlay:
			game, err := registry.Create(racer.GameID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
				return
			}

			result, err := tui.Run(game, cfg, sess.tuiOptions())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
				return
			}
			cfg.ScreenW, cfg.ScreenH = result.Config.ScreenW, result.Config.ScreenH
			if !result.BackToMenu {
				return
			}

		default:
			return
		}
	}
}

// scoreSource keeps a missing store a nil interface.
func scoreSource(sess *session) tui.ScoreSource {
	if sess.store == nil {
		return nil
	}
	return sess.store
}
