package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-racer/internal/games/racer"
	"github.com/vovakirdan/lane-racer/internal/platform/gui"
	"github.com/vovakirdan/lane-racer/internal/platform/tui"
	"github.com/vovakirdan/lane-racer/internal/registry"
)

var (
	flagGUI        bool
	flagFullscreen bool
	flagWidth      int
	flagHeight     int
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Start a run",
	Long: `Start playing right away, in the terminal or in a window.

Controls:
  Left/A/H    - Steer left
  Right/D/L   - Steer right
  P/Esc       - Pause
  R/Enter     - Restart (after a crash)
  Ctrl+S      - Screenshot (terminal only)
  Q/Ctrl+C    - Quit

The on-screen LEFT/RIGHT and RESTART buttons respond to the mouse, and to
touches in the window.

Examples:
  racer play
  racer play --seed 42
  racer play --gui
  racer play --gui --fullscreen
  racer play --config ./my-racer.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagGUI, "gui", false, "Play in a window instead of the terminal")
	playCmd.Flags().BoolVar(&flagFullscreen, "fullscreen", false, "Use the whole display (with --gui)")
	playCmd.Flags().IntVar(&flagWidth, "width", gui.DefaultWidth, "Window width (with --gui)")
	playCmd.Flags().IntVar(&flagHeight, "height", gui.DefaultHeight, "Window height (with --gui)")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := racer.GameID
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'racer list' to see available games.")
		os.Exit(1)
	}

	if flagGUI {
		runWindow()
		return
	}

	sess := openSession(true)

	game, err := registry.Create(gameID)
	if err != nil {
		sess.Close()
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	_, runErr := tui.Run(game, runtimeConfig(), sess.tuiOptions())

	// Close store before potential exit
	sess.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runWindow plays in an Ebitengine window. Logs go to stderr since the
// terminal stays free.
func runWindow() {
	sess := openSession(false)
	defer sess.Close()

	opts := gui.Options{
		Width:      flagWidth,
		Height:     flagHeight,
		Fullscreen: flagFullscreen,
		Seed:       flagSeed,
		Logger:     sess.logger,
	}
	if opts.Seed == 0 {
		opts.Seed = seedFromClock()
	}
	if sess.store != nil {
		opts.Scores = sess.store
	}

	game := racer.NewGame(sess.cfg, sess.best, sess.logger)
	if err := gui.Run(game, opts); err != nil {
		sess.Close()
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

func seedFromClock() int64 {
	return time.Now().UnixNano()
}
