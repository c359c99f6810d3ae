package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-racer/internal/games/racer"
	"github.com/vovakirdan/lane-racer/internal/storage"
)

var (
	flagLimit  int
	flagRecent bool
	flagClear  bool
	flagRun    string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display the best runs, the latest runs or a single run, together with
the best score and overall statistics.

Examples:
  racer scores
  racer scores --recent --limit 20
  racer scores --run 1b4e28ba-2fa1-11d2-883f-0016d3cca427
  racer scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the run history")
	scoresCmd.Flags().StringVar(&flagRun, "run", "", "Show a single run by its ID")
}

func runScores(cmd *cobra.Command, args []string) {
	sess := openSession(false)
	if sess.store == nil {
		sess.Close()
		fmt.Fprintf(os.Stderr, "Error opening run history %s\n", flagDBPath)
		os.Exit(1)
	}
	defer sess.Close()

	switch {
	case flagClear:
		if err := sess.store.ClearScores(racer.GameID); err != nil {
			sess.Close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Run history cleared.")
		return

	case flagRun != "":
		showRun(sess.store, flagRun)
		return
	}

	var (
		entries []storage.ScoreEntry
		err     error
		title   = "High Scores"
	)
	if flagRecent {
		title = "Recent Runs"
		entries, err = sess.store.RecentScores(racer.GameID, flagLimit)
	} else {
		entries, err = sess.store.TopScores(racer.GameID, flagLimit)
	}
	if err != nil {
		sess.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s - Lane Racer\n", title)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'racer play' to set the first high score!")
	} else {
		fmt.Printf("  %-4s  %-8s  %-8s  %-8s  %s\n", "Rank", "Score", "Time", "Run", "Date")
		fmt.Printf("  %-4s  %-8s  %-8s  %-8s  %s\n", "----", "-----", "----", "---", "----")
		for i, e := range entries {
			fmt.Printf("  %-4d  %-8d  %-8s  %-8s  %s\n",
				i+1, e.Score, playTime(e.Ticks), e.RunID.String()[:8], e.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", sess.bestScore())

	if stats, err := sess.store.GetGameStats(racer.GameID); err == nil && stats.GamesCount > 0 {
		fmt.Printf("Runs: %d  Average: %.1f  Last played: %s\n",
			stats.GamesCount, stats.AvgScore, stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
}

func showRun(store *storage.Store, raw string) {
	id, err := uuid.Parse(raw)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: invalid run ID %q: %v\n", raw, err)
		os.Exit(1)
	}

	e, err := store.RunByID(id)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if e == nil {
		fmt.Printf("No run with ID %s.\n", id)
		return
	}

	fmt.Printf("Run    %s\n", e.RunID)
	fmt.Printf("Score  %d\n", e.Score)
	fmt.Printf("Time   %s (%d ticks)\n", playTime(e.Ticks), e.Ticks)
	fmt.Printf("Date   %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04:05"))
}

// playTime formats recorded ticks at the current --fps as m:ss.
func playTime(ticks uint64) string {
	fps := uint64(max(flagFPS, 1))
	secs := ticks / fps
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
