// racer is a lane racer for the terminal: steer left and right to dodge the
// blocks falling down the road.
//
// Usage:
//
//	racer                   - Start the menu
//	racer play              - Play right away
//	racer play --gui        - Play in a window (add --fullscreen for full screen)
//	racer scores            - Show the run history
//	racer list              - List available games
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set run history path (default: ~/.racer/scores.db)
//	--config <path>     - Use a custom racer config YAML
//	--best-file <path>  - Override where the best score is kept
//	--debug             - Log at debug level
//	--log-file <path>   - Where to log while the game owns the terminal
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lane-racer/internal/config"
	"github.com/vovakirdan/lane-racer/internal/core"
	"github.com/vovakirdan/lane-racer/internal/games/racer"
	"github.com/vovakirdan/lane-racer/internal/platform/tui"
	"github.com/vovakirdan/lane-racer/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagBestFile string
	flagDebug    bool
	flagLogFile  string
)

const screenshotDir = "~/.racer/screenshots"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "racer",
	Short: "Lane Racer - dodge the falling blocks",
	Long: `Lane Racer is an endless dodging game. Blocks fall down the road;
steer your car left and right to avoid them. Every block that gets past
scores a point, and the first hit ends the run.

Available commands:
  play     - Start a run right away
  menu     - Title menu (the default)
  scores   - Show the run history
  list     - Show all available games

Examples:
  racer
  racer play
  racer play --gui --fullscreen
  racer play --seed 42 --fps 30
  racer scores`,
	Run: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.racer/scores.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom racer config YAML")
	rootCmd.PersistentFlags().StringVar(&flagBestFile, "best-file", "", "Path to best score file (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.racer/racer.log", "Log file used while playing")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
}

// session holds what every command shares: config, logger, best score and
// the optional run history.
type session struct {
	cfg     config.RacerConfig
	logger  *log.Logger
	best    *storage.BestScoreFile
	store   *storage.Store // nil when the database could not be opened
	logFile *os.File
}

// openSession prepares the game settings. With toFile set, logs go to the
// log file so they do not tear the full-screen UI.
func openSession(toFile bool) *session {
	s := &session{}

	var out io.Writer = os.Stderr
	if toFile {
		out = io.Discard
		if f, err := openLogFile(flagLogFile); err == nil {
			s.logFile = f
			out = f
		} else {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		}
	}
	s.logger = newLogger(out)

	cfg, err := config.LoadRacer(flagConfig)
	if err != nil {
		s.logger.Warn("using default racer config", "path", flagConfig, "error", err)
		cfg = config.DefaultRacerConfig()
	}
	s.cfg = cfg

	bestPath := flagBestFile
	if bestPath == "" {
		bestPath = cfg.Persistence.BestScoreFile
	}
	s.best = storage.NewBestScoreFile(bestPath, s.logger)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Play continues without history
		s.logger.Warn("could not open run history", "path", flagDBPath, "error", err)
	} else {
		s.store = store
	}

	racer.SetConfigPath(flagConfig)
	racer.SetBestScoreStore(s.best)
	racer.SetLogger(s.logger)

	return s
}

func newLogger(w io.Writer) *log.Logger {
	level := log.InfoLevel
	if flagDebug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "racer",
		Level:           level,
	})
}

func openLogFile(path string) (*os.File, error) {
	path = config.ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// bestScore reads the persisted best score, 0 when unreadable.
func (s *session) bestScore() int {
	best, err := s.best.LoadBestScore()
	if err != nil {
		s.logger.Warn("ignoring unreadable best score", "error", err)
		return 0
	}
	return best
}

// tuiOptions wires the history into the terminal adapter. A nil store must
// stay a nil interface.
func (s *session) tuiOptions() tui.Options {
	opts := tui.Options{
		Logger:        s.logger,
		ScreenshotDir: config.ExpandHome(screenshotDir),
	}
	if s.store != nil {
		opts.Scores = s.store
	}
	return opts
}

func (s *session) Close() {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("could not close run history", "error", err)
		}
	}
	if s.logFile != nil {
		s.logFile.Close()
	}
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
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
