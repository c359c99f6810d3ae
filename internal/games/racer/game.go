// Package racer implements a lane racer: the player steers a car left and
// right to dodge blocks falling down the road, scoring one point for every
// block that gets past.
//
// GameState and Tick hold the whole simulation and know nothing about
// terminals or windows. Game adapts them to the arcade platform
// (registry.Game) and renders into a core.Screen; other front ends drive
// GameState directly through Present and their own Renderer.
package racer

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-racer/internal/config"
	"github.com/vovakirdan/lane-racer/internal/core"
	"github.com/vovakirdan/lane-racer/internal/registry"
)

// GameID is the registry and score-history key for the racer.
const GameID = "racer"

// Visual characters for rendering
const (
	VehicleChar  = '█'
	ObstacleChar = '▓'
	LaneChar     = '┆'
)

// BestScoreStore loads and saves the persisted best score.
type BestScoreStore interface {
	BestScoreSaver
	LoadBestScore() (int, error)
}

// Settings applied by the CLI before the registry creates a game.
var (
	configPath string
	bestStore  BestScoreStore
	gameLogger *log.Logger
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetBestScoreStore sets where games created by New keep their best score.
func SetBestScoreStore(store BestScoreStore) {
	bestStore = store
}

// SetLogger sets the logger handed to games created by New.
func SetLogger(l *log.Logger) {
	gameLogger = l
}

// Game adapts GameState to the arcade platform.
type Game struct {
	cfg     *config.RacerConfig
	runtime core.RuntimeConfig
	store   BestScoreStore
	logger  *log.Logger

	state      *GameState
	rng        *rand.Rand
	paused     bool
	tick       uint64
	bestLoaded bool
}

// New creates a racer using the package settings. The config file is read
// on the first Reset.
func New() *Game {
	return &Game{
		store:  bestStore,
		logger: gameLogger,
	}
}

// NewGame creates a racer with an explicit config and best-score store.
// store and logger may be nil.
func NewGame(cfg config.RacerConfig, store BestScoreStore, logger *log.Logger) *Game {
	return &Game{
		cfg:    &cfg,
		store:  store,
		logger: logger,
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Lane Racer"
}

// Reset sizes the arena to the terminal and starts a new run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.loadConfig()
	g.Start(TerminalArena(runtime.ScreenW, runtime.ScreenH, *g.cfg), runtime.Seed)
}

// Start begins a new run in the given arena with a freshly seeded RNG.
// The best score is loaded from the store only once per Game.
func (g *Game) Start(arena Arena, seed int64) {
	g.loadConfig()

	best := 0
	if g.state != nil {
		best = g.state.BestScore
	}
	if !g.bestLoaded {
		best = g.loadBest()
		g.bestLoaded = true
	}

	var saver BestScoreSaver
	if g.store != nil {
		saver = g.store
	}

	g.state = NewGameState(arena, best, saver)
	g.rng = rand.New(rand.NewSource(seed))
	g.paused = false
	g.tick = 0
}

// Config returns the racer config, loading it on first use.
func (g *Game) Config() config.RacerConfig {
	g.loadConfig()
	return *g.cfg
}

// loadConfig reads the racer config once, falling back to defaults.
func (g *Game) loadConfig() {
	if g.cfg != nil {
		return
	}
	cfg, err := config.LoadRacer(configPath)
	if err != nil {
		g.log().Warn("using default racer config", "path", configPath, "error", err)
		cfg = config.DefaultRacerConfig()
	}
	g.cfg = &cfg
}

// loadBest reads the persisted best score. Unreadable values count as 0.
func (g *Game) loadBest() int {
	if g.store == nil {
		return 0
	}
	best, err := g.store.LoadBestScore()
	if err != nil {
		g.log().Warn("ignoring unreadable best score", "error", err)
		return 0
	}
	return best
}

// Step applies this frame's input in the order it arrived, then advances
// the simulation one tick unless paused.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	for _, action := range in.Sequence() {
		switch action {
		case core.ActionRestart:
			g.state.Restart()
			g.paused = false
		case core.ActionPause:
			if !g.state.GameOver {
				g.paused = !g.paused
			}
		case core.ActionLeft:
			if !g.paused {
				g.state.MoveVehicle(Left)
			}
		case core.ActionRight:
			if !g.paused {
				g.state.MoveVehicle(Right)
			}
		}
	}

	if g.paused || g.state.GameOver {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	res := Tick(g.state, g.rng)
	if res.SaveErr != nil {
		g.log().Warn("could not save best score", "error", res.SaveErr)
	}
	if res.Crashed {
		g.log().Debug("run ended", "score", g.state.Score, "best", g.state.BestScore, "tick", g.tick)
	}

	return core.StepResult{State: g.State(), Crashed: res.Crashed}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.state.Score,
		BestScore: g.state.BestScore,
		GameOver:  g.state.GameOver,
		Paused:    g.paused,
	}
}

// GameState exposes the simulation state for adapters and tests.
func (g *Game) GameState() *GameState {
	return g.state
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	Present(g.state, newScreenRenderer(dst, g.state.Arena, *g.cfg))

	if g.paused {
		drawCenteredMessage(dst, []messageLine{
			{"PAUSED", core.ColorBrightWhite},
			{"", core.ColorDefault},
			{"Press P to resume", core.ColorDefault},
		})
	}
}

func (g *Game) log() *log.Logger {
	if g.logger != nil {
		return g.logger
	}
	return log.Default()
}

// TerminalArena builds an arena covering a cols x rows terminal, using the
// configured number of arena units per cell.
func TerminalArena(cols, rows int, cfg config.RacerConfig) Arena {
	return NewArena(cols*cfg.Terminal.CellWidth, rows*cfg.Terminal.CellHeight, cfg)
}

// screenRenderer draws arena rectangles onto a character grid.
type screenRenderer struct {
	dst   *core.Screen
	arena Arena
	cellW int
	cellH int
}

func newScreenRenderer(dst *core.Screen, arena Arena, cfg config.RacerConfig) screenRenderer {
	return screenRenderer{
		dst:   dst,
		arena: arena,
		cellW: cfg.Terminal.CellWidth,
		cellH: cfg.Terminal.CellHeight,
	}
}

// toCells converts a y-up arena rectangle to the screen cells it touches.
func (r screenRenderer) toCells(rect core.Rect) core.Rect {
	left := floorDiv(rect.X, r.cellW)
	right := ceilDiv(rect.Right(), r.cellW)
	top := floorDiv(r.arena.Height-rect.Bottom(), r.cellH)
	bottom := ceilDiv(r.arena.Height-rect.Y, r.cellH)
	return core.NewRect(left, top, max(right-left, 1), max(bottom-top, 1))
}

func (r screenRenderer) DrawRoad(a Arena) {
	for x := a.LaneStep; x < a.Width; x += a.LaneStep {
		col := x / r.cellW
		for row := 0; row < r.dst.Height(); row += 2 {
			r.dst.SetColored(col, row, LaneChar, core.ColorGray)
		}
	}
}

func (r screenRenderer) DrawObstacle(rect core.Rect) {
	r.dst.DrawRect(r.toCells(rect), ObstacleChar, core.ColorWhite)
}

func (r screenRenderer) DrawVehicle(rect core.Rect) {
	r.dst.DrawRect(r.toCells(rect), VehicleChar, core.ColorBrightRed)
}

func (r screenRenderer) DrawScore(score int) {
	r.dst.DrawTextCentered(0, fmt.Sprintf(" Score: %d ", score), core.ColorBrightWhite)
}

func (r screenRenderer) DrawControls(c Controls) {
	r.drawButton(c.Left, "[ ◀ LEFT ]")
	r.drawButton(c.Right, "[ RIGHT ▶ ]")
}

func (r screenRenderer) DrawGameOver(best int, _ core.Rect) {
	drawCenteredMessage(r.dst, []messageLine{
		{"WASTED!!!", core.ColorBrightRed},
		{"", core.ColorDefault},
		{fmt.Sprintf("Best Score: %d", best), core.ColorBrightWhite},
		{"", core.ColorDefault},
		{"[ R ] Restart", core.ColorYellow},
	})
}

// drawButton writes a label centered on the button's middle row.
func (r screenRenderer) drawButton(rect core.Rect, label string) {
	cells := r.toCells(rect)
	r.dst.DrawRect(cells, ' ', core.ColorDefault)
	x := cells.X + (cells.W-len([]rune(label)))/2
	y := cells.Y + cells.H/2
	r.dst.DrawTextColored(x, y, label, core.ColorYellow)
}

type messageLine struct {
	text  string
	color core.Color
}

// drawCenteredMessage draws a framed message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, lines []messageLine) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l.text)))
	}

	boxW := width + 4
	boxH := len(lines) + 2
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorGray)

	for i, l := range lines {
		x := box.X + (boxW-len([]rune(l.text)))/2
		dst.DrawTextColored(x, box.Y+1+i, l.text, l.color)
	}
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// ceilDiv divides rounding toward positive infinity.
func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
