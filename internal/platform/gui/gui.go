// Package gui runs the racer in a window (or full screen) with Ebitengine.
// The arena takes the window's logical size, and the on-screen buttons
// respond to the mouse and to touches.
package gui

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/lane-racer/internal/core"
	"github.com/vovakirdan/lane-racer/internal/games/racer"
)

// Window size used when neither a size nor full screen is requested.
// Portrait, like a phone held upright.
const (
	DefaultWidth  = 480
	DefaultHeight = 800
)

// ScoreRecorder stores finished runs. *storage.Store implements it.
type ScoreRecorder interface {
	SaveScore(gameID string, score int, ticks uint64) (uuid.UUID, error)
}

// Options configure the window.
type Options struct {
	Width      int // ignored in full screen
	Height     int
	Fullscreen bool
	Seed       int64
	Scores     ScoreRecorder // may be nil
	Logger     *log.Logger
}

// Game implements ebiten.Game around a racer.Game.
type Game struct {
	game          *racer.Game
	opts          Options
	width, height int
	renderer      *imageRenderer
	input         core.InputFrame
	ticks         uint64 // ticks in the current run
	wasOver       bool
}

// NewGame creates the window adapter and starts the first run in a
// width x height arena.
func NewGame(game *racer.Game, width, height int, opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	g := &Game{
		game:   game,
		opts:   opts,
		width:  max(width, 1),
		height: max(height, 1),
		input:  core.NewInputFrame(),
	}
	g.game.Start(racer.NewArena(g.width, g.height, game.Config()), opts.Seed)
	g.renderer = newImageRenderer(g.height)

	return g
}

// Update reads this frame's input and advances the simulation one tick.
// Ebitengine calls it 60 times per second.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.readKeys()
	g.readPointers()

	result := g.game.Step(g.input)
	g.input.Clear()
	g.countTick(result)

	if result.Crashed {
		g.recordRun(result.State.Score)
	}
	return nil
}

// countTick keeps the run's tick count for the history.
func (g *Game) countTick(result core.StepResult) {
	if g.wasOver && !result.State.GameOver {
		g.ticks = 0
	}
	g.wasOver = result.State.GameOver

	if !result.State.Paused && (!result.State.GameOver || result.Crashed) {
		g.ticks++
	}
}

var keyActions = []struct {
	keys   []ebiten.Key
	action core.Action
}{
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA, ebiten.KeyH}, core.ActionLeft},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD, ebiten.KeyL}, core.ActionRight},
	{[]ebiten.Key{ebiten.KeyR, ebiten.KeyEnter, ebiten.KeySpace}, core.ActionRestart},
	{[]ebiten.Key{ebiten.KeyP, ebiten.KeyEscape}, core.ActionPause},
}

func (g *Game) readKeys() {
	gameOver := g.game.State().GameOver

	for _, ka := range keyActions {
		for _, k := range ka.keys {
			if !inpututil.IsKeyJustPressed(k) {
				continue
			}
			if ka.action == core.ActionRestart && !gameOver {
				continue
			}
			g.input.Set(ka.action)
		}
	}
}

// readPointers turns new clicks and touches into button presses.
func (g *Game) readPointers() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.press(ebiten.CursorPosition())
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		g.press(ebiten.TouchPosition(id))
	}
}

// press handles a pointer at screen coordinates (y-down).
func (g *Game) press(x, y int) {
	state := g.game.GameState()
	ay := g.height - 1 - y

	if a := state.Arena.Controls().ActionAt(x, ay, state.GameOver); a != core.ActionNone {
		g.input.Set(a)
	}
}

func (g *Game) recordRun(score int) {
	if g.opts.Scores == nil || score <= 0 {
		return
	}

	runID, err := g.opts.Scores.SaveScore(g.game.ID(), score, g.ticks)
	if err != nil {
		g.opts.Logger.Warn("could not record run", "game", g.game.ID(), "score", score, "error", err)
		return
	}
	g.opts.Logger.Info("run recorded", "game", g.game.ID(), "run", runID, "score", score, "ticks", g.ticks)
}

// Draw renders the current frame.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.begin(screen)
	racer.Present(g.game.GameState(), g.renderer)

	if g.game.State().Paused {
		g.renderer.drawPaused()
	}
}

// Layout keeps the logical screen at the arena size; Ebitengine scales it
// to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// ArenaSize picks the arena size for the options: the monitor in full
// screen, otherwise the requested window size.
func ArenaSize(opts Options) (int, int) {
	if opts.Fullscreen {
		if w, h := ebiten.Monitor().Size(); w > 0 && h > 0 {
			return w, h
		}
	}

	w, h := opts.Width, opts.Height
	if w <= 0 || h <= 0 {
		w, h = DefaultWidth, DefaultHeight
	}
	return w, h
}

// Run opens the window and plays until it is closed or Q is pressed.
func Run(game *racer.Game, opts Options) error {
	w, h := ArenaSize(opts)

	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(opts.Fullscreen)

	g := NewGame(game, w, h, opts)
	g.opts.Logger.Debug("starting window", "width", w, "height", h, "fullscreen", opts.Fullscreen)

	return ebiten.RunGame(g)
}
