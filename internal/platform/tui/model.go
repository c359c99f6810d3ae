package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/lane-racer/internal/core"
	"github.com/vovakirdan/lane-racer/internal/registry"
)

// ScoreRecorder stores finished runs. *storage.Store implements it.
type ScoreRecorder interface {
	SaveScore(gameID string, score int, ticks uint64) (uuid.UUID, error)
}

// Options are the optional collaborators of a game session.
type Options struct {
	Scores        ScoreRecorder // run history; nil disables it
	Logger        *log.Logger   // nil falls back to log.Default()
	ScreenshotDir string        // where Ctrl+S writes; empty disables screenshots
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	keys       KeyMap
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	ticks      uint64 // ticks in the current run
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	game.Reset(cfg)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		keys:       DefaultKeyMap(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey queues the action for the next tick. Quit, back and
// screenshots act immediately.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.backToMenu = true
		return m, tea.Quit
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(action)
		}
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleMouse treats a click like a touch: the left half of the screen
// steers left, the right half steers right, any click restarts after a crash.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	switch {
	case m.gameState.GameOver:
		m.inputFrame.Set(core.ActionRestart)
	case msg.X < m.screen.Width()/2:
		m.inputFrame.Set(core.ActionLeft)
	default:
		m.inputFrame.Set(core.ActionRight)
	}

	return m, nil
}

// handleResize resizes the screen. A run in progress starts over at the new
// size; the game-over screen is kept so the final score stays visible.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if !m.gameState.GameOver {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.ticks = 0
	}

	return m, nil
}

// handleTick runs one simulation step with the input gathered since the
// last tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()

	if m.gameState.GameOver && !result.State.GameOver {
		m.ticks = 0
	}
	m.gameState = result.State
	if !m.gameState.Paused && (!m.gameState.GameOver || result.Crashed) {
		m.ticks++
	}

	if result.Crashed {
		m.recordRun()
	}

	return m, tickCmd(m.config.TickRate)
}

// recordRun adds the finished run to the history. Failures are logged and
// play continues.
func (m *Model) recordRun() {
	score := m.gameState.Score
	if m.opts.Scores == nil || score <= 0 {
		return
	}

	runID, err := m.opts.Scores.SaveScore(m.game.ID(), score, m.ticks)
	if err != nil {
		m.opts.Logger.Warn("could not record run", "game", m.game.ID(), "score", score, "error", err)
		return
	}
	m.opts.Logger.Info("run recorded", "game", m.game.ID(), "run", runID, "score", score, "ticks", m.ticks)
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() {
	if m.opts.ScreenshotDir == "" {
		return
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.opts.ScreenshotDir, 0o755); err != nil {
		m.opts.Logger.Warn("could not create screenshot directory", "dir", m.opts.ScreenshotDir, "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.opts.ScreenshotDir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "path", path, "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	return RenderScreen(m.screen)
}

// State returns the last known game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// RunResult reports how a game session ended.
type RunResult struct {
	BackToMenu bool
	Config     core.RuntimeConfig // includes the final screen size
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (RunResult, error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return RunResult{Config: cfg}, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return RunResult{Config: cfg}, nil
	}
	return RunResult{BackToMenu: m.backToMenu, Config: m.config}, nil
}
