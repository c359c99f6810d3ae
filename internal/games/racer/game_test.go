package racer

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-racer/internal/config"
	"github.com/vovakirdan/lane-racer/internal/core"
)

type fakeStore struct {
	best  int
	err   error
	loads int
	fakeSaver
}

func (f *fakeStore) LoadBestScore() (int, error) {
	f.loads++
	return f.best, f.err
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestGame(store BestScoreStore) *Game {
	g := NewGame(config.DefaultRacerConfig(), store, quietLogger())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 12345})
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// crash drops an obstacle onto the vehicle so the next step ends the run.
func crash(g *Game) core.StepResult {
	s := g.GameState()
	s.Obstacles = append(s.Obstacles, Obstacle{X: s.Vehicle.X, Y: s.Vehicle.Y + s.Arena.ObstacleSpeed})
	return g.Step(core.NewInputFrame())
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(nil)
	g2 := newTestGame(nil)

	input := core.NewInputFrame()
	for i := 0; i < 600; i++ {
		input.Clear()
		switch {
		case i%50 == 10:
			input.Set(core.ActionLeft)
		case i%70 == 30:
			input.Set(core.ActionRight)
			input.Set(core.ActionRight)
		case i == 400:
			input.Set(core.ActionRestart)
		}

		g1.Step(input)
		g2.Step(input)
	}

	snap1 := g1.Snapshot()
	snap2 := g2.Snapshot()
	if !reflect.DeepEqual(snap1, snap2) {
		t.Errorf("snapshots differ:\n%+v\n%+v", snap1, snap2)
	}
}

func TestStartWithWindowArena(t *testing.T) {
	store := &fakeStore{best: 4}
	g := NewGame(config.DefaultRacerConfig(), store, quietLogger())

	g.Start(NewArena(480, 800, g.Config()), 7)
	if a := g.GameState().Arena; a.Width != 480 || a.Height != 800 || a.VehicleSize != 48 {
		t.Errorf("arena = %+v, expected 480x800 with size 48", a)
	}

	g.GameState().BestScore = 9
	g.Start(NewArena(600, 900, g.Config()), 7)
	if got := g.State().BestScore; got != 9 {
		t.Errorf("best after restart = %d, expected 9", got)
	}
	if store.loads != 1 {
		t.Errorf("store loaded %d times, expected 1", store.loads)
	}
}

func TestResetUsesTerminalArena(t *testing.T) {
	g := newTestGame(nil)
	a := g.GameState().Arena

	if a.Width != 800 || a.Height != 480 {
		t.Errorf("arena = %dx%d, expected 800x480", a.Width, a.Height)
	}
	snap := g.Snapshot()
	if snap.Phase != PhasePlaying || snap.Score != 0 || snap.VehicleX != a.CenterX() {
		t.Errorf("unexpected initial snapshot %+v", snap)
	}
}

func TestStepSteersInOrder(t *testing.T) {
	g := newTestGame(nil)
	s := g.GameState()
	start := s.Vehicle.X

	g.Step(press(core.ActionLeft, core.ActionLeft, core.ActionRight))

	if s.Vehicle.X != start-s.Arena.LaneStep {
		t.Errorf("X = %d, expected %d", s.Vehicle.X, start-s.Arena.LaneStep)
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(nil)
	g.Step(core.NewInputFrame())

	res := g.Step(press(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("expected paused")
	}
	before := g.Snapshot()

	x := g.GameState().Vehicle.X
	for i := 0; i < 20; i++ {
		g.Step(press(core.ActionLeft))
	}
	if g.GameState().Vehicle.X != x {
		t.Error("steering should be ignored while paused")
	}
	if g.Snapshot().Tick != before.Tick {
		t.Error("ticks should not advance while paused")
	}

	res = g.Step(press(core.ActionPause))
	if res.State.Paused {
		t.Error("second pause should resume")
	}
	if g.Snapshot().Tick != before.Tick+1 {
		t.Errorf("tick = %d, expected %d", g.Snapshot().Tick, before.Tick+1)
	}
}

func TestPauseIgnoredAfterGameOver(t *testing.T) {
	g := newTestGame(nil)
	crash(g)

	res := g.Step(press(core.ActionPause))
	if res.State.Paused {
		t.Error("pause should be ignored on the game-over screen")
	}
}

func TestCrashAndRestart(t *testing.T) {
	store := &fakeStore{best: 1}
	g := newTestGame(store)
	g.GameState().Score = 4

	res := crash(g)
	if !res.Crashed || !res.State.GameOver {
		t.Fatalf("expected crash, got %+v", res)
	}
	if res.State.BestScore != 4 || len(store.saved) != 1 || store.saved[0] != 4 {
		t.Errorf("best = %d, saved = %v", res.State.BestScore, store.saved)
	}

	// Frozen until restart
	frozen := g.Snapshot()
	for i := 0; i < 10; i++ {
		if r := g.Step(press(core.ActionLeft)); r.Crashed {
			t.Fatal("crash reported twice")
		}
	}
	if !reflect.DeepEqual(frozen, g.Snapshot()) {
		t.Error("state changed after game over")
	}

	res = g.Step(press(core.ActionRestart))
	if res.State.GameOver || res.State.Score != 0 {
		t.Errorf("after restart: %+v", res.State)
	}
	if res.State.BestScore != 4 {
		t.Errorf("best = %d after restart, expected 4", res.State.BestScore)
	}
}

func TestBestScoreLoadedOnce(t *testing.T) {
	store := &fakeStore{best: 9}
	g := NewGame(config.DefaultRacerConfig(), store, quietLogger())

	rc := core.RuntimeConfig{ScreenW: 40, ScreenH: 20, Seed: 3}
	g.Reset(rc)
	if g.State().BestScore != 9 {
		t.Fatalf("best = %d, expected 9", g.State().BestScore)
	}

	g.GameState().Score = 12
	crash(g)

	store.best = 0
	g.Reset(rc)

	if store.loads != 1 {
		t.Errorf("loads = %d, expected 1", store.loads)
	}
	if g.State().BestScore != 12 {
		t.Errorf("best = %d after reset, expected 12", g.State().BestScore)
	}
}

func TestBestScoreLoadError(t *testing.T) {
	store := &fakeStore{best: 50, err: errors.New("corrupt")}
	g := newTestGame(store)

	if g.State().BestScore != 0 {
		t.Errorf("best = %d, expected 0 on load error", g.State().BestScore)
	}
}

func TestBestScoreSaveErrorNotFatal(t *testing.T) {
	store := &fakeStore{}
	store.fakeSaver.err = errors.New("read-only")
	g := newTestGame(store)
	g.GameState().Score = 3

	res := crash(g)

	if !res.Crashed || res.State.BestScore != 3 {
		t.Errorf("crash with failed save: %+v", res)
	}
}

func TestRenderPlaying(t *testing.T) {
	g := newTestGame(nil)
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("row 0 = %q, expected score", screen.Row(0))
	}
	// Vehicle: x 360..440, y 192..272 in an 800x480 arena -> cols 36..43, rows 10..14
	for _, p := range [][2]int{{36, 10}, {43, 14}, {40, 12}} {
		if c := screen.GetCell(p[0], p[1]); c.Rune != VehicleChar || c.Color != core.ColorBrightRed {
			t.Errorf("cell %v = %+v, expected vehicle", p, c)
		}
	}
	if screen.Get(35, 12) == VehicleChar || screen.Get(44, 12) == VehicleChar {
		t.Error("vehicle drawn too wide")
	}

	text := screen.String()
	if !strings.Contains(text, "LEFT") || !strings.Contains(text, "RIGHT") {
		t.Error("steering controls missing")
	}
	if strings.Contains(text, "WASTED") {
		t.Error("game-over overlay shown while playing")
	}
}

func TestRenderObstacle(t *testing.T) {
	g := newTestGame(nil)
	g.GameState().Obstacles = []Obstacle{{X: 0, Y: 400}}
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	// y 400..480 -> rows 0..3, x 0..80 -> cols 0..7
	if screen.Get(0, 3) != ObstacleChar || screen.Get(7, 2) != ObstacleChar {
		t.Errorf("obstacle missing:\n%s", screen.String())
	}
	if screen.Get(8, 2) == ObstacleChar || screen.Get(0, 4) == ObstacleChar {
		t.Error("obstacle drawn too large")
	}
}

func TestRenderGameOver(t *testing.T) {
	g := newTestGame(&fakeStore{best: 2})
	g.GameState().Score = 5
	crash(g)
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	text := screen.String()
	for _, want := range []string{"WASTED!!!", "Best Score: 5", "Restart"} {
		if !strings.Contains(text, want) {
			t.Errorf("game-over screen missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "LEFT") {
		t.Error("steering controls should be hidden after a crash")
	}
}

func TestRenderPaused(t *testing.T) {
	g := newTestGame(nil)
	g.Step(press(core.ActionPause))
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused overlay missing")
	}
}

func TestPresentOrder(t *testing.T) {
	s := NewGameState(testArena(), 0, nil)
	s.Obstacles = []Obstacle{{X: 0, Y: 600}, {X: 100, Y: 500}}
	rec := &recordingRenderer{}

	Present(s, rec)
	exp := []string{"road", "obstacle", "obstacle", "vehicle", "score", "controls"}
	if !reflect.DeepEqual(rec.calls, exp) {
		t.Errorf("calls = %v, expected %v", rec.calls, exp)
	}

	_ = s.RecordGameOver()
	rec.calls = nil
	Present(s, rec)
	exp = []string{"road", "obstacle", "obstacle", "vehicle", "game_over"}
	if !reflect.DeepEqual(rec.calls, exp) {
		t.Errorf("calls = %v, expected %v", rec.calls, exp)
	}
}

type recordingRenderer struct {
	calls []string
}

func (r *recordingRenderer) DrawRoad(Arena) { r.calls = append(r.calls, "road") }
func (r *recordingRenderer) DrawObstacle(core.Rect) { r.calls = append(r.calls, "obstacle") }
func (r *recordingRenderer) DrawVehicle(core.Rect) { r.calls = append(r.calls, "vehicle") }
func (r *recordingRenderer) DrawScore(int) { r.calls = append(r.calls, "score") }
func (r *recordingRenderer) DrawControls(Controls) { r.calls = append(r.calls, "controls") }
func (r *recordingRenderer) DrawGameOver(int, core.Rect) { r.calls = append(r.calls, "game_over") }

func TestFloorCeilDiv(t *testing.T) {
	tests := []struct {
		a, b        int
		floor, ceil int
	}{
		{7, 2, 3, 4},
		{6, 2, 3, 3},
		{-7, 2, -4, -3},
		{-6, 2, -3, -3},
		{0, 5, 0, 0},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.floor {
			t.Errorf("floorDiv(%d, %d) = %d, expected %d", tt.a, tt.b, got, tt.floor)
		}
		if got := ceilDiv(tt.a, tt.b); got != tt.ceil {
			t.Errorf("ceilDiv(%d, %d) = %d, expected %d", tt.a, tt.b, got, tt.ceil)
		}
	}
}
