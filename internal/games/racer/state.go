package racer

import (
	"fmt"

	"github.com/vovakirdan/lane-racer/internal/core"
)

// Direction is a steering intent.
type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Phase is the state machine position of a run.
type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhaseGameOver Phase = "game_over"
)

// Vehicle is the player's car. Only X changes during a run.
type Vehicle struct {
	X, Y int
}

// Obstacle is a falling block. Its size is the arena's ObstacleSize.
type Obstacle struct {
	X, Y int
}

// BestScoreSaver persists a new best score.
type BestScoreSaver interface {
	SaveBestScore(score int) error
}

// GameState owns everything that changes during play.
// It is not safe for concurrent use; adapters mutate it from one goroutine.
type GameState struct {
	Arena     Arena
	Vehicle   Vehicle
	Obstacles []Obstacle // spawn order
	Score     int
	BestScore int
	GameOver  bool

	saver BestScoreSaver
}

// NewGameState starts a run in the given arena. best is the previously
// persisted best score; saver may be nil to keep new bests in memory only.
func NewGameState(arena Arena, best int, saver BestScoreSaver) *GameState {
	s := &GameState{
		Arena:     arena,
		BestScore: max(best, 0),
		saver:     saver,
	}
	s.Restart()
	return s
}

// MoveVehicle steers one lane step, clamped to the arena. Ignored after a crash.
func (s *GameState) MoveVehicle(dir Direction) {
	if s.GameOver {
		return
	}
	x := s.Vehicle.X + int(dir)*s.Arena.LaneStep
	s.Vehicle.X = core.Clamp(x, 0, s.Arena.MaxX())
}

// Restart begins a fresh run. The best score is kept.
func (s *GameState) Restart() {
	s.GameOver = false
	s.Score = 0
	s.Vehicle = Vehicle{X: s.Arena.CenterX(), Y: s.Arena.VehicleY}
	s.Obstacles = s.Obstacles[:0]
}

// RecordGameOver ends the run and persists a new best score.
// Calls after the run already ended do nothing. The returned error only
// reports a failed save; the state transition always happens.
func (s *GameState) RecordGameOver() error {
	if s.GameOver {
		return nil
	}
	s.GameOver = true

	if s.Score <= s.BestScore {
		return nil
	}
	s.BestScore = s.Score

	if s.saver == nil {
		return nil
	}
	if err := s.saver.SaveBestScore(s.BestScore); err != nil {
		return fmt.Errorf("racer: save best score %d: %w", s.BestScore, err)
	}
	return nil
}

// Phase reports where the run is in the playing/game-over cycle.
func (s *GameState) Phase() Phase {
	if s.GameOver {
		return PhaseGameOver
	}
	return PhasePlaying
}

// VehicleRect returns the vehicle's bounding box in arena coordinates.
func (s *GameState) VehicleRect() core.Rect {
	return core.NewRect(s.Vehicle.X, s.Vehicle.Y, s.Arena.VehicleSize, s.Arena.VehicleSize)
}

// ObstacleRect returns an obstacle's bounding box in arena coordinates.
func (s *GameState) ObstacleRect(o Obstacle) core.Rect {
	size := s.Arena.ObstacleSize()
	return core.NewRect(o.X, o.Y, size, size)
}
