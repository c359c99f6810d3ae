package racer

import (
	"github.com/vovakirdan/lane-racer/internal/config"
	"github.com/vovakirdan/lane-racer/internal/core"
)

// Arena holds the playfield size and every constant derived from it.
// Coordinates are y-up: y = 0 is the bottom edge, y = Height the top.
type Arena struct {
	Width           int
	Height          int
	VehicleSize     int // edge length of the vehicle and of every obstacle
	LaneStep        int // distance covered by one steer
	ObstacleSpeed   int // units an obstacle falls per tick
	ButtonRowHeight int
	RemovalBuffer   int
	VehicleY        int // bottom edge of the vehicle, fixed for the whole run
	SpawnOdds       int // an obstacle spawns on average once per SpawnOdds ticks
}

// NewArena derives the arena constants for a width x height playfield.
// Derived lengths never drop below one unit so tiny displays still move.
func NewArena(width, height int, cfg config.RacerConfig) Arena {
	width = max(width, 1)
	height = max(height, 1)

	return Arena{
		Width:           width,
		Height:          height,
		VehicleSize:     max(width/cfg.Arena.SizeDivisor, 1),
		LaneStep:        max(width/cfg.Arena.LaneStepDivisor, 1),
		ObstacleSpeed:   max(height/cfg.Arena.SpeedDivisor, 1),
		ButtonRowHeight: height / cfg.Arena.ButtonRowDivisor,
		RemovalBuffer:   cfg.Arena.RemovalBuffer,
		VehicleY:        int(float64(height) * cfg.Arena.VehicleYRatio),
		SpawnOdds:       cfg.Spawn.Odds,
	}
}

// ObstacleSize returns the obstacle edge length, always the vehicle's.
func (a Arena) ObstacleSize() int {
	return a.VehicleSize
}

// RemovalThreshold is the height at or below which an obstacle leaves play.
func (a Arena) RemovalThreshold() int {
	return a.ButtonRowHeight + a.RemovalBuffer
}

// MaxX is the largest left edge that keeps a vehicle-sized box inside the arena.
func (a Arena) MaxX() int {
	return max(a.Width-a.VehicleSize, 0)
}

// CenterX is the vehicle's starting left edge.
func (a Arena) CenterX() int {
	return a.Width/2 - a.VehicleSize/2
}

// Controls are the on-screen buttons in arena coordinates.
type Controls struct {
	Left    core.Rect
	Right   core.Rect
	Restart core.Rect
}

// Controls lays out the steering buttons along the bottom and the
// restart button just below the middle of the arena.
func (a Arena) Controls() Controls {
	w := a.Width / 3
	h := max(a.ButtonRowHeight, 1)
	y := a.Height * 5 / 100

	return Controls{
		Left:    core.NewRect(a.Width*5/100, y, w, h),
		Right:   core.NewRect(a.Width*65/100, y, w, h),
		Restart: core.NewRect(a.Width/2-a.Width/6, a.Height/2-h, w, h),
	}
}

// ActionAt maps a press at (x, y), in arena coordinates, to the control
// under it. Steering buttons only respond while playing and the restart
// button only on the game-over screen.
func (c Controls) ActionAt(x, y int, gameOver bool) core.Action {
	if gameOver {
		if c.Restart.Contains(x, y) {
			return core.ActionRestart
		}
		return core.ActionNone
	}

	switch {
	case c.Left.Contains(x, y):
		return core.ActionLeft
	case c.Right.Contains(x, y):
		return core.ActionRight
	}
	return core.ActionNone
}
