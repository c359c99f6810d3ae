package racer

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Phase     Phase
	Paused    bool
	Score     int
	BestScore int
	VehicleX  int
	VehicleY  int
	Obstacles []Obstacle
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() Snapshot {
	obstacles := make([]Obstacle, len(g.state.Obstacles))
	copy(obstacles, g.state.Obstacles)

	return Snapshot{
		Tick:      g.tick,
		Phase:     g.state.Phase(),
		Paused:    g.paused,
		Score:     g.state.Score,
		BestScore: g.state.BestScore,
		VehicleX:  g.state.Vehicle.X,
		VehicleY:  g.state.Vehicle.Y,
		Obstacles: obstacles,
	}
}
