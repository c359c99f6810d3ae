package racer

// RandSource is the randomness the loop needs. *rand.Rand satisfies it.
type RandSource interface {
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
}

// TickResult describes what happened during one tick.
type TickResult struct {
	Spawned bool  // a new obstacle entered at the top
	Passed  int   // obstacles that left play this tick, each worth a point
	Crashed bool  // the vehicle hit an obstacle and the run ended
	SaveErr error // set when a new best score could not be persisted
}

// Tick advances the simulation by one fixed step: spawn, fall, score,
// collide. A finished run is frozen and Tick returns a zero result.
func Tick(s *GameState, rng RandSource) TickResult {
	var res TickResult
	if s.GameOver {
		return res
	}

	res.Spawned = spawn(s, rng)
	res.Passed = advance(s)

	if hit := firstCollision(s); hit >= 0 {
		res.Crashed = true
		res.SaveErr = s.RecordGameOver()
	}

	return res
}

// spawn adds an obstacle at the top edge with probability 1/SpawnOdds.
func spawn(s *GameState, rng RandSource) bool {
	if rng.Intn(s.Arena.SpawnOdds) != 0 {
		return false
	}
	x := rng.Intn(s.Arena.MaxX() + 1)
	s.Obstacles = append(s.Obstacles, Obstacle{X: x, Y: s.Arena.Height})
	return true
}

// advance moves every obstacle down and removes the ones that reached the
// removal threshold, scoring each of them. Order of survivors is kept.
func advance(s *GameState) int {
	threshold := s.Arena.RemovalThreshold()
	passed := 0

	kept := s.Obstacles[:0]
	for _, o := range s.Obstacles {
		o.Y -= s.Arena.ObstacleSpeed
		if o.Y <= threshold {
			passed++
			continue
		}
		kept = append(kept, o)
	}
	s.Obstacles = kept
	s.Score += passed

	return passed
}

// firstCollision returns the index of the first obstacle overlapping the
// vehicle, or -1.
func firstCollision(s *GameState) int {
	vehicle := s.VehicleRect()
	for i, o := range s.Obstacles {
		if vehicle.Intersects(s.ObstacleRect(o)) {
			return i
		}
	}
	return -1
}
