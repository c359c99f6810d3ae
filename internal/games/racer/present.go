package racer

import "github.com/vovakirdan/lane-racer/internal/core"

// Renderer is implemented by presentation adapters. All rectangles are in
// arena coordinates (y-up); adapters map them to their own surface.
type Renderer interface {
	DrawRoad(a Arena)
	DrawObstacle(r core.Rect)
	DrawVehicle(r core.Rect)
	DrawScore(score int)
	DrawControls(c Controls)
	DrawGameOver(best int, restart core.Rect)
}

// Present draws one frame of the state. While playing the score and the
// steering controls are shown; after a crash they give way to the
// game-over overlay with the best score and the restart control.
func Present(s *GameState, r Renderer) {
	r.DrawRoad(s.Arena)

	for _, o := range s.Obstacles {
		r.DrawObstacle(s.ObstacleRect(o))
	}
	r.DrawVehicle(s.VehicleRect())

	controls := s.Arena.Controls()
	if s.GameOver {
		r.DrawGameOver(s.BestScore, controls.Restart)
		return
	}
	r.DrawScore(s.Score)
	r.DrawControls(controls)
}
