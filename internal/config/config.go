// Package config provides YAML-based game configuration loading for the
// racer: arena proportions, spawn odds, terminal scaling and persistence.
package config

import (
	"errors"
	"fmt"
)

// RacerConfig contains all configuration for the lane racer.
type RacerConfig struct {
	Arena       RacerArena       `yaml:"arena"`
	Spawn       RacerSpawn       `yaml:"spawn"`
	Terminal    RacerTerminal    `yaml:"terminal"`
	Persistence RacerPersistence `yaml:"persistence"`
}

// RacerArena defines how arena constants derive from the display size.
type RacerArena struct {
	SizeDivisor      int     `yaml:"size_divisor"`       // vehicle/obstacle size = width / n
	LaneStepDivisor  int     `yaml:"lane_step_divisor"`  // steer distance = width / n
	SpeedDivisor     int     `yaml:"speed_divisor"`      // obstacle fall per tick = height / n
	ButtonRowDivisor int     `yaml:"button_row_divisor"` // control row height = height / n
	RemovalBuffer    int     `yaml:"removal_buffer"`     // arena units above the control row
	VehicleYRatio    float64 `yaml:"vehicle_y_ratio"`    // vehicle bottom edge as a fraction of height
}

// RacerSpawn defines obstacle spawning.
type RacerSpawn struct {
	Odds int `yaml:"odds"` // one obstacle per n ticks on average
}

// RacerTerminal defines how many arena units one terminal cell covers.
// Cells are roughly twice as tall as they are wide.
type RacerTerminal struct {
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`
}

// RacerPersistence defines where the best score lives.
type RacerPersistence struct {
	BestScoreFile string `yaml:"best_score_file"`
}

// Validate reports every setting that would make the arena unusable.
func (c RacerConfig) Validate() error {
	var errs []error

	positive := []struct {
		name string
		val  int
	}{
		{"arena.size_divisor", c.Arena.SizeDivisor},
		{"arena.lane_step_divisor", c.Arena.LaneStepDivisor},
		{"arena.speed_divisor", c.Arena.SpeedDivisor},
		{"arena.button_row_divisor", c.Arena.ButtonRowDivisor},
		{"spawn.odds", c.Spawn.Odds},
		{"terminal.cell_width", c.Terminal.CellWidth},
		{"terminal.cell_height", c.Terminal.CellHeight},
	}
	for _, p := range positive {
		if p.val <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", p.name, p.val))
		}
	}

	if c.Arena.RemovalBuffer < 0 {
		errs = append(errs, fmt.Errorf("arena.removal_buffer must not be negative, got %d", c.Arena.RemovalBuffer))
	}
	if c.Arena.VehicleYRatio < 0 || c.Arena.VehicleYRatio >= 1 {
		errs = append(errs, fmt.Errorf("arena.vehicle_y_ratio must be in [0, 1), got %g", c.Arena.VehicleYRatio))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
