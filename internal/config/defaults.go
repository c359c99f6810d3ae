package config

import (
	_ "embed"
)

//go:embed defaults/racer.yaml
var defaultRacerYAML []byte

// DefaultRacerConfig returns the built-in racer configuration.
// It mirrors defaults/racer.yaml and is used when the embedded file
// cannot be parsed.
func DefaultRacerConfig() RacerConfig {
	return RacerConfig{
		Arena: RacerArena{
			SizeDivisor:      10,
			LaneStepDivisor:  10,
			SpeedDivisor:     100,
			ButtonRowDivisor: 15,
			RemovalBuffer:    50,
			VehicleYRatio:    0.40,
		},
		Spawn: RacerSpawn{
			Odds: 40,
		},
		Terminal: RacerTerminal{
			CellWidth:  10,
			CellHeight: 20,
		},
		Persistence: RacerPersistence{
			BestScoreFile: "~/.racer/best_score.txt",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultRacerYAML
}
