package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseRacer(GetDefaultYAML())
	if err != nil {
		t.Fatalf("embedded YAML should parse: %v", err)
	}
	if cfg != DefaultRacerConfig() {
		t.Errorf("embedded defaults drifted from DefaultRacerConfig():\n%+v\n%+v", cfg, DefaultRacerConfig())
	}
}

func TestLoadRacerFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadRacer("")
	if err != nil {
		t.Fatalf("LoadRacer() failed: %v", err)
	}
	if cfg.Spawn.Odds != 40 {
		t.Errorf("Spawn.Odds = %d, expected 40", cfg.Spawn.Odds)
	}
}

func TestLoadRacerCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "racer.yaml")
	data := "spawn:\n  odds: 10\narena:\n  removal_buffer: 0\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRacer(path)
	if err != nil {
		t.Fatalf("LoadRacer() failed: %v", err)
	}
	if cfg.Spawn.Odds != 10 {
		t.Errorf("Spawn.Odds = %d, expected 10", cfg.Spawn.Odds)
	}
	if cfg.Arena.RemovalBuffer != 0 {
		t.Errorf("RemovalBuffer = %d, expected 0", cfg.Arena.RemovalBuffer)
	}
	if cfg.Arena.SizeDivisor != 10 {
		t.Errorf("unset fields should keep defaults, SizeDivisor = %d", cfg.Arena.SizeDivisor)
	}
}

func TestLoadRacerUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".racer", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "racer.yaml"), []byte("spawn:\n  odds: 7\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRacer("")
	if err != nil {
		t.Fatalf("LoadRacer() failed: %v", err)
	}
	if cfg.Spawn.Odds != 7 {
		t.Errorf("user config should win over embedded, Spawn.Odds = %d", cfg.Spawn.Odds)
	}
}

func TestLoadRacerErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadRacer(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("spawn: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRacer(bad); err == nil {
		t.Error("malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("spawn:\n  odds: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadRacer(invalid)
	if err == nil || !strings.Contains(err.Error(), "spawn.odds") {
		t.Errorf("zero odds should be rejected, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RacerConfig)
		field  string
	}{
		{"zero size divisor", func(c *RacerConfig) { c.Arena.SizeDivisor = 0 }, "arena.size_divisor"},
		{"negative speed divisor", func(c *RacerConfig) { c.Arena.SpeedDivisor = -1 }, "arena.speed_divisor"},
		{"negative buffer", func(c *RacerConfig) { c.Arena.RemovalBuffer = -5 }, "arena.removal_buffer"},
		{"vehicle above arena", func(c *RacerConfig) { c.Arena.VehicleYRatio = 1.2 }, "arena.vehicle_y_ratio"},
		{"zero cell height", func(c *RacerConfig) { c.Terminal.CellHeight = 0 }, "terminal.cell_height"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultRacerConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.field) {
				t.Errorf("Validate() = %v, expected error naming %s", err, tc.field)
			}
		})
	}

	if err := DefaultRacerConfig().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := ExpandHome("~/.racer/x.txt"); got != filepath.Join(home, ".racer", "x.txt") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("absolute paths should pass through, got %q", got)
	}
	if got := ExpandHome("~user/x"); got != "~user/x" {
		t.Errorf("~user form should pass through, got %q", got)
	}
}
