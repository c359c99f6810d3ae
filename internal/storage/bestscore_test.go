package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestBestScoreFileMissing(t *testing.T) {
	f := NewBestScoreFile(filepath.Join(t.TempDir(), "best_score.txt"), nil)

	score, err := f.LoadBestScore()
	if err != nil || score != 0 {
		t.Errorf("LoadBestScore() = %d, %v; expected 0, nil", score, err)
	}
}

func TestBestScoreFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "best_score.txt")
	f := NewBestScoreFile(path, nil)

	if err := f.SaveBestScore(7); err != nil {
		t.Fatalf("SaveBestScore() failed: %v", err)
	}
	if err := f.SaveBestScore(42); err != nil {
		t.Fatalf("SaveBestScore() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if string(data) != "42" {
		t.Errorf("file content = %q, expected %q", data, "42")
	}

	score, err := f.LoadBestScore()
	if err != nil || score != 42 {
		t.Errorf("LoadBestScore() = %d, %v; expected 42", score, err)
	}
}

func TestBestScoreFileContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		exp     int
		warns   bool
	}{
		{"plain", "15", 15, false},
		{"trailing newline", "15\n", 15, false},
		{"padded", "  8 \r\n", 8, false},
		{"zero", "0", 0, false},
		{"empty", "", 0, true},
		{"text", "fast", 0, true},
		{"float", "3.5", 0, true},
		{"negative", "-4", 0, true},
		{"two numbers", "3 4", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "best_score.txt")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			var buf bytes.Buffer
			f := NewBestScoreFile(path, log.New(&buf))

			score, err := f.LoadBestScore()
			if err != nil {
				t.Fatalf("LoadBestScore() failed: %v", err)
			}
			if score != tt.exp {
				t.Errorf("score = %d, expected %d", score, tt.exp)
			}
			if warned := strings.Contains(buf.String(), "corrupt"); warned != tt.warns {
				t.Errorf("warning logged = %v, expected %v (log %q)", warned, tt.warns, buf.String())
			}
		})
	}
}

func TestBestScoreFileReadError(t *testing.T) {
	// A directory in place of the file cannot be read
	dir := t.TempDir()
	f := NewBestScoreFile(dir, nil)

	if _, err := f.LoadBestScore(); err == nil {
		t.Error("expected an error reading a directory")
	}
}

func TestBestScoreFileWriteError(t *testing.T) {
	// The parent is a regular file, so the directory cannot be created
	parent := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(parent, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	f := NewBestScoreFile(filepath.Join(parent, "best_score.txt"), nil)

	if err := f.SaveBestScore(3); err == nil {
		t.Error("expected an error saving under a file")
	}
}

func TestBestScoreFileExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	f := NewBestScoreFile("~/.racer/best_score.txt", nil)
	if f.Path() != filepath.Join(home, ".racer", "best_score.txt") {
		t.Errorf("Path() = %q", f.Path())
	}
}
