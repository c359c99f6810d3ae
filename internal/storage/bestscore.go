package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-racer/internal/config"
)

// BestScoreFile keeps the best score as a decimal integer in a text file.
// A missing file means no best score yet.
type BestScoreFile struct {
	path   string
	logger *log.Logger
}

// NewBestScoreFile returns a store for path. A leading ~ is expanded.
// logger may be nil.
func NewBestScoreFile(path string, logger *log.Logger) *BestScoreFile {
	if logger == nil {
		logger = log.Default()
	}
	return &BestScoreFile{
		path:   config.ExpandHome(path),
		logger: logger,
	}
}

// Path returns the resolved file path.
func (f *BestScoreFile) Path() string {
	return f.path
}

// LoadBestScore reads the stored best score. A missing file reads as 0.
// Content that is not a non-negative integer is logged and also reads as 0;
// only I/O failures are returned as errors.
func (f *BestScoreFile) LoadBestScore() (int, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read best score: %w", err)
	}

	text := strings.TrimSpace(string(data))
	score, err := strconv.Atoi(text)
	if err != nil || score < 0 {
		f.logger.Warn("best score file is corrupt, starting from 0", "path", f.path, "content", text)
		return 0, nil
	}

	return score, nil
}

// SaveBestScore overwrites the file with score.
func (f *BestScoreFile) SaveBestScore(score int) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory for best score: %w", err)
	}
	if err := os.WriteFile(f.path, []byte(strconv.Itoa(score)), 0o644); err != nil {
		return fmt.Errorf("storage: cannot write best score: %w", err)
	}
	f.logger.Debug("saved best score", "score", score, "path", f.path)
	return nil
}
