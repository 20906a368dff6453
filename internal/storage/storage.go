package storage

import (
	"trp/internal/config"
	"trp/internal/domain"
)

// Storage persists and loads run reports (for the summary and failures
// commands, and for downstream notifiers reading custom-report.json).
type Storage interface {
	// WriteReport writes the machine-readable JSON artifact.
	WriteReport(report *domain.Report) error
	// WriteSummary writes the human-readable Markdown artifact.
	WriteSummary(report *domain.Report) error
	// Load reads the JSON artifact back.
	Load() (*domain.Report, error)
	// Save rewrites the full JSON artifact (e.g. after resolved-flag updates).
	Save(report *domain.Report) error
}

// FileStorage writes artifacts under the configured report directory.
type FileStorage struct {
	cfg *config.Config
}

// NewFileStorage returns a Storage rooted at the config's report directory.
func NewFileStorage(cfg *config.Config) *FileStorage {
	return &FileStorage{cfg: cfg}
}
