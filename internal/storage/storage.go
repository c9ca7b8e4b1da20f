package storage

import (
	"stepcov/internal/config"
	"stepcov/internal/domain"
)

// Storage persists and loads coverage reports (e.g. for the browse viewer).
type Storage interface {
	Save(report *domain.CoverageReport) error
	Load() (*domain.CoverageReport, error)
}

// JSONStorage stores the report in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
