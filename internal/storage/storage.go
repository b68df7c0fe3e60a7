package storage

import (
	"e2erun/internal/config"
	"e2erun/internal/domain"
)

// Storage persists the summary of the last run (read by failures and run --failed).
type Storage interface {
	Save(runID string, raw *domain.RawResult, failures []domain.TestFailure, outcome domain.Outcome, reportPath string) error
	Load() (*domain.LastRun, error)
	// SaveOutput writes a previously loaded summary back (e.g. resolved flags).
	SaveOutput(output *domain.LastRun) error
}

// JSONStorage stores the summary in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
