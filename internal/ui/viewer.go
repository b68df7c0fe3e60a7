package ui

import "e2erun/internal/domain"

// Viewer displays the failures of the last run
type Viewer interface {
	View(run *domain.LastRun) error
}
