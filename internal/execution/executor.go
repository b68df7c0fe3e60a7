package execution

import (
	"context"

	"e2erun/internal/domain"
)

// Executor runs spec files through the test engine and returns the raw
// result once every engine process has settled.
type Executor interface {
	Execute(ctx context.Context, specs []string, runDir string) (*domain.RawResult, error)
}
