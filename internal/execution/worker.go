package execution

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"e2erun/internal/domain"
	"e2erun/internal/ui"
)

// WorkerPool runs batches of specs on a fixed number of workers
type WorkerPool struct {
	runner    *Runner
	scheduler Scheduler
	workers   int
	failFast  bool
	progress  *ui.ProgressBar
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(runner *Runner, scheduler Scheduler, workers int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	return &WorkerPool{
		runner:    runner,
		scheduler: scheduler,
		workers:   workers,
	}
}

// SetFailFast stops starting new batches once a batch reports a failing test.
func (wp *WorkerPool) SetFailFast(failFast bool) {
	wp.failFast = failFast
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

// Execute runs every spec and waits for all engine processes to exit. When
// any batch is a runner failure the partial result is returned together with
// a RunnerExecutionError.
func (wp *WorkerPool) Execute(ctx context.Context, specs []string, runDir string) (*domain.RawResult, error) {
	if len(specs) == 0 {
		return nil, domain.NewRunnerExecutionError(errors.New("no spec files matched"))
	}

	runID := filepath.Base(runDir)
	groups := wp.scheduler.Schedule(specs, wp.workers)
	batches := make([]Batch, len(groups))
	for i, group := range groups {
		batches[i] = Batch{
			Index: i + 1,
			RunID: runID,
			Specs: group,
			Dir:   filepath.Join(runDir, fmt.Sprintf("batch-%03d", i+1)),
		}
	}

	// dispatch is cancelled on fail-fast; running engines keep the parent ctx
	dispatch, stop := context.WithCancel(ctx)
	defer stop()

	queue := make(chan Batch)
	go func() {
		defer close(queue)
		for _, b := range batches {
			select {
			case <-dispatch.Done():
				return
			case queue <- b:
			}
		}
	}()

	results := make([]domain.BatchResult, len(batches))
	started := make([]bool, len(batches))
	var mu sync.Mutex
	var completed, passed, failed int

	raw := &domain.RawResult{RunID: runID, StartedAt: time.Now()}

	workerCount := wp.workers
	if workerCount > len(batches) {
		workerCount = len(batches)
	}
	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := range queue {
				if dispatch.Err() != nil {
					continue
				}
				mu.Lock()
				started[b.Index-1] = true
				mu.Unlock()

				result := wp.runner.Run(ctx, b)

				mu.Lock()
				results[b.Index-1] = result
				completed++
				for _, s := range result.Summaries {
					passed += s.Passes
					failed += s.Failures
				}
				if wp.progress != nil {
					wp.progress.Update(completed, passed, failed)
				}
				if wp.failFast && (result.Failures() > 0 || result.Error != nil) {
					stop()
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	raw.EndedAt = time.Now()
	if wp.progress != nil {
		wp.progress.Finish()
	}

	var errs []error
	for i, b := range batches {
		if !started[i] {
			results[i] = domain.BatchResult{Index: b.Index, Specs: b.Specs, Dir: b.Dir, ExitCode: -1, Skipped: true}
		}
		result := results[i]
		raw.Batches = append(raw.Batches, result)
		for _, s := range result.Summaries {
			raw.Add(s)
		}
		if result.Error != nil {
			errs = append(errs, result.Error)
		}
	}
	if err := ctx.Err(); err != nil {
		errs = append(errs, fmt.Errorf("run interrupted: %w", err))
	}
	if len(errs) > 0 {
		return raw, domain.NewRunnerExecutionError(errors.Join(errs...))
	}
	return raw, nil
}
