package execution

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"e2erun/internal/config"
	"e2erun/internal/domain"
	"e2erun/internal/parser"
)

const (
	placeholderSpecs      = "{specs}"
	placeholderResultsDir = "{results_dir}"
)

// Batch is one engine invocation
type Batch struct {
	Index int
	RunID string
	Specs []string
	Dir   string
}

// Runner executes the test engine for a single batch of specs
type Runner struct {
	command []string
	args    []string
	workDir string
	parser  *parser.ArtifactParser
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config, p *parser.ArtifactParser) *Runner {
	return &Runner{
		command: cfg.RunnerCommand,
		args:    cfg.RunnerArgs,
		workDir: cfg.ProjectPath,
		parser:  p,
	}
}

// Command returns the full argv for a batch with placeholders substituted.
func (r *Runner) Command(specs []string, resultsDir string) []string {
	replacer := strings.NewReplacer(
		placeholderSpecs, strings.Join(specs, ","),
		placeholderResultsDir, resultsDir,
	)
	argv := append([]string(nil), r.command...)
	for _, arg := range r.args {
		argv = append(argv, replacer.Replace(arg))
	}
	return argv
}

// Run executes the engine for one batch and collects the artifacts it
// wrote. The batch directory is only read after the process has exited.
func (r *Runner) Run(ctx context.Context, b Batch) domain.BatchResult {
	result := domain.BatchResult{
		Index:    b.Index,
		Specs:    b.Specs,
		Dir:      b.Dir,
		ExitCode: -1,
	}
	if len(r.command) == 0 {
		result.Error = fmt.Errorf("batch %d: no runner command configured", b.Index)
		return result
	}

	dir, err := filepath.Abs(b.Dir)
	if err != nil {
		dir = b.Dir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		result.Error = fmt.Errorf("batch %d: create results dir: %w", b.Index, err)
		return result
	}

	argv := r.Command(b.Specs, dir)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.workDir
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("E2E_RUN_ID=%s", b.RunID),
		fmt.Sprintf("E2E_RESULTS_DIR=%s", dir),
		fmt.Sprintf("E2E_BATCH=%d", b.Index),
	)

	start := time.Now()
	output, runErr := cmd.CombinedOutput()
	result.Duration = time.Since(start)
	result.Output = string(output)

	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
		result.ExitCode = 0
	case errors.As(runErr, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		result.Error = fmt.Errorf("batch %d: start %s: %w", b.Index, argv[0], runErr)
		return result
	}
	if ctx.Err() != nil {
		result.Error = fmt.Errorf("batch %d: %w", b.Index, ctx.Err())
		return result
	}

	summaries, err := r.collect(dir)
	result.Summaries = summaries
	if err != nil {
		result.Error = fmt.Errorf("batch %d: %w", b.Index, err)
		return result
	}

	if result.ExitCode != 0 {
		switch {
		case len(result.Summaries) == 0:
			result.Error = fmt.Errorf("batch %d: engine exited with code %d before producing results", b.Index, result.ExitCode)
		case len(result.Summaries) < len(b.Specs):
			// A recorded failure does not explain specs that never reported
			result.Error = fmt.Errorf("batch %d: engine exited with code %d after producing results for %d of %d specs",
				b.Index, result.ExitCode, len(result.Summaries), len(b.Specs))
		case result.Failures() == 0:
			result.Error = fmt.Errorf("batch %d: engine exited with code %d without recording a failing test", b.Index, result.ExitCode)
		}
	}
	return result
}

// collect summarises every artifact in dir, in file name order.
func (r *Runner) collect(dir string) ([]domain.SpecSummary, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	sort.Strings(files)

	summaries := make([]domain.SpecSummary, 0, len(files))
	for _, f := range files {
		artifact, err := r.parser.ParseFile(f)
		if err != nil {
			return summaries, fmt.Errorf("unreadable artifact %s: %w", f, err)
		}
		summaries = append(summaries, r.parser.Summarize(f, artifact))
	}
	return summaries, nil
}
