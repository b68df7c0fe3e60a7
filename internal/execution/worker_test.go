package execution

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"e2erun/internal/config"
	"e2erun/internal/domain"
	"e2erun/internal/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine writes one artifact per spec into $1. Specs whose name contains
// "fail" record a failing test; the exit code is the number of failures.
const fakeEngine = `
out="$1"
total=0
i=0
IFS=','
for spec in $2; do
  i=$((i+1))
  case "$spec" in
    *fail*) passes=0; failures=1 ;;
    *) passes=1; failures=0 ;;
  esac
  printf '{"stats":{"suites":1,"tests":1,"passes":%d,"pending":0,"failures":%d,"testsRegistered":1,"duration":10},"results":[{"uuid":"u%d","title":"","file":"%s","root":true,"tests":[],"suites":[]}]}' "$passes" "$failures" "$i" "$spec" > "$out/mochawesome_$i.json"
  total=$((total+failures))
done
echo "run=$E2E_RUN_ID batch=$E2E_BATCH"
exit $total
`

func newTestRunner(t *testing.T, script string) *Runner {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("engine fakes are shell scripts")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.sh")
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))

	cfg := config.New()
	cfg.ProjectPath = dir
	cfg.RunnerCommand = []string{"sh", path}
	cfg.RunnerArgs = []string{"{results_dir}", "{specs}"}
	return NewRunner(cfg, parser.NewArtifactParser())
}

func runDir(t *testing.T) string {
	return filepath.Join(t.TempDir(), "reports", "run-123")
}

func TestRunner_Command(t *testing.T) {
	cfg := config.New()
	r := NewRunner(cfg, parser.NewArtifactParser())

	argv := r.Command([]string{"integration/a.js", "integration/b.js"}, "/tmp/out/batch-001")
	assert.Equal(t, []string{
		"npx", "cypress", "run",
		"--spec", "integration/a.js,integration/b.js",
		"--reporter", "mochawesome",
		"--reporter-options", "reportDir=/tmp/out/batch-001,overwrite=false,html=false,json=true",
	}, argv)
}

func TestWorkerPool_Execute_AllPass(t *testing.T) {
	pool := NewWorkerPool(newTestRunner(t, fakeEngine), NewRoundRobinScheduler(), 1)
	dir := runDir(t)

	raw, err := pool.Execute(context.Background(), []string{"a.js", "b.js", "c.js"}, dir)
	require.NoError(t, err)

	assert.Equal(t, "run-123", raw.RunID)
	assert.Equal(t, 3, raw.TotalSpecs)
	assert.Equal(t, 3, raw.TotalPassed)
	assert.Zero(t, raw.TotalFailed)
	require.Len(t, raw.Batches, 1)
	assert.Equal(t, filepath.Join(dir, "batch-001"), raw.Batches[0].Dir)
	assert.Zero(t, raw.Batches[0].ExitCode)
	assert.Contains(t, raw.Batches[0].Output, "run=run-123 batch=1")
	assert.False(t, raw.StartedAt.After(raw.EndedAt))
}

func TestWorkerPool_Execute_TestFailuresAreData(t *testing.T) {
	pool := NewWorkerPool(newTestRunner(t, fakeEngine), NewRoundRobinScheduler(), 1)

	raw, err := pool.Execute(context.Background(), []string{"a.js", "b-fail.js"}, runDir(t))
	require.NoError(t, err)

	assert.Equal(t, 1, raw.TotalPassed)
	assert.Equal(t, 1, raw.TotalFailed)
	assert.Equal(t, 1, raw.Batches[0].ExitCode)
	assert.Equal(t, domain.OutcomeTestsFailed, domain.DecideOutcome(raw, nil, nil))
}

func TestWorkerPool_Execute_RunnerFailures(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		exitCode int
		message  string
	}{
		{
			name:     "crash before results",
			script:   "echo boom >&2\nexit 3\n",
			exitCode: 3,
			message:  "before producing results",
		},
		{
			name:     "non-zero exit without failing tests",
			script:   `printf '{"stats":{"tests":1,"passes":1},"results":[]}' > "$1/mochawesome.json"` + "\nexit 2\n",
			exitCode: 2,
			message:  "without recording a failing test",
		},
		{
			name:     "torn artifact",
			script:   `printf '{"stats":' > "$1/mochawesome.json"` + "\nexit 1\n",
			exitCode: 1,
			message:  "unreadable artifact",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewWorkerPool(newTestRunner(t, tt.script), NewRoundRobinScheduler(), 1)

			raw, err := pool.Execute(context.Background(), []string{"a.js"}, runDir(t))
			require.Error(t, err)
			assert.True(t, domain.IsRunnerExecutionError(err))
			assert.Contains(t, err.Error(), tt.message)

			require.NotNil(t, raw)
			require.Len(t, raw.Batches, 1)
			assert.Equal(t, tt.exitCode, raw.Batches[0].ExitCode)
			assert.Equal(t, domain.OutcomeRunnerFailed, domain.DecideOutcome(raw, err, nil))
		})
	}
}

func TestWorkerPool_Execute_CrashAfterFailingSpec(t *testing.T) {
	// The first spec fails and reports, then the engine dies before the second
	script := `printf '{"stats":{"tests":1,"failures":1},"results":[{"uuid":"u1","title":"","file":"a-fail.js","root":true}]}' > "$1/mochawesome.json"` + "\nexit 1\n"
	pool := NewWorkerPool(newTestRunner(t, script), NewRoundRobinScheduler(), 1)

	raw, err := pool.Execute(context.Background(), []string{"a-fail.js", "b.js"}, runDir(t))
	require.Error(t, err)
	assert.True(t, domain.IsRunnerExecutionError(err))
	assert.Contains(t, err.Error(), "for 1 of 2 specs")

	require.NotNil(t, raw)
	assert.Equal(t, 1, raw.TotalFailed)
	assert.Equal(t, domain.OutcomeRunnerFailed, domain.DecideOutcome(raw, err, nil))
}

func TestWorkerPool_Execute_CommandNotFound(t *testing.T) {
	r := newTestRunner(t, fakeEngine)
	r.command = []string{filepath.Join(t.TempDir(), "no-such-engine")}
	pool := NewWorkerPool(r, NewRoundRobinScheduler(), 1)

	raw, err := pool.Execute(context.Background(), []string{"a.js"}, runDir(t))
	assert.True(t, domain.IsRunnerExecutionError(err))
	require.NotNil(t, raw)
	assert.Equal(t, -1, raw.Batches[0].ExitCode)
	assert.Zero(t, raw.TotalSpecs)
}

func TestWorkerPool_Execute_NoSpecs(t *testing.T) {
	pool := NewWorkerPool(newTestRunner(t, fakeEngine), NewRoundRobinScheduler(), 1)

	raw, err := pool.Execute(context.Background(), nil, runDir(t))
	assert.Nil(t, raw)
	assert.True(t, domain.IsRunnerExecutionError(err))
	assert.Contains(t, err.Error(), "no spec files matched")
}

func TestWorkerPool_Execute_IsolatedParallel(t *testing.T) {
	pool := NewWorkerPool(newTestRunner(t, fakeEngine), NewIsolatedScheduler(), 3)
	specs := []string{"a.js", "b-fail.js", "c.js", "d.js"}

	raw, err := pool.Execute(context.Background(), specs, runDir(t))
	require.NoError(t, err)

	require.Len(t, raw.Batches, 4)
	for i, b := range raw.Batches {
		assert.Equal(t, i+1, b.Index)
		assert.Equal(t, []string{specs[i]}, b.Specs)
		assert.False(t, b.Skipped)
	}
	assert.Equal(t, 4, raw.TotalSpecs)
	assert.Equal(t, 1, raw.TotalFailed)
}

func TestWorkerPool_Execute_FailFast(t *testing.T) {
	pool := NewWorkerPool(newTestRunner(t, fakeEngine), NewIsolatedScheduler(), 1)
	pool.SetFailFast(true)

	raw, err := pool.Execute(context.Background(), []string{"a-fail.js", "b.js", "c.js"}, runDir(t))
	require.NoError(t, err)

	require.Len(t, raw.Batches, 3)
	assert.False(t, raw.Batches[0].Skipped)
	assert.True(t, raw.Batches[1].Skipped)
	assert.True(t, raw.Batches[2].Skipped)
	assert.Equal(t, 1, raw.TotalSpecs)
	assert.Equal(t, 1, raw.TotalFailed)
}

func TestWorkerPool_Execute_Cancelled(t *testing.T) {
	pool := NewWorkerPool(newTestRunner(t, fakeEngine), NewIsolatedScheduler(), 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	raw, err := pool.Execute(ctx, []string{"a.js", "b.js"}, runDir(t))
	require.Error(t, err)
	assert.True(t, domain.IsRunnerExecutionError(err))
	assert.True(t, strings.Contains(err.Error(), "interrupted") || strings.Contains(err.Error(), "canceled"))
	require.NotNil(t, raw)
}
