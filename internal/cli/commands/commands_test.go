package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"e2erun/internal/cli"
	"e2erun/internal/config"
	"e2erun/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func setup(t *testing.T, flags *cli.Flags) *Commands {
	t.Helper()
	t.Setenv("E2E_LOG_LEVEL", "")
	cmds := NewCommands(config.New(), flags, &bytes.Buffer{})
	require.NoError(t, cmds.Setup())
	return cmds
}

func TestSetup_Precedence(t *testing.T) {
	project := t.TempDir()
	writeFiles(t, project, map[string]string{
		"e2erun.yaml": "processors: 3\nlog_level: warn\nspec_pattern: cypress/**/*.cy.js\nconfig_file: cypress.config.json\n",
	})

	t.Run("project file over defaults", func(t *testing.T) {
		cmds := setup(t, &cli.Flags{Project: project})
		cfg := cmds.config
		assert.Equal(t, 3, cfg.Processors)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, filepath.Join(project, "cypress", "**", "*.cy.js"), cfg.GetSpecPattern())
		assert.Equal(t, filepath.Join(project, "cypress.config.json"), cfg.GetRunConfigPath())
		assert.True(t, cfg.TimestampTitle)
	})

	t.Run("flags over project file", func(t *testing.T) {
		cmds := setup(t, &cli.Flags{
			Project:     project,
			LogLevel:    "debug",
			ConfigFile:  "alt.json",
			Processors:  5,
			SpecPattern: "integration/*.js",
			Title:       "Nightly",
		})
		cfg := cmds.config
		assert.Equal(t, 5, cfg.Processors)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, filepath.Join(project, "alt.json"), cfg.GetRunConfigPath())
		assert.Equal(t, filepath.Join(project, "integration", "*.js"), cfg.GetSpecPattern())
		assert.Equal(t, "Nightly", cfg.ReportTitle)
		assert.False(t, cfg.TimestampTitle)
	})

	t.Run("environment over project file", func(t *testing.T) {
		t.Setenv("E2E_LOG_LEVEL", "error")
		cmds := NewCommands(config.New(), &cli.Flags{Project: project}, &bytes.Buffer{})
		require.NoError(t, cmds.Setup())
		assert.Equal(t, "error", cmds.config.LogLevel)
	})
}

func TestSetup_MalformedProjectFile(t *testing.T) {
	project := t.TempDir()
	writeFiles(t, project, map[string]string{"e2erun.yaml": "processors: [\n"})

	cmds := NewCommands(config.New(), &cli.Flags{Project: project}, &bytes.Buffer{})
	err := cmds.Setup()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "e2erun.yaml")
}

func TestRunCommand_ResolveSpecs(t *testing.T) {
	project := t.TempDir()
	writeFiles(t, project, map[string]string{
		"integration/simple1.js":        "it('a', () => {})",
		"integration/simple2.js":        "it('b', () => {})",
		"integration/checkout.js":       "it('c', () => {})",
		"integration/nested/simple3.js": "it('d', () => {})",
	})
	abs := func(rel string) string { return filepath.Join(project, rel) }

	t.Run("default pattern", func(t *testing.T) {
		cmds := setup(t, &cli.Flags{Project: project})
		specs, err := cmds.Run.resolveSpecs()
		require.NoError(t, err)
		assert.Equal(t, []string{abs("integration/simple1.js"), abs("integration/simple2.js")}, specs)
	})

	t.Run("recursive pattern with name filter", func(t *testing.T) {
		cmds := setup(t, &cli.Flags{Project: project, SpecPattern: "integration/**/*.js", NameFilter: "simple*"})
		specs, err := cmds.Run.resolveSpecs()
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			abs("integration/simple1.js"),
			abs("integration/simple2.js"),
			abs("integration/nested/simple3.js"),
		}, specs)
	})

	t.Run("failed specs of the last run", func(t *testing.T) {
		cmds := setup(t, &cli.Flags{Project: project, OnlyFailed: true})
		failures := []domain.TestFailure{
			{TestName: "b", FilePath: "integration/simple2.js"},
			{TestName: "b again", FilePath: "integration/simple2.js"},
			{TestName: "gone", FilePath: "integration/deleted.js"},
		}
		require.NoError(t, cmds.Run.storage.Save("r1", &domain.RawResult{RunID: "r1"}, failures, domain.OutcomeTestsFailed, ""))

		specs, err := cmds.Run.resolveSpecs()
		require.NoError(t, err)
		assert.Equal(t, []string{abs("integration/simple2.js")}, specs)
	})
}

func TestRunCommand_ResolveSpecs_NoPreviousRun(t *testing.T) {
	cmds := setup(t, &cli.Flags{Project: t.TempDir(), OnlyFailed: true})

	_, err := cmds.Run.resolveSpecs()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no previous run")
}

func TestReportCommand_Patterns(t *testing.T) {
	project := t.TempDir()

	cmds := setup(t, &cli.Flags{Project: project, Results: []string{"a/*.json", "b/*.json"}})
	patterns, err := cmds.Report.patterns()
	require.NoError(t, err)
	assert.Equal(t, []string{"a/*.json", "b/*.json"}, patterns)

	cmds = setup(t, &cli.Flags{Project: project})
	_, err = cmds.Report.patterns()
	require.Error(t, err)

	require.NoError(t, cmds.Report.storage.Save("run-42", nil, nil, domain.OutcomePassed, ""))
	patterns, err = cmds.Report.patterns()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(project, "reports", "run-42", "batch-*", "*.json")}, patterns)
}
