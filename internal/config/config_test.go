package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_GetSpecPattern(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name:     "default pattern",
			config:   &Config{ProjectPath: ".", SpecPattern: DefaultSpecPattern},
			expected: "integration/simple*.js",
		},
		{
			name:     "relative to project path",
			config:   &Config{ProjectPath: "/project", SpecPattern: "integration/*.js"},
			expected: "/project/integration/*.js",
		},
		{
			name:     "absolute pattern",
			config:   &Config{ProjectPath: "/project", SpecPattern: "/absolute/specs/*.js"},
			expected: "/absolute/specs/*.js",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetSpecPattern()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestConfig_RunPaths(t *testing.T) {
	cfg := New()
	cfg.ProjectPath = "/project"

	if got := cfg.GetRunDir("abc"); got != "/project/reports/abc" {
		t.Errorf("unexpected run dir %s", got)
	}
	if got := cfg.GetArtifactPattern("abc"); got != "/project/reports/abc/batch-*/*.json" {
		t.Errorf("unexpected artifact pattern %s", got)
	}
	if got := cfg.GetReportHTMLPath(); got != "/project/mochawesome-report/mochawesome.html" {
		t.Errorf("unexpected report path %s", got)
	}
	if got := cfg.GetReportJSONPath(); got != "/project/mochawesome-report/mochawesome.json" {
		t.Errorf("unexpected merged json path %s", got)
	}
	if got := cfg.GetRunConfigPath(); got != "/project/cypress.json" {
		t.Errorf("unexpected run config path %s", got)
	}
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}

	if cfg.Processors != DefaultProcessors {
		t.Errorf("expected Processors %d, got %d", DefaultProcessors, cfg.Processors)
	}

	if len(cfg.PathsToIgnore) != len(DefaultPathsToIgnore) {
		t.Errorf("expected %d paths to ignore, got %d", len(DefaultPathsToIgnore), len(cfg.PathsToIgnore))
	}

	// Mutating the config must not leak into the package defaults
	cfg.RunnerCommand[0] = "changed"
	if DefaultRunnerCommand[0] != "npx" {
		t.Error("config shares the default runner command slice")
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := New()
	cfg.ApplyFlags(Flags{Processors: 3, SpecPattern: "integration/*.js", Title: "Nightly"})

	if cfg.Processors != 3 {
		t.Errorf("expected 3 processors, got %d", cfg.Processors)
	}
	if cfg.SpecPattern != "integration/*.js" {
		t.Errorf("expected spec pattern override, got %s", cfg.SpecPattern)
	}
	if cfg.ReportTitle != "Nightly" || cfg.TimestampTitle {
		t.Errorf("explicit title should disable timestamp title, got %q/%v", cfg.ReportTitle, cfg.TimestampTitle)
	}
}

func TestLoadProject(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("missing file is not an error", func(t *testing.T) {
		p, err := LoadProject(filepath.Join(tmpDir, "absent.yaml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p != nil {
			t.Errorf("expected nil project, got %+v", p)
		}
	})

	t.Run("applies values", func(t *testing.T) {
		path := filepath.Join(tmpDir, "e2erun.yaml")
		content := `config_file: cypress.env.json
spec_pattern: "integration/**.js"
processors: 2
runner:
  command: [node, run.js]
  args: []
report:
  title: Smoke
  timestamp_title: false
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write project file: %v", err)
		}

		p, err := LoadProject(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg := New()
		cfg.ApplyProject(p)

		if cfg.RunConfigFile != "cypress.env.json" {
			t.Errorf("expected config file override, got %s", cfg.RunConfigFile)
		}
		if cfg.Processors != 2 {
			t.Errorf("expected 2 processors, got %d", cfg.Processors)
		}
		if len(cfg.RunnerCommand) != 2 || cfg.RunnerCommand[0] != "node" {
			t.Errorf("unexpected runner command %v", cfg.RunnerCommand)
		}
		if len(cfg.RunnerArgs) != 0 {
			t.Errorf("expected empty runner args, got %v", cfg.RunnerArgs)
		}
		if cfg.ReportTitle != "Smoke" || cfg.TimestampTitle {
			t.Errorf("unexpected report title settings %q/%v", cfg.ReportTitle, cfg.TimestampTitle)
		}
		if cfg.ResultsDir != DefaultResultsDir {
			t.Errorf("unset fields should keep defaults, got %s", cfg.ResultsDir)
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(tmpDir, "bad.yaml")
		os.WriteFile(path, []byte("processors: [1"), 0644)
		if _, err := LoadProject(path); err == nil {
			t.Error("expected error for malformed project file")
		}
	})
}
