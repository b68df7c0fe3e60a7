package config

import (
	"os"
	"path/filepath"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath   string
	RunConfigFile string
	EnvFile       string

	// Spec selection
	SpecPattern    string
	SpecDir        string
	SpecExtensions []string
	PathsToIgnore  []string

	// Runner settings
	RunnerCommand []string
	RunnerArgs    []string
	Processors    int

	// Output settings
	ResultsDir     string
	ReportDir      string
	ReportFilename string
	ReportTitle    string
	TimestampTitle bool
	OutputJSONFile string
	OutputJSONDir  string

	// Logging
	LogLevel string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Processors  int
	SpecPattern string
	NameFilter  string
	SpecDir     string
	TestCases   bool
	Isolate     bool
	FailFast    bool
	OnlyFailed  bool
	NoOverlay   bool
	Title       string
	Results     []string
	Limit       int
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		RunConfigFile:  DefaultRunConfigFile,
		EnvFile:        DefaultEnvFile,
		SpecPattern:    DefaultSpecPattern,
		SpecDir:        DefaultSpecDir,
		Processors:     DefaultProcessors,
		ResultsDir:     DefaultResultsDir,
		ReportDir:      DefaultReportDir,
		ReportFilename: DefaultReportFilename,
		ReportTitle:    DefaultReportTitle,
		TimestampTitle: true,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		LogLevel:       DefaultLogLevel,
		Flags:          Flags{Processors: DefaultProcessors},
	}
	cfg.SpecExtensions = append([]string(nil), DefaultSpecExtensions...)
	cfg.PathsToIgnore = append([]string(nil), DefaultPathsToIgnore...)
	cfg.RunnerCommand = append([]string(nil), DefaultRunnerCommand...)
	cfg.RunnerArgs = append([]string(nil), DefaultRunnerArgs...)
	if level := os.Getenv("E2E_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	return cfg
}

// ApplyFlags stores the parsed flags and applies the ones that override settings.
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}
	if flags.SpecPattern != "" {
		c.SpecPattern = flags.SpecPattern
	}
	if flags.SpecDir != "" {
		c.SpecDir = flags.SpecDir
	}
	if flags.Title != "" {
		c.ReportTitle = flags.Title
		c.TimestampTitle = false
	}
}

// resolve joins a project-relative path onto the project path.
func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectPath, p)
}

// GetRunConfigPath returns the path of the persisted run configuration
func (c *Config) GetRunConfigPath() string {
	return c.resolve(c.RunConfigFile)
}

// GetEnvPath returns the path of the .env file
func (c *Config) GetEnvPath() string {
	return c.resolve(c.EnvFile)
}

// GetProjectFilePath returns the path of the optional project file
func (c *Config) GetProjectFilePath() string {
	return c.resolve(DefaultProjectFile)
}

// GetSpecPattern returns the spec glob anchored at the project path
func (c *Config) GetSpecPattern() string {
	return c.resolve(c.SpecPattern)
}

// GetSpecDir returns the directory scanned by list
func (c *Config) GetSpecDir() string {
	return c.resolve(c.SpecDir)
}

// GetResultsDir returns the directory holding one subdirectory per run
func (c *Config) GetResultsDir() string {
	return c.resolve(c.ResultsDir)
}

// GetRunDir returns the artifact directory of one run.
func (c *Config) GetRunDir(runID string) string {
	return filepath.Join(c.GetResultsDir(), runID)
}

// GetArtifactPattern returns the glob matching every artifact of one run.
func (c *Config) GetArtifactPattern(runID string) string {
	return filepath.Join(c.GetRunDir(runID), "batch-*", "*.json")
}

// GetReportHTMLPath returns the fixed location of the HTML report
func (c *Config) GetReportHTMLPath() string {
	return filepath.Join(c.resolve(c.ReportDir), c.ReportFilename+".html")
}

// GetReportJSONPath returns the location of the merged JSON written next to the report
func (c *Config) GetReportJSONPath() string {
	return filepath.Join(c.resolve(c.ReportDir), c.ReportFilename+".json")
}

// GetOutputPath returns the full path to the last-run JSON file.
// Resolves to an absolute path so run and failures always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
