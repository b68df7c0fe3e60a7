package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Project mirrors e2erun.yaml. Every field is optional; zero values keep the
// defaults.
type Project struct {
	ConfigFile  string   `yaml:"config_file"`
	EnvFile     string   `yaml:"env_file"`
	SpecPattern string   `yaml:"spec_pattern"`
	SpecDir     string   `yaml:"spec_dir"`
	Extensions  []string `yaml:"spec_extensions"`
	Ignore      []string `yaml:"ignore"`
	ResultsDir  string   `yaml:"results_dir"`
	Processors  int      `yaml:"processors"`
	LogLevel    string   `yaml:"log_level"`

	Runner struct {
		Command []string `yaml:"command"`
		Args    []string `yaml:"args"`
	} `yaml:"runner"`

	Report struct {
		Dir            string `yaml:"dir"`
		Filename       string `yaml:"filename"`
		Title          string `yaml:"title"`
		TimestampTitle *bool  `yaml:"timestamp_title"`
	} `yaml:"report"`
}

// LoadProject reads the project file. A missing file is not an error.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read project file: %w", err)
	}
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse project file %s: %w", path, err)
	}
	return &p, nil
}

// ApplyProject overlays the project file onto the config.
func (c *Config) ApplyProject(p *Project) {
	if p == nil {
		return
	}
	setString(&c.RunConfigFile, p.ConfigFile)
	setString(&c.EnvFile, p.EnvFile)
	setString(&c.SpecPattern, p.SpecPattern)
	setString(&c.SpecDir, p.SpecDir)
	setString(&c.ResultsDir, p.ResultsDir)
	setString(&c.LogLevel, p.LogLevel)
	setString(&c.ReportDir, p.Report.Dir)
	setString(&c.ReportFilename, p.Report.Filename)
	setString(&c.ReportTitle, p.Report.Title)

	if len(p.Extensions) > 0 {
		c.SpecExtensions = p.Extensions
	}
	if len(p.Ignore) > 0 {
		c.PathsToIgnore = p.Ignore
	}
	if len(p.Runner.Command) > 0 {
		c.RunnerCommand = p.Runner.Command
	}
	if p.Runner.Args != nil {
		c.RunnerArgs = p.Runner.Args
	}
	if p.Processors > 0 {
		c.Processors = p.Processors
	}
	if p.Report.TimestampTitle != nil {
		c.TimestampTitle = *p.Report.TimestampTitle
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
