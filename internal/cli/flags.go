package cli

import "e2erun/internal/config"

// Flags holds command-line flags
type Flags struct {
	// Global
	Project    string
	ConfigFile string
	LogLevel   string

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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Processors:  f.Processors,
		SpecPattern: f.SpecPattern,
		NameFilter:  f.NameFilter,
		SpecDir:     f.SpecDir,
		TestCases:   f.TestCases,
		Isolate:     f.Isolate,
		FailFast:    f.FailFast,
		OnlyFailed:  f.OnlyFailed,
		NoOverlay:   f.NoOverlay,
		Title:       f.Title,
		Results:     f.Results,
		Limit:       f.Limit,
	}
}
