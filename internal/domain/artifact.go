package domain

import (
	"encoding/json"
	"time"
)

// TestState is the terminal state of a single test as recorded by the reporter
type TestState string

const (
	StatePassed  TestState = "passed"
	StateFailed  TestState = "failed"
	StatePending TestState = "pending"
	StateSkipped TestState = "skipped"
)

// Stats are the counters carried by every result artifact and by the aggregate.
type Stats struct {
	Suites          int       `json:"suites"`
	Tests           int       `json:"tests"`
	Passes          int       `json:"passes"`
	Pending         int       `json:"pending"`
	Failures        int       `json:"failures"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	Duration        int64     `json:"duration"`
	TestsRegistered int       `json:"testsRegistered"`
	PassPercent     float64   `json:"passPercent"`
	PendingPercent  float64   `json:"pendingPercent"`
	Other           int       `json:"other"`
	HasOther        bool      `json:"hasOther"`
	Skipped         int       `json:"skipped"`
	HasSkipped      bool      `json:"hasSkipped"`
}

// TestError is the failure payload of a test. It is empty for passing tests.
type TestError struct {
	Message string `json:"message,omitempty"`
	Estack  string `json:"estack,omitempty"`
	Diff    string `json:"diff,omitempty"`
}

// Test is one test (or hook) inside a suite.
type Test struct {
	Title      string          `json:"title"`
	FullTitle  string          `json:"fullTitle"`
	TimedOut   bool            `json:"timedOut"`
	Duration   int64           `json:"duration"`
	State      TestState       `json:"state,omitempty"`
	Speed      string          `json:"speed,omitempty"`
	Pass       bool            `json:"pass"`
	Fail       bool            `json:"fail"`
	Pending    bool            `json:"pending"`
	Context    json.RawMessage `json:"context"`
	Code       string          `json:"code"`
	Err        TestError       `json:"err"`
	UUID       string          `json:"uuid"`
	ParentUUID string          `json:"parentUUID"`
	IsHook     bool            `json:"isHook"`
	Skipped    bool            `json:"skipped"`
}

// Suite is a describe() block. The top-level suite of an artifact is the
// root suite of one spec file.
type Suite struct {
	UUID        string   `json:"uuid"`
	Title       string   `json:"title"`
	FullFile    string   `json:"fullFile"`
	File        string   `json:"file"`
	BeforeHooks []Test   `json:"beforeHooks"`
	AfterHooks  []Test   `json:"afterHooks"`
	Tests       []Test   `json:"tests"`
	Suites      []Suite  `json:"suites"`
	Passes      []string `json:"passes"`
	Failures    []string `json:"failures"`
	Pending     []string `json:"pending"`
	Skipped     []string `json:"skipped"`
	Duration    int64    `json:"duration"`
	Root        bool     `json:"root"`
	RootEmpty   bool     `json:"rootEmpty"`
	Timeout     int      `json:"_timeout"`
}

// Artifact is the JSON document the reporter writes for one executed spec.
type Artifact struct {
	Stats   Stats           `json:"stats"`
	Results []Suite         `json:"results"`
	Meta    json.RawMessage `json:"meta,omitempty"`
}

// SpecFile returns the spec path the artifact was produced for, if recorded.
func (a *Artifact) SpecFile() string {
	for _, s := range a.Results {
		if s.File != "" {
			return s.File
		}
		if s.FullFile != "" {
			return s.FullFile
		}
	}
	return ""
}

// Walk visits every non-hook test depth-first together with the chain of
// suite titles leading to it.
func Walk(suites []Suite, fn func(path []string, suite *Suite, test *Test)) {
	var visit func(path []string, s *Suite)
	visit = func(path []string, s *Suite) {
		if s.Title != "" {
			path = append(path, s.Title)
		}
		for i := range s.Tests {
			fn(path, s, &s.Tests[i])
		}
		for i := range s.Suites {
			visit(path, &s.Suites[i])
		}
	}
	for i := range suites {
		visit(nil, &suites[i])
	}
}
