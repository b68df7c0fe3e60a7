package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"e2erun/internal/domain"
)

// ArtifactParser parses mochawesome JSON artifacts
type ArtifactParser struct{}

// NewArtifactParser creates a new ArtifactParser
func NewArtifactParser() *ArtifactParser {
	return &ArtifactParser{}
}

// ParseFile reads and validates the artifact at path.
func (p *ArtifactParser) ParseFile(path string) (*domain.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	return p.Parse(data)
}

// Parse decodes and validates an artifact document.
func (p *ArtifactParser) Parse(data []byte) (*domain.Artifact, error) {
	// Decode the top-level keys first so a document without "stats" or "results"
	// is rejected instead of silently becoming an empty artifact.
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}
	for _, key := range []string{"stats", "results"} {
		if raw, ok := keys[key]; !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return nil, fmt.Errorf("parse artifact: missing %q", key)
		}
	}

	var artifact domain.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}
	if err := Validate(&artifact); err != nil {
		return nil, err
	}
	return &artifact, nil
}

// Validate checks the counters of an artifact for consistency.
func Validate(a *domain.Artifact) error {
	s := a.Stats
	for name, v := range map[string]int{
		"suites": s.Suites, "tests": s.Tests, "passes": s.Passes, "pending": s.Pending,
		"failures": s.Failures, "skipped": s.Skipped, "other": s.Other,
	} {
		if v < 0 {
			return fmt.Errorf("invalid artifact: negative %s count", name)
		}
	}
	if s.Duration < 0 {
		return errors.New("invalid artifact: negative duration")
	}
	if !s.Start.IsZero() && !s.End.IsZero() && s.End.Before(s.Start) {
		return errors.New("invalid artifact: end precedes start")
	}
	return nil
}

// Summarize reduces an artifact to the per-spec counters of a raw result.
func (p *ArtifactParser) Summarize(path string, a *domain.Artifact) domain.SpecSummary {
	spec := a.SpecFile()
	if spec == "" {
		spec = path
	}
	return domain.SpecSummary{
		Spec:     spec,
		Artifact: path,
		Tests:    a.Stats.Tests,
		Passes:   a.Stats.Passes,
		Failures: a.Stats.Failures,
		Pending:  a.Stats.Pending,
		Skipped:  a.Stats.Skipped,
		Duration: time.Duration(a.Stats.Duration) * time.Millisecond,
	}
}
