// Package aggregate merges per-spec result artifacts into one document.
package aggregate

import (
	"fmt"
	"sort"

	"e2erun/internal/domain"
	"e2erun/internal/parser"

	"github.com/bmatcuk/doublestar/v4"
)

// Aggregator merges the artifacts matched by one or more glob patterns
type Aggregator struct {
	parser *parser.ArtifactParser
}

// NewAggregator creates a new Aggregator
func NewAggregator(p *parser.ArtifactParser) *Aggregator {
	return &Aggregator{parser: p}
}

// Collect expands the patterns into a sorted, de-duplicated file list.
// Patterns may use "**" to match any number of directories.
func Collect(patterns ...string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, &domain.AggregationError{Err: fmt.Errorf("bad pattern %q: %w", pattern, err)}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// Merge reads every artifact matched by patterns and merges them. Zero
// matches is an error: an empty report would hide a wrong directory.
func (a *Aggregator) Merge(patterns ...string) (*domain.AggregatedResult, error) {
	files, err := Collect(patterns...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, &domain.AggregationError{Err: fmt.Errorf("%w: %v", domain.ErrNoArtifacts, patterns)}
	}

	artifacts := make([]*domain.Artifact, 0, len(files))
	for _, f := range files {
		artifact, err := a.parser.ParseFile(f)
		if err != nil {
			return nil, &domain.AggregationError{Path: f, Err: err}
		}
		artifacts = append(artifacts, artifact)
	}

	result := MergeArtifacts(artifacts)
	result.Sources = files
	return result, nil
}

// MergeArtifacts combines already parsed artifacts in the given order.
// Counters are summed, so the totals do not depend on the order.
func MergeArtifacts(artifacts []*domain.Artifact) *domain.AggregatedResult {
	result := &domain.AggregatedResult{Results: []domain.Suite{}}
	s := &result.Stats
	for _, art := range artifacts {
		in := art.Stats
		s.Suites += in.Suites
		s.Tests += in.Tests
		s.Passes += in.Passes
		s.Pending += in.Pending
		s.Failures += in.Failures
		s.Skipped += in.Skipped
		s.Other += in.Other
		s.TestsRegistered += in.TestsRegistered
		s.Duration += in.Duration

		if !in.Start.IsZero() && (s.Start.IsZero() || in.Start.Before(s.Start)) {
			s.Start = in.Start
		}
		if in.End.After(s.End) {
			s.End = in.End
		}

		result.Results = append(result.Results, art.Results...)
		if result.Meta == nil && len(art.Meta) > 0 {
			result.Meta = art.Meta
		}
	}

	s.HasOther = s.Other > 0
	s.HasSkipped = s.Skipped > 0
	if runnable := s.TestsRegistered - s.Pending; runnable > 0 {
		s.PassPercent = percent(s.Passes, runnable)
	}
	if s.TestsRegistered > 0 {
		s.PendingPercent = percent(s.Pending, s.TestsRegistered)
	}
	return result
}

func percent(n, total int) float64 {
	// two decimals, matching the reporter's own rounding
	return float64(int(float64(n)/float64(total)*10000+0.5)) / 100
}
