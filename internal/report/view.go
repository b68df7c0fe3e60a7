package report

import (
	"fmt"
	"strings"
	"time"

	"e2erun/internal/domain"
)

// reportData is the template model
type reportData struct {
	Title       string
	GeneratedAt string
	Stats       domain.Stats
	Window      string
	HasFailures bool
	Specs       []specView
}

type specView struct {
	ID       string
	File     string
	Passes   int
	Failures int
	Pending  int
	Suites   []suiteView
}

type suiteView struct {
	Title string
	Depth int
	Tests []testView
}

type testView struct {
	Title    string
	State    domain.TestState
	Duration string
	Code     string
	Error    domain.TestError
	Context  []ContextItem
}

func buildView(agg *domain.AggregatedResult, opts Options) *reportData {
	data := &reportData{
		Title:       opts.Title,
		Stats:       agg.Stats,
		HasFailures: agg.Stats.Failures > 0,
	}
	if !opts.GeneratedAt.IsZero() {
		data.GeneratedAt = opts.GeneratedAt.Format(time.RFC1123Z)
	}
	if !agg.Stats.Start.IsZero() {
		data.Window = fmt.Sprintf("%s to %s", agg.Stats.Start.Format(time.RFC3339), agg.Stats.End.Format(time.RFC3339))
	}

	for i, root := range agg.Results {
		spec := specView{ID: fmt.Sprintf("spec-%d", i+1), File: root.File}
		if spec.File == "" {
			spec.File = root.FullFile
		}
		if spec.File == "" {
			spec.File = root.Title
		}
		collectSuites(&spec, &root, 0)
		data.Specs = append(data.Specs, spec)
	}
	return data
}

func collectSuites(spec *specView, s *domain.Suite, depth int) {
	if len(s.Tests) > 0 {
		sv := suiteView{Title: s.Title, Depth: depth}
		for i := range s.Tests {
			t := &s.Tests[i]
			tv := testView{
				Title:    t.Title,
				State:    t.ResolvedState(),
				Duration: formatDuration(time.Duration(t.Duration) * time.Millisecond),
				Code:     strings.TrimSpace(t.Code),
				Error:    t.Err,
				Context:  DecodeContext(t.Context),
			}
			switch tv.State {
			case domain.StatePassed:
				spec.Passes++
			case domain.StateFailed:
				spec.Failures++
			case domain.StatePending, domain.StateSkipped:
				spec.Pending++
			}
			sv.Tests = append(sv.Tests, tv)
		}
		spec.Suites = append(spec.Suites, sv)
	}
	for i := range s.Suites {
		next := depth
		if s.Title != "" || !s.Root {
			next = depth + 1
		}
		collectSuites(spec, &s.Suites[i], next)
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Truncate(time.Millisecond).String()
}
