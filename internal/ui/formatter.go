package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"e2erun/internal/config"
	"e2erun/internal/discovery"
	"e2erun/internal/domain"
	"e2erun/internal/history"
)

// Formatter formats and displays console output
type Formatter struct {
	config *config.Config
	parser *discovery.Parser
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(cfg *config.Config, parser *discovery.Parser, out io.Writer) *Formatter {
	return &Formatter{
		config: cfg,
		parser: parser,
		out:    out,
	}
}

// PrintRunSummary prints the statistics of a run followed by a tree of its
// failing tests.
func (f *Formatter) PrintRunSummary(run *domain.LastRun) {
	meta := run.Meta

	t := table.NewWriter()
	t.SetOutputMirror(f.out)
	t.SetTitle("Test Execution Statistics")
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	t.AppendRows([]table.Row{
		{"Run", meta.RunID},
		{"Outcome", outcomeString(meta.Outcome)},
		{"Spec Files", meta.TotalSpecs},
		{"Tests", meta.TotalTests},
		{"Passed", color.GreenString("%d", meta.PassedTests)},
		{"Failed", color.RedString("%d", meta.FailedTests)},
		{"Pending", meta.PendingTests},
		{"Batches", meta.Batches},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds)},
	})
	if meta.ReportPath != "" {
		t.AppendRow(table.Row{"Report", meta.ReportPath})
	}
	t.Render()

	fmt.Fprintln(f.out)
	switch meta.Outcome {
	case domain.OutcomePassed:
		color.New(color.FgGreen).Fprintln(f.out, "✓ All tests passed!")
	case domain.OutcomeTestsFailed:
		color.New(color.FgRed).Fprintf(f.out, "✗ %d test(s) failed\n\n", meta.FailedTests)
		f.printFailedTestsTree(run.Details)
	default:
		color.New(color.FgRed).Fprintf(f.out, "✗ run ended with %s\n", meta.Outcome)
		if len(run.Details) > 0 {
			fmt.Fprintln(f.out)
			f.printFailedTestsTree(run.Details)
		}
	}
}

func outcomeString(o domain.Outcome) string {
	if o == domain.OutcomePassed {
		return color.GreenString(string(o))
	}
	return color.RedString(string(o))
}

// treeNode represents a node in the spec path tree
type treeNode struct {
	name     string
	children map[string]*treeNode
	failures []domain.TestFailure
}

// printFailedTestsTree prints failing tests grouped by directory and spec file
func (f *Formatter) printFailedTestsTree(failures []domain.TestFailure) {
	root := &treeNode{children: make(map[string]*treeNode)}
	for _, failure := range failures {
		current := root
		for _, part := range strings.Split(strings.TrimPrefix(filepath.ToSlash(failure.FilePath), "./"), "/") {
			if part == "" {
				continue
			}
			if current.children[part] == nil {
				current.children[part] = &treeNode{name: part, children: make(map[string]*treeNode)}
			}
			current = current.children[part]
		}
		current.failures = append(current.failures, failure)
	}
	f.printTreeNode(root, "")
}

func (f *Formatter) printTreeNode(node *treeNode, prefix string) {
	keys := make([]string, 0, len(node.children))
	for key := range node.children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		child := node.children[key]
		last := i == len(keys)-1
		connector, next := "├── ", "│   "
		if last {
			connector, next = "└── ", "    "
		}

		if len(child.failures) > 0 {
			color.New(color.FgYellow).Fprintf(f.out, "%s%s%s\n", prefix, connector, child.name)
			for j, failure := range child.failures {
				caseConnector := "├── "
				if j == len(child.failures)-1 && len(child.children) == 0 {
					caseConnector = "└── "
				}
				name := failure.FullTitle
				if name == "" {
					name = failure.TestName
				}
				color.New(color.FgRed).Fprintf(f.out, "%s%s%s\n", prefix+next, caseConnector, name)
			}
		} else {
			color.New(color.FgCyan).Fprintf(f.out, "%s%s%s\n", prefix, connector, child.name)
		}
		f.printTreeNode(child, prefix+next)
	}
}

// PrintSpecList prints spec files, optionally with their test cases. Specs
// in failedPaths (keys from discovery.PathKey) are marked with [F].
func (f *Formatter) PrintSpecList(specs []string, showCases bool, failedPaths map[string]struct{}) {
	if showCases {
		color.New(color.FgGreen).Fprintf(f.out, "Found %d spec file(s) with test cases:\n\n", len(specs))
	} else {
		color.New(color.FgGreen).Fprintf(f.out, "Found %d spec file(s):\n\n", len(specs))
	}

	for i, spec := range specs {
		relPath, err := filepath.Rel(f.config.ProjectPath, spec)
		if err != nil {
			relPath = spec
		}
		failMarker := ""
		if _, ok := failedPaths[discovery.PathKey(f.config.ProjectPath, spec)]; ok {
			failMarker = " " + color.RedString("[F]")
		}

		lastFile := i == len(specs)-1
		connector, childPrefix := "├── ", "│   "
		if lastFile {
			connector, childPrefix = "└── ", "    "
		}
		color.New(color.FgCyan).Fprintf(f.out, "%s%s%s\n", connector, relPath, failMarker)

		if !showCases {
			continue
		}
		cases, err := f.parser.FindSpecCases(spec)
		if err != nil {
			color.New(color.FgRed).Fprintf(f.out, "%s└── error reading spec: %v\n", childPrefix, err)
			continue
		}
		if len(cases) == 0 {
			fmt.Fprintf(f.out, "%s└── %s\n", childPrefix, color.RedString("(no test cases found)"))
		}
		for j, c := range cases {
			caseConnector := "├── "
			if j == len(cases)-1 {
				caseConnector = "└── "
			}
			fmt.Fprintf(f.out, "%s%s%s %s\n", childPrefix, caseConnector, color.YellowString(c.Title), color.HiBlackString(":%d", c.Line))
		}
		if !lastFile {
			fmt.Fprintln(f.out)
		}
	}
}

// PrintHistory prints past runs, newest first
func (f *Formatter) PrintHistory(records []history.RunRecord) {
	if len(records) == 0 {
		color.New(color.FgYellow).Fprintln(f.out, "No runs recorded yet")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(f.out)
	t.SetTitle("Run History")
	t.AppendHeader(table.Row{"Run", "Ended", "Outcome", "Specs", "Tests", "Passed", "Failed", "Pending", "Duration"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Specs", Align: text.AlignRight},
		{Name: "Tests", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Pending", Align: text.AlignRight},
		{Name: "Duration", Align: text.AlignRight},
	})
	for _, r := range records {
		t.AppendRow(table.Row{
			r.RunID,
			r.EndedAt.Local().Format("2006-01-02 15:04:05"),
			outcomeString(r.Outcome),
			r.Specs, r.Tests, r.Passed, r.Failed, r.Pending,
			r.EndedAt.Sub(r.StartedAt).Round(time.Millisecond).String(),
		})
	}
	t.Render()
}
