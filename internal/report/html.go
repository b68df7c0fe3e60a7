// Package report renders an aggregated result as a static HTML document.
package report

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"e2erun/internal/domain"
)

//go:embed templates/report.html.tmpl
var defaultTemplate string

// Options controls a single rendering
type Options struct {
	Title       string
	GeneratedAt time.Time // omitted from the output when zero
}

// Generator renders reports from a parsed template
type Generator struct {
	template *template.Template
}

// NewGenerator creates a Generator using the embedded template
func NewGenerator() (*Generator, error) {
	return NewGeneratorWithTemplate(defaultTemplate)
}

// NewGeneratorWithTemplate creates a Generator from custom template content
func NewGeneratorWithTemplate(content string) (*Generator, error) {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"stateClass": func(s domain.TestState) string {
			if s == "" {
				return "unknown"
			}
			return string(s)
		},
		"indent": func(depth int) string {
			return fmt.Sprintf("depth-%d", depth)
		},
		"percent": func(v float64) string {
			return fmt.Sprintf("%.2f%%", v)
		},
		"ms": func(ms int64) string {
			return formatDuration(time.Duration(ms) * time.Millisecond)
		},
	}).Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML template: %w", err)
	}
	return &Generator{template: tmpl}, nil
}

// Render produces the HTML document for agg.
func (g *Generator) Render(agg *domain.AggregatedResult, opts Options) ([]byte, error) {
	if agg == nil {
		return nil, &domain.ReportGenerationError{Err: errors.New("nil aggregate")}
	}
	var buf bytes.Buffer
	if err := g.template.Execute(&buf, buildView(agg, opts)); err != nil {
		return nil, &domain.ReportGenerationError{Err: fmt.Errorf("failed to execute HTML template: %w", err)}
	}
	return buf.Bytes(), nil
}

// Write renders agg to htmlPath and, when jsonPath is set, writes the merged
// document next to it. Existing files are replaced.
func (g *Generator) Write(agg *domain.AggregatedResult, opts Options, htmlPath, jsonPath string) error {
	html, err := g.Render(agg, opts)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(htmlPath), 0755); err != nil {
		return &domain.ReportGenerationError{Path: htmlPath, Err: fmt.Errorf("create report dir: %w", err)}
	}
	if err := os.WriteFile(htmlPath, html, 0644); err != nil {
		return &domain.ReportGenerationError{Path: htmlPath, Err: fmt.Errorf("write HTML file: %w", err)}
	}
	if jsonPath == "" {
		return nil
	}
	data, err := json.MarshalIndent(agg, "", "  ")
	if err != nil {
		return &domain.ReportGenerationError{Path: jsonPath, Err: fmt.Errorf("marshal merged results: %w", err)}
	}
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return &domain.ReportGenerationError{Path: jsonPath, Err: fmt.Errorf("write merged results: %w", err)}
	}
	return nil
}
