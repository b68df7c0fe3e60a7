package discovery

import (
	"bufio"
	"fmt"
	"os"
	"regexp"

	"e2erun/internal/domain"
)

// casePattern matches it('title'), it.only("title"), specify(`title`) and
// friends. The title must be a literal on the same line.
var casePattern = regexp.MustCompile("(?:^|[^\\w.$])(?:it|specify|test)(?:\\.only|\\.skip)?\\s*\\(\\s*(?:'((?:[^'\\\\]|\\\\.)*)'|\"((?:[^\"\\\\]|\\\\.)*)\"|`([^`]*)`)")

// Parser extracts test cases from spec files
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// FindSpecCases returns the test cases of a spec file in source order.
func (p *Parser) FindSpecCases(filePath string) ([]domain.SpecCase, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}
	defer f.Close()

	var cases []domain.SpecCase
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		for _, m := range casePattern.FindAllStringSubmatch(scanner.Text(), -1) {
			title := m[1] + m[2] + m[3]
			cases = append(cases, domain.SpecCase{Title: title, FilePath: filePath, Line: line})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}
	return cases, nil
}

// FindTestCases returns only the titles of the test cases of a spec file.
func (p *Parser) FindTestCases(filePath string) ([]string, error) {
	cases, err := p.FindSpecCases(filePath)
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(cases))
	for _, c := range cases {
		titles = append(titles, c.Title)
	}
	return titles, nil
}
