package discovery

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Resolver expands a spec glob into the spec files it matches. Besides the
// filepath.Match syntax it accepts "**" for any number of directories.
type Resolver struct {
	scanner *Scanner
}

// NewResolver creates a new Resolver
func NewResolver(scanner *Scanner) *Resolver {
	return &Resolver{scanner: scanner}
}

// Resolve returns the sorted files matched by pattern. Files under a
// hidden or skipped directory and files that are not specs are dropped
// from "**" matches.
func (r *Resolver) Resolve(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("invalid spec pattern %q: %w", pattern, err)
	}
	recursive := strings.Contains(pattern, "**")
	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	var files []string
	for _, m := range matches {
		if recursive && !r.scanner.accepts(filepath.FromSlash(base), m) {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}
