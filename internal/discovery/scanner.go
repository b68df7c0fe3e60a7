package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scanner scans for spec files in a directory
type Scanner struct {
	skipDirs   map[string]bool
	extensions []string
}

// NewScanner creates a new Scanner that keeps files with one of the given
// extensions and skips the given directory names.
func NewScanner(skipDirs, extensions []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap, extensions: extensions}
}

// Scan finds all spec files under root, sorted by path.
func (s *Scanner) Scan(root string) ([]string, error) {
	var specs []string

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("spec path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("spec path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || s.skipDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if s.isSpec(d.Name()) {
			specs = append(specs, path)
		}
		return nil
	})
	sort.Strings(specs)
	return specs, err
}

// accepts reports whether Scan(root) would have found path: a spec file
// with no hidden or skipped directory between root and the file.
func (s *Scanner) accepts(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	for _, dir := range parts[:len(parts)-1] {
		if s.skipDirs[dir] || (strings.HasPrefix(dir, ".") && dir != "..") {
			return false
		}
	}
	return s.isSpec(parts[len(parts)-1])
}

func (s *Scanner) isSpec(name string) bool {
	if strings.HasSuffix(name, ".d.ts") {
		return false
	}
	ext := filepath.Ext(name)
	for _, e := range s.extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
