package overlay

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by the overlay
const (
	EnvBaseURL       = "BASE_URL"
	EnvUsername      = "USERNAME"
	EnvPassword      = "PASSWORD"
	EnvTestProjectID = "TEST_PROJECT_ID"
)

// Source resolves override values by variable name
type Source interface {
	Lookup(key string) (string, bool)
}

// MapSource is a fixed set of overrides
type MapSource map[string]string

// Lookup implements Source
func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// EnvSource reads the process environment, falling back to values from a
// .env file. The process environment wins.
type EnvSource struct {
	dotenv map[string]string
}

// NewEnvSource loads the .env file at path. A missing file is fine.
func NewEnvSource(path string) (*EnvSource, error) {
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &EnvSource{dotenv: map[string]string{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return &EnvSource{dotenv: values}, nil
}

// Lookup implements Source
func (s *EnvSource) Lookup(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	v, ok := s.dotenv[key]
	return v, ok
}
