// Package overlay rewrites the persisted run configuration with values taken
// from the environment before the test engine starts.
package overlay

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"e2erun/internal/domain"
)

// Writer applies environment overrides to a run configuration file
type Writer struct {
	source Source
}

// NewWriter creates a new Writer reading overrides from source
func NewWriter(source Source) *Writer {
	return &Writer{source: source}
}

type override struct {
	env   string
	key   string
	value func(raw string) (any, error)
}

func asString(raw string) (any, error) {
	return raw, nil
}

func asProject(raw string) (any, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return domain.TestProject{ID: id}, nil
}

var overrides = []override{
	{env: EnvBaseURL, key: domain.KeyBaseURL, value: asString},
	{env: EnvUsername, key: domain.KeyAdminLogin, value: asString},
	{env: EnvPassword, key: domain.KeyAdminPassword, value: asString},
	{env: EnvTestProjectID, key: domain.KeyTestProject, value: asProject},
}

// Overlay applies every override present in the source to cfg in place and
// returns the configuration keys it changed. An empty value counts as absent.
func (w *Writer) Overlay(cfg domain.RunConfiguration) ([]string, error) {
	var applied []string
	for _, o := range overrides {
		raw, ok := w.source.Lookup(o.env)
		if !ok || raw == "" {
			continue
		}
		v, err := o.value(raw)
		if err != nil {
			return nil, &domain.InvalidOverrideError{Key: o.env, Value: raw, Err: err}
		}
		cfg[o.key] = v
		applied = append(applied, o.key)
	}
	return applied, nil
}

// Apply reads the configuration at path, overlays it and writes it back,
// fully replacing the file. Nothing is written when an override is invalid.
func (w *Writer) Apply(path string) (domain.RunConfiguration, []string, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, nil, err
	}
	applied, err := w.Overlay(cfg)
	if err != nil {
		return nil, nil, &domain.ConfigReadError{Path: path, Err: err}
	}
	if err := Write(path, cfg); err != nil {
		return nil, nil, &domain.ConfigReadError{Path: path, Err: err}
	}
	return cfg, applied, nil
}

// Read loads and parses a run configuration file.
func Read(path string) (domain.RunConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ConfigReadError{Path: path, Err: err}
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var cfg domain.RunConfiguration
	if err := dec.Decode(&cfg); err != nil {
		return nil, &domain.ConfigReadError{Path: path, Err: fmt.Errorf("parse: %w", err)}
	}
	if cfg == nil {
		return nil, &domain.ConfigReadError{Path: path, Err: errors.New("not a JSON object")}
	}
	return cfg, nil
}

// Write stores cfg pretty-printed with sorted keys.
func Write(path string, cfg domain.RunConfiguration) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("marshal run configuration: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write run configuration: %w", err)
	}
	return nil
}
