package overlay

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"e2erun/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const persisted = `{
  "baseUrl": "https://old.example.com",
  "admin_login": "old-admin",
  "admin_pwd": "old-secret",
  "TEST_PROJECT": {"id": 65},
  "viewportWidth": 1280,
  "video": false,
  "env": {"retries": 2}
}`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cypress.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readBack(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestWriter_Apply_OverridePrecedence(t *testing.T) {
	tests := []struct {
		name     string
		source   MapSource
		expected map[string]any
		applied  []string
	}{
		{
			name: "all overrides present",
			source: MapSource{
				EnvBaseURL:       "https://site.example.com",
				EnvUsername:      "admin",
				EnvPassword:      "s3cret&<>",
				EnvTestProjectID: "1234",
			},
			expected: map[string]any{
				"baseUrl":      "https://site.example.com",
				"admin_login":  "admin",
				"admin_pwd":    "s3cret&<>",
				"TEST_PROJECT": map[string]any{"id": float64(1234)},
			},
			applied: []string{domain.KeyBaseURL, domain.KeyAdminLogin, domain.KeyAdminPassword, domain.KeyTestProject},
		},
		{
			name:   "partial override keeps prior values",
			source: MapSource{EnvBaseURL: "https://new.example.com"},
			expected: map[string]any{
				"baseUrl":      "https://new.example.com",
				"admin_login":  "old-admin",
				"admin_pwd":    "old-secret",
				"TEST_PROJECT": map[string]any{"id": float64(65)},
			},
			applied: []string{domain.KeyBaseURL},
		},
		{
			name:   "empty values count as absent",
			source: MapSource{EnvUsername: "", EnvTestProjectID: ""},
			expected: map[string]any{
				"baseUrl":      "https://old.example.com",
				"admin_login":  "old-admin",
				"admin_pwd":    "old-secret",
				"TEST_PROJECT": map[string]any{"id": float64(65)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, persisted)

			cfg, applied, err := NewWriter(tt.source).Apply(path)
			require.NoError(t, err)
			assert.Equal(t, tt.applied, applied)
			assert.NotNil(t, cfg)

			out := readBack(t, path)
			for key, want := range tt.expected {
				assert.Equal(t, want, out[key], key)
			}
			// Fields outside the overlay pass through untouched
			assert.Equal(t, float64(1280), out["viewportWidth"])
			assert.Equal(t, false, out["video"])
			assert.Equal(t, map[string]any{"retries": float64(2)}, out["env"])
		})
	}
}

func TestWriter_Apply_RepeatedRunsArePartial(t *testing.T) {
	path := writeConfig(t, persisted)

	_, _, err := NewWriter(MapSource{EnvPassword: "first"}).Apply(path)
	require.NoError(t, err)
	_, _, err = NewWriter(MapSource{EnvBaseURL: "https://second.example.com"}).Apply(path)
	require.NoError(t, err)

	out := readBack(t, path)
	assert.Equal(t, "first", out["admin_pwd"])
	assert.Equal(t, "https://second.example.com", out["baseUrl"])
}

func TestWriter_Apply_PrettyPrintsWithoutHTMLEscaping(t *testing.T) {
	path := writeConfig(t, `{"b":1,"a":2}`)

	_, _, err := NewWriter(MapSource{EnvBaseURL: "https://x.example.com/?a=1&b=2"}).Apply(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	expected := "{\n  \"a\": 2,\n  \"b\": 1,\n  \"baseUrl\": \"https://x.example.com/?a=1&b=2\"\n}\n"
	assert.Equal(t, expected, string(data))
}

func TestWriter_Apply_InvalidProjectID(t *testing.T) {
	path := writeConfig(t, persisted)

	_, _, err := NewWriter(MapSource{EnvBaseURL: "https://new.example.com", EnvTestProjectID: "abc"}).Apply(path)
	require.Error(t, err)
	assert.True(t, domain.IsConfigReadError(err))
	assert.True(t, domain.IsInvalidOverrideError(err))

	var invalid *domain.InvalidOverrideError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, EnvTestProjectID, invalid.Key)

	// Nothing was written
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, persisted, string(data))
}

func TestRead_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Read(filepath.Join(t.TempDir(), "absent.json"))
		assert.True(t, domain.IsConfigReadError(err))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := Read(writeConfig(t, `{"baseUrl": `))
		assert.True(t, domain.IsConfigReadError(err))
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := Read(writeConfig(t, `null`))
		assert.True(t, domain.IsConfigReadError(err))
	})
}

func TestRead_PreservesLargeNumbers(t *testing.T) {
	path := writeConfig(t, `{"defaultCommandTimeout": 9007199254740993}`)

	cfg, err := Read(path)
	require.NoError(t, err)
	require.NoError(t, Write(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "9007199254740993")
}

func TestEnvSource(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("BASE_URL=https://dotenv.example.com\nE2E_OVERLAY_ONLY_IN_FILE=yes\n"), 0644))

	t.Setenv(EnvBaseURL, "https://process.example.com")

	src, err := NewEnvSource(envPath)
	require.NoError(t, err)

	v, ok := src.Lookup(EnvBaseURL)
	assert.True(t, ok)
	assert.Equal(t, "https://process.example.com", v, "process environment wins over .env")

	v, ok = src.Lookup("E2E_OVERLAY_ONLY_IN_FILE")
	assert.True(t, ok)
	assert.Equal(t, "yes", v)

	_, ok = src.Lookup("E2E_OVERLAY_NOT_SET_ANYWHERE")
	assert.False(t, ok)

	missing, err := NewEnvSource(filepath.Join(dir, "absent.env"))
	require.NoError(t, err)
	_, ok = missing.Lookup("E2E_OVERLAY_ONLY_IN_FILE")
	assert.False(t, ok)
}
