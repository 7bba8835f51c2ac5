package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/scope/internal/logging"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scopedemo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConfig_Load(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `version: 1
seed: 42
rounds: 5
mode: error
metrics: true
`)

	cfg := &Config{Path: path, Logger: logging.New(false, true)}
	require.NoError(t, cfg.Load())

	assert.Equal(t, &Definition{Version: 1, Seed: 42, Rounds: 5, Mode: ModeError, Metrics: true}, cfg.Definition)
}

func TestConfig_Load_PartialUsesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "rounds: 3\n")

	cfg := &Config{Path: path}
	require.NoError(t, cfg.Load())

	assert.Equal(t, 3, cfg.Definition.Rounds)
	assert.Equal(t, int64(1), cfg.Definition.Seed)
	assert.Equal(t, ModePanic, cfg.Definition.Mode)
}

func TestConfig_Load_EmptyFile(t *testing.T) {
	t.Parallel()

	cfg := &Config{Path: writeConfig(t, "")}
	require.NoError(t, cfg.Load())
	assert.Equal(t, DefaultDefinition(), cfg.Definition)
}

func TestConfig_Validation_MissingFile(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Path:   "/nonexistent/path/to/config.yaml",
		Logger: logging.New(false, true),
	}

	err := cfg.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration file not found")
}

func TestConfig_Validation_InvalidYAML(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "rounds: [3\nmode: panic\n")

	err := (&Config{Path: path}).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid YAML syntax")
}

func TestConfig_Validation_Schema(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		contains string
	}{
		{"unsupported version", "version: 2\n", "version"},
		{"unknown mode", "mode: explode\n", "mode"},
		{"rounds too low", "rounds: 0\n", "rounds"},
		{"unknown key", "retries: 3\n", "retries"},
		{"wrong type", "metrics: sometimes\n", "metrics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "schema validation failed")
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestConfig_Load_DefaultPathMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := &Config{Path: DefaultPath}
	require.NoError(t, cfg.Load())
	assert.Equal(t, DefaultDefinition(), cfg.Definition)
}
