package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	dserrors "github.com/systmms/scope/internal/errors"
	"github.com/systmms/scope/internal/logging"
	"github.com/systmms/scope/pkg/scope"
)

// DefaultPath is the configuration file looked up when --config is not set.
const DefaultPath = "scopedemo.yaml"

// Failure modes understood by the demo.
const (
	ModePanic = "panic"
	ModeError = "error"
)

//go:embed schema/scopedemo.schema.json
var definitionSchema string

// Config holds the runtime configuration
type Config struct {
	Path       string
	Logger     *logging.Logger
	Definition *Definition
}

// Definition represents the scopedemo.yaml structure
type Definition struct {
	Version int    `yaml:"version"`
	Seed    int64  `yaml:"seed"`
	Rounds  int    `yaml:"rounds"`
	Mode    string `yaml:"mode"`
	Metrics bool   `yaml:"metrics"`
}

// DefaultDefinition returns the settings used when no file is present.
func DefaultDefinition() *Definition {
	return &Definition{
		Version: 1,
		Seed:    1,
		Rounds:  1,
		Mode:    ModePanic,
	}
}

// Load reads and validates the configuration file. A missing file at
// DefaultPath falls back to DefaultDefinition; a missing file anywhere else
// is an error.
func (c *Config) Load() error {
	data, err := readFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) && (c.Path == "" || c.Path == DefaultPath) {
			c.Definition = DefaultDefinition()
			return nil
		}
		if os.IsNotExist(err) {
			return dserrors.ConfigError{
				Field:      "path",
				Value:      c.Path,
				Message:    "configuration file not found",
				Suggestion: "Check the --config path or omit it to use defaults",
				Err:        err,
			}
		}
		return dserrors.UserError{
			Message:    "Failed to read configuration file",
			Details:    err.Error(),
			Suggestion: "Check file permissions and path",
			Err:        err,
		}
	}

	def, err := Parse(data)
	if err != nil {
		return err
	}

	c.Definition = def
	return nil
}

// Parse decodes and validates a configuration document. Unset fields take
// their DefaultDefinition values.
func Parse(data []byte) (*Definition, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, dserrors.ConfigError{
			Message:    "invalid YAML syntax in configuration file",
			Suggestion: "Check for indentation errors, missing quotes, or invalid characters. Use a YAML validator",
			Err:        err,
		}
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}

	if err := validateWithSchema(raw); err != nil {
		return nil, err
	}

	def := DefaultDefinition()
	if err := yaml.Unmarshal(data, def); err != nil {
		return nil, dserrors.ConfigError{
			Message: "configuration does not match the expected structure",
			Err:     err,
		}
	}
	return def, nil
}

// readFile reads path, closing the handle through an exit guard.
func readFile(path string) ([]byte, error) {
	if path == "" {
		path = DefaultPath
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer scope.Exit(func() { _ = f.Close() }, scope.WithName("config.close")).Close()

	return io.ReadAll(f)
}

// validateWithSchema validates the decoded document against the embedded schema
func validateWithSchema(doc map[string]interface{}) error {
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal data for validation: %w", err)
	}

	schemaLoader := gojsonschema.NewStringLoader(definitionSchema)
	documentLoader := gojsonschema.NewBytesLoader(jsonData)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		var errorMessages []string
		field := ""
		for _, desc := range result.Errors() {
			if field == "" {
				field = desc.Field()
			}
			errorMessages = append(errorMessages, desc.String())
		}
		return dserrors.ConfigError{
			Field:      field,
			Message:    "schema validation failed:\n  - " + strings.Join(errorMessages, "\n  - "),
			Suggestion: "Allowed keys: version (1), seed, rounds (1-1000), mode (panic|error), metrics",
		}
	}

	return nil
}
