package theme

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Format is the serialization of a theme definition.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// DetectFormat picks a format from a file name or URL path. Anything that is
// not recognisably YAML or TOML is treated as JSON, the registry default.
func DetectFormat(name string) Format {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	}
	return FormatJSON
}

// Definition is a theme as published by a shadcn-compatible registry.
type Definition struct {
	Name    string  `json:"name" yaml:"name"`
	CSSVars CSSVars `json:"cssVars" yaml:"cssVars"`
	CSS     Layers  `json:"css" yaml:"css"`
}

//go:embed schema/definition.schema.json
var definitionSchemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

func definitionSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(definitionSchemaJSON))
	})
	return compiledSchema, schemaErr
}

// ParseDefinition decodes and validates a theme definition. source names the
// input in error messages.
func ParseDefinition(data []byte, format Format, source string) (*Definition, error) {
	switch format {
	case FormatYAML:
		var generic any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, &InputError{Source: source, Reason: "malformed YAML", Wrapped: err}
		}
		asJSON, err := json.Marshal(generic)
		if err != nil {
			return nil, &InputError{Source: source, Reason: "unsupported YAML structure", Wrapped: err}
		}
		if err := validateDefinition(asJSON, source); err != nil {
			return nil, err
		}
		var def Definition
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, &InputError{Source: source, Reason: "malformed theme definition", Wrapped: err}
		}
		return &def, nil

	case FormatTOML:
		// TOML tables decode into Go maps, so section order follows key order.
		var generic map[string]any
		if err := toml.Unmarshal(data, &generic); err != nil {
			return nil, &InputError{Source: source, Reason: "malformed TOML", Wrapped: err}
		}
		asJSON, err := json.Marshal(generic)
		if err != nil {
			return nil, &InputError{Source: source, Reason: "unsupported TOML structure", Wrapped: err}
		}
		return parseJSON(asJSON, source)

	case FormatJSON, "":
		return parseJSON(data, source)
	}
	return nil, &InputError{Source: source, Reason: fmt.Sprintf("unsupported format %q", format)}
}

func parseJSON(data []byte, source string) (*Definition, error) {
	if err := validateDefinition(data, source); err != nil {
		return nil, err
	}
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, &InputError{Source: source, Reason: "malformed theme definition", Wrapped: err}
	}
	return &def, nil
}

func validateDefinition(data []byte, source string) error {
	schema, err := definitionSchema()
	if err != nil {
		return fmt.Errorf("failed to compile theme definition schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &InputError{Source: source, Reason: "malformed JSON", Wrapped: err}
	}
	if result.Valid() {
		return nil
	}

	var reasons []string
	for _, desc := range result.Errors() {
		reasons = append(reasons, desc.String())
	}
	return &InputError{Source: source, Reason: strings.Join(reasons, "; ")}
}
