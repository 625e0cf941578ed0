package theme

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Section names a group of CSS variables in a theme definition.
type Section string

const (
	SectionTheme Section = "theme"
	SectionLight Section = "light"
	SectionDark  Section = "dark"
)

// Vars is an ordered mapping of CSS custom-property names (without the leading
// "--") to raw values. Names are unique; setting an existing name keeps its
// original position.
type Vars struct {
	keys   []string
	values map[string]string
}

// NewVars builds Vars from alternating name/value pairs.
func NewVars(pairs ...string) Vars {
	var v Vars
	for i := 0; i+1 < len(pairs); i += 2 {
		v.Set(pairs[i], pairs[i+1])
	}
	return v
}

// Set assigns value to name.
func (v *Vars) Set(name, value string) {
	if v.values == nil {
		v.values = make(map[string]string)
	}
	if _, exists := v.values[name]; !exists {
		v.keys = append(v.keys, name)
	}
	v.values[name] = value
}

// Get returns the value for name.
func (v Vars) Get(name string) (string, bool) {
	value, ok := v.values[name]
	return value, ok
}

// Has reports whether name is defined.
func (v Vars) Has(name string) bool {
	_, ok := v.values[name]
	return ok
}

// Len returns the number of variables.
func (v Vars) Len() int { return len(v.keys) }

// Each calls fn for every variable in order.
func (v Vars) Each(fn func(name, value string)) {
	for _, k := range v.keys {
		fn(k, v.values[k])
	}
}

// MarshalJSON writes the variables as an object in insertion order.
func (v Vars) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range v.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(v.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object preserving member order.
func (v *Vars) UnmarshalJSON(data []byte) error {
	if isJSONNull(data) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return decodeObject(dec, func(key string) error {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch value := tok.(type) {
		case string:
			v.Set(key, value)
		case json.Number:
			v.Set(key, value.String())
		default:
			return fmt.Errorf("value for %q must be a string", key)
		}
		return nil
	})
}

// UnmarshalYAML decodes a mapping node preserving key order.
func (v *Vars) UnmarshalYAML(node *yaml.Node) error {
	if isYAMLNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of variables", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: value for %q must be a string", value.Line, key.Value)
		}
		v.Set(key.Value, value.Value)
	}
	return nil
}

// CSSVars holds the variable sections of a theme definition. Absent sections
// are empty.
type CSSVars struct {
	Theme Vars `json:"theme" yaml:"theme"`
	Light Vars `json:"light" yaml:"light"`
	Dark  Vars `json:"dark" yaml:"dark"`
}

// Section returns the variables of one section.
func (c CSSVars) Section(s Section) Vars {
	switch s {
	case SectionTheme:
		return c.Theme
	case SectionLight:
		return c.Light
	case SectionDark:
		return c.Dark
	}
	return Vars{}
}

// Empty reports whether every section is empty.
func (c CSSVars) Empty() bool {
	return c.Theme.Len() == 0 && c.Light.Len() == 0 && c.Dark.Len() == 0
}

// StyleRule is one selector with its declarations.
type StyleRule struct {
	Selector     string
	Declarations Vars
}

// Layer is a named cascade layer such as "@layer base".
type Layer struct {
	Name  string
	Rules []StyleRule
}

// Layers is the ordered "css" member of a theme definition.
type Layers []Layer

// Get returns the rules of the named layer.
func (l Layers) Get(name string) []StyleRule {
	for _, layer := range l {
		if layer.Name == name {
			return layer.Rules
		}
	}
	return nil
}

// UnmarshalJSON decodes layers preserving selector order.
func (l *Layers) UnmarshalJSON(data []byte) error {
	if isJSONNull(data) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return decodeObject(dec, func(name string) error {
		layer := Layer{Name: name}
		err := decodeObject(dec, func(selector string) error {
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return err
			}
			var decls Vars
			if err := decls.UnmarshalJSON(raw); err != nil {
				return fmt.Errorf("%s %s: %w", name, selector, err)
			}
			layer.Rules = append(layer.Rules, StyleRule{Selector: selector, Declarations: decls})
			return nil
		})
		if err != nil {
			return err
		}
		*l = append(*l, layer)
		return nil
	})
}

// UnmarshalYAML decodes layers preserving selector order.
func (l *Layers) UnmarshalYAML(node *yaml.Node) error {
	if isYAMLNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of layers", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		layer := Layer{Name: node.Content[i].Value}
		rules := node.Content[i+1]
		if rules.Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: expected a mapping of selectors", rules.Line)
		}
		for j := 0; j+1 < len(rules.Content); j += 2 {
			var decls Vars
			if err := decls.UnmarshalYAML(rules.Content[j+1]); err != nil {
				return err
			}
			layer.Rules = append(layer.Rules, StyleRule{Selector: rules.Content[j].Value, Declarations: decls})
		}
		*l = append(*l, layer)
	}
	return nil
}

func decodeObject(dec *json.Decoder, member func(key string) error) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected an object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected an object key")
		}
		if err := member(key); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

func isJSONNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

func isYAMLNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}
