package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/conneroisu/reelsmith/internal/errors"
)

// Field types used in component schemas.
const (
	FieldString    = "string"
	FieldNumber    = "number"
	FieldFloat     = "float"
	FieldInteger   = "integer"
	FieldBoolean   = "boolean"
	FieldEnum      = "enum"
	FieldArray     = "array"
	FieldComponent = "component"
)

// Field describes one configuration key of a component.
type Field struct {
	Type        string   `json:"type" yaml:"type"`
	Required    bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Default     any      `json:"default,omitempty" yaml:"default,omitempty"`
	Values      []string `json:"values,omitempty" yaml:"values,omitempty"`
	Description string   `json:"description" yaml:"description"`
}

// Schema documents a component type for callers choosing and configuring
// components.
type Schema struct {
	Name        string                       `json:"name" yaml:"name"`
	Description string                       `json:"description" yaml:"description"`
	Category    string                       `json:"category" yaml:"category"`
	Variants    map[string]string            `json:"variants,omitempty" yaml:"variants,omitempty"`
	Animations  map[string]string            `json:"animations,omitempty" yaml:"animations,omitempty"`
	Positions   map[string]string            `json:"positions,omitempty" yaml:"positions,omitempty"`
	Layouts     map[string]string            `json:"layouts,omitempty" yaml:"layouts,omitempty"`
	Styles      map[string]string            `json:"styles,omitempty" yaml:"styles,omitempty"`
	Options     map[string]map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
	Fields      map[string]Field             `json:"schema" yaml:"schema"`
	Example     map[string]any               `json:"example,omitempty" yaml:"example,omitempty"`
}

// FieldNames returns the schema's field names in lexical order.
func (s *Schema) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RequiredFields returns the required field names in lexical order.
func (s *Schema) RequiredFields() []string {
	var names []string
	for _, name := range s.FieldNames() {
		if s.Fields[name].Required {
			names = append(names, name)
		}
	}
	return names
}

// ApplyDefaults returns a copy of config with schema defaults filled in for
// absent keys. Keys not in the schema are kept.
func (s *Schema) ApplyDefaults(config map[string]any) map[string]any {
	out := make(map[string]any, len(config)+len(s.Fields))
	for name, field := range s.Fields {
		if field.Default != nil {
			out[name] = field.Default
		}
	}
	for k, v := range config {
		out[k] = v
	}
	return out
}

// Validate checks required fields, enum values and scalar types. All
// problems are reported in one error.
func (s *Schema) Validate(config map[string]any) error {
	var problems []string

	for _, name := range s.FieldNames() {
		field := s.Fields[name]
		value, present := config[name]
		if !present || value == nil {
			if field.Required && field.Type != FieldComponent {
				problems = append(problems, fmt.Sprintf("%s is required", name))
			}
			continue
		}
		if msg := checkField(name, field, value); msg != "" {
			problems = append(problems, msg)
		}
	}

	if len(problems) == 0 {
		return nil
	}

	return errors.NewValidationError(
		errors.ErrCodeValidationFailed,
		fmt.Sprintf("invalid %s config: %s", s.Name, strings.Join(problems, "; ")),
	).WithComponent(s.Name).WithContext("problems", problems)
}

func checkField(name string, field Field, value any) string {
	switch field.Type {
	case FieldString:
		if _, ok := value.(string); !ok {
			return fmt.Sprintf("%s must be a string", name)
		}
	case FieldBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Sprintf("%s must be a boolean", name)
		}
	case FieldNumber, FieldFloat, FieldInteger:
		if !isNumber(value) {
			return fmt.Sprintf("%s must be a number", name)
		}
	case FieldArray:
		if _, ok := value.([]any); !ok {
			return fmt.Sprintf("%s must be a list", name)
		}
	case FieldEnum:
		str, ok := value.(string)
		if !ok {
			return fmt.Sprintf("%s must be one of %s", name, strings.Join(field.Values, ", "))
		}
		for _, allowed := range field.Values {
			if str == allowed {
				return ""
			}
		}
		return fmt.Sprintf("%s %q is not one of %s", name, str, strings.Join(field.Values, ", "))
	}
	return ""
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int32, int64, uint, uint32, uint64, float32, float64:
		return true
	default:
		return false
	}
}
