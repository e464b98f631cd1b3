package schema

import (
	"encoding/json"
	"fmt"
)

// Violation describes a single schema validation failure with the JSON path
// of the offending value (e.g. "$.questions[0].correct_answer").
type Violation struct {
	Message  string `json:"message"`
	Path     string `json:"path"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
}

func (v Violation) Error() string {
	if v.Expected != "" && v.Actual != "" {
		return fmt.Sprintf("validation failed at %s: %s (expected %s, got %s)", v.Path, v.Message, v.Expected, v.Actual)
	}
	return fmt.Sprintf("validation failed at %s: %s", v.Path, v.Message)
}

// Validator validates decoded JSON values against a Schema.
type Validator struct {
	schema *Schema
}

// NewValidator creates a validator for the given schema.
func NewValidator(schema *Schema) *Validator {
	return &Validator{schema: schema}
}

// Validate validates raw JSON bytes against the schema. An empty result
// means the document is valid.
func (v *Validator) Validate(data []byte) []Violation {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return []Violation{{Message: "invalid JSON", Path: "$"}}
	}
	return v.ValidateValue(parsed)
}

// ValidateValue validates an already-decoded JSON value (maps, slices, and
// primitive types as produced by encoding/json).
func (v *Validator) ValidateValue(value any) []Violation {
	return validate(value, v.schema, "$")
}

func validate(value any, s *Schema, path string) []Violation {
	if s == nil {
		return nil
	}

	if len(s.OneOf) > 0 {
		for _, alt := range s.OneOf {
			if len(validate(value, alt, path)) == 0 {
				return nil
			}
		}
		return []Violation{{
			Message:  "value matches none of the allowed alternatives",
			Path:     path,
			Expected: oneOfTypes(s.OneOf),
			Actual:   valueType(value),
		}}
	}

	if accepted := s.acceptedTypes(); len(accepted) > 0 {
		actual := valueType(value)
		if !typeAccepted(accepted, actual, value) {
			return []Violation{{
				Message:  "type mismatch",
				Path:     path,
				Expected: joinTypes(accepted),
				Actual:   actual,
			}}
		}
	}

	var violations []Violation
	switch valueType(value) {
	case "object":
		violations = append(violations, validateObject(value.(map[string]any), s, path)...)
	case "array":
		violations = append(violations, validateArray(value.([]any), s, path)...)
	case "string":
		if len(s.Enum) > 0 && !enumContains(s.Enum, value.(string)) {
			violations = append(violations, Violation{
				Message:  "value not in enum",
				Path:     path,
				Expected: fmt.Sprintf("one of %v", s.Enum),
				Actual:   value.(string),
			})
		}
	}
	return violations
}

func validateObject(obj map[string]any, s *Schema, path string) []Violation {
	var violations []Violation

	for _, required := range s.Required {
		if _, ok := obj[required]; !ok {
			violations = append(violations, Violation{
				Message:  "required field is missing",
				Path:     path + "." + required,
				Expected: "field to be present",
				Actual:   "field is missing",
			})
		}
	}

	if s.AdditionalProperties != nil && !*s.AdditionalProperties {
		for name := range obj {
			if _, declared := s.Properties[name]; !declared {
				violations = append(violations, Violation{
					Message:  "additional property not allowed",
					Path:     path + "." + name,
					Expected: "no additional properties",
					Actual:   fmt.Sprintf("found property %q", name),
				})
			}
		}
	}

	for name, fieldValue := range obj {
		fieldSchema, ok := s.Properties[name]
		if !ok {
			continue
		}
		violations = append(violations, validate(fieldValue, fieldSchema, path+"."+name)...)
	}

	return violations
}

func validateArray(arr []any, s *Schema, path string) []Violation {
	if s.Items == nil {
		return nil
	}
	var violations []Violation
	for i, item := range arr {
		violations = append(violations, validate(item, s.Items, fmt.Sprintf("%s[%d]", path, i))...)
	}
	return violations
}

// valueType maps a decoded JSON value to its schema type name.
func valueType(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64, int, int64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return "unknown"
	}
}

// typeAccepted checks whether the actual type satisfies any accepted type.
// "integer" accepts whole-valued numbers, matching JSON Schema semantics.
func typeAccepted(accepted []string, actual string, value any) bool {
	for _, t := range accepted {
		if t == actual {
			return true
		}
		if t == "integer" && actual == "number" {
			if f, ok := value.(float64); ok && f == float64(int64(f)) {
				return true
			}
			if _, ok := value.(int); ok {
				return true
			}
			if _, ok := value.(int64); ok {
				return true
			}
		}
		if t == "number" && actual == "integer" {
			return true
		}
	}
	return false
}

func enumContains(enum []string, value string) bool {
	for _, e := range enum {
		if e == value {
			return true
		}
	}
	return false
}

func joinTypes(types []string) string {
	if len(types) == 1 {
		return types[0]
	}
	out := ""
	for i, t := range types {
		if i > 0 {
			out += " or "
		}
		out += t
	}
	return out
}

func oneOfTypes(alts []*Schema) string {
	var types []string
	for _, alt := range alts {
		types = append(types, alt.acceptedTypes()...)
	}
	return joinTypes(types)
}
