// Package schema provides a JSON Schema subset validator for the structured
// documents the agent exchanges: quizzes, questions, peer messages, and
// JSON-RPC requests. The validator reports every violation with a JSON path
// so callers can surface precise, stable error messages.
package schema

import "encoding/json"

// Schema describes a JSON Schema (draft-07 subset) node. Nested objects and
// arrays reuse the same type recursively.
type Schema struct {
	// Type is the expected JSON type: object, array, string, number,
	// integer, boolean, or null. Empty means any type.
	Type string `json:"type,omitempty"`

	// Types allows a union of acceptable types (e.g. string or null).
	// Takes precedence over Type when non-empty.
	Types []string `json:"types,omitempty"`

	Description string `json:"description,omitempty"`

	// Enum restricts string values to a closed vocabulary.
	Enum []string `json:"enum,omitempty"`

	// Properties describes object fields by name.
	Properties map[string]*Schema `json:"properties,omitempty"`

	// Required lists object fields that must be present.
	Required []string `json:"required,omitempty"`

	// Items describes the element schema for arrays.
	Items *Schema `json:"items,omitempty"`

	// AdditionalProperties, when set to false, rejects object fields not
	// declared in Properties. Nil means additional fields are allowed.
	AdditionalProperties *bool `json:"additionalProperties,omitempty"`

	// OneOf accepts a value matching any of the alternatives. Used for the
	// JSON-RPC id, which may be a string, a number, or null.
	OneOf []*Schema `json:"oneOf,omitempty"`
}

// Object creates an object schema with the given properties and required
// field names.
func Object(properties map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: "object", Properties: properties, Required: required}
}

// Array creates an array schema with the given item schema.
func Array(items *Schema) *Schema {
	return &Schema{Type: "array", Items: items}
}

// String creates a string schema with the given description.
func String(description string) *Schema {
	return &Schema{Type: "string", Description: description}
}

// StringOrNull creates a schema accepting a string or null.
func StringOrNull(description string) *Schema {
	return &Schema{Types: []string{"string", "null"}, Description: description}
}

// WithEnum restricts the schema to a closed set of string values.
func (s *Schema) WithEnum(values ...string) *Schema {
	s.Enum = values
	return s
}

// Closed sets additionalProperties to false on an object schema.
func (s *Schema) Closed() *Schema {
	f := false
	s.AdditionalProperties = &f
	return s
}

// MarshalIndent renders the schema as indented JSON, used by the MCP
// capability catalogue and status introspection.
func (s *Schema) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// acceptedTypes returns the union of types this schema accepts.
func (s *Schema) acceptedTypes() []string {
	if len(s.Types) > 0 {
		return s.Types
	}
	if s.Type != "" {
		return []string{s.Type}
	}
	return nil
}
