package types

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// ID is a UUID-backed identifier used for sessions, quizzes, questions and
// peer messages. The zero value is invalid.
type ID string

// NewID generates a new random ID. uuid.New uses crypto/rand and only
// panics on system-level entropy failure.
func NewID() ID {
	return ID(uuid.New().String())
}

// ParseID validates s as a UUID and returns it as an ID.
func ParseID(s string) (ID, error) {
	if s == "" {
		return "", fmt.Errorf("ID cannot be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid UUID format: %w", err)
	}
	return ID(parsed.String()), nil
}

// Validate checks that the ID holds a well-formed UUID.
func (id ID) Validate() error {
	if id == "" {
		return fmt.Errorf("ID cannot be empty")
	}
	if _, err := uuid.Parse(string(id)); err != nil {
		return fmt.Errorf("invalid UUID format: %w", err)
	}
	return nil
}

func (id ID) String() string { return string(id) }

// IsZero reports whether the ID is unset.
func (id ID) IsZero() bool { return id == "" }

// MarshalJSON serializes the ID as a JSON string, or null when unset.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON deserializes and validates a JSON string into an ID.
// Empty strings and null reset the ID to its zero value.
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to unmarshal ID: %w", err)
	}
	if s == "" {
		*id = ""
		return nil
	}
	parsed, err := ParseID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ShortToken returns an 8-character random token, used for default agent
// and server identifiers (e.g. "quiz-agent-3f9a01bc").
func ShortToken() string {
	u := uuid.New()
	return fmt.Sprintf("%x", u[:4])
}
