package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	id := NewID()
	assert.False(t, id.IsZero())
	assert.NoError(t, id.Validate())

	other := NewID()
	assert.NotEqual(t, id, other)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid uuid", "550e8400-e29b-41d4-a716-446655440000", false},
		{"empty string", "", true},
		{"not a uuid", "quiz-123", true},
		{"truncated", "550e8400-e29b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, id.String())
		})
	}
}

func TestIDJSONRoundTrip(t *testing.T) {
	id := NewID()

	data, err := json.Marshal(id)
	require.NoError(t, err)

	var decoded ID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)
}

func TestIDMarshalZero(t *testing.T) {
	var id ID
	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	var decoded ID
	require.NoError(t, json.Unmarshal([]byte("null"), &decoded))
	assert.True(t, decoded.IsZero())
}

func TestShortToken(t *testing.T) {
	tok := ShortToken()
	assert.Len(t, tok, 8)
	assert.NotEqual(t, tok, ShortToken())
}
