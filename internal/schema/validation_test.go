package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuestion() map[string]any {
	return map[string]any{
		"id":             "q-1",
		"question":       "What is the capital of France?",
		"type":           "multiple_choice",
		"options":        []any{"Paris", "London", "Berlin", "Madrid"},
		"correct_answer": "Paris",
		"explanation":    "Paris has been the capital since 987.",
		"difficulty":     "easy",
	}
}

func TestValidateQuestionValid(t *testing.T) {
	v := NewValidator(QuestionSchema())
	assert.Empty(t, v.ValidateValue(validQuestion()))
}

func TestValidateQuestionViolations(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(map[string]any)
		wantPath string
	}{
		{
			name:     "missing correct answer",
			mutate:   func(q map[string]any) { delete(q, "correct_answer") },
			wantPath: "$.correct_answer",
		},
		{
			name:     "missing question text",
			mutate:   func(q map[string]any) { delete(q, "question") },
			wantPath: "$.question",
		},
		{
			name:     "invalid type enum",
			mutate:   func(q map[string]any) { q["type"] = "matching" },
			wantPath: "$.type",
		},
		{
			name:     "invalid difficulty enum",
			mutate:   func(q map[string]any) { q["difficulty"] = "impossible" },
			wantPath: "$.difficulty",
		},
		{
			name:     "wrong type for options",
			mutate:   func(q map[string]any) { q["options"] = "A, B, C, D" },
			wantPath: "$.options",
		},
		{
			name:     "additional property rejected",
			mutate:   func(q map[string]any) { q["hint"] = "starts with P" },
			wantPath: "$.hint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(q)

			violations := NewValidator(QuestionSchema()).ValidateValue(q)
			require.NotEmpty(t, violations)
			assert.Equal(t, tt.wantPath, violations[0].Path)
		})
	}
}

func TestValidateQuizNestedPaths(t *testing.T) {
	quiz := map[string]any{
		"id":    "quiz-1",
		"title": "Geography",
		"questions": []any{
			validQuestion(),
			map[string]any{
				"id":       "q-2",
				"question": "Name a continent.",
				"type":     "short_answer",
				// correct_answer intentionally missing
			},
		},
		"metadata": map[string]any{"source": "test"},
	}

	violations := NewValidator(QuizSchema()).ValidateValue(quiz)
	require.Len(t, violations, 1)
	assert.Equal(t, "$.questions[1].correct_answer", violations[0].Path)
	assert.Contains(t, violations[0].Error(), "required field is missing")
}

func TestValidateInvalidJSON(t *testing.T) {
	violations := NewValidator(QuizSchema()).Validate([]byte("{not json"))
	require.Len(t, violations, 1)
	assert.Equal(t, "$", violations[0].Path)
	assert.Equal(t, "invalid JSON", violations[0].Message)
}

func TestValidateNullableField(t *testing.T) {
	q := validQuestion()
	q["explanation"] = nil
	assert.Empty(t, NewValidator(QuestionSchema()).ValidateValue(q))
}

func TestValidateRPCRequestIDAlternatives(t *testing.T) {
	base := func(id any) map[string]any {
		return map[string]any{
			"jsonrpc": "2.0",
			"id":      id,
			"method":  "ping",
			"params":  map[string]any{},
		}
	}

	v := NewValidator(RPCRequestSchema())

	assert.Empty(t, v.ValidateValue(base("7")))
	assert.Empty(t, v.ValidateValue(base(float64(7))))
	assert.Empty(t, v.ValidateValue(base(nil)))

	violations := v.ValidateValue(base(true))
	require.NotEmpty(t, violations)
	assert.Equal(t, "$.id", violations[0].Path)
}

func TestValidateRPCRequestVersion(t *testing.T) {
	req := map[string]any{"jsonrpc": "1.0", "method": "ping"}
	violations := NewValidator(RPCRequestSchema()).ValidateValue(req)
	require.NotEmpty(t, violations)
	assert.Equal(t, "$.jsonrpc", violations[0].Path)
}

func TestLookup(t *testing.T) {
	for _, name := range []string{SchemaQuiz, SchemaQuestion, SchemaPeerMessage, SchemaRPCRequest} {
		s, ok := Lookup(name)
		assert.True(t, ok, name)
		assert.NotNil(t, s, name)
	}

	_, ok := Lookup("nope")
	assert.False(t, ok)
}

func TestValidateDocumentUnknownSchema(t *testing.T) {
	_, err := ValidateDocument(map[string]any{}, "nope")
	assert.Error(t, err)
}
