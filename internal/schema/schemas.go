package schema

import (
	"encoding/json"
	"fmt"
)

// Built-in schema names registered with Lookup.
const (
	SchemaQuiz        = "quiz"
	SchemaQuestion    = "question"
	SchemaPeerMessage = "a2a_message"
	SchemaRPCRequest  = "mcp_request"
)

// QuestionSchema returns the schema for a single quiz question.
func QuestionSchema() *Schema {
	return Object(map[string]*Schema{
		"id":       String("Unique identifier for the question"),
		"question": String("The quiz question text"),
		"type": String("Type of question").
			WithEnum("multiple_choice", "true_false", "short_answer", "essay"),
		"options":        Array(String("Answer option")),
		"correct_answer": String("The correct answer"),
		"explanation":    StringOrNull("Explanation for the correct answer"),
		"difficulty": String("Difficulty level of the question").
			WithEnum("easy", "medium", "hard"),
		"category": StringOrNull("Category or subject of the question"),
		"source":   StringOrNull("Source of the question content"),
	}, "id", "question", "type", "correct_answer").Closed()
}

// QuizSchema returns the schema for a complete quiz.
func QuizSchema() *Schema {
	return Object(map[string]*Schema{
		"id":          String("Unique identifier for the quiz"),
		"title":       String("Title of the quiz"),
		"description": StringOrNull("Description of the quiz"),
		"questions":   Array(QuestionSchema()),
		"metadata":    {Type: "object", Description: "Open quiz metadata"},
	}, "id", "title", "questions").Closed()
}

// PeerMessageSchema returns the schema for an A2A peer message. The kind
// enum covers the built-in vocabulary; user-registered kinds are validated
// structurally by the dispatcher, not by this schema.
func PeerMessageSchema() *Schema {
	return Object(map[string]*Schema{
		"message_id":  String("Unique identifier for the message"),
		"sender_id":   String("ID of the sending agent"),
		"receiver_id": String("ID of the receiving agent"),
		"message_type": String("Type of peer message").WithEnum(
			"quiz_request", "quiz_response",
			"question_request", "question_response",
			"ping", "pong", "status", "error",
		),
		"payload":   {Type: "object", Description: "Message payload data"},
		"timestamp": String("Message timestamp (RFC 3339)"),
	}, "message_id", "sender_id", "receiver_id", "message_type", "payload", "timestamp").Closed()
}

// RPCRequestSchema returns the schema for a JSON-RPC 2.0 request.
func RPCRequestSchema() *Schema {
	return Object(map[string]*Schema{
		"jsonrpc": String("JSON-RPC version").WithEnum("2.0"),
		"id": {
			Description: "Request identifier",
			OneOf: []*Schema{
				{Type: "string"},
				{Type: "number"},
				{Type: "null"},
			},
		},
		"method": String("Method name"),
		"params": {Type: "object", Description: "Method parameters"},
	}, "jsonrpc", "method").Closed()
}

// Lookup returns a built-in schema by name.
func Lookup(name string) (*Schema, bool) {
	switch name {
	case SchemaQuiz:
		return QuizSchema(), true
	case SchemaQuestion:
		return QuestionSchema(), true
	case SchemaPeerMessage:
		return PeerMessageSchema(), true
	case SchemaRPCRequest:
		return RPCRequestSchema(), true
	default:
		return nil, false
	}
}

// ValidateDocument validates any JSON-marshalable document against a named
// built-in schema. The document is round-tripped through encoding/json so
// struct types and raw maps validate identically.
func ValidateDocument(document any, schemaName string) ([]Violation, error) {
	s, ok := Lookup(schemaName)
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", schemaName)
	}

	data, err := json.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("document is not JSON-marshalable: %w", err)
	}

	return NewValidator(s).Validate(data), nil
}
