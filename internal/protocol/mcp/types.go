// Package mcp implements the JSON-RPC 2.0 tool protocol: a method
// registry, a capability catalogue describing each method's parameter and
// result shapes, and an HTTP front end.
package mcp

import (
	"context"
	"encoding/json"

	"github.com/Mr-XX23/quiz-agentic/internal/schema"
)

// JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Request is a JSON-RPC 2.0 request. The id is kept raw so responses echo
// it byte-for-byte whether it is a string, a number, or null.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  map[string]any  `json:"params,omitempty"`
}

// IsNotification reports whether the request carries no id.
func (r *Request) IsNotification() bool {
	return len(r.ID) == 0
}

// Response is a JSON-RPC 2.0 response. Exactly one of Result and Error is
// set. A nil ID marshals as null, the JSON-RPC 2.0 value for ids that
// could not be determined from the request.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  map[string]any  `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// NewResult builds a success response echoing the request id.
func NewResult(id json.RawMessage, result map[string]any) *Response {
	if result == nil {
		result = map[string]any{}
	}
	return &Response{JSONRPC: "2.0", ID: id, Result: result}
}

// NewError builds an error response echoing the request id.
func NewError(id json.RawMessage, code int, message string, data map[string]any) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &Error{Code: code, Message: message, Data: data},
	}
}

// MethodFunc executes one JSON-RPC method.
type MethodFunc func(ctx context.Context, params map[string]any) (map[string]any, error)

// Capability describes one advertised method.
type Capability struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  *schema.Schema `json:"parameters,omitempty"`
	Returns     *schema.Schema `json:"returns,omitempty"`
}
