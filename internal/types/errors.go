package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for quiz agent errors.
type ErrorCode string

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
	CONFIG_MISSING_API_KEY   ErrorCode = "CONFIG_MISSING_API_KEY"
)

// Collaborator error codes
const (
	GENERATION_FAILED    ErrorCode = "GENERATION_FAILED"
	SEARCH_FAILED        ErrorCode = "SEARCH_FAILED"
	EXTRACTION_FAILED    ErrorCode = "EXTRACTION_FAILED"
	COLLABORATOR_TIMEOUT ErrorCode = "COLLABORATOR_TIMEOUT"
)

// Quiz processing error codes
const (
	QUIZ_PARSE_FAILED      ErrorCode = "QUIZ_PARSE_FAILED"
	QUIZ_VALIDATION_FAILED ErrorCode = "QUIZ_VALIDATION_FAILED"
	QUIZ_NOT_FOUND         ErrorCode = "QUIZ_NOT_FOUND"
)

// Protocol error codes
const (
	PROTOCOL_DISABLED  ErrorCode = "PROTOCOL_DISABLED"
	ENDPOINT_NOT_FOUND ErrorCode = "ENDPOINT_NOT_FOUND"
	MESSAGE_INVALID    ErrorCode = "MESSAGE_INVALID"
	SEND_FAILED        ErrorCode = "SEND_FAILED"
)

// Tool registry error codes
const (
	TOOL_NOT_FOUND          ErrorCode = "TOOL_NOT_FOUND"
	TOOL_ALREADY_REGISTERED ErrorCode = "TOOL_ALREADY_REGISTERED"
	TOOL_INVALID            ErrorCode = "TOOL_INVALID"
)

// AgentError is a structured error with a stable code, a message, and an
// optional wrapped cause. Retryable marks transient failures (timeouts,
// network errors) that may succeed if the operation is repeated.
type AgentError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error formats as "[CODE] message" or "[CODE] message: cause".
func (e *AgentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is / errors.As chains.
func (e *AgentError) Unwrap() error {
	return e.Cause
}

// Is matches AgentErrors by code so errors.Is can compare against a
// sentinel built with NewError(code, "").
func (e *AgentError) Is(target error) bool {
	var agentErr *AgentError
	if errors.As(target, &agentErr) {
		return e.Code == agentErr.Code
	}
	return false
}

// NewError creates a non-retryable AgentError.
func NewError(code ErrorCode, message string) *AgentError {
	return &AgentError{Code: code, Message: message}
}

// NewRetryableError creates a retryable AgentError for transient failures.
func NewRetryableError(code ErrorCode, message string) *AgentError {
	return &AgentError{Code: code, Message: message, Retryable: true}
}

// WrapError creates a non-retryable AgentError wrapping cause.
func WrapError(code ErrorCode, message string, cause error) *AgentError {
	return &AgentError{Code: code, Message: message, Cause: cause}
}

// IsRetryable reports whether err (or any error in its chain) is a
// retryable AgentError.
func IsRetryable(err error) bool {
	var agentErr *AgentError
	if errors.As(err, &agentErr) {
		return agentErr.Retryable
	}
	return false
}
