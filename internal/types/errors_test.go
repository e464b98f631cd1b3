package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAgentErrorFormat(t *testing.T) {
	err := NewError(SEARCH_FAILED, "search request rejected")
	assert.Equal(t, "[SEARCH_FAILED] search request rejected", err.Error())

	cause := fmt.Errorf("connection refused")
	wrapped := WrapError(SEARCH_FAILED, "search request rejected", cause)
	assert.Equal(t, "[SEARCH_FAILED] search request rejected: connection refused", wrapped.Error())
}

func TestAgentErrorUnwrap(t *testing.T) {
	cause := errors.New("deadline exceeded")
	err := WrapError(COLLABORATOR_TIMEOUT, "generation timed out", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestAgentErrorIsMatchesByCode(t *testing.T) {
	err := WrapError(QUIZ_PARSE_FAILED, "no parsable blocks", errors.New("boom"))

	assert.ErrorIs(t, err, NewError(QUIZ_PARSE_FAILED, ""))
	assert.NotErrorIs(t, err, NewError(QUIZ_VALIDATION_FAILED, ""))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewRetryableError(COLLABORATOR_TIMEOUT, "timeout")))
	assert.False(t, IsRetryable(NewError(CONFIG_MISSING_API_KEY, "no key")))
	assert.False(t, IsRetryable(errors.New("plain")))

	wrapped := fmt.Errorf("outer: %w", NewRetryableError(SEND_FAILED, "peer unreachable"))
	assert.True(t, IsRetryable(wrapped))
}
