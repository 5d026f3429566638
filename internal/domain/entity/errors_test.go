package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "url", Message: "field required"}
	assert.Equal(t, "validation error on field 'url': field required", err.Error())
}

func TestErrorKind_String(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected string
	}{
		{KindUnknown, "unknown"},
		{KindFetch, "fetch"},
		{KindExtraction, "extraction"},
		{KindEmptyInput, "empty_input"},
		{KindTokenization, "tokenization"},
		{ErrorKind(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestNewError(t *testing.T) {
	cause := errors.New("connection refused")

	err := NewError(KindFetch, "fetch page", cause)

	assert.Equal(t, "fetch page: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindFetch, KindOf(err))
}

func TestNewError_NilCause(t *testing.T) {
	assert.NoError(t, NewError(KindFetch, "fetch page", nil))
}

func TestError_WithoutOp(t *testing.T) {
	err := &Error{Kind: KindEmptyInput, Err: ErrEmptyInput}
	assert.Equal(t, ErrEmptyInput.Error(), err.Error())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorKind
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: KindUnknown,
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			expected: KindUnknown,
		},
		{
			name:     "classified error",
			err:      NewError(KindTokenization, "tokenize", ErrResourcesNotLoaded),
			expected: KindTokenization,
		},
		{
			name:     "classified error wrapped by fmt",
			err:      fmt.Errorf("summarize url: %w", NewError(KindExtraction, "extract", errors.New("bad html"))),
			expected: KindExtraction,
		},
		{
			name:     "outermost classification wins",
			err:      NewError(KindEmptyInput, "summarize", NewError(KindFetch, "fetch", errors.New("x"))),
			expected: KindEmptyInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.err))
		})
	}
}
