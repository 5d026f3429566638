package entity

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures of the summarization pipeline.
// Every kind maps to the same external status; the distinction exists for
// logs and metrics.
type ErrorKind int

const (
	// KindUnknown is used for errors that were never classified.
	KindUnknown ErrorKind = iota
	// KindFetch covers transport failures and non-success HTTP statuses.
	KindFetch
	// KindExtraction covers markup that could not be turned into text.
	KindExtraction
	// KindEmptyInput covers empty or whitespace-only document text.
	KindEmptyInput
	// KindTokenization covers missing or unusable text-analysis resources.
	KindTokenization
)

// String returns the label used in logs and metrics.
func (k ErrorKind) String() string {
	switch k {
	case KindFetch:
		return "fetch"
	case KindExtraction:
		return "extraction"
	case KindEmptyInput:
		return "empty_input"
	case KindTokenization:
		return "tokenization"
	default:
		return "unknown"
	}
}

// Sentinel errors for the domain layer.
var (
	// ErrEmptyInput indicates the document has no text to summarize.
	ErrEmptyInput = errors.New("input text is empty")

	// ErrResourcesNotLoaded indicates tokenizers or stopwords were used before Load.
	ErrResourcesNotLoaded = errors.New("text analysis resources not loaded")
)

// Error is a classified pipeline error.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// Error returns the underlying message prefixed by the operation.
func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with a kind and operation name.
// A nil err yields nil so callers can wrap unconditionally.
func NewError(kind ErrorKind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf reports the kind of the outermost classified error in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
