package common

import (
	"errors"
	"fmt"
)

// Error kinds, one per pipeline stage. Handlers use errors.Is against these
// to decide the HTTP status and logs use them to name the failing stage.
var (
	ErrInput  = errors.New("invalid input")
	ErrDecode = errors.New("decode error")
	ErrOCR    = errors.New("ocr error")
	ErrLLM    = errors.New("llm error")
	ErrParse  = errors.New("parse error")
)

// PipelineError carries a stage kind, a human-readable message, and the
// underlying cause. errors.Is(err, kind) matches the kind; errors.Unwrap
// walks into the cause.
type PipelineError struct {
	Kind    error
	Message string
	Cause   error
}

func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PipelineError) Unwrap() error {
	return e.Cause
}

func (e *PipelineError) Is(target error) bool {
	return target == e.Kind
}

// Error constructors, one per stage.

func NewInputError(message string) *PipelineError {
	return &PipelineError{Kind: ErrInput, Message: message}
}

func NewDecodeError(message string, cause error) *PipelineError {
	return &PipelineError{Kind: ErrDecode, Message: message, Cause: cause}
}

func NewOCRError(message string, cause error) *PipelineError {
	return &PipelineError{Kind: ErrOCR, Message: message, Cause: cause}
}

func NewLLMError(message string, cause error) *PipelineError {
	return &PipelineError{Kind: ErrLLM, Message: message, Cause: cause}
}

func NewParseError(message string, cause error) *PipelineError {
	return &PipelineError{Kind: ErrParse, Message: message, Cause: cause}
}
