// Package generation turns pasted career text into a validated ResumeDocument
// through the language model.
package generation

import "fmt"

// ErrorKind names a failure category. Values are stable and appear in API
// responses.
type ErrorKind string

const (
	KindPrecondition      ErrorKind = "precondition"
	KindTransport         ErrorKind = "transport"
	KindRateLimited       ErrorKind = "rate_limited"
	KindMalformedResponse ErrorKind = "malformed_response"
)

// User-facing messages. Exactly one is shown per failed attempt.
const (
	MsgEmptyInput  = "Please paste your resume content first."
	MsgFailed      = "Failed to generate resume. Please check your connection or input and try again."
	MsgRateLimited = "The resume service is busy right now. Please wait a moment and try again."
)

// GenerationError is implemented by every error Generate returns.
type GenerationError interface {
	error
	Kind() ErrorKind
	UserMessage() string
}

// PreconditionError means the request was rejected before any model call
type PreconditionError struct {
	Message string
	Cause   error
}

func (e *PreconditionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("precondition failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("precondition failed: %s", e.Message)
}

func (e *PreconditionError) Unwrap() error {
	return e.Cause
}

// Kind implements GenerationError
func (e *PreconditionError) Kind() ErrorKind { return KindPrecondition }

// UserMessage implements GenerationError
func (e *PreconditionError) UserMessage() string { return e.Message }

// TransportError covers connectivity failures, timeouts and provider errors
// other than throttling.
type TransportError struct {
	Message string
	Cause   error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("transport error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("transport error: %s", e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Kind implements GenerationError
func (e *TransportError) Kind() ErrorKind { return KindTransport }

// UserMessage implements GenerationError
func (e *TransportError) UserMessage() string { return MsgFailed }

// RateLimitError means the provider throttled the request
type RateLimitError struct {
	Message string
	Cause   error
}

func (e *RateLimitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rate limited: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("rate limited: %s", e.Message)
}

func (e *RateLimitError) Unwrap() error {
	return e.Cause
}

// Kind implements GenerationError
func (e *RateLimitError) Kind() ErrorKind { return KindRateLimited }

// UserMessage implements GenerationError
func (e *RateLimitError) UserMessage() string { return MsgRateLimited }

// MalformedResponseError means the model answered with something that is not
// a valid resume document.
type MalformedResponseError struct {
	Message string
	Cause   error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed response: %s", e.Message)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

// Kind implements GenerationError
func (e *MalformedResponseError) Kind() ErrorKind { return KindMalformedResponse }

// UserMessage implements GenerationError
func (e *MalformedResponseError) UserMessage() string { return MsgFailed }
