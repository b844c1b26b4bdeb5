package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Sambhav-18066/ResumeCraftAI/internal/app"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/chat"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/export"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/generation"
)

// ErrSessionNotFound indicates an unknown or expired workspace
type ErrSessionNotFound struct {
	ID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// ErrBadRequest indicates a body that could not be decoded
type ErrBadRequest struct {
	Message string
	Cause   error
}

func (e *ErrBadRequest) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("bad request: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("bad request: %s", e.Message)
}

func (e *ErrBadRequest) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrSessionNotFound:
		return http.StatusNotFound
	case *ErrBadRequest, *generation.PreconditionError:
		return http.StatusBadRequest
	case *generation.RateLimitError:
		return http.StatusTooManyRequests
	case *generation.TransportError, *generation.MalformedResponseError, *export.ExportError:
		return http.StatusBadGateway
	}

	switch {
	case errors.Is(err, app.ErrInProgress):
		return http.StatusConflict
	case errors.Is(err, app.ErrNoDocument):
		return http.StatusNotFound
	case errors.Is(err, app.ErrExportUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, chat.ErrEmptyMessage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorBody is the JSON shape of an error reply. Generation failures carry
// the user-facing message and their kind.
type errorBody struct {
	Error string               `json:"error"`
	Kind  generation.ErrorKind `json:"kind,omitempty"`
}

func newErrorBody(err error) errorBody {
	var gerr generation.GenerationError
	if errors.As(err, &gerr) {
		return errorBody{Error: gerr.UserMessage(), Kind: gerr.Kind()}
	}
	return errorBody{Error: err.Error()}
}
