package apperrors

import (
	"errors"
	"net/http"
)

// Kind classifies a failure so the HTTP layer can pick a status code.
type Kind int

const (
	Internal Kind = iota
	ValidationFailed
	Conflict
	NotFound
	InvalidCredentials
	UnprocessableImage
	TooManyFiles
)

func (k Kind) String() string {
	switch k {
	case ValidationFailed:
		return "VALIDATION_FAILED"
	case Conflict:
		return "CONFLICT"
	case NotFound:
		return "NOT_FOUND"
	case InvalidCredentials:
		return "INVALID_CREDENTIALS"
	case UnprocessableImage:
		return "UNPROCESSABLE_IMAGE"
	case TooManyFiles:
		return "TOO_MANY_FILES"
	default:
		return "INTERNAL_ERROR"
	}
}

// Status maps a kind to the HTTP status returned to clients.
func (k Kind) Status() int {
	switch k {
	case ValidationFailed, Conflict, InvalidCredentials, TooManyFiles:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind and a client-facing message to an underlying error.
func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ErrorResponse is the JSON body written for failed requests.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ToResponse converts err into the body and status sent to the client.
// Internal failures never leak their underlying cause.
func ToResponse(err error) (int, ErrorResponse) {
	var appErr *Error
	if !errors.As(err, &appErr) || appErr.Kind == Internal {
		return http.StatusInternalServerError, ErrorResponse{
			Message: "internal server error",
			Code:    Internal.String(),
		}
	}
	return appErr.Kind.Status(), ErrorResponse{
		Message: appErr.Message,
		Code:    appErr.Kind.String(),
	}
}
