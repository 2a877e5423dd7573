package contract

import "errors"

var (
	ErrMissingInput     = errors.New("missing input")
	ErrNotFound         = errors.New("not found")
	ErrUnexpectedFormat = errors.New("unexpected response format")

	ErrStore       = errors.New("catalog store failed")
	ErrModelInvoke = errors.New("model invoke failed")
	ErrValidation  = errors.New("validation failed")
)

// Error is a routing failure whose Message is shown to the caller verbatim.
// Kind is one of ErrMissingInput, ErrNotFound or ErrUnexpectedFormat.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func MissingInput(message string) error {
	return &Error{Kind: ErrMissingInput, Message: message}
}

func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func UnexpectedFormat() error {
	return &Error{Kind: ErrUnexpectedFormat, Message: "Unexpected response format"}
}

// PublicMessage returns the text safe to hand back to a client.
// Infrastructure failures collapse to a generic message.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var routeErr *Error
	if errors.As(err, &routeErr) {
		return routeErr.Message
	}
	switch {
	case errors.Is(err, ErrStore):
		return "Catalog store unavailable"
	case errors.Is(err, ErrModelInvoke):
		return "Summarization failed"
	default:
		return "Internal error"
	}
}
