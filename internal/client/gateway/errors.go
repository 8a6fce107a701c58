package gateway

import "fmt"

// ErrorKind classifies gateway failures.
type ErrorKind string

const (
	KindUnauthorized             ErrorKind = "unauthorized"
	KindNetwork                  ErrorKind = "network"
	KindServer                   ErrorKind = "server"
	KindMalformedResponse        ErrorKind = "malformed_response"
	KindUnexpectedResponseFormat ErrorKind = "unexpected_response_format"
)

// APIError is the single error shape every gateway failure normalizes to.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Snippet string
	cause   error
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	typed, ok := err.(*APIError)
	return ok && typed.Kind == kind
}
