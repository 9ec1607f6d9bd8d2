package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrInvalid    = errors.New("invalid entity")
	ErrConflict   = errors.New("conflict")
	ErrNotAllowed = errors.New("not allowed")
	ErrInternal   = errors.New("internal error")
)

// ValidationError is returned when the server refuses to start a deployment. Details
// holds the raw validationErrors payload so it can be shown to the operator as is.
type ValidationError struct {
	Details json.RawMessage
}

func (e *ValidationError) Error() string {
	var msg string
	if err := json.Unmarshal(e.Details, &msg); err == nil {
		return "deployment rejected: " + msg
	}
	return "deployment rejected: " + string(e.Details)
}

// APIError is any other non-2xx answer of the deployment API.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s %s: %d", e.Method, e.URL, e.StatusCode)
}
