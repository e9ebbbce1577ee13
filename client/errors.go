package client

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// A2AError is the base error type for all registry client failures. Every
// public client method returns either a decoded value or exactly one error
// from this taxonomy; callers branch on the error type and never on raw
// status codes.
type A2AError struct {
	Message    string
	StatusCode int
	Details    map[string]interface{}
	Err        error
}

func (e *A2AError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *A2AError) Unwrap() error {
	return e.Err
}

// NewA2AError creates a new base A2AError.
func NewA2AError(message string, details map[string]interface{}) *A2AError {
	return &A2AError{
		Message: message,
		Details: details,
	}
}

// AuthenticationError indicates missing or rejected credentials (HTTP 401
// or 403, or a failed token exchange).
type AuthenticationError struct {
	*A2AError
}

// Unwrap exposes the embedded base error so errors.As against *A2AError
// matches any taxonomy error.
func (e *AuthenticationError) Unwrap() error {
	return e.A2AError
}

// NewAuthenticationError creates a new AuthenticationError.
func NewAuthenticationError(message string, details map[string]interface{}) *AuthenticationError {
	return &AuthenticationError{A2AError: NewA2AError(message, details)}
}

// ValidationError indicates a structurally invalid agent, either rejected
// locally before the request or by the server with HTTP 422. Details
// carries field-level information when available.
type ValidationError struct {
	*A2AError
}

func (e *ValidationError) Unwrap() error {
	return e.A2AError
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string, details map[string]interface{}) *ValidationError {
	return &ValidationError{A2AError: NewA2AError(message, details)}
}

// NotFoundError indicates the requested resource does not exist (HTTP 404).
type NotFoundError struct {
	*A2AError
}

func (e *NotFoundError) Unwrap() error {
	return e.A2AError
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(message string, details map[string]interface{}) *NotFoundError {
	return &NotFoundError{A2AError: NewA2AError(message, details)}
}

// RateLimitError indicates the registry throttled the caller (HTTP 429).
type RateLimitError struct {
	*A2AError
}

func (e *RateLimitError) Unwrap() error {
	return e.A2AError
}

// NewRateLimitError creates a new RateLimitError.
func NewRateLimitError(message string, details map[string]interface{}) *RateLimitError {
	return &RateLimitError{A2AError: NewA2AError(message, details)}
}

// ServerError indicates a registry-side failure (HTTP 5xx).
type ServerError struct {
	*A2AError
}

func (e *ServerError) Unwrap() error {
	return e.A2AError
}

// NewServerError creates a new ServerError.
func NewServerError(message string, details map[string]interface{}) *ServerError {
	return &ServerError{A2AError: NewA2AError(message, details)}
}

// errorFromResponse classifies a non-2xx response into the taxonomy. The
// error body is decoded opportunistically for a "detail" string; a body
// that fails to parse never masks the status-derived error kind.
func errorFromResponse(statusCode int, body []byte) error {
	var errorData map[string]interface{}
	var detail string
	if err := json.Unmarshal(body, &errorData); err == nil {
		detail, _ = errorData["detail"].(string)
	} else {
		errorData = nil
	}

	withStatus := func(e *A2AError) *A2AError {
		e.StatusCode = statusCode
		return e
	}

	switch {
	case statusCode == http.StatusUnauthorized:
		return &AuthenticationError{A2AError: withStatus(NewA2AError("authentication required or token expired", errorData))}
	case statusCode == http.StatusForbidden:
		return &AuthenticationError{A2AError: withStatus(NewA2AError("access denied", errorData))}
	case statusCode == http.StatusNotFound:
		return &NotFoundError{A2AError: withStatus(NewA2AError("resource not found", errorData))}
	case statusCode == http.StatusUnprocessableEntity:
		message := "validation error"
		if detail != "" {
			message = "validation error: " + detail
		}
		return &ValidationError{A2AError: withStatus(NewA2AError(message, errorData))}
	case statusCode == http.StatusTooManyRequests:
		return &RateLimitError{A2AError: withStatus(NewA2AError("rate limit exceeded", errorData))}
	case statusCode >= http.StatusInternalServerError:
		message := fmt.Sprintf("server error: status %d", statusCode)
		if detail != "" {
			message = "server error: " + detail
		}
		return &ServerError{A2AError: withStatus(NewA2AError(message, errorData))}
	default:
		message := fmt.Sprintf("API error: status %d", statusCode)
		if detail != "" {
			message = "API error: " + detail
		}
		return withStatus(NewA2AError(message, errorData))
	}
}
