package client

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFromResponseClassification(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		check      func(t *testing.T, err error)
	}{
		{
			name:       "401 maps to AuthenticationError",
			statusCode: http.StatusUnauthorized,
			body:       `{}`,
			check: func(t *testing.T, err error) {
				var authErr *AuthenticationError
				assert.ErrorAs(t, err, &authErr)
			},
		},
		{
			name:       "403 maps to AuthenticationError",
			statusCode: http.StatusForbidden,
			body:       `{}`,
			check: func(t *testing.T, err error) {
				var authErr *AuthenticationError
				assert.ErrorAs(t, err, &authErr)
			},
		},
		{
			name:       "404 maps to NotFoundError",
			statusCode: http.StatusNotFound,
			body:       `{}`,
			check: func(t *testing.T, err error) {
				var notFound *NotFoundError
				assert.ErrorAs(t, err, &notFound)
			},
		},
		{
			name:       "422 maps to ValidationError with detail",
			statusCode: http.StatusUnprocessableEntity,
			body:       `{"detail": "version must be semver"}`,
			check: func(t *testing.T, err error) {
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Contains(t, validationErr.Message, "version must be semver")
				assert.Equal(t, "version must be semver", validationErr.Details["detail"])
			},
		},
		{
			name:       "429 maps to RateLimitError",
			statusCode: http.StatusTooManyRequests,
			body:       `{}`,
			check: func(t *testing.T, err error) {
				var rateLimited *RateLimitError
				assert.ErrorAs(t, err, &rateLimited)
			},
		},
		{
			name:       "500 maps to ServerError",
			statusCode: http.StatusInternalServerError,
			body:       `{"detail": "opensearch unavailable"}`,
			check: func(t *testing.T, err error) {
				var serverErr *ServerError
				require.ErrorAs(t, err, &serverErr)
				assert.Contains(t, serverErr.Message, "opensearch unavailable")
			},
		},
		{
			name:       "503 maps to ServerError",
			statusCode: http.StatusServiceUnavailable,
			body:       `{}`,
			check: func(t *testing.T, err error) {
				var serverErr *ServerError
				assert.ErrorAs(t, err, &serverErr)
			},
		},
		{
			name:       "unmapped 4xx falls back to base error with status",
			statusCode: http.StatusConflict,
			body:       `{"detail": "agent already exists"}`,
			check: func(t *testing.T, err error) {
				var validationErr *ValidationError
				assert.False(t, errors.As(err, &validationErr))

				var base *A2AError
				require.ErrorAs(t, err, &base)
				assert.Equal(t, http.StatusConflict, base.StatusCode)
				assert.Contains(t, base.Message, "agent already exists")
			},
		},
		{
			name:       "unparseable error body does not mask the status kind",
			statusCode: http.StatusNotFound,
			body:       `<html>not found</html>`,
			check: func(t *testing.T, err error) {
				var notFound *NotFoundError
				require.ErrorAs(t, err, &notFound)
				assert.Nil(t, notFound.Details)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errorFromResponse(tt.statusCode, []byte(tt.body))
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestTaxonomyErrorsAreA2AErrors(t *testing.T) {
	taxonomy := []error{
		NewAuthenticationError("auth", nil),
		NewValidationError("validation", nil),
		NewNotFoundError("missing", nil),
		NewRateLimitError("throttled", nil),
		NewServerError("broken", nil),
	}

	for _, err := range taxonomy {
		var base *A2AError
		assert.ErrorAs(t, err, &base, "%T must unwrap to the base error", err)
	}
}

func TestA2AErrorWrapsCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := &A2AError{Message: "request failed", Err: cause}

	assert.Equal(t, "request failed: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestErrorStatusCodePropagates(t *testing.T) {
	err := errorFromResponse(http.StatusUnauthorized, []byte(`{}`))

	var base *A2AError
	require.ErrorAs(t, err, &base)
	assert.Equal(t, http.StatusUnauthorized, base.StatusCode)
}
