package platform

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Predicates(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(*APIError) bool
	}{
		{"invalid credentials", http.StatusUnauthorized, (*APIError).IsInvalidCredentials},
		{"not authorized", http.StatusForbidden, (*APIError).IsNotAuthorized},
		{"not found", http.StatusNotFound, (*APIError).IsNotFound},
		{"server error", http.StatusInternalServerError, (*APIError).IsServerError},
		{"bad gateway is a server error", http.StatusBadGateway, (*APIError).IsServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &APIError{Message: "boom", Status: tt.status}
			assert.True(t, tt.check(err))
		})
	}

	err := &APIError{Message: "boom", Status: http.StatusBadRequest}
	assert.False(t, err.IsInvalidCredentials())
	assert.False(t, err.IsNotAuthorized())
	assert.False(t, err.IsNotFound())
	assert.False(t, err.IsServerError())
}

func TestAPIError_Error(t *testing.T) {
	withCode := &APIError{Code: "NotFound", Message: "no such instance", Status: 404}
	assert.Equal(t, "platform API error: NotFound - no such instance (status: 404)", withCode.Error())

	withoutCode := &APIError{Message: "no such instance", Status: 404}
	assert.Equal(t, "platform API error: no such instance (status: 404)", withoutCode.Error())
}

func TestAsAPIError(t *testing.T) {
	inner := &APIError{Message: "denied", Status: 403}
	wrapped := fmt.Errorf("updating manifest: %w", inner)

	apiErr, ok := AsAPIError(wrapped)
	require.True(t, ok)
	assert.True(t, apiErr.IsNotAuthorized())

	_, ok = AsAPIError(fmt.Errorf("plain error"))
	assert.False(t, ok)
}
