package platform

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents an error response from the platform API
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

// Error implements the error interface for APIError
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("platform API error: %s - %s (status: %d)", e.Code, e.Message, e.Status)
	}
	return fmt.Sprintf("platform API error: %s (status: %d)", e.Message, e.Status)
}

// IsInvalidCredentials returns true if the platform rejected the login
func (e *APIError) IsInvalidCredentials() bool {
	return e.Status == http.StatusUnauthorized
}

// IsNotAuthorized returns true if the account lacks permission for the operation
func (e *APIError) IsNotAuthorized() bool {
	return e.Status == http.StatusForbidden
}

// IsNotFound returns true if the error is a not found error
func (e *APIError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// IsServerError returns true if the error is a server error
func (e *APIError) IsServerError() bool {
	return e.Status >= http.StatusInternalServerError
}

// AsAPIError unwraps err to an APIError if one is in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
