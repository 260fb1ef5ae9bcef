// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the backend, reduced to the first
// error message from its `{"errors":[{"message":...}]}` payload.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned HTTP %d", e.StatusCode)
}

// IsUnauthorized reports whether the backend rejected the credentials or
// token.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// newAPIError extracts the backend's error message from a response body.
func newAPIError(statusCode int, body []byte) *APIError {
	var payload struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Errors) > 0 {
		return &APIError{StatusCode: statusCode, Message: payload.Errors[0].Message}
	}
	return &APIError{StatusCode: statusCode}
}
