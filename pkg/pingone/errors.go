package pingone

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Gateway error codes the console special-cases.
const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeInvalidToken   = "invalid_token"
	ErrorCodeServerError    = "server_error"
	ErrorCodeTooManyDevices = "too_many_devices"
)

// APIError represents an error response from the PingOne gateway. The raw
// upstream message is preserved so the console can surface it verbatim.
type APIError struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int `json:"-"`

	// Code is the gateway error code (e.g. "invalid_request")
	Code string `json:"error"`

	// Message is the human-readable description from the gateway
	Message string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsTooManyDevices reports whether err is the gateway's device cap
// condition, either by explicit code or by message pattern (older gateway
// versions only set the message).
func IsTooManyDevices(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code == ErrorCodeTooManyDevices {
		return true
	}
	msg := strings.ToLower(apiErr.Message)
	return strings.Contains(msg, "maximum number of devices") ||
		strings.Contains(msg, "too many devices")
}

// IsUnauthorized reports whether err indicates a rejected token.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// parseErrorResponse converts a non-2xx gateway response into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		// Some gateway endpoints use code/message instead
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil {
		code := errResp.Error
		msg := errResp.ErrorDescription
		if code == "" {
			code = errResp.Code
			msg = errResp.Message
		}
		if code != "" {
			return &APIError{
				StatusCode: resp.StatusCode,
				Code:       code,
				Message:    msg,
			}
		}
	}

	// Fallback: generic error from status code
	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       ErrorCodeServerError,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
