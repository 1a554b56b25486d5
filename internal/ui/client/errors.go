package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
)

// Sentinels for errors.Is. Every *ClientError matches exactly one of these.
var (
	ErrNetwork    = errors.New("network error")
	ErrTimeout    = errors.New("request timed out")
	ErrHTTPStatus = errors.New("unexpected http status")
	ErrInternal   = errors.New("internal client error")
)

// maxErrorBodySize caps how much of an error response is kept
const maxErrorBodySize = 1 << 20

// ClientError represents an error encountered when communicating with the ecosort API
// StatusCode 0 = no response was received (network, timeout or internal error), >0 = HTTP response received
type ClientError struct {
	Kind        error  `json:"-"`
	StatusCode  int    `json:"status_code"`
	Body        []byte `json:"-"`
	UserMessage string `json:"user_message"`
	LogMessage  string `json:"log_message"`
	Err         error  `json:"-"`
}

func (e *ClientError) Error() string {
	return e.LogMessage
}

// Unwrap exposes both the kind sentinel and the underlying cause
func (e *ClientError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// UserError returns the user-friendly message
func (e *ClientError) UserError() string {
	return e.UserMessage
}

// NewClientConnectionError creates a ClientError for a request that got no response.
// Timeouts are reported as ErrTimeout, anything else as ErrNetwork.
func NewClientConnectionError(err error) *ClientError {
	if isTimeout(err) {
		return NewClientTimeoutError(err)
	}
	return &ClientError{
		Kind:        ErrNetwork,
		UserMessage: "Unable to reach the service. Please check your connection and try again.",
		LogMessage:  fmt.Sprintf("network error: %v", err),
		Err:         err,
	}
}

// NewClientTimeoutError creates a ClientError for a request that exceeded its timeout
func NewClientTimeoutError(err error) *ClientError {
	return &ClientError{
		Kind:        ErrTimeout,
		UserMessage: "The service took too long to respond. Please try again.",
		LogMessage:  fmt.Sprintf("timeout: %v", err),
		Err:         err,
	}
}

// NewClientInternalError creates a ClientError for internal errors, supply the error and an explanation of what was being done when the error occurred
func NewClientInternalError(err error, while string) *ClientError {
	return &ClientError{
		Kind:        ErrInternal,
		UserMessage: "An error occurred. Please try again later.",
		LogMessage:  fmt.Sprintf("internal error: %v while %v", err, while),
		Err:         err,
	}
}

// NewClientApiError creates a ClientError from a non-2xx HTTP response sent by the backend.
// The body is kept (up to 1MB) so callers can inspect it.
func NewClientApiError(res *http.Response) *ClientError {
	var body []byte
	if res.Body != nil {
		body, _ = io.ReadAll(io.LimitReader(res.Body, maxErrorBodySize))
	}

	var serverErr struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &serverErr)

	var userMsg string
	switch res.StatusCode {
	case http.StatusNotFound:
		if serverErr.Message != "" {
			userMsg = serverErr.Message
		} else {
			userMsg = "The requested item could not be found."
		}
	case http.StatusBadRequest:
		// Use server message for validation errors if available
		if serverErr.Message != "" {
			userMsg = serverErr.Message
		} else {
			userMsg = "Invalid request. Please check your input and try again."
		}
	case http.StatusTooManyRequests:
		userMsg = "Too many requests. Please try again in a few moments."
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		userMsg = "The service is temporarily unavailable. Please try again later."
	default:
		userMsg = "An error occurred. Please try again."
	}

	logMsg := fmt.Sprintf("ecosort api status %d", res.StatusCode)
	if res.Request != nil && res.Request.URL != nil {
		logMsg += fmt.Sprintf(" for %s", res.Request.URL.Path)
	}
	if serverErr.Message != "" {
		logMsg += fmt.Sprintf(" - %s", serverErr.Message)
	}

	return &ClientError{
		Kind:        ErrHTTPStatus,
		StatusCode:  res.StatusCode,
		Body:        body,
		UserMessage: userMsg,
		LogMessage:  logMsg,
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
