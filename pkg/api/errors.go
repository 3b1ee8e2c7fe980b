package api

import (
	"fmt"
	"net/http"
	"strings"
)

// ErrorType represents the category of an API error.
type ErrorType string

const (
	ErrorTypeInvalidRequest ErrorType = "invalid_request_error"
	ErrorTypeUpstream       ErrorType = "upstream_error"
	ErrorTypeServerError    ErrorType = "server_error"
)

// Error codes carried in the "code" field of an error response.
const (
	CodeInvalidAPIKey       = "invalid_api_key"
	CodeModelNotFound       = "model_not_found"
	CodeInvalidRequest      = "invalid_request"
	CodeUpstreamUnavailable = "upstream_unavailable"
	CodeUpstreamRejected    = "upstream_rejected"
	CodeUpstreamRateLimited = "upstream_rate_limited"
	CodeServerError         = "server_error"
)

// APIError represents a structured API error with type, code, param, and message.
type APIError struct {
	Message string    `json:"message"`
	Type    ErrorType `json:"type"`
	Code    string    `json:"code,omitempty"`
	Param   string    `json:"param,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s (param: %s)", e.Code, e.Message, e.Param)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// HTTPStatus returns the status code the error is served with.
func (e *APIError) HTTPStatus() int {
	switch e.Code {
	case CodeInvalidAPIKey:
		return http.StatusUnauthorized
	case CodeModelNotFound:
		return http.StatusNotFound
	case CodeInvalidRequest:
		return http.StatusBadRequest
	case CodeUpstreamRateLimited:
		return http.StatusTooManyRequests
	case CodeUpstreamUnavailable, CodeUpstreamRejected:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse wraps an APIError for JSON serialization as the top-level error response.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// NewInvalidAPIKeyError creates the error returned when the bearer token is
// missing or not in the allow-list.
func NewInvalidAPIKeyError() *APIError {
	return &APIError{
		Message: "Invalid API key",
		Type:    ErrorTypeInvalidRequest,
		Code:    CodeInvalidAPIKey,
	}
}

// NewModelNotFoundError creates the error returned for an unsupported model.
// The message lists every supported model.
func NewModelNotFoundError(model string, available []string) *APIError {
	return &APIError{
		Message: fmt.Sprintf("Model %s not found. Available models: %s", model, strings.Join(available, ", ")),
		Type:    ErrorTypeInvalidRequest,
		Code:    CodeModelNotFound,
		Param:   "model",
	}
}

// NewInvalidRequestError creates an APIError for a request that could not be
// decoded or processed.
func NewInvalidRequestError(param, message string) *APIError {
	return &APIError{
		Message: message,
		Type:    ErrorTypeInvalidRequest,
		Code:    CodeInvalidRequest,
		Param:   param,
	}
}

// NewUpstreamUnavailableError creates an APIError for network failures and
// server-side errors of the chat upstream.
func NewUpstreamUnavailableError(message string) *APIError {
	return &APIError{
		Message: message,
		Type:    ErrorTypeUpstream,
		Code:    CodeUpstreamUnavailable,
	}
}

// NewUpstreamRejectedError creates an APIError for requests the upstream
// refused (4xx other than 429).
func NewUpstreamRejectedError(message string) *APIError {
	return &APIError{
		Message: message,
		Type:    ErrorTypeUpstream,
		Code:    CodeUpstreamRejected,
	}
}

// NewUpstreamRateLimitedError creates an APIError for upstream throttling.
func NewUpstreamRateLimitedError(message string) *APIError {
	return &APIError{
		Message: message,
		Type:    ErrorTypeUpstream,
		Code:    CodeUpstreamRateLimited,
	}
}

// NewServerError creates an APIError for internal server errors.
func NewServerError(message string) *APIError {
	return &APIError{
		Message: message,
		Type:    ErrorTypeServerError,
		Code:    CodeServerError,
	}
}
