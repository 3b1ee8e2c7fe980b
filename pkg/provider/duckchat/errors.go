package duckchat

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/rhuss/duckgate/pkg/api"
)

// mapHTTPError converts a non-2xx chat response into an APIError. body is
// the already decoded response body and may be empty.
func mapHTTPError(status int, body []byte) *api.APIError {
	message := extractErrorMessage(body)

	switch {
	case status == http.StatusTooManyRequests:
		if message == "" {
			message = "upstream rate limit exceeded"
		}
		return api.NewUpstreamRateLimitedError(message)

	case status >= 400 && status < 500:
		if message == "" {
			message = fmt.Sprintf("upstream rejected the request (HTTP %d)", status)
		}
		return api.NewUpstreamRejectedError(message)

	case status >= http.StatusInternalServerError:
		if message == "" {
			message = fmt.Sprintf("upstream server error (HTTP %d)", status)
		}
		return api.NewUpstreamUnavailableError(message)

	default:
		if message == "" {
			message = fmt.Sprintf("unexpected upstream status (HTTP %d)", status)
		}
		return api.NewUpstreamUnavailableError(message)
	}
}

// mapNetworkError converts a transport-level failure (connection refused,
// timeout, DNS failure) into an APIError.
func mapNetworkError(stage string, err error) *api.APIError {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return api.NewUpstreamUnavailableError(fmt.Sprintf("upstream %s failed: %s", stage, err.Error()))
}

// extractErrorMessage pulls a human readable message from an upstream error
// body. Both {"error":{"message":...}} and {"message":...} shapes are tried.
func extractErrorMessage(body []byte) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return ""
	}
	for _, path := range []string{"error.message", "message", "error"} {
		if r := gjson.GetBytes(body, path); r.Type == gjson.String {
			if s := strings.TrimSpace(r.String()); s != "" {
				return s
			}
		}
	}
	return ""
}
