package duckchat

import (
	"net/http"
	"time"
)

// Config holds settings for the duckchat provider.
type Config struct {
	// StatusURL is the handshake endpoint that issues session tokens.
	StatusURL string

	// ChatURL is the chat endpoint.
	ChatURL string

	// Timeout bounds each upstream call. Zero means no timeout beyond the
	// request context.
	Timeout time.Duration

	// UserAgent overrides the browser User-Agent when non-empty.
	UserAgent string

	// HTTPClient is used for both calls. Defaults to a client on
	// http.DefaultTransport.
	HTTPClient *http.Client
}
