package auth

import (
	"log/slog"
	"net/http"

	"github.com/rhuss/duckgate/pkg/api"
	"github.com/rhuss/duckgate/pkg/debug"
	"github.com/rhuss/duckgate/pkg/observability"
	"github.com/rhuss/duckgate/pkg/transport"
)

// Middleware creates HTTP middleware from an AuthChain. It skips CORS
// preflight requests, runs authentication for every other request, and
// injects the identity into the request context. Rejected requests get a 401
// invalid_api_key error whatever their path or method.
func Middleware(chain *AuthChain) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			result := chain.Authenticate(r.Context(), r)

			if result.Decision != Yes || result.Identity == nil {
				slog.Warn("authentication failed",
					"request_id", transport.RequestIDFromContext(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"error", result.Err,
				)
				observability.AuthRejectedTotal.Inc()
				transport.WriteAPIError(w, api.NewInvalidAPIKeyError())
				return
			}

			debug.Log("auth", "authentication succeeded",
				"subject", result.Identity.Subject,
				"path", r.URL.Path,
			)

			ctx := SetIdentity(r.Context(), result.Identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
