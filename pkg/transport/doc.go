// Package transport provides the HTTP middleware chain and JSON response
// helpers shared by the duckgate server.
//
// # Middleware
//
// Middleware has the standard func(http.Handler) http.Handler shape so it
// composes with chi and net/http alike. Built-in middleware provides panic
// recovery, request ID assignment (X-Request-ID, generated with
// github.com/google/uuid when absent), structured access logging via
// log/slog, and open CORS headers with preflight handling.
//
// # Responses
//
// WriteJSON and WriteAPIError write every body duckgate produces, so the
// Content-Type header and error envelope are uniform across handlers.
package transport
