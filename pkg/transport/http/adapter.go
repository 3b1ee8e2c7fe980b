// Package http serves the chat completions surface over HTTP using a chi
// router.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	openai "github.com/sashabaranov/go-openai"

	"github.com/rhuss/duckgate/pkg/api"
	"github.com/rhuss/duckgate/pkg/auth"
	"github.com/rhuss/duckgate/pkg/engine"
	"github.com/rhuss/duckgate/pkg/transport"
)

// ChatCompleter is the engine surface the adapter depends on.
type ChatCompleter interface {
	CreateCompletion(ctx context.Context, req *openai.ChatCompletionRequest) (*engine.Completion, error)
	ListModels() api.ModelList
	Models() []string
}

// Ensure engine.Engine implements ChatCompleter at compile time.
var _ ChatCompleter = (*engine.Engine)(nil)

// Adapter serves the chat completions API over HTTP.
// It routes requests to the appropriate handler and serializes responses.
type Adapter struct {
	completer ChatCompleter
	router    chi.Router
	config    Config
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	MaxBodySize int64

	// MetricsPath serves Prometheus metrics when non-empty.
	MetricsPath string
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		MaxBodySize: 10 << 20, // 10 MB
		MetricsPath: "/metrics",
	}
}

// NewAdapter creates an HTTP adapter. Middleware runs for every request,
// matched or not, in the given order.
func NewAdapter(completer ChatCompleter, cfg Config, middlewares ...transport.Middleware) *Adapter {
	a := &Adapter{
		completer: completer,
		router:    chi.NewRouter(),
		config:    cfg,
	}

	for _, mw := range middlewares {
		a.router.Use(mw)
	}

	a.router.Post("/v1/chat/completions", a.handleChatCompletions)
	a.router.Get("/v1/models", a.handleListModels)
	a.router.Get("/healthz", handleHealthz)
	if cfg.MetricsPath != "" {
		a.router.Method(http.MethodGet, cfg.MetricsPath, promhttp.Handler())
	}

	a.router.NotFound(a.handleRouteNotFound)
	a.router.MethodNotAllowed(a.handleRouteNotFound)

	return a
}

// Handler returns the http.Handler for this adapter. Use this to integrate
// with an http.Server or test with httptest.
func (a *Adapter) Handler() http.Handler {
	return a.router
}

// handleChatCompletions handles POST /v1/chat/completions.
func (a *Adapter) handleChatCompletions(w http.ResponseWriter, r *http.Request) {
	// Limit body size.
	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)

	var req *openai.ChatCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			a.writeError(w, r, api.NewInvalidRequestError("body",
				fmt.Sprintf("request body too large (max %d bytes)", a.config.MaxBodySize)),
				http.StatusRequestEntityTooLarge)
			return
		}
		a.writeError(w, r, api.NewInvalidRequestError("body", err.Error()), http.StatusBadRequest)
		return
	}
	// A JSON null decodes without error and leaves req nil.
	if req == nil {
		a.writeError(w, r, api.NewInvalidRequestError("body", "request body must be a JSON object"), http.StatusBadRequest)
		return
	}

	completion, err := a.completer.CreateCompletion(r.Context(), req)
	if err != nil {
		a.writeHandlerError(w, r, err)
		return
	}

	if completion.Passthrough {
		transport.WriteJSON(w, http.StatusOK, completion.Raw)
		return
	}
	transport.WriteJSON(w, http.StatusOK, completion.Response)
}

// handleListModels handles GET /v1/models.
func (a *Adapter) handleListModels(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, a.completer.ListModels())
}

// handleRouteNotFound answers every unserved method and path.
func (a *Adapter) handleRouteNotFound(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusNotFound, api.NewRouteError(a.completer.Models()))
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// writeHandlerError maps an engine error to an HTTP error response.
func (a *Adapter) writeHandlerError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		apiErr = api.NewServerError(err.Error())
	}
	a.writeError(w, r, apiErr, apiErr.HTTPStatus())
}

func (a *Adapter) writeError(w http.ResponseWriter, r *http.Request, apiErr *api.APIError, status int) {
	level := slog.LevelWarn
	if status >= 500 {
		level = slog.LevelError
	}
	subject := ""
	if id := auth.IdentityFromContext(r.Context()); id != nil {
		subject = id.Subject
	}
	slog.Log(r.Context(), level, "request failed",
		"request_id", transport.RequestIDFromContext(r.Context()),
		"path", r.URL.Path,
		"subject", subject,
		"code", apiErr.Code,
		"status", status,
		"error", apiErr.Message,
	)
	transport.WriteErrorResponse(w, apiErr, status)
}
