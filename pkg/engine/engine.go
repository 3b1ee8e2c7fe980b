package engine

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	openai "github.com/sashabaranov/go-openai"

	"github.com/rhuss/duckgate/pkg/api"
	"github.com/rhuss/duckgate/pkg/debug"
	"github.com/rhuss/duckgate/pkg/observability"
	"github.com/rhuss/duckgate/pkg/provider"
)

// Completion is the outcome of CreateCompletion. Exactly one of Response
// and Raw is meaningful: when Passthrough is set the caller returns Raw
// unchanged.
type Completion struct {
	Response    *api.ChatCompletion
	Raw         string
	Passthrough bool
}

// Engine orchestrates request processing between the transport layer
// and the provider backend.
type Engine struct {
	provider  provider.Provider
	cfg       Config
	supported map[string]bool
}

// New creates a new Engine. The provider must not be nil and the default
// model must be one of the supported models.
func New(p provider.Provider, cfg Config) (*Engine, error) {
	if p == nil {
		return nil, fmt.Errorf("engine: provider must not be nil")
	}
	if len(cfg.SupportedModels) == 0 {
		return nil, fmt.Errorf("engine: at least one supported model is required")
	}

	supported := make(map[string]bool, len(cfg.SupportedModels))
	for _, m := range cfg.SupportedModels {
		supported[m] = true
	}
	if !supported[cfg.DefaultModel] {
		return nil, fmt.Errorf("engine: default model %q is not supported", cfg.DefaultModel)
	}

	cfg.SupportedModels = slices.Clone(cfg.SupportedModels)
	return &Engine{provider: p, cfg: cfg, supported: supported}, nil
}

// ResolveModel applies the default for an empty model and checks the result
// against the supported set.
func (e *Engine) ResolveModel(model string) (string, error) {
	if model == "" {
		model = e.cfg.DefaultModel
	}
	if !e.supported[model] {
		return "", api.NewModelNotFoundError(model, e.cfg.SupportedModels)
	}
	return model, nil
}

// CreateCompletion runs one chat completion. An unsupported model fails
// before any upstream traffic.
func (e *Engine) CreateCompletion(ctx context.Context, req *openai.ChatCompletionRequest) (*Completion, error) {
	model, err := e.ResolveModel(req.Model)
	if err != nil {
		return nil, err
	}

	provReq := translateRequest(req, model)
	debug.Log("engine", "dispatching completion",
		"provider", e.provider.Name(),
		"model", model,
		"messages", len(provReq.Messages),
	)

	provResp, err := e.provider.Complete(ctx, provReq)
	if err != nil {
		return nil, err
	}

	if provResp.Empty() {
		observability.PassthroughTotal.Inc()
		slog.Warn("no message fragments in upstream reply, passing raw body through",
			"model", model,
			"raw_len", len(provResp.Raw),
			"skipped", provResp.Skipped,
		)
		return &Completion{Raw: provResp.Raw, Passthrough: true}, nil
	}

	now := e.cfg.now()
	return &Completion{
		Response: shapeCompletion(model, provResp.Content, now.Unix(), api.NewCompletionID(now)),
	}, nil
}

// Models returns the supported model names in listing order.
func (e *Engine) Models() []string {
	return slices.Clone(e.cfg.SupportedModels)
}

// ListModels builds the model list. Descriptors carry the listing time in
// unix milliseconds.
func (e *Engine) ListModels() api.ModelList {
	return api.NewModelList(e.cfg.SupportedModels, e.cfg.now().UnixMilli())
}
