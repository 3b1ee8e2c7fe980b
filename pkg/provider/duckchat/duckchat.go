package duckchat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/rhuss/duckgate/pkg/api"
	"github.com/rhuss/duckgate/pkg/debug"
	"github.com/rhuss/duckgate/pkg/observability"
	"github.com/rhuss/duckgate/pkg/provider"
)

// SessionTokens is the pair of handshake values required by one chat call.
// Either value may be empty when the status endpoint omitted it.
type SessionTokens struct {
	VQD  string
	Hash string
}

// DuckChatProvider implements provider.Provider for the DuckDuckGo chat
// service.
type DuckChatProvider struct {
	cfg    Config
	client *http.Client
}

// Ensure DuckChatProvider implements provider.Provider at compile time.
var _ provider.Provider = (*DuckChatProvider)(nil)

// New creates a new DuckChatProvider. Returns an error if an endpoint is missing.
func New(cfg Config) (*DuckChatProvider, error) {
	if cfg.StatusURL == "" {
		return nil, fmt.Errorf("duckchat: StatusURL is required")
	}
	if cfg.ChatURL == "" {
		return nil, fmt.Errorf("duckchat: ChatURL is required")
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	return &DuckChatProvider{cfg: cfg, client: client}, nil
}

// Name returns the provider identifier.
func (p *DuckChatProvider) Name() string {
	return "duckchat"
}

// Complete performs the handshake, then the chat call, and reassembles the
// reply. The two calls are strictly sequential and share ctx.
func (p *DuckChatProvider) Complete(ctx context.Context, req *provider.ProviderRequest) (*provider.ProviderResponse, error) {
	tokens, err := p.Handshake(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := p.Chat(ctx, tokens, req)
	if err != nil {
		return nil, err
	}

	r := Reassemble(raw)
	observability.ReassemblyLinesTotal.WithLabelValues(LineFragment.String()).Add(float64(r.Fragments))
	observability.ReassemblyLinesTotal.WithLabelValues(LineUnparseable.String()).Add(float64(r.Skipped))

	if r.Skipped > 0 {
		slog.Warn("skipped unparseable upstream lines",
			"model", req.Model,
			"skipped", r.Skipped,
			"fragments", r.Fragments,
		)
	}
	debug.Log("upstream", "reassembled reply",
		"fragments", r.Fragments,
		"skipped", r.Skipped,
		"content_len", len(r.Content),
	)

	return &provider.ProviderResponse{
		Content:   r.Content,
		Raw:       raw,
		Fragments: r.Fragments,
		Skipped:   r.Skipped,
	}, nil
}

// Handshake asks the status endpoint for a fresh pair of session tokens.
// Only transport failures are errors; a non-2xx status or missing token
// headers are logged and yield empty values, leaving the chat call to fail
// upstream if the tokens matter.
func (p *DuckChatProvider) Handshake(ctx context.Context) (SessionTokens, error) {
	ctx, cancel := p.callContext(ctx)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.StatusURL, nil)
	if err != nil {
		return SessionTokens{}, api.NewServerError(fmt.Sprintf("failed to create handshake request: %s", err.Error()))
	}
	setBrowserHeaders(httpReq.Header, p.cfg.UserAgent)

	start := time.Now()
	httpResp, err := p.client.Do(httpReq)
	observability.UpstreamLatency.WithLabelValues(observability.StageHandshake).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.UpstreamRequestsTotal.WithLabelValues(observability.StageHandshake, "error").Inc()
		return SessionTokens{}, mapNetworkError(observability.StageHandshake, err)
	}
	defer httpResp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(httpResp.Body, maxResponseBytes))

	observability.UpstreamRequestsTotal.WithLabelValues(observability.StageHandshake, strconv.Itoa(httpResp.StatusCode)).Inc()

	tokens := SessionTokens{
		VQD:  httpResp.Header.Get(headerVQD),
		Hash: httpResp.Header.Get(headerVQDHash),
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		slog.Warn("handshake returned non-success status",
			"status", httpResp.StatusCode,
			"url", p.cfg.StatusURL,
		)
	}
	if tokens.VQD == "" || tokens.Hash == "" {
		slog.Warn("handshake response missing session tokens",
			"has_vqd", tokens.VQD != "",
			"has_hash", tokens.Hash != "",
		)
	}

	debug.Log("upstream", "handshake completed",
		"status", httpResp.StatusCode,
		"vqd", debug.Truncate(tokens.VQD, 12),
	)
	return tokens, nil
}

// chatPayload is the body posted to the chat endpoint.
type chatPayload struct {
	Model    string                     `json:"model"`
	Messages []provider.ProviderMessage `json:"messages"`
}

// Chat posts the conversation with the given tokens and returns the decoded
// response body.
func (p *DuckChatProvider) Chat(ctx context.Context, tokens SessionTokens, req *provider.ProviderRequest) (string, error) {
	ctx, cancel := p.callContext(ctx)
	defer cancel()

	payload := chatPayload{Model: req.Model, Messages: req.Messages}
	if payload.Messages == nil {
		payload.Messages = []provider.ProviderMessage{}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", api.NewServerError(fmt.Sprintf("failed to marshal request: %s", err.Error()))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.ChatURL, bytes.NewReader(body))
	if err != nil {
		return "", api.NewServerError(fmt.Sprintf("failed to create HTTP request: %s", err.Error()))
	}
	setBrowserHeaders(httpReq.Header, p.cfg.UserAgent)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(headerVQD, tokens.VQD)
	httpReq.Header.Set(headerVQDHash, tokens.Hash)

	debug.Log("upstream", "chat request",
		"model", req.Model,
		"messages", len(payload.Messages),
	)

	start := time.Now()
	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		observability.UpstreamLatency.WithLabelValues(observability.StageChat).Observe(time.Since(start).Seconds())
		observability.UpstreamRequestsTotal.WithLabelValues(observability.StageChat, "error").Inc()
		return "", mapNetworkError(observability.StageChat, err)
	}
	defer httpResp.Body.Close()

	data, readErr := readBody(httpResp)
	observability.UpstreamLatency.WithLabelValues(observability.StageChat).Observe(time.Since(start).Seconds())
	observability.UpstreamRequestsTotal.WithLabelValues(observability.StageChat, strconv.Itoa(httpResp.StatusCode)).Inc()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		slog.Warn("chat call returned non-success status",
			"status", httpResp.StatusCode,
			"model", req.Model,
		)
		return "", mapHTTPError(httpResp.StatusCode, data)
	}
	if readErr != nil {
		return "", mapNetworkError(observability.StageChat, readErr)
	}

	if debug.TraceIsEnabled("upstream") {
		debug.Raw("upstream", debug.Truncate(string(data), 2048))
	}
	return string(data), nil
}

// Close releases idle connections held by the HTTP client.
func (p *DuckChatProvider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

func (p *DuckChatProvider) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, p.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}
