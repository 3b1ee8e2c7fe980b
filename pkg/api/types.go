package api

import (
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Object names used in response bodies.
const (
	ObjectChatCompletion = "chat.completion"
	ObjectModel          = "model"
	ObjectList           = "list"
)

// ModelOwner is reported as owned_by for every listed model.
const ModelOwner = "duckgpt"

// ChatCompletion is the body of a successful POST /v1/chat/completions.
// Requests are decoded with go-openai types; responses use this envelope so
// that only the fields duckgate actually fills are serialized.
type ChatCompletion struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// Choice is one completion alternative. duckgate always returns exactly one.
type Choice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// ChatMessage is an assistant reply.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Usage reports token counts. The upstream does not report them, so they
// are always zero.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Model describes one supported model in GET /v1/models.
type Model struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

// ModelList is the body of GET /v1/models.
type ModelList struct {
	Object string  `json:"object"`
	Data   []Model `json:"data"`
}

// NewModelList builds the model list for the given model names. Every
// descriptor carries the same created timestamp.
func NewModelList(names []string, created int64) ModelList {
	data := make([]Model, 0, len(names))
	for _, name := range names {
		data = append(data, Model{
			ID:      name,
			Object:  ObjectModel,
			Created: created,
			OwnedBy: ModelOwner,
		})
	}
	return ModelList{Object: ObjectList, Data: data}
}

// RouteUsage describes the endpoints served, reported by RouteError.
const RouteUsage = "POST /v1/chat/completions {model, messages:[{role, content}]} | GET /v1/models"

// RouteError is the body returned for any method and path that is not served.
type RouteError struct {
	Action string   `json:"action"`
	Status int      `json:"status"`
	Usage  string   `json:"usage"`
	Models []string `json:"models"`
}

// NewRouteError builds the 404 payload listing the supported models.
func NewRouteError(models []string) RouteError {
	return RouteError{
		Action: "error",
		Status: 404,
		Usage:  RouteUsage,
		Models: models,
	}
}

// MessageText returns the plain text of a chat message. Multi-part content is
// flattened to its text parts joined by newlines; image parts are dropped.
func MessageText(m openai.ChatCompletionMessage) string {
	if len(m.MultiContent) == 0 {
		return m.Content
	}
	var parts []string
	for _, p := range m.MultiContent {
		if p.Type == openai.ChatMessagePartTypeText {
			parts = append(parts, p.Text)
		}
	}
	return strings.Join(parts, "\n")
}
