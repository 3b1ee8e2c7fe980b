package engine

import (
	openai "github.com/sashabaranov/go-openai"

	"github.com/rhuss/duckgate/pkg/api"
	"github.com/rhuss/duckgate/pkg/provider"
)

// translateRequest converts an inbound chat request into a provider request
// for the resolved model. Message content is flattened to plain text; roles
// are forwarded as given.
func translateRequest(req *openai.ChatCompletionRequest, model string) *provider.ProviderRequest {
	pr := &provider.ProviderRequest{
		Model:    model,
		Messages: make([]provider.ProviderMessage, 0, len(req.Messages)),
	}
	for _, m := range req.Messages {
		pr.Messages = append(pr.Messages, provider.ProviderMessage{
			Role:    m.Role,
			Content: api.MessageText(m),
		})
	}
	return pr
}

// shapeCompletion wraps the reassembled text in a chat.completion envelope.
func shapeCompletion(model, content string, now int64, id string) *api.ChatCompletion {
	return &api.ChatCompletion{
		ID:      id,
		Object:  api.ObjectChatCompletion,
		Created: now,
		Model:   model,
		Choices: []api.Choice{
			{
				Index: 0,
				Message: api.ChatMessage{
					Role:    openai.ChatMessageRoleAssistant,
					Content: content,
				},
				FinishReason: string(openai.FinishReasonStop),
			},
		},
	}
}
