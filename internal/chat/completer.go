// Package chat provides the chat-completion capability consumed by the HyDE
// and answering services.
package chat

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = openai.ChatModelGPT4oMini

// Completer runs single-turn system+user completions against OpenAI.
type Completer struct {
	client *openai.Client
	model  string
}

// NewCompleter creates a Completer with the given OpenAI client. An empty
// model selects DefaultModel.
func NewCompleter(client *openai.Client, model string) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{
		client: client,
		model:  model,
	}
}

// Complete sends a system instruction plus a user message and returns the
// response text.
func (c *Completer) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Model: c.model,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
