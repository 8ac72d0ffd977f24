package chatbot

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var ErrChatUnavailable = errors.New("chat provider is unavailable")

const systemPrompt = "You are a helpful assistant for a Pokémon trading marketplace. " +
	"Answer questions about Pokémon, trading strategy and how the marketplace works. " +
	"Keep answers short and friendly."

type Client struct {
	client openai.Client
	model  openai.ChatModel
}

func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}

	return &Client{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  openai.ChatModel(model),
	}
}

// Complete sends one prompt and returns the assistant's reply. Provider
// failures surface as ErrChatUnavailable so callers can degrade gracefully.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrChatUnavailable, err)
	}

	if len(completion.Choices) == 0 {
		return "", ErrChatUnavailable
	}

	return completion.Choices[0].Message.Content, nil
}
