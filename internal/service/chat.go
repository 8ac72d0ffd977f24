package service

import (
	"context"
	"fmt"

	"github.com/poketrade/marketplace-api/internal/pkg/chatbot"
)

var ErrChatUnavailable = chatbot.ErrChatUnavailable

type ChatProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type ChatService struct {
	provider ChatProvider
}

func NewChatService(provider ChatProvider) *ChatService {
	return &ChatService{
		provider: provider,
	}
}

func (s *ChatService) Ask(ctx context.Context, prompt string) (string, error) {
	reply, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("s.provider.Complete -> %w", err)
	}

	return reply, nil
}
