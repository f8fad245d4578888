package chat

import (
	"context"

	"github.com/taskora/taskora-backend-go/internal/domain/chat"
	"github.com/taskora/taskora-backend-go/internal/pkg/llm"
)

type ChatServiceImpl struct {
	client *llm.Client
}

func NewChatService(client *llm.Client) chat.ChatService {
	return &ChatServiceImpl{client: client}
}

// StreamCompletion implements chat.ChatService. The server holds the API
// key; conversations pass through without being persisted.
func (s *ChatServiceImpl) StreamCompletion(ctx context.Context, req chat.CompletionRequest, onChunk func(content string) error) error {
	messages := make([]llm.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	return s.client.StreamCompletion(ctx, messages, onChunk)
}
