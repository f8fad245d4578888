package chat

import "context"

// ChatService relays a conversation to the hosted completion endpoint and
// streams assistant content back chunk by chunk.
type ChatService interface {
	StreamCompletion(ctx context.Context, req CompletionRequest, onChunk func(content string) error) error
}
