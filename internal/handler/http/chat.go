package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/taskora/taskora-backend-go/internal/domain/chat"
	"github.com/taskora/taskora-backend-go/internal/handler/http/response"
	"github.com/taskora/taskora-backend-go/internal/pkg/llm"
)

type ChatHandler interface {
	StreamCompletion(w http.ResponseWriter, r *http.Request)
}

type ChatHandlerImpl struct {
	chatService chat.ChatService
}

func NewChatHandler(chatService chat.ChatService) ChatHandler {
	return &ChatHandlerImpl{chatService: chatService}
}

// chunkEvent is one assistant content fragment re-emitted downstream.
type chunkEvent struct {
	Content string `json:"content"`
}

// StreamCompletion relays the conversation upstream and re-emits assistant
// chunks as SSE. Errors before the first chunk are plain JSON; once
// streaming has begun they become an error event on the stream, since the
// status line is already gone.
func (h *ChatHandlerImpl) StreamCompletion(w http.ResponseWriter, r *http.Request) {
	var req chat.CompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	started := false
	emit := func(content string) error {
		if !started {
			w.Header().Set("Content-Type", "text/event-stream")
			w.Header().Set("Cache-Control", "no-cache")
			w.Header().Set("Connection", "keep-alive")
			w.Header().Set("X-Accel-Buffering", "no")
			started = true
		}
		data, err := json.Marshal(chunkEvent{Content: content})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "event: chunk\ndata: %s\n\n", data); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	err := h.chatService.StreamCompletion(r.Context(), req, emit)
	if err != nil {
		slog.Error("chat completion stream failed", "error", err)

		if !started {
			var apiErr *llm.APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
				response.InternalServerError(w, "Chat assistant is not configured")
				return
			}
			response.InternalServerError(w, "Chat completion failed")
			return
		}

		fmt.Fprintf(w, "event: error\ndata: {\"message\":\"stream interrupted\"}\n\n")
		flusher.Flush()
		return
	}

	if !started {
		// Upstream produced no content at all; still a valid empty answer.
		_ = emit("")
	}

	fmt.Fprintf(w, "event: done\ndata: [DONE]\n\n")
	flusher.Flush()
}
