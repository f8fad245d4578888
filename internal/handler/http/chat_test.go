package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskora/taskora-backend-go/internal/domain/chat"
	"github.com/taskora/taskora-backend-go/internal/pkg/llm"
)

// fakeChatService replays canned chunks, or fails at a chosen point.
type fakeChatService struct {
	chunks   []string
	err      error
	failMid  bool
	received chat.CompletionRequest
}

func (f *fakeChatService) StreamCompletion(_ context.Context, req chat.CompletionRequest, onChunk func(string) error) error {
	f.received = req
	if f.err != nil && !f.failMid {
		return f.err
	}
	for _, c := range f.chunks {
		if err := onChunk(c); err != nil {
			return err
		}
	}
	return f.err
}

func postCompletion(t *testing.T, svc chat.ChatService, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewChatHandler(svc)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/completions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.StreamCompletion(rec, req)
	return rec
}

func TestStreamCompletion_ReEmitsChunksAsSSE(t *testing.T) {
	svc := &fakeChatService{chunks: []string{"Hel", "lo"}}
	rec := postCompletion(t, svc, `{"messages":[{"role":"user","content":"hi"}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "event: chunk\ndata: {\"content\":\"Hel\"}\n\n")
	assert.Contains(t, body, "event: chunk\ndata: {\"content\":\"lo\"}\n\n")
	assert.True(t, strings.HasSuffix(body, "event: done\ndata: [DONE]\n\n"))
}

func TestStreamCompletion_ForwardsConversation(t *testing.T) {
	svc := &fakeChatService{chunks: []string{"ok"}}
	postCompletion(t, svc, `{"messages":[{"role":"system","content":"be brief"},{"role":"user","content":"hi"}]}`)

	require.Len(t, svc.received.Messages, 2)
	assert.Equal(t, "system", svc.received.Messages[0].Role)
	assert.Equal(t, "hi", svc.received.Messages[1].Content)
}

func TestStreamCompletion_EmptyUpstreamStillCompletes(t *testing.T) {
	svc := &fakeChatService{}
	rec := postCompletion(t, svc, `{"messages":[{"role":"user","content":"hi"}]}`)

	body := rec.Body.String()
	assert.Contains(t, body, "event: chunk\ndata: {\"content\":\"\"}\n\n")
	assert.True(t, strings.HasSuffix(body, "event: done\ndata: [DONE]\n\n"))
}

func TestStreamCompletion_RejectsEmptyMessages(t *testing.T) {
	svc := &fakeChatService{}
	rec := postCompletion(t, svc, `{"messages":[]}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestStreamCompletion_RejectsUnknownRole(t *testing.T) {
	svc := &fakeChatService{}
	rec := postCompletion(t, svc, `{"messages":[{"role":"tool","content":"x"}]}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestStreamCompletion_ErrorBeforeStreamIsJSON(t *testing.T) {
	svc := &fakeChatService{err: &llm.APIError{StatusCode: http.StatusUnauthorized}}
	rec := postCompletion(t, svc, `{"messages":[{"role":"user","content":"hi"}]}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Chat assistant is not configured")
	assert.NotContains(t, rec.Body.String(), "event:")
}

func TestStreamCompletion_ErrorMidStreamBecomesEvent(t *testing.T) {
	svc := &fakeChatService{
		chunks:  []string{"partial"},
		err:     &llm.APIError{StatusCode: http.StatusBadGateway},
		failMid: true,
	}
	rec := postCompletion(t, svc, `{"messages":[{"role":"user","content":"hi"}]}`)

	// The status line was already committed with the first chunk.
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "event: chunk\ndata: {\"content\":\"partial\"}\n\n")
	assert.Contains(t, body, "event: error")
	assert.NotContains(t, body, "[DONE]")
}
