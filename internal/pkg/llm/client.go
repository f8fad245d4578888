package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/taskora/taskora-backend-go/internal/config"
)

// Message is one turn of a conversation sent upstream.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client talks to the hosted chat-completion endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

func NewClient(cfg config.ChatConfig) *Client {
	return &Client{
		// Timeout covers the whole stream, not just the first byte.
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
	}
}

// APIError represents a non-200 answer from the completion endpoint
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("chat completion API error [%d]: %s", e.StatusCode, e.Message)
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

// StreamCompletion sends the conversation upstream and invokes onChunk for
// every assistant content fragment as it arrives. It returns once the stream
// terminates, the context is cancelled, or onChunk reports an error.
func (c *Client) StreamCompletion(ctx context.Context, messages []Message, onChunk func(content string) error) error {
	body, err := json.Marshal(completionRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   true,
	})
	if err != nil {
		return fmt.Errorf("failed to encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Message: string(msg)}
	}

	parser := NewStreamParser()
	buf := make([]byte, 4096)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			chunks, err := parser.Feed(buf[:n])
			if err != nil {
				return err
			}
			for _, chunk := range chunks {
				if err := onChunk(chunk); err != nil {
					return err
				}
			}
			if parser.Done() {
				return nil
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				// upstream closed without the sentinel; treat as complete
				return nil
			}
			return fmt.Errorf("failed to read completion stream: %w", readErr)
		}
	}
}
