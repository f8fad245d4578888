package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// doneSentinel terminates an event stream.
const doneSentinel = "[DONE]"

// StreamParser reassembles an event-stream from arbitrarily fragmented
// reads. Bytes are buffered until a line boundary arrives; complete lines
// are classified by prefix and `data:` payloads decoded as completion
// chunks. The parser owns no I/O, so it works against any transport.
type StreamParser struct {
	buf  []byte
	done bool
}

func NewStreamParser() *StreamParser {
	return &StreamParser{}
}

// chunkPayload mirrors the delta frames the completion endpoint emits.
type chunkPayload struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason *string `json:"finish_reason"`
	} `json:"choices"`
}

// Feed consumes a fragment of the stream and returns the content chunks the
// fragment completed. A fragment may close zero, one, or many events; a
// partial trailing line stays buffered for the next call.
func (p *StreamParser) Feed(data []byte) ([]string, error) {
	if p.done {
		return nil, nil
	}
	p.buf = append(p.buf, data...)

	var chunks []string
	for {
		idx := bytes.IndexByte(p.buf, '\n')
		if idx < 0 {
			return chunks, nil
		}
		line := string(bytes.TrimRight(p.buf[:idx], "\r"))
		p.buf = p.buf[idx+1:]

		content, end, err := p.parseLine(line)
		if err != nil {
			return chunks, err
		}
		if end {
			p.done = true
			return chunks, nil
		}
		if content != "" {
			chunks = append(chunks, content)
		}
	}
}

func (p *StreamParser) parseLine(line string) (content string, end bool, err error) {
	switch {
	case line == "":
		// event separator
		return "", false, nil
	case strings.HasPrefix(line, ":"):
		// comment / keep-alive
		return "", false, nil
	case strings.HasPrefix(line, "event:"):
		// named events carry no completion payload
		return "", false, nil
	case strings.HasPrefix(line, "data:"):
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == doneSentinel {
			return "", true, nil
		}
		var chunk chunkPayload
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			return "", false, fmt.Errorf("malformed stream payload: %w", err)
		}
		if len(chunk.Choices) == 0 {
			return "", false, nil
		}
		return chunk.Choices[0].Delta.Content, false, nil
	default:
		// unknown field per the event-stream format: ignore
		return "", false, nil
	}
}

// Done reports whether the terminating sentinel has been seen.
func (p *StreamParser) Done() bool {
	return p.done
}
