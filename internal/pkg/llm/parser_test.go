package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunkLine(content string) string {
	return `data: {"choices":[{"delta":{"content":"` + content + `"}}]}` + "\n"
}

func TestStreamParser_SingleEvent(t *testing.T) {
	p := NewStreamParser()

	chunks, err := p.Feed([]byte(chunkLine("Hello")))
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello"}, chunks)
	assert.False(t, p.Done())
}

func TestStreamParser_MultipleEventsInOneRead(t *testing.T) {
	p := NewStreamParser()

	data := chunkLine("Hel") + "\n" + chunkLine("lo") + "\ndata: [DONE]\n"
	chunks, err := p.Feed([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"Hel", "lo"}, chunks)
	assert.True(t, p.Done())
}

func TestStreamParser_PartialLineAcrossReads(t *testing.T) {
	p := NewStreamParser()
	full := chunkLine("split across reads")

	// Feed byte by byte; only the read completing the newline yields output.
	var got []string
	for i := 0; i < len(full); i++ {
		chunks, err := p.Feed([]byte{full[i]})
		require.NoError(t, err)
		got = append(got, chunks...)
	}
	assert.Equal(t, []string{"split across reads"}, got)
}

func TestStreamParser_CRLFLines(t *testing.T) {
	p := NewStreamParser()

	chunks, err := p.Feed([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"hi\"}}]}\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"hi"}, chunks)
}

func TestStreamParser_IgnoresCommentsAndEventNames(t *testing.T) {
	p := NewStreamParser()

	data := ": keep-alive\nevent: message\n\n" + chunkLine("ok")
	chunks, err := p.Feed([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, chunks)
}

func TestStreamParser_DoneSentinelStopsParsing(t *testing.T) {
	p := NewStreamParser()

	chunks, err := p.Feed([]byte("data: [DONE]\n" + chunkLine("after")))
	require.NoError(t, err)
	assert.Empty(t, chunks)
	assert.True(t, p.Done())

	// Further input is ignored after the sentinel.
	chunks, err = p.Feed([]byte(chunkLine("more")))
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestStreamParser_MalformedPayload(t *testing.T) {
	p := NewStreamParser()

	_, err := p.Feed([]byte("data: {not json}\n"))
	assert.Error(t, err)
}

func TestStreamParser_EmptyDelta(t *testing.T) {
	p := NewStreamParser()

	// Role-only first frame carries no content and yields nothing.
	chunks, err := p.Feed([]byte(`data: {"choices":[{"delta":{"role":"assistant"}}]}` + "\n"))
	require.NoError(t, err)
	assert.Empty(t, chunks)
}
