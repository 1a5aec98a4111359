package server

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSEWriter_Frames(t *testing.T) {
	rec := httptest.NewRecorder()
	sse, err := NewSSEWriter(rec)
	require.NoError(t, err)

	require.NoError(t, sse.WriteEvent("state", map[string]any{"loading": true}))
	require.NoError(t, sse.WriteComment("keep-alive"))

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "event: state\ndata: {\"loading\":true}\n\n: keep-alive\n\n", rec.Body.String())
	assert.True(t, rec.Flushed)
}

func TestSSEWriter_UnencodablePayload(t *testing.T) {
	rec := httptest.NewRecorder()
	sse, err := NewSSEWriter(rec)
	require.NoError(t, err)

	err = sse.WriteEvent("state", make(chan int))

	assert.ErrorContains(t, err, "encode state event")
	assert.Empty(t, rec.Body.String())
}
