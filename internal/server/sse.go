package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends one named event whose data line is the JSON encoding of
// payload. The frame is written in a single call and flushed.
func (s *SSEWriter) WriteEvent(name string, payload any) error {
	var frame bytes.Buffer
	frame.WriteString("event: ")
	frame.WriteString(name)
	frame.WriteString("\ndata: ")
	if err := json.NewEncoder(&frame).Encode(payload); err != nil {
		return fmt.Errorf("encode %s event: %w", name, err)
	}
	// Encode ends the data line; a blank line ends the frame.
	frame.WriteByte('\n')

	if _, err := s.w.Write(frame.Bytes()); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteComment sends a keep-alive comment line
func (s *SSEWriter) WriteComment(text string) error {
	if _, err := fmt.Fprintf(s.w, ": %s\n\n", text); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
