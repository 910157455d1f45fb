package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// sseWriter streams server-sent events. Every event is a single data
// frame carrying JSON; the stream ends with a [DONE] sentinel.
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

type sseErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// newSSEWriter prepares the response for event streaming. Returns an
// error when the underlying writer cannot flush.
func newSSEWriter(w http.ResponseWriter) (*sseWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support streaming")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &sseWriter{w: w, flusher: flusher}, nil
}

// Send writes one JSON event frame and flushes it.
func (s *sseWriter) Send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal sse event: %w", err)
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// SendError writes an error event frame.
func (s *sseWriter) SendError(message string) error {
	return s.Send(sseErrorEvent{Type: "error", Message: message})
}

// Done writes the terminating sentinel frame.
func (s *sseWriter) Done() {
	fmt.Fprint(s.w, "data: [DONE]\n\n") //nolint:errcheck
	s.flusher.Flush()
}
