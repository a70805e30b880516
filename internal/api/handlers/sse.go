package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var errStreamingUnsupported = errors.New("response writer does not support flushing")

// sseWriter writes Server-Sent Events. Every payload is JSON so multi-line
// chunks stay on one data line. The first write error is kept and later
// events are dropped.
type sseWriter struct {
	w   http.ResponseWriter
	rc  *http.ResponseController
	err error
}

func newSSEWriter(w http.ResponseWriter) (*sseWriter, error) {
	rc := http.NewResponseController(w)

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := rc.Flush(); err != nil {
		return nil, fmt.Errorf("%w: %v", errStreamingUnsupported, err)
	}
	return &sseWriter{w: w, rc: rc}, nil
}

func (s *sseWriter) Event(name string, payload any) error {
	if s.err != nil {
		return s.err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", name, data); err != nil {
		s.err = err
		return err
	}
	if err := s.rc.Flush(); err != nil {
		s.err = err
	}
	return s.err
}

type sseError struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

func (s *sseWriter) Fail(err error) error {
	return s.Event("error", sseError{Stage: string(stageOrInternal(err)), Message: messageFor(err)})
}
