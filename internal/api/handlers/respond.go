package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/markdave123-py/Lectio/internal/core"
)

type errorBody struct {
	Error string     `json:"error"`
	Stage core.Stage `json:"stage,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("write response")
	}
}

// statusFor maps a pipeline error to the status shown to the user.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}

	switch core.StageOf(err) {
	case core.StageIntake:
		return http.StatusBadRequest
	case core.StageExtraction, core.StageInvocation:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// messageFor keeps internal failures out of the response body.
func messageFor(err error) string {
	var se *core.StageError
	if errors.As(err, &se) {
		switch se.Stage {
		case core.StageIntake:
			return se.Err.Error()
		case core.StageExtraction:
			return "could not extract text from the document: " + se.Err.Error()
		case core.StageInvocation:
			return "the language model request failed: " + se.Err.Error()
		}
	}
	return "internal error"
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("stage", string(core.StageOf(err))).Msg("request failed")
	}
	writeJSON(w, status, errorBody{Error: messageFor(err), Stage: core.StageOf(err)})
}
