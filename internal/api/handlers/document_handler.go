package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	middleware "github.com/markdave123-py/Lectio/internal/api/middlewares"
	"github.com/markdave123-py/Lectio/internal/core"
	"github.com/markdave123-py/Lectio/internal/services"
)

// multipartOverhead covers boundaries and part headers around the file.
const multipartOverhead = 1 << 20

type DocumentHandler struct {
	sessions
	maxUpload int64
}

func NewDocumentHandler(svc *services.StudyService, cookies *middleware.SessionCookies, maxUpload int64) *DocumentHandler {
	return &DocumentHandler{sessions: sessions{svc: svc, cookies: cookies}, maxUpload: maxUpload}
}

type uploadResponse struct {
	sessionView
	LineCount int  `json:"line_count"`
	Uploaded  bool `json:"uploaded"`
}

// UploadDocument extracts the text of the uploaded image into the session.
// The file is held in memory only. A request without a file leaves the
// session untouched.
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	sess, err := h.load(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	limit := h.maxUpload + multipartOverhead
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	// maxMemory at the body cap keeps every part off disk
	err = r.ParseMultipartForm(limit)
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	switch {
	case errors.Is(err, http.ErrNotMultipart):
		writeJSON(w, http.StatusOK, uploadResponse{sessionView: viewOf(sess), LineCount: countLines(sess.RawText)})
		return
	case err != nil:
		writeError(w, core.Wrap(core.StageIntake, fmt.Errorf("read upload: %w", err)))
		return
	}

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		writeJSON(w, http.StatusOK, uploadResponse{sessionView: viewOf(sess), LineCount: countLines(sess.RawText)})
		return
	}
	if err != nil {
		writeError(w, core.Wrap(core.StageIntake, fmt.Errorf("read upload: %w", err)))
		return
	}
	defer file.Close()

	if header.Size > h.maxUpload {
		writeError(w, core.Wrap(core.StageIntake, &http.MaxBytesError{Limit: h.maxUpload}))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, core.Wrap(core.StageIntake, fmt.Errorf("read upload: %w", err)))
		return
	}

	if err := h.svc.Upload(r.Context(), sess, data); err != nil {
		log.Error().Err(err).Str("session_id", sess.ID).Str("file", header.Filename).Msg("upload failed")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{sessionView: viewOf(sess), LineCount: countLines(sess.RawText), Uploaded: true})
}

func countLines(text string) int {
	return strings.Count(text, "\n")
}
