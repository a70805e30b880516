package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	middleware "github.com/markdave123-py/Lectio/internal/api/middlewares"
	"github.com/markdave123-py/Lectio/internal/core/render"
	"github.com/markdave123-py/Lectio/internal/models"
	"github.com/markdave123-py/Lectio/internal/services"
)

// PanelHandler serves the Text, Summary and Questions tabs.
type PanelHandler struct {
	sessions
}

func NewPanelHandler(svc *services.StudyService, cookies *middleware.SessionCookies) *PanelHandler {
	return &PanelHandler{sessions{svc: svc, cookies: cookies}}
}

type textPanel struct {
	RawText string `json:"raw_text"`
	HTML    string `json:"html"`
}

type renderedPanel struct {
	Text string `json:"text"`
	HTML string `json:"html"`
}

func (h *PanelHandler) GetText(w http.ResponseWriter, r *http.Request) {
	sess, err := h.load(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, textPanel{RawText: sess.RawText, HTML: render.PlainText(sess.RawText)})
}

// GetQuestions returns the questions stored by the last completed run.
func (h *PanelHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	sess, err := h.load(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	html, err := render.Markup(sess.Questions)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, renderedPanel{Text: sess.Questions, HTML: html})
}

func (h *PanelHandler) StreamSummary(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, func(sess *models.Session) (*services.Generation, error) {
		return h.svc.StreamSummary(r.Context(), sess)
	})
}

func (h *PanelHandler) StreamQuestions(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, func(sess *models.Session) (*services.Generation, error) {
		return h.svc.StreamQuestions(r.Context(), sess)
	})
}

// stream relays model output as it arrives, then sends the rendered
// result in a final done event.
func (h *PanelHandler) stream(w http.ResponseWriter, r *http.Request, start func(*models.Session) (*services.Generation, error)) {
	sess, err := h.load(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	sse, err := newSSEWriter(w)
	if err != nil {
		log.Error().Err(err).Msg("cannot stream panel")
		return
	}

	gen, err := start(sess)
	if err != nil {
		_ = sse.Fail(err)
		return
	}

	for chunk := range gen.Chunks {
		// keep draining after a client write error so the producer exits
		_ = sse.Event("chunk", chunk)
	}

	text, err := gen.Wait()
	if err != nil {
		_ = sse.Fail(err)
		return
	}

	html, err := render.ForKind(gen.Kind, text)
	if err != nil {
		_ = sse.Fail(err)
		return
	}
	if err := sse.Event("done", renderedPanel{Text: text, HTML: html}); err != nil {
		log.Debug().Err(err).Str("session_id", sess.ID).Msg("client went away before done")
	}
}
