package handlers

import (
	"net/http"

	middleware "github.com/markdave123-py/Lectio/internal/api/middlewares"
	"github.com/markdave123-py/Lectio/internal/core"
	"github.com/markdave123-py/Lectio/internal/models"
	"github.com/markdave123-py/Lectio/internal/services"
)

// sessions resolves the caller's session, issuing a cookie when a new one
// had to be started.
type sessions struct {
	svc     *services.StudyService
	cookies *middleware.SessionCookies
}

func (s sessions) load(w http.ResponseWriter, r *http.Request) (*models.Session, error) {
	id := middleware.SessionIDFromContext(r.Context())
	sess, err := s.svc.Session(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if sess.ID != id {
		if err := s.cookies.Issue(w, sess.ID); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

func stageOrInternal(err error) core.Stage {
	if st := core.StageOf(err); st != "" {
		return st
	}
	return "internal"
}

type sessionView struct {
	SessionID string `json:"session_id"`
	RawText   string `json:"raw_text"`
	Questions string `json:"questions"`
	HasText   bool   `json:"has_text"`
}

func viewOf(sess *models.Session) sessionView {
	return sessionView{
		SessionID: sess.ID,
		RawText:   sess.RawText,
		Questions: sess.Questions,
		HasText:   sess.HasText(),
	}
}

type SessionHandler struct {
	sessions
}

func NewSessionHandler(svc *services.StudyService, cookies *middleware.SessionCookies) *SessionHandler {
	return &SessionHandler{sessions{svc: svc, cookies: cookies}}
}

// GetSession returns the current session, starting one if needed.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.load(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(sess))
}

// EndSession drops the session state and the cookie.
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	if id := middleware.SessionIDFromContext(r.Context()); id != "" {
		if err := h.svc.EndSession(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
	}
	h.cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
