package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/freelancehub/brief-service/internal/brief"
	"github.com/freelancehub/brief-service/internal/pricing"
	"github.com/freelancehub/brief-service/internal/wizard"
)

type sessionResponse struct {
	ID           string            `json:"id"`
	Step         wizard.Step       `json:"step"`
	Values       brief.Answers     `json:"values"`
	UpdatedAt    time.Time         `json:"updatedAt,omitzero"`
	CanGoForward bool              `json:"canGoForward"`
	CanGoBack    bool              `json:"canGoBack"`
	Estimate     estimateResponse  `json:"estimate"`
	Errors       map[string]string `json:"errors,omitempty"`
}

func (s *Server) sessionResponse(sess *wizard.Session, fieldErrs map[string]string) sessionResponse {
	return sessionResponse{
		ID:           sess.ID,
		Step:         sess.Step,
		Values:       sess.Values,
		UpdatedAt:    sess.UpdatedAt,
		CanGoForward: wizard.CanGoForward(sess.Step),
		CanGoBack:    wizard.CanGoBack(sess.Step),
		Estimate:     s.estimateResponse(pricing.Calculate(sess.Values)),
		Errors:       fieldErrs,
	}
}

// handleSteps returns the fixed step registry for the rendering layer.
func (s *Server) handleSteps(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, wizard.Steps)
}

// handleGetSession hydrates and returns the session. Missing or unreadable
// drafts come back as a fresh default session, never an error.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess := s.wizard.Load(r.Context(), chi.URLParam(r, "session"))
	writeJSON(w, http.StatusOK, s.sessionResponse(sess, nil))
}

// handlePatchValues merges the posted fields over the current answer set and
// snapshots the draft. Field values are accepted as-is: validation gates
// navigation, not editing.
func (s *Server) handlePatchValues(w http.ResponseWriter, r *http.Request) {
	sess := s.wizard.Load(r.Context(), chi.URLParam(r, "session"))

	values := sess.Values
	if err := readJSON(r, &values); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.wizard.SetValues(r.Context(), sess, values)
	writeJSON(w, http.StatusOK, s.sessionResponse(sess, nil))
}

// handleNext validates the current step's fields and advances on success.
// A blocked transition keeps the step and returns the per-field messages.
func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	sess := s.wizard.Load(r.Context(), chi.URLParam(r, "session"))

	ok, fieldErrs := s.wizard.Next(r.Context(), sess)
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, s.sessionResponse(sess, fieldErrs))
		return
	}

	writeJSON(w, http.StatusOK, s.sessionResponse(sess, nil))
}

// handleBack retreats one step without validation.
func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	sess := s.wizard.Load(r.Context(), chi.URLParam(r, "session"))
	s.wizard.Back(r.Context(), sess)
	writeJSON(w, http.StatusOK, s.sessionResponse(sess, nil))
}

// handleReset clears the draft and returns a fresh default session.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := s.wizard.Load(r.Context(), chi.URLParam(r, "session"))
	s.wizard.Reset(r.Context(), sess)
	writeJSON(w, http.StatusOK, s.sessionResponse(sess, nil))
}
