package server

import (
	"net/http"

	"github.com/freelancehub/brief-service/internal/apperr"
	"github.com/freelancehub/brief-service/internal/brief"
	"github.com/freelancehub/brief-service/internal/pricing"
	"github.com/freelancehub/brief-service/pkg/metrics"
)

type estimateResponse struct {
	pricing.Estimate
	FormattedPrice string `json:"formattedPrice"`
	FormattedTime  string `json:"formattedTime"`
}

func (s *Server) estimateResponse(estimate pricing.Estimate) estimateResponse {
	return estimateResponse{
		Estimate:       estimate,
		FormattedPrice: s.formatter.FormatPriceRange(estimate.PriceRange),
		FormattedTime:  s.formatter.FormatWeeks(estimate.TimeEstimate),
	}
}

// handleEstimate computes a live estimate for a partial answer set. Always
// succeeds: unknown project types fall back to the landing rate.
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	answers := brief.DefaultAnswers()
	if err := readJSON(r, &answers); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	estimate := pricing.Calculate(answers)
	metrics.RecordPricingCalculation(answers.ProjectType)

	writeJSON(w, http.StatusOK, s.estimateResponse(estimate))
}

// handleSubmit accepts the completed answer set. On success the brief is
// persisted, the draft snapshot is cleared, the owner notification is queued,
// and the generated id is returned. On failure the draft stays intact so the
// client can retry without re-entering answers.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	answers := brief.DefaultAnswers()
	if err := readJSON(r, &answers); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ok, fieldErrs := s.validator.ValidateAll(answers)
	if !ok {
		metrics.RecordSubmission("invalid")
		s.errors.Handle(r.Context(), apperr.NewValidationError("brief rejected by full validation"))
		writeFieldErrors(w, fieldErrs)
		return
	}

	submission, err := s.submissions.Create(r.Context(), answers, clientIP(r))
	if err != nil {
		metrics.RecordSubmission("error")
		msg, _ := s.errors.Handle(r.Context(), apperr.NewDatabaseError(err))
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	if sessionID := r.Header.Get("X-Session-ID"); sessionID != "" {
		s.wizard.Clear(r.Context(), sessionID)
	}

	s.enqueueNotification(r, submission.ID)

	metrics.RecordSubmission("accepted")
	writeJSON(w, http.StatusCreated, map[string]string{"id": submission.ID})
}

// enqueueNotification schedules the owner notification. Queue failures are
// reported but never fail the submission: the brief is already persisted.
func (s *Server) enqueueNotification(r *http.Request, submissionID string) {
	if s.queue == nil {
		return
	}

	if err := s.queue.EnqueueNotifyBrief(r.Context(), submissionID); err != nil {
		s.errors.Handle(r.Context(), apperr.NewNotificationError(err))
	}
}
