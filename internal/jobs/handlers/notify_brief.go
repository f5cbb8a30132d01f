package handlers

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/freelancehub/brief-service/internal/jobs"
	"github.com/freelancehub/brief-service/internal/notify"
	"github.com/freelancehub/brief-service/internal/repository"
	"github.com/freelancehub/brief-service/pkg/metrics"
)

// NotifyBriefHandler delivers owner notifications for accepted briefs.
type NotifyBriefHandler struct {
	submissions repository.SubmissionRepository
	notifier    notify.Notifier
	log         *slog.Logger
}

func NewNotifyBriefHandler(submissions repository.SubmissionRepository, notifier notify.Notifier, log *slog.Logger) *NotifyBriefHandler {
	return &NotifyBriefHandler{
		submissions: submissions,
		notifier:    notifier,
		log:         log,
	}
}

// ProcessTask loads the submission and hands it to the notifier. Errors are
// returned so asynq retries delivery; the submission itself is already safe
// in the database.
func (h *NotifyBriefHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload jobs.NotifyBriefPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		if h.log != nil {
			h.log.ErrorContext(ctx, "notify brief: failed to decode payload",
				slog.Any("task_type", t.Type()), slog.String("error", err.Error()))
		}
		return err
	}

	submission, err := h.submissions.FindByID(ctx, payload.SubmissionID)
	if err != nil {
		if h.log != nil {
			h.log.ErrorContext(ctx, "notify brief: submission lookup failed",
				slog.String("submission_id", payload.SubmissionID), slog.Any("error", err))
		}
		return err
	}

	if h.notifier == nil {
		if h.log != nil {
			h.log.InfoContext(ctx, "notify brief: no notifier configured, skipping",
				slog.String("submission_id", submission.ID))
		}
		return nil
	}

	if err := h.notifier.NotifySubmission(ctx, submission); err != nil {
		metrics.RecordNotification("error")
		return err
	}

	metrics.RecordNotification("sent")
	if h.log != nil {
		h.log.InfoContext(ctx, "notify brief: notification delivered",
			slog.String("submission_id", submission.ID))
	}

	return nil
}
