// Package jobs defines the background task queue used to fan out work that
// must not block the submission request, such as owner notifications.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// TaskTypeNotifyBrief delivers a new-brief notification to the site owner.
	TaskTypeNotifyBrief = "brief:notify"
)

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// NotifyBriefPayload carries the submission to notify about.
type NotifyBriefPayload struct {
	SubmissionID string `json:"submission_id"`
}

// NewNotifyBriefTask builds a notification task for the given submission.
func NewNotifyBriefTask(submissionID string) (*asynq.Task, error) {
	payload, err := json.Marshal(NotifyBriefPayload{SubmissionID: submissionID})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TaskTypeNotifyBrief, payload, asynq.Queue(QueueDefault)), nil
}
