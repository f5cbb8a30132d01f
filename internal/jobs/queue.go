package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
)

// Queue publishes the service's background tasks. Callers hand over domain
// identifiers; task encoding and routing stay inside this package.
type Queue interface {
	EnqueueNotifyBrief(ctx context.Context, submissionID string) error
	Close() error
}

type queue struct {
	client *asynq.Client
	log    *slog.Logger
}

// NewQueue builds a Queue backed by an asynq client.
func NewQueue(redisOpt asynq.RedisConnOpt, log *slog.Logger) Queue {
	return &queue{
		client: asynq.NewClient(redisOpt),
		log:    log,
	}
}

// EnqueueNotifyBrief schedules the owner notification for a stored submission.
func (q *queue) EnqueueNotifyBrief(ctx context.Context, submissionID string) error {
	task, err := NewNotifyBriefTask(submissionID)
	if err != nil {
		return err
	}

	info, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	q.log.Info("queued owner notification",
		slog.String("submission_id", submissionID),
		slog.String("task_id", info.ID),
		slog.String("queue", info.Queue))

	return nil
}

func (q *queue) Close() error {
	return q.client.Close()
}
