package jobs

import (
	"log/slog"

	"github.com/hibiken/asynq"
)

// queueWeights keeps anything critical ahead of notification delivery while
// still draining the default queue promptly.
var queueWeights = map[string]int{
	QueueCritical: 6,
	QueueDefault:  3,
	QueueLow:      1,
}

// Worker consumes the service's background tasks.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	log    *slog.Logger
}

// NewWorker builds a Worker with the service's queue weights.
func NewWorker(redisOpt asynq.RedisConnOpt, log *slog.Logger) *Worker {
	server := asynq.NewServer(redisOpt, asynq.Config{
		Queues:      queueWeights,
		Concurrency: 5,
	})

	return &Worker{
		server: server,
		mux:    asynq.NewServeMux(),
		log:    log,
	}
}

// HandleNotifyBrief wires the owner-notification handler.
func (w *Worker) HandleNotifyBrief(handler asynq.Handler) {
	w.mux.Handle(TaskTypeNotifyBrief, handler)
}

// Run starts the processing loop and blocks until Shutdown.
func (w *Worker) Run() error {
	w.log.Info("jobs worker: starting processing loop")
	return w.server.Run(w.mux)
}

// Shutdown stops the worker, waiting for in-flight tasks to finish.
func (w *Worker) Shutdown() {
	w.log.Info("jobs worker: shutting down")
	w.server.Shutdown()
}
