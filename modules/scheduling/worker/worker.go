package worker

import (
	"context"
	"encoding/json"

	"meeting-scheduler/core/logger"
	"meeting-scheduler/modules/scheduling/service"

	"github.com/hibiken/asynq"
)

// Worker processes queued scheduling runs
type Worker struct {
	service service.SchedulingServiceInterface
}

func NewWorker(svc service.SchedulingServiceInterface) *Worker {
	return &Worker{service: svc}
}

// HandleRunTask runs one queued scheduling batch. The result is cached by the
// service, so callers poll the status endpoint for completion.
func (w *Worker) HandleRunTask(ctx context.Context, t *asynq.Task) error {
	var payload struct {
		RunID string `json:"run_id"`
	}
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Error("Worker:HandleRunTask:Payload", err)
		return err
	}

	logger.Info("Worker:HandleRunTask:Start", "run_id", payload.RunID)
	if _, appErr := w.service.Run(ctx); appErr != nil {
		logger.Error("Worker:HandleRunTask:Run", "error", appErr, "run_id", payload.RunID)
		return appErr
	}
	return nil
}
