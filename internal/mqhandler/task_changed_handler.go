package mqhandler

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	contracts "zzpboard/contracts/mq"
	"zzpboard/internal/repository"
	"zzpboard/internal/service/budget"
	"zzpboard/pkg/metrics"
	"zzpboard/pkg/mq"
	"zzpboard/pkg/util"
)

const taskChangedHandlerName = "task_changed"

// TaskChangedHandler recomputes the parent project's progress whenever a
// task is created, updated or deleted. Progress is never taken from user
// input; this handler is the only writer.
type TaskChangedHandler struct {
	taskRepo      *repository.TaskRepository
	projectRepo   *repository.ProjectRepository
	budgetService *budget.Service
	deduper       *util.Deduper
	retryCounter  *util.RetryCounter
	maxRetries    int64
	logger        *zap.Logger
}

func NewTaskChangedHandler(
	taskRepo *repository.TaskRepository,
	projectRepo *repository.ProjectRepository,
	budgetService *budget.Service,
	deduper *util.Deduper,
	retryCounter *util.RetryCounter,
	logger *zap.Logger,
) *TaskChangedHandler {
	return &TaskChangedHandler{
		taskRepo:      taskRepo,
		projectRepo:   projectRepo,
		budgetService: budgetService,
		deduper:       deduper,
		retryCounter:  retryCounter,
		maxRetries:    5,
		logger:        logger,
	}
}

// HandleTaskChanged processes a task change event. Idempotent: the recompute
// reads the current task table, so replaying an event lands on the same
// progress value.
func (h *TaskChangedHandler) HandleTaskChanged(ctx context.Context, raw json.RawMessage) error {
	var env contracts.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		h.logger.Error("Failed to unmarshal event envelope", zap.Error(err))
		metrics.IncrementChangeEventConsumed(mq.RoutingKeyTaskChanged, "malformed")
		return mq.ErrDropMessage
	}

	var p contracts.TaskChangedPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		h.logger.Error("Failed to unmarshal task changed payload",
			zap.Int64("event_id", env.EventID),
			zap.Error(err),
		)
		metrics.IncrementChangeEventConsumed(mq.RoutingKeyTaskChanged, "malformed")
		return mq.ErrDropMessage
	}

	if !h.deduper.AcquireOnce(ctx, taskChangedHandlerName, env.EventID) {
		h.logger.Debug("Duplicate task changed event, skipping",
			zap.Int64("event_id", env.EventID),
		)
		metrics.IncrementChangeEventConsumed(mq.RoutingKeyTaskChanged, "duplicate")
		return nil
	}

	h.logger.Info("Processing task changed event",
		zap.Int64("event_id", env.EventID),
		zap.Int("task_id", p.TaskID),
		zap.Int("project_id", p.ProjectID),
		zap.String("action", p.Action),
	)

	if err := h.recomputeProgress(ctx, p.ProjectID); err != nil {
		h.deduper.Release(ctx, taskChangedHandlerName, env.EventID)
		return h.classifyFailure(ctx, env.EventID, err)
	}

	h.budgetService.InvalidateCache(ctx, p.ProjectID)

	retryKey := util.FormatRetryKey(taskChangedHandlerName, env.EventID)
	if err := h.retryCounter.Reset(ctx, retryKey); err != nil {
		h.logger.Warn("Failed to reset retry counter", zap.String("key", retryKey), zap.Error(err))
	}

	metrics.IncrementChangeEventConsumed(mq.RoutingKeyTaskChanged, "processed")
	return nil
}

func (h *TaskChangedHandler) recomputeProgress(ctx context.Context, projectID int) error {
	completed, total, err := h.taskRepo.CompletionCounts(ctx, projectID)
	if err != nil {
		return err
	}

	progress := 0
	if total > 0 {
		progress = completed * 100 / total
	}

	if err := h.projectRepo.UpdateProgress(ctx, projectID, progress); err != nil {
		return err
	}

	metrics.IncrementProgressRecompute("task_changed")
	h.logger.Info("Project progress recomputed",
		zap.Int("project_id", projectID),
		zap.Int("completed", completed),
		zap.Int("total", total),
		zap.Int("progress", progress),
	)
	return nil
}

// classifyFailure decides between requeue and drop based on the error class
// and the retry budget tracked in redis.
func (h *TaskChangedHandler) classifyFailure(ctx context.Context, eventID int64, err error) error {
	retryable, reason := util.IsRetryableError(err)

	retryKey := util.FormatRetryKey(taskChangedHandlerName, eventID)
	count, counterErr := h.retryCounter.IncrementAndGet(ctx, retryKey)
	if counterErr != nil {
		h.logger.Warn("Failed to track retry count", zap.String("key", retryKey), zap.Error(counterErr))
	}

	if util.ShouldRetry(count, h.maxRetries, retryable) {
		h.logger.Warn("Task changed event failed, requeueing",
			zap.Int64("event_id", eventID),
			zap.Int64("retry_count", count),
			zap.String("reason", reason),
			zap.Error(err),
		)
		metrics.IncrementChangeEventConsumed(mq.RoutingKeyTaskChanged, "requeued")
		return err
	}

	h.logger.Error("Task changed event dropped",
		zap.Int64("event_id", eventID),
		zap.Int64("retry_count", count),
		zap.String("reason", reason),
		zap.Error(err),
	)
	metrics.IncrementChangeEventConsumed(mq.RoutingKeyTaskChanged, "dropped")
	return mq.ErrDropMessage
}
