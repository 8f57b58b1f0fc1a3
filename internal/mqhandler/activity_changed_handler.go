package mqhandler

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	contracts "zzpboard/contracts/mq"
	"zzpboard/internal/service/budget"
	"zzpboard/pkg/metrics"
	"zzpboard/pkg/mq"
	"zzpboard/pkg/util"
)

const activityChangedHandlerName = "activity_changed"

// ActivityChangedHandler drops the cached budget-spent figure whenever an
// activity lands against a project. The next lookup recomputes from the
// database.
type ActivityChangedHandler struct {
	budgetService *budget.Service
	deduper       *util.Deduper
	logger        *zap.Logger
}

func NewActivityChangedHandler(budgetService *budget.Service, deduper *util.Deduper, logger *zap.Logger) *ActivityChangedHandler {
	return &ActivityChangedHandler{
		budgetService: budgetService,
		deduper:       deduper,
		logger:        logger,
	}
}

func (h *ActivityChangedHandler) HandleActivityChanged(ctx context.Context, raw json.RawMessage) error {
	var env contracts.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		h.logger.Error("Failed to unmarshal event envelope", zap.Error(err))
		metrics.IncrementChangeEventConsumed(mq.RoutingKeyActivityChanged, "malformed")
		return mq.ErrDropMessage
	}

	var p contracts.ActivityChangedPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		h.logger.Error("Failed to unmarshal activity changed payload",
			zap.Int64("event_id", env.EventID),
			zap.Error(err),
		)
		metrics.IncrementChangeEventConsumed(mq.RoutingKeyActivityChanged, "malformed")
		return mq.ErrDropMessage
	}

	if !h.deduper.AcquireOnce(ctx, activityChangedHandlerName, env.EventID) {
		metrics.IncrementChangeEventConsumed(mq.RoutingKeyActivityChanged, "duplicate")
		return nil
	}

	h.budgetService.InvalidateCache(ctx, p.ProjectID)

	h.logger.Info("Budget cache invalidated for activity change",
		zap.Int64("event_id", env.EventID),
		zap.Int("activity_id", p.ActivityID),
		zap.Int("project_id", p.ProjectID),
	)
	metrics.IncrementChangeEventConsumed(mq.RoutingKeyActivityChanged, "processed")
	return nil
}
