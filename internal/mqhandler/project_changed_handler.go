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

const projectChangedHandlerName = "project_changed"

// ProjectChangedHandler reacts to project mutations. Budget edits change the
// percentage baseline, so the cached spent figure goes too; deletes clear
// the now-orphaned cache entry.
type ProjectChangedHandler struct {
	budgetService *budget.Service
	deduper       *util.Deduper
	logger        *zap.Logger
}

func NewProjectChangedHandler(budgetService *budget.Service, deduper *util.Deduper, logger *zap.Logger) *ProjectChangedHandler {
	return &ProjectChangedHandler{
		budgetService: budgetService,
		deduper:       deduper,
		logger:        logger,
	}
}

func (h *ProjectChangedHandler) HandleProjectChanged(ctx context.Context, raw json.RawMessage) error {
	var env contracts.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		h.logger.Error("Failed to unmarshal event envelope", zap.Error(err))
		metrics.IncrementChangeEventConsumed(mq.RoutingKeyProjectChanged, "malformed")
		return mq.ErrDropMessage
	}

	var p contracts.ProjectChangedPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		h.logger.Error("Failed to unmarshal project changed payload",
			zap.Int64("event_id", env.EventID),
			zap.Error(err),
		)
		metrics.IncrementChangeEventConsumed(mq.RoutingKeyProjectChanged, "malformed")
		return mq.ErrDropMessage
	}

	if !h.deduper.AcquireOnce(ctx, projectChangedHandlerName, env.EventID) {
		metrics.IncrementChangeEventConsumed(mq.RoutingKeyProjectChanged, "duplicate")
		return nil
	}

	h.budgetService.InvalidateCache(ctx, p.ProjectID)

	h.logger.Info("Project change processed",
		zap.Int64("event_id", env.EventID),
		zap.Int("project_id", p.ProjectID),
		zap.String("action", p.Action),
	)
	metrics.IncrementChangeEventConsumed(mq.RoutingKeyProjectChanged, "processed")
	return nil
}
