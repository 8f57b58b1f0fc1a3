package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zzpboard/internal/model"
	"zzpboard/internal/repository"
)

type DeliverableHandler struct {
	repo   *repository.DeliverableRepository
	logger *zap.Logger
}

func NewDeliverableHandler(repo *repository.DeliverableRepository, logger *zap.Logger) *DeliverableHandler {
	return &DeliverableHandler{repo: repo, logger: logger}
}

func (h *DeliverableHandler) ListDeliverables(c *gin.Context) {
	projectIDRaw := c.Query("project_id")
	projectID, err := strconv.Atoi(projectIDRaw)
	if err != nil {
		h.logger.Warn("ListDeliverables: invalid project_id",
			zap.String("project_id", projectIDRaw),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
		return
	}

	deliverables, err := h.repo.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		h.logger.Error("ListDeliverables: failed to fetch deliverables",
			zap.Int("project_id", projectID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch deliverables"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deliverables": deliverables})
}

func (h *DeliverableHandler) CreateDeliverable(c *gin.Context) {
	var d model.Deliverable
	if err := c.ShouldBindJSON(&d); err != nil {
		h.logger.Warn("CreateDeliverable: invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if errs := d.Validate(); len(errs) > 0 {
		h.logger.Warn("CreateDeliverable: validation failed", zap.Any("errors", errs))
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	id, err := h.repo.Insert(c.Request.Context(), &d)
	if err != nil {
		h.logger.Error("CreateDeliverable: failed to insert deliverable", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create deliverable"})
		return
	}

	h.logger.Info("CreateDeliverable: success", zap.Int("deliverable_id", id))
	c.JSON(http.StatusCreated, gin.H{"deliverable": d})
}
