package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zzpboard/internal/model"
	"zzpboard/internal/repository"
	"zzpboard/internal/service/budget"
	"zzpboard/internal/stats"
)

type ActivityHandler struct {
	repo          *repository.ActivityRepository
	budgetService *budget.Service
	logger        *zap.Logger
}

func NewActivityHandler(repo *repository.ActivityRepository, budgetService *budget.Service, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{repo: repo, budgetService: budgetService, logger: logger}
}

// ListActivities returns the user's activities, narrowed by the
// project/type/range query parameters when present.
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	userID := c.GetInt("user_id")

	projectID := 0
	if raw := c.Query("project_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("ListActivities: invalid project_id", zap.String("project_id", raw))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
			return
		}
		projectID = id
	}

	activities, err := h.repo.List(c.Request.Context(), userID, 0)
	if err != nil {
		h.logger.Error("ListActivities: failed to fetch activities",
			zap.Int("user_id", userID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch activities"})
		return
	}

	activities = stats.FilterActivities(activities,
		projectID,
		c.DefaultQuery("type", stats.TypeAll),
		stats.TimeRange(c.DefaultQuery("range", string(stats.RangeAll))),
		time.Now(),
	)

	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	userID := c.GetInt("user_id")
	h.logger.Info("CreateActivity request received",
		zap.Int("user_id", userID),
		zap.String("client_ip", c.ClientIP()),
	)

	var a model.Activity
	if err := c.ShouldBindJSON(&a); err != nil {
		h.logger.Warn("CreateActivity: invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	a.UserID = userID
	if a.ActivityDate.IsZero() {
		a.ActivityDate = time.Now()
	}

	if errs := a.Validate(); len(errs) > 0 {
		h.logger.Warn("CreateActivity: validation failed", zap.Any("errors", errs))
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	a.DeriveAmount()

	id, err := h.repo.Insert(c.Request.Context(), &a)
	if err != nil {
		h.logger.Error("CreateActivity: failed to insert activity", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create activity"})
		return
	}

	h.budgetService.InvalidateCache(c.Request.Context(), a.ProjectID)

	h.logger.Info("CreateActivity: success",
		zap.Int("activity_id", id),
		zap.Int("project_id", a.ProjectID),
	)
	c.JSON(http.StatusCreated, gin.H{"activity": a})
}
