package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"zzpboard/internal/model"
	"zzpboard/internal/repository"
	"zzpboard/internal/service/budget"
	"zzpboard/internal/stats"
)

type ProjectHandler struct {
	repo          *repository.ProjectRepository
	budgetService *budget.Service
	logger        *zap.Logger
}

func NewProjectHandler(repo *repository.ProjectRepository, budgetService *budget.Service, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{repo: repo, budgetService: budgetService, logger: logger}
}

// ListProjects returns the user's projects, narrowed by the dashboard
// filters when present.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID := c.GetInt("user_id")
	h.logger.Info("ListProjects request received",
		zap.Int("user_id", userID),
		zap.String("client_ip", c.ClientIP()),
	)

	projects, err := h.repo.List(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("ListProjects: failed to fetch projects",
			zap.Int("user_id", userID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch projects"})
		return
	}

	filter := stats.ProjectFilter{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	}
	if raw := c.Query("client_id"); raw != "" {
		clientID, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("ListProjects: invalid client_id", zap.String("client_id", raw))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client_id"})
			return
		}
		filter.ClientID = clientID
	}
	projects = stats.FilterProjects(projects, filter)

	h.logger.Info("ListProjects: success",
		zap.Int("user_id", userID),
		zap.Int("project_count", len(projects)),
	)
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID := c.GetInt("user_id")
	projectID, ok := pathID(c, h.logger, "GetProject")
	if !ok {
		return
	}

	p, err := h.repo.GetByID(c.Request.Context(), userID, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		h.logger.Error("GetProject: failed to fetch project",
			zap.Int("project_id", projectID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": p})
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID := c.GetInt("user_id")
	h.logger.Info("CreateProject request received",
		zap.Int("user_id", userID),
		zap.String("client_ip", c.ClientIP()),
	)

	var p model.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		h.logger.Warn("CreateProject: invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p.UserID = userID
	if p.Status == "" {
		p.Status = model.ProjectPlanning
	}
	if p.Priority == "" {
		p.Priority = model.PriorityMedium
	}

	if errs := p.Validate(); len(errs) > 0 {
		h.logger.Warn("CreateProject: validation failed", zap.Any("errors", errs))
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	id, err := h.repo.Insert(c.Request.Context(), &p)
	if err != nil {
		h.logger.Error("CreateProject: failed to insert project", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
		return
	}

	h.logger.Info("CreateProject: success", zap.Int("project_id", id))
	c.JSON(http.StatusCreated, gin.H{"project": p})
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID := c.GetInt("user_id")
	projectID, ok := pathID(c, h.logger, "UpdateProject")
	if !ok {
		return
	}

	var p model.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		h.logger.Warn("UpdateProject: invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p.ID = projectID
	p.UserID = userID

	if errs := p.Validate(); len(errs) > 0 {
		h.logger.Warn("UpdateProject: validation failed", zap.Any("errors", errs))
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if err := h.repo.Update(c.Request.Context(), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		h.logger.Error("UpdateProject: failed to update project",
			zap.Int("project_id", projectID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update project"})
		return
	}

	h.budgetService.InvalidateCache(c.Request.Context(), projectID)

	h.logger.Info("UpdateProject: success", zap.Int("project_id", projectID))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *ProjectHandler) UpdateProjectStatus(c *gin.Context) {
	userID := c.GetInt("user_id")
	projectID, ok := pathID(c, h.logger, "UpdateProjectStatus")
	if !ok {
		return
	}

	var req struct {
		Status model.ProjectStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		h.logger.Warn("UpdateProjectStatus: invalid status", zap.String("status", string(req.Status)))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	if err := h.repo.UpdateStatus(c.Request.Context(), userID, projectID, req.Status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		h.logger.Error("UpdateProjectStatus: failed",
			zap.Int("project_id", projectID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID := c.GetInt("user_id")
	projectID, ok := pathID(c, h.logger, "DeleteProject")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), userID, projectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		h.logger.Error("DeleteProject: failed",
			zap.Int("project_id", projectID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete project"})
		return
	}

	h.budgetService.InvalidateCache(c.Request.Context(), projectID)

	h.logger.Info("DeleteProject: success", zap.Int("project_id", projectID))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetBudgetSpent serves the cached budget-spent figure for one project.
func (h *ProjectHandler) GetBudgetSpent(c *gin.Context) {
	userID := c.GetInt("user_id")
	projectID, ok := pathID(c, h.logger, "GetBudgetSpent")
	if !ok {
		return
	}

	// Ownership check before touching the cache.
	if _, err := h.repo.GetByID(c.Request.Context(), userID, projectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch project"})
		return
	}

	spent, err := h.budgetService.BudgetSpent(c.Request.Context(), projectID)
	if err != nil {
		h.logger.Error("GetBudgetSpent: failed",
			zap.Int("project_id", projectID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute budget"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"project_id": projectID, "budget_spent": spent})
}

// GetProjectStats derives the project card metrics: budget spent and
// percentage, task completion ratio, days until deadline.
func (h *ProjectHandler) GetProjectStats(c *gin.Context) {
	userID := c.GetInt("user_id")
	projectID, ok := pathID(c, h.logger, "GetProjectStats")
	if !ok {
		return
	}

	p, err := h.repo.GetByID(c.Request.Context(), userID, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		h.logger.Error("GetProjectStats: failed to fetch project",
			zap.Int("project_id", projectID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch project"})
		return
	}

	summary := stats.ProjectMetrics(*p, p.Activities, time.Now())
	c.JSON(http.StatusOK, gin.H{
		"stats":           summary,
		"show_task_ratio": summary.ShowTaskRatio(),
	})
}

func pathID(c *gin.Context, logger *zap.Logger, op string) (int, bool) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		logger.Warn(op+": invalid id format", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
