package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"zzpboard/internal/model"
	"zzpboard/internal/repository"
)

type TaskHandler struct {
	repo   *repository.TaskRepository
	logger *zap.Logger
}

func NewTaskHandler(repo *repository.TaskRepository, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{repo: repo, logger: logger}
}

// ListTasks returns the tasks of one project.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID := c.GetInt("user_id")

	projectIDRaw := c.Query("project_id")
	projectID, err := strconv.Atoi(projectIDRaw)
	if err != nil {
		h.logger.Warn("ListTasks: invalid project_id",
			zap.String("project_id", projectIDRaw),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
		return
	}

	tasks, err := h.repo.ListByProject(c.Request.Context(), userID, projectID)
	if err != nil {
		h.logger.Error("ListTasks: failed to fetch tasks",
			zap.Int("project_id", projectID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID := c.GetInt("user_id")
	h.logger.Info("CreateTask request received",
		zap.Int("user_id", userID),
		zap.String("client_ip", c.ClientIP()),
	)

	var t model.Task
	if err := c.ShouldBindJSON(&t); err != nil {
		h.logger.Warn("CreateTask: invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	t.UserID = userID
	if t.Status == "" {
		t.Status = model.TaskTodo
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}

	if errs := t.Validate(); len(errs) > 0 {
		h.logger.Warn("CreateTask: validation failed", zap.Any("errors", errs))
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	id, err := h.repo.Insert(c.Request.Context(), &t)
	if err != nil {
		h.logger.Error("CreateTask: failed to insert task", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		return
	}

	h.logger.Info("CreateTask: success",
		zap.Int("task_id", id),
		zap.Int("project_id", t.ProjectID),
	)
	c.JSON(http.StatusCreated, gin.H{"task": t})
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID := c.GetInt("user_id")
	taskID, ok := pathID(c, h.logger, "UpdateTask")
	if !ok {
		return
	}

	var t model.Task
	if err := c.ShouldBindJSON(&t); err != nil {
		h.logger.Warn("UpdateTask: invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	t.ID = taskID
	t.UserID = userID

	if errs := t.Validate(); len(errs) > 0 {
		h.logger.Warn("UpdateTask: validation failed", zap.Any("errors", errs))
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if err := h.repo.Update(c.Request.Context(), &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		h.logger.Error("UpdateTask: failed to update task",
			zap.Int("task_id", taskID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update task"})
		return
	}

	h.logger.Info("UpdateTask: success", zap.Int("task_id", taskID))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID := c.GetInt("user_id")
	taskID, ok := pathID(c, h.logger, "DeleteTask")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), userID, taskID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		h.logger.Error("DeleteTask: failed",
			zap.Int("task_id", taskID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete task"})
		return
	}

	h.logger.Info("DeleteTask: success", zap.Int("task_id", taskID))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
