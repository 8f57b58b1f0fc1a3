package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zzpboard/internal/model"
	"zzpboard/internal/repository"
)

type ClientHandler struct {
	repo   *repository.ClientRepository
	logger *zap.Logger
}

func NewClientHandler(repo *repository.ClientRepository, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{repo: repo, logger: logger}
}

// ListClients returns the user's active clients, used to populate the
// client picker on project forms.
func (h *ClientHandler) ListClients(c *gin.Context) {
	userID := c.GetInt("user_id")

	clients, err := h.repo.ListActive(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("ListClients: failed to fetch clients",
			zap.Int("user_id", userID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch clients"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

func (h *ClientHandler) CreateClient(c *gin.Context) {
	userID := c.GetInt("user_id")
	h.logger.Info("CreateClient request received",
		zap.Int("user_id", userID),
		zap.String("client_ip", c.ClientIP()),
	)

	var cl model.Client
	if err := c.ShouldBindJSON(&cl); err != nil {
		h.logger.Warn("CreateClient: invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	cl.UserID = userID

	if errs := cl.Validate(); len(errs) > 0 {
		h.logger.Warn("CreateClient: validation failed", zap.Any("errors", errs))
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	id, err := h.repo.Insert(c.Request.Context(), &cl)
	if err != nil {
		h.logger.Error("CreateClient: failed to insert client", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create client"})
		return
	}

	h.logger.Info("CreateClient: success", zap.Int("client_id", id))
	c.JSON(http.StatusCreated, gin.H{"client": cl})
}
