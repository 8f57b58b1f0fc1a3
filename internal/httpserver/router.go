package httpserver

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"zzpboard/internal/handler"
	"zzpboard/pkg/mq"
	"zzpboard/pkg/outbox"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *handler.AuthHandler,
	projectHandler *handler.ProjectHandler,
	clientHandler *handler.ClientHandler,
	taskHandler *handler.TaskHandler,
	activityHandler *handler.ActivityHandler,
	deliverableHandler *handler.DeliverableHandler,
	dashboardHandler *handler.DashboardHandler,
	replayService *outbox.ReplayService,
	publisher *mq.Publisher,
	jwtSecret string,
	db *pgxpool.Pool,
	logger *zap.Logger,
) *Router {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(TraceMiddleware())
	r.Use(RequestLogger(logger))
	r.Use(MetricsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}
		if !publisher.IsConnected() {
			c.JSON(500, gin.H{"status": "mq_not_ready"})
			return
		}

		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	// Protected
	auth := r.Group("/")
	auth.Use(AuthMiddleware(jwtSecret))
	{
		auth.GET("/projects", projectHandler.ListProjects)
		auth.POST("/projects", projectHandler.CreateProject)
		auth.GET("/projects/:id", projectHandler.GetProject)
		auth.PUT("/projects/:id", projectHandler.UpdateProject)
		auth.POST("/projects/:id/status", projectHandler.UpdateProjectStatus)
		auth.DELETE("/projects/:id", projectHandler.DeleteProject)
		auth.GET("/projects/:id/budget-spent", projectHandler.GetBudgetSpent)
		auth.GET("/projects/:id/stats", projectHandler.GetProjectStats)

		auth.GET("/clients", clientHandler.ListClients)
		auth.POST("/clients", clientHandler.CreateClient)

		auth.GET("/tasks", taskHandler.ListTasks)
		auth.POST("/tasks", taskHandler.CreateTask)
		auth.PUT("/tasks/:id", taskHandler.UpdateTask)
		auth.DELETE("/tasks/:id", taskHandler.DeleteTask)

		auth.GET("/activities", activityHandler.ListActivities)
		auth.POST("/activities", activityHandler.CreateActivity)

		auth.GET("/deliverables", deliverableHandler.ListDeliverables)
		auth.POST("/deliverables", deliverableHandler.CreateDeliverable)

		auth.GET("/dashboard/summary", dashboardHandler.GetSummary)
		auth.GET("/dashboard/feed", dashboardHandler.GetFeed)
		auth.GET("/dashboard/deadlines", dashboardHandler.GetDeadlines)

		// Operational: replay change events that exhausted their retries.
		auth.POST("/admin/events/:id/replay", func(c *gin.Context) {
			eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
				return
			}
			if err := replayService.ReplayEvent(c.Request.Context(), eventID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "replayed"})
		})
		auth.POST("/admin/events/replay-failed", func(c *gin.Context) {
			limit := 100
			if raw := c.Query("limit"); raw != "" {
				if v, err := strconv.Atoi(raw); err == nil && v > 0 {
					limit = v
				}
			}
			count, err := replayService.ReplayFailedEvents(c.Request.Context(), limit)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "replayed": count})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "ok", "replayed": count})
		})
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
