package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zzpboard/internal/format"
	"zzpboard/internal/repository"
	"zzpboard/internal/stats"
)

type DashboardHandler struct {
	activityRepo *repository.ActivityRepository
	projectRepo  *repository.ProjectRepository
	logger       *zap.Logger
}

func NewDashboardHandler(activityRepo *repository.ActivityRepository, projectRepo *repository.ProjectRepository, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		activityRepo: activityRepo,
		projectRepo:  projectRepo,
		logger:       logger,
	}
}

func (h *DashboardHandler) filteredActivities(c *gin.Context) ([]stats.DayGroup, stats.Summary, bool) {
	userID := c.GetInt("user_id")

	projectID := 0
	if raw := c.Query("project_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
			return nil, stats.Summary{}, false
		}
		projectID = id
	}

	activities, err := h.activityRepo.List(c.Request.Context(), userID, 0)
	if err != nil {
		h.logger.Error("Dashboard: failed to fetch activities",
			zap.Int("user_id", userID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch activities"})
		return nil, stats.Summary{}, false
	}

	filtered := stats.FilterActivities(activities,
		projectID,
		c.DefaultQuery("type", stats.TypeAll),
		stats.TimeRange(c.DefaultQuery("range", string(stats.RangeAll))),
		time.Now(),
	)

	return stats.GroupByDay(filtered, time.Local), stats.Summarize(filtered), true
}

// GetSummary returns the headline totals for the current filter selection,
// with display-ready euro and hour strings alongside the raw numbers.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	_, summary, ok := h.filteredActivities(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
		"display": gin.H{
			"total_hours":    format.Hours(summary.TotalHours),
			"total_earnings": format.EUR(summary.TotalEarnings),
			"total_expenses": format.EUR(summary.TotalExpenses),
		},
	})
}

// GetFeed returns the activity feed grouped per calendar day, newest day
// first, with a human-readable heading per group.
func (h *DashboardHandler) GetFeed(c *gin.Context) {
	groups, _, ok := h.filteredActivities(c)
	if !ok {
		return
	}

	type dayEntry struct {
		Day        string      `json:"day"`
		Heading    string      `json:"heading"`
		Activities interface{} `json:"activities"`
	}

	feed := make([]dayEntry, 0, len(groups))
	for _, g := range groups {
		feed = append(feed, dayEntry{
			Day:        g.Day,
			Heading:    format.DayHeading(g.Day),
			Activities: g.Activities,
		})
	}

	c.JSON(http.StatusOK, gin.H{"feed": feed})
}

// GetDeadlines returns projects ending within the next 30 days, soonest
// first.
func (h *DashboardHandler) GetDeadlines(c *gin.Context) {
	userID := c.GetInt("user_id")

	projects, err := h.projectRepo.List(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("GetDeadlines: failed to fetch projects",
			zap.Int("user_id", userID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deadlines": stats.UpcomingDeadlines(projects, time.Now())})
}
