package budget

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"zzpboard/internal/repository"
)

// Service answers budget-spent lookups through a Redis read-through cache.
// Cache failures degrade to direct database sums.
type Service struct {
	activityRepo *repository.ActivityRepository
	redisClient  *redis.Client
	cacheTTL     time.Duration
	logger       *zap.Logger
}

func NewService(activityRepo *repository.ActivityRepository, redisClient *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *Service {
	return &Service{
		activityRepo: activityRepo,
		redisClient:  redisClient,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

func cacheKey(projectID int) string {
	return fmt.Sprintf("budget_spent:%d", projectID)
}

// BudgetSpent returns the total amount booked against a project.
func (s *Service) BudgetSpent(ctx context.Context, projectID int) (float64, error) {
	key := cacheKey(projectID)

	cached, err := s.redisClient.Get(ctx, key).Result()
	if err == nil {
		if v, parseErr := strconv.ParseFloat(cached, 64); parseErr == nil {
			return v, nil
		}
	} else if err != redis.Nil {
		s.logger.Warn("Budget cache read failed, falling back to database",
			zap.Error(err),
			zap.Int("project_id", projectID),
		)
	}

	sum, err := s.activityRepo.SumAmountByProject(ctx, projectID)
	if err != nil {
		return 0, err
	}

	if setErr := s.redisClient.Set(ctx, key, strconv.FormatFloat(sum, 'f', -1, 64), s.cacheTTL).Err(); setErr != nil {
		s.logger.Warn("Budget cache write failed",
			zap.Error(setErr),
			zap.Int("project_id", projectID),
		)
	}

	return sum, nil
}

// InvalidateCache drops the cached figure for a project. Called when
// activities or projects change.
func (s *Service) InvalidateCache(ctx context.Context, projectID int) {
	if err := s.redisClient.Del(ctx, cacheKey(projectID)).Err(); err != nil {
		s.logger.Warn("Budget cache invalidation failed",
			zap.Error(err),
			zap.Int("project_id", projectID),
		)
	}
}
