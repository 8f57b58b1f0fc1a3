package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	contracts "zzpboard/contracts/mq"
	"zzpboard/internal/model"
	"zzpboard/pkg/mq"
	"zzpboard/pkg/outbox"
)

type ActivityRepository struct {
	db     *pgxpool.Pool
	outbox *outbox.Repository
	logger *zap.Logger
}

func NewActivityRepository(db *pgxpool.Pool, outboxRepo *outbox.Repository, logger *zap.Logger) *ActivityRepository {
	return &ActivityRepository{db: db, outbox: outboxRepo, logger: logger}
}

// List returns the user's activities, newest first. projectID 0 returns all
// projects' activities.
func (r *ActivityRepository) List(ctx context.Context, userID, projectID int) ([]model.Activity, error) {
	r.logger.Debug("Listing activities",
		zap.Int("user_id", userID),
		zap.Int("project_id", projectID),
	)

	query := `
        SELECT id, user_id, project_id, task_id, type, title, description,
               hours, hourly_rate, amount, activity_date, created_at
        FROM activities
        WHERE user_id = $1
        AND ($2 = 0 OR project_id = $2)
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID, projectID)
	if err != nil {
		r.logger.Error("Failed to query activities", zap.Error(err), zap.Int("user_id", userID))
		return nil, err
	}
	defer rows.Close()

	activities := []model.Activity{}
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.ProjectID,
			&a.TaskID,
			&a.Type,
			&a.Title,
			&a.Description,
			&a.Hours,
			&a.HourlyRate,
			&a.Amount,
			&a.ActivityDate,
			&a.CreatedAt,
		); err != nil {
			r.logger.Error("Failed to scan activity row", zap.Error(err))
			return nil, err
		}
		activities = append(activities, a)
	}

	r.logger.Info("Activities listed successfully",
		zap.Int("user_id", userID),
		zap.Int("count", len(activities)),
	)
	return activities, rows.Err()
}

func (r *ActivityRepository) Insert(ctx context.Context, a *model.Activity) (int, error) {
	r.logger.Debug("Inserting activity",
		zap.Int("user_id", a.UserID),
		zap.Int("project_id", a.ProjectID),
		zap.String("type", string(a.Type)),
	)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO activities (user_id, project_id, task_id, type, title,
                                description, hours, hourly_rate, amount, activity_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at
    `
	err = tx.QueryRow(ctx, query,
		a.UserID,
		a.ProjectID,
		a.TaskID,
		a.Type,
		a.Title,
		a.Description,
		a.Hours,
		a.HourlyRate,
		a.Amount,
		a.ActivityDate,
	).Scan(&a.ID, &a.CreatedAt)

	if err != nil {
		r.logger.Error("Failed to insert activity", zap.Error(err))
		return 0, err
	}

	aggregateID := int64(a.ID)
	err = outbox.InsertEventInTx(ctx, tx, r.outbox, "activity", &aggregateID,
		mq.RoutingKeyActivityChanged,
		contracts.ActivityChangedPayload{
			ActivityID: a.ID,
			ProjectID:  a.ProjectID,
			UserID:     a.UserID,
			Action:     "created",
		},
	)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	r.logger.Info("Activity inserted successfully",
		zap.Int("activity_id", a.ID),
		zap.Int("project_id", a.ProjectID),
	)
	return a.ID, nil
}

// SumAmountByProject is the canonical budget-spent figure: the type-agnostic
// sum of all activity amounts attributed to the project.
func (r *ActivityRepository) SumAmountByProject(ctx context.Context, projectID int) (float64, error) {
	var sum float64
	err := r.db.QueryRow(ctx, `
        SELECT COALESCE(SUM(amount), 0)
        FROM activities
        WHERE project_id = $1
    `, projectID).Scan(&sum)
	if err != nil {
		r.logger.Error("Failed to sum activity amounts",
			zap.Error(err),
			zap.Int("project_id", projectID),
		)
		return 0, err
	}
	return sum, nil
}
