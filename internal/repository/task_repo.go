package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	contracts "zzpboard/contracts/mq"
	"zzpboard/internal/model"
	"zzpboard/pkg/mq"
	"zzpboard/pkg/outbox"
)

type TaskRepository struct {
	db     *pgxpool.Pool
	outbox *outbox.Repository
	logger *zap.Logger
}

func NewTaskRepository(db *pgxpool.Pool, outboxRepo *outbox.Repository, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{db: db, outbox: outboxRepo, logger: logger}
}

func (r *TaskRepository) Insert(ctx context.Context, t *model.Task) (int, error) {
	r.logger.Debug("Inserting task",
		zap.Int("user_id", t.UserID),
		zap.Int("project_id", t.ProjectID),
		zap.String("name", t.Name),
	)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO tasks (user_id, project_id, deliverable_id, name, description,
                           status, priority, due_date, estimated_hours, completed)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at, updated_at
    `
	err = tx.QueryRow(ctx, query,
		t.UserID,
		t.ProjectID,
		t.DeliverableID,
		t.Name,
		t.Description,
		t.Status,
		t.Priority,
		t.DueDate,
		t.EstimatedHours,
		t.Status == model.TaskCompleted,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		r.logger.Error("Failed to insert task", zap.Error(err))
		return 0, err
	}

	if err := r.recordChange(ctx, tx, t.ID, t.ProjectID, t.UserID, "created"); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	r.logger.Info("Task inserted successfully",
		zap.Int("task_id", t.ID),
		zap.Int("project_id", t.ProjectID),
	)
	return t.ID, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *model.Task) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
        UPDATE tasks
        SET name = $1, description = $2, status = $3, priority = $4,
            deliverable_id = $5, due_date = $6, estimated_hours = $7,
            completed = $8, updated_at = NOW()
        WHERE id = $9 AND user_id = $10
    `
	result, err := tx.Exec(ctx, query,
		t.Name,
		t.Description,
		t.Status,
		t.Priority,
		t.DeliverableID,
		t.DueDate,
		t.EstimatedHours,
		t.Status == model.TaskCompleted,
		t.ID,
		t.UserID,
	)
	if err != nil {
		r.logger.Error("Failed to update task", zap.Error(err), zap.Int("task_id", t.ID))
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if err := r.recordChange(ctx, tx, t.ID, t.ProjectID, t.UserID, "updated"); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	r.logger.Info("Task updated successfully", zap.Int("task_id", t.ID))
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID, taskID int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var projectID int
	err = tx.QueryRow(ctx, `
        DELETE FROM tasks WHERE id = $1 AND user_id = $2
        RETURNING project_id
    `, taskID, userID).Scan(&projectID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return err
		}
		r.logger.Error("Failed to delete task", zap.Error(err), zap.Int("task_id", taskID))
		return err
	}

	if err := r.recordChange(ctx, tx, taskID, projectID, userID, "deleted"); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	r.logger.Info("Task deleted", zap.Int("task_id", taskID), zap.Int("project_id", projectID))
	return nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, userID, projectID int) ([]model.Task, error) {
	query := `
        SELECT id, user_id, project_id, deliverable_id, name, description,
               status, priority, due_date, estimated_hours, completed,
               created_at, updated_at
        FROM tasks
        WHERE project_id = $1 AND user_id = $2
        ORDER BY created_at ASC
    `
	rows, err := r.db.Query(ctx, query, projectID, userID)
	if err != nil {
		r.logger.Error("Failed to query tasks", zap.Error(err), zap.Int("project_id", projectID))
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.ProjectID, &t.DeliverableID, &t.Name,
			&t.Description, &t.Status, &t.Priority, &t.DueDate,
			&t.EstimatedHours, &t.Completed, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			r.logger.Error("Failed to scan task row", zap.Error(err))
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// CompletionCounts returns completed and total task counts for a project,
// the inputs of the progress recomputation.
func (r *TaskRepository) CompletionCounts(ctx context.Context, projectID int) (completed, total int, err error) {
	query := `
        SELECT COUNT(*) FILTER (WHERE completed), COUNT(*)
        FROM tasks
        WHERE project_id = $1
    `
	err = r.db.QueryRow(ctx, query, projectID).Scan(&completed, &total)
	if err != nil {
		r.logger.Error("Failed to count task completion",
			zap.Error(err),
			zap.Int("project_id", projectID),
		)
		return 0, 0, err
	}
	return completed, total, nil
}

func (r *TaskRepository) recordChange(ctx context.Context, tx pgx.Tx, taskID, projectID, userID int, action string) error {
	aggregateID := int64(taskID)
	return outbox.InsertEventInTx(ctx, tx, r.outbox, "task", &aggregateID,
		mq.RoutingKeyTaskChanged,
		contracts.TaskChangedPayload{
			TaskID:    taskID,
			ProjectID: projectID,
			UserID:    userID,
			Action:    action,
		},
	)
}
