package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"zzpboard/internal/model"
)

type DeliverableRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewDeliverableRepository(db *pgxpool.Pool, logger *zap.Logger) *DeliverableRepository {
	return &DeliverableRepository{db: db, logger: logger}
}

func (r *DeliverableRepository) ListByProject(ctx context.Context, projectID int) ([]model.Deliverable, error) {
	query := `
        SELECT id, project_id, name, description, created_at
        FROM deliverables
        WHERE project_id = $1
        ORDER BY created_at ASC
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		r.logger.Error("Failed to query deliverables", zap.Error(err), zap.Int("project_id", projectID))
		return nil, err
	}
	defer rows.Close()

	deliverables := []model.Deliverable{}
	for rows.Next() {
		var d model.Deliverable
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.Name, &d.Description, &d.CreatedAt); err != nil {
			r.logger.Error("Failed to scan deliverable row", zap.Error(err))
			return nil, err
		}
		deliverables = append(deliverables, d)
	}
	return deliverables, rows.Err()
}

func (r *DeliverableRepository) Insert(ctx context.Context, d *model.Deliverable) (int, error) {
	query := `
        INSERT INTO deliverables (project_id, name, description)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, d.ProjectID, d.Name, d.Description).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert deliverable", zap.Error(err))
		return 0, err
	}

	r.logger.Info("Deliverable inserted successfully",
		zap.Int("id", d.ID),
		zap.Int("project_id", d.ProjectID),
	)
	return d.ID, nil
}
