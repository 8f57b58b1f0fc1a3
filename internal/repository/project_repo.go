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

type ProjectRepository struct {
	db     *pgxpool.Pool
	outbox *outbox.Repository
	logger *zap.Logger
}

func NewProjectRepository(db *pgxpool.Pool, outboxRepo *outbox.Repository, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{
		db:     db,
		outbox: outboxRepo,
		logger: logger,
	}
}

const projectColumns = `
	p.id, p.user_id, p.name, p.description, p.status, p.priority,
	p.client_id, p.budget, p.hourly_rate, p.start_date, p.end_date,
	p.progress, p.created_at, p.updated_at
`

func scanProject(row pgx.Row) (*model.Project, error) {
	var p model.Project
	var clientID *int
	var clientName, clientEmail, clientCompany *string
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Description,
		&p.Status,
		&p.Priority,
		&p.ClientID,
		&p.Budget,
		&p.HourlyRate,
		&p.StartDate,
		&p.EndDate,
		&p.Progress,
		&p.CreatedAt,
		&p.UpdatedAt,
		&clientID,
		&clientName,
		&clientEmail,
		&clientCompany,
	)
	if err != nil {
		return nil, err
	}
	if clientID != nil {
		c := model.Client{ID: *clientID, Active: true}
		if clientName != nil {
			c.Name = *clientName
		}
		if clientEmail != nil {
			c.Email = *clientEmail
		}
		if clientCompany != nil {
			c.Company = *clientCompany
		}
		p.Client = &c
	}
	return &p, nil
}

// List returns the user's projects with nested client, tasks and deliverables.
func (r *ProjectRepository) List(ctx context.Context, userID int) ([]model.Project, error) {
	r.logger.Debug("Listing projects", zap.Int("user_id", userID))

	query := `
        SELECT ` + projectColumns + `,
               c.id, c.name, c.email, c.company
        FROM projects p
        LEFT JOIN clients c ON c.id = p.client_id
        WHERE p.user_id = $1
        ORDER BY p.created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to query projects", zap.Error(err), zap.Int("user_id", userID))
		return nil, err
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			r.logger.Error("Failed to scan project row", zap.Error(err))
			return nil, err
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachTasksAndDeliverables(ctx, projects); err != nil {
		return nil, err
	}

	r.logger.Info("Projects listed successfully",
		zap.Int("user_id", userID),
		zap.Int("count", len(projects)),
	)
	return projects, nil
}

func (r *ProjectRepository) attachTasksAndDeliverables(ctx context.Context, projects []model.Project) error {
	if len(projects) == 0 {
		return nil
	}

	index := make(map[int]*model.Project, len(projects))
	ids := make([]int, 0, len(projects))
	for i := range projects {
		index[projects[i].ID] = &projects[i]
		ids = append(ids, projects[i].ID)
	}

	taskRows, err := r.db.Query(ctx, `
        SELECT id, user_id, project_id, deliverable_id, name, description,
               status, priority, due_date, estimated_hours, completed,
               created_at, updated_at
        FROM tasks
        WHERE project_id = ANY($1)
        ORDER BY created_at ASC
    `, ids)
	if err != nil {
		r.logger.Error("Failed to query tasks for projects", zap.Error(err))
		return err
	}
	defer taskRows.Close()

	for taskRows.Next() {
		var t model.Task
		if err := taskRows.Scan(
			&t.ID, &t.UserID, &t.ProjectID, &t.DeliverableID, &t.Name,
			&t.Description, &t.Status, &t.Priority, &t.DueDate,
			&t.EstimatedHours, &t.Completed, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return err
		}
		if p, ok := index[t.ProjectID]; ok {
			p.Tasks = append(p.Tasks, t)
		}
	}
	if err := taskRows.Err(); err != nil {
		return err
	}

	delRows, err := r.db.Query(ctx, `
        SELECT id, project_id, name, description, created_at
        FROM deliverables
        WHERE project_id = ANY($1)
        ORDER BY created_at ASC
    `, ids)
	if err != nil {
		r.logger.Error("Failed to query deliverables for projects", zap.Error(err))
		return err
	}
	defer delRows.Close()

	for delRows.Next() {
		var d model.Deliverable
		if err := delRows.Scan(&d.ID, &d.ProjectID, &d.Name, &d.Description, &d.CreatedAt); err != nil {
			return err
		}
		if p, ok := index[d.ProjectID]; ok {
			p.Deliverables = append(p.Deliverables, d)
		}
	}
	return delRows.Err()
}

// GetByID returns one project with nested client, tasks, deliverables and
// activities.
func (r *ProjectRepository) GetByID(ctx context.Context, userID, projectID int) (*model.Project, error) {
	query := `
        SELECT ` + projectColumns + `,
               c.id, c.name, c.email, c.company
        FROM projects p
        LEFT JOIN clients c ON c.id = p.client_id
        WHERE p.id = $1 AND p.user_id = $2
    `
	p, err := scanProject(r.db.QueryRow(ctx, query, projectID, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		r.logger.Error("Failed to get project",
			zap.Error(err),
			zap.Int("project_id", projectID),
		)
		return nil, err
	}

	projects := []model.Project{*p}
	if err := r.attachTasksAndDeliverables(ctx, projects); err != nil {
		return nil, err
	}
	result := projects[0]

	actRows, err := r.db.Query(ctx, `
        SELECT id, user_id, project_id, task_id, type, title, description,
               hours, hourly_rate, amount, activity_date, created_at
        FROM activities
        WHERE project_id = $1
        ORDER BY created_at DESC
    `, projectID)
	if err != nil {
		r.logger.Error("Failed to query project activities", zap.Error(err))
		return nil, err
	}
	defer actRows.Close()

	for actRows.Next() {
		var a model.Activity
		if err := actRows.Scan(
			&a.ID, &a.UserID, &a.ProjectID, &a.TaskID, &a.Type, &a.Title,
			&a.Description, &a.Hours, &a.HourlyRate, &a.Amount,
			&a.ActivityDate, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		result.Activities = append(result.Activities, a)
	}
	if err := actRows.Err(); err != nil {
		return nil, err
	}

	return &result, nil
}

// Insert creates a project and records the change event in one transaction.
func (r *ProjectRepository) Insert(ctx context.Context, p *model.Project) (int, error) {
	r.logger.Debug("Inserting project",
		zap.Int("user_id", p.UserID),
		zap.String("name", p.Name),
	)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO projects (user_id, name, description, status, priority,
                              client_id, budget, hourly_rate, start_date, end_date, progress)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0)
        RETURNING id, created_at, updated_at
    `
	err = tx.QueryRow(ctx, query,
		p.UserID,
		p.Name,
		p.Description,
		p.Status,
		p.Priority,
		p.ClientID,
		p.Budget,
		p.HourlyRate,
		p.StartDate,
		p.EndDate,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		r.logger.Error("Failed to insert project", zap.Error(err))
		return 0, err
	}

	if err := r.recordChange(ctx, tx, p.ID, p.UserID, "created"); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	r.logger.Info("Project inserted successfully",
		zap.Int("id", p.ID),
		zap.Int("user_id", p.UserID),
	)
	return p.ID, nil
}

// Update rewrites the editable fields of a project.
func (r *ProjectRepository) Update(ctx context.Context, p *model.Project) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
        UPDATE projects
        SET name = $1, description = $2, status = $3, priority = $4,
            client_id = $5, budget = $6, hourly_rate = $7,
            start_date = $8, end_date = $9, updated_at = NOW()
        WHERE id = $10 AND user_id = $11
    `
	result, err := tx.Exec(ctx, query,
		p.Name,
		p.Description,
		p.Status,
		p.Priority,
		p.ClientID,
		p.Budget,
		p.HourlyRate,
		p.StartDate,
		p.EndDate,
		p.ID,
		p.UserID,
	)
	if err != nil {
		r.logger.Error("Failed to update project", zap.Error(err), zap.Int("project_id", p.ID))
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if err := r.recordChange(ctx, tx, p.ID, p.UserID, "updated"); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	r.logger.Info("Project updated successfully", zap.Int("project_id", p.ID))
	return nil
}

// UpdateStatus changes only the status of a project.
func (r *ProjectRepository) UpdateStatus(ctx context.Context, userID, projectID int, status model.ProjectStatus) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
        UPDATE projects SET status = $1, updated_at = NOW()
        WHERE id = $2 AND user_id = $3
    `, status, projectID, userID)
	if err != nil {
		r.logger.Error("Failed to update project status",
			zap.Error(err),
			zap.Int("project_id", projectID),
		)
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if err := r.recordChange(ctx, tx, projectID, userID, "status_changed"); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	r.logger.Info("Project status updated",
		zap.Int("project_id", projectID),
		zap.String("status", string(status)),
	)
	return nil
}

// UpdateProgress writes the recomputed progress percentage. Called by the
// worker after task changes, never from user input.
func (r *ProjectRepository) UpdateProgress(ctx context.Context, projectID, progress int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var userID int
	err = tx.QueryRow(ctx, `
        UPDATE projects SET progress = $1, updated_at = NOW()
        WHERE id = $2
        RETURNING user_id
    `, progress, projectID).Scan(&userID)
	if err != nil {
		r.logger.Error("Failed to update project progress",
			zap.Error(err),
			zap.Int("project_id", projectID),
		)
		return err
	}

	if err := r.recordChange(ctx, tx, projectID, userID, "progress_changed"); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	r.logger.Info("Project progress updated",
		zap.Int("project_id", projectID),
		zap.Int("progress", progress),
	)
	return nil
}

// Delete removes a project; tasks, deliverables and activities go with it
// via ON DELETE CASCADE.
func (r *ProjectRepository) Delete(ctx context.Context, userID, projectID int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
        DELETE FROM projects WHERE id = $1 AND user_id = $2
    `, projectID, userID)
	if err != nil {
		r.logger.Error("Failed to delete project", zap.Error(err), zap.Int("project_id", projectID))
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if err := r.recordChange(ctx, tx, projectID, userID, "deleted"); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	r.logger.Info("Project deleted", zap.Int("project_id", projectID))
	return nil
}

func (r *ProjectRepository) recordChange(ctx context.Context, tx pgx.Tx, projectID, userID int, action string) error {
	aggregateID := int64(projectID)
	return outbox.InsertEventInTx(ctx, tx, r.outbox, "project", &aggregateID,
		mq.RoutingKeyProjectChanged,
		contracts.ProjectChangedPayload{
			ProjectID: projectID,
			UserID:    userID,
			Action:    action,
		},
	)
}
