package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"zzpboard/internal/model"
)

type ClientRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewClientRepository(db *pgxpool.Pool, logger *zap.Logger) *ClientRepository {
	return &ClientRepository{db: db, logger: logger}
}

// ListActive returns the user's active clients.
func (r *ClientRepository) ListActive(ctx context.Context, userID int) ([]model.Client, error) {
	r.logger.Debug("Listing active clients", zap.Int("user_id", userID))

	query := `
        SELECT id, user_id, name, email, phone, company, address, notes, active, created_at
        FROM clients
        WHERE user_id = $1 AND active = TRUE
        ORDER BY name ASC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to query clients", zap.Error(err), zap.Int("user_id", userID))
		return nil, err
	}
	defer rows.Close()

	clients := []model.Client{}
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.Name,
			&c.Email,
			&c.Phone,
			&c.Company,
			&c.Address,
			&c.Notes,
			&c.Active,
			&c.CreatedAt,
		); err != nil {
			r.logger.Error("Failed to scan client row", zap.Error(err))
			return nil, err
		}
		clients = append(clients, c)
	}

	r.logger.Info("Clients listed successfully",
		zap.Int("user_id", userID),
		zap.Int("count", len(clients)),
	)
	return clients, rows.Err()
}

func (r *ClientRepository) Insert(ctx context.Context, c *model.Client) (int, error) {
	r.logger.Debug("Inserting client",
		zap.Int("user_id", c.UserID),
		zap.String("name", c.Name),
	)

	query := `
        INSERT INTO clients (user_id, name, email, phone, company, address, notes, active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		c.UserID,
		c.Name,
		c.Email,
		c.Phone,
		c.Company,
		c.Address,
		c.Notes,
	).Scan(&c.ID, &c.CreatedAt)

	if err != nil {
		r.logger.Error("Failed to insert client", zap.Error(err))
		return 0, err
	}

	r.logger.Info("Client inserted successfully",
		zap.Int("id", c.ID),
		zap.Int("user_id", c.UserID),
	)
	return c.ID, nil
}
