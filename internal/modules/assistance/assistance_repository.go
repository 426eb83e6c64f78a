package assistance

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"truckpro/internal/models"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const assistanceColumns = `id, truck_id, driver, issue_type, description, status, created_at, updated_at`

func scanRequest(row pgx.Row) (*models.AssistanceRequest, error) {
	var a models.AssistanceRequest
	err := row.Scan(&a.ID, &a.TruckID, &a.Driver, &a.IssueType, &a.Description, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new assistance request.
func (r *Repository) Create(ctx context.Context, a *models.AssistanceRequest) (*models.AssistanceRequest, error) {
	query := `
		INSERT INTO assistance_requests (id, truck_id, driver, issue_type, description, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + assistanceColumns

	created, err := scanRequest(r.db.QueryRow(ctx, query, a.ID, a.TruckID, a.Driver, a.IssueType, a.Description, a.Status))
	if err != nil {
		return nil, fmt.Errorf("repository.Create: %w", err)
	}
	return created, nil
}

// FindByID fetches one assistance request.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.AssistanceRequest, error) {
	query := `SELECT ` + assistanceColumns + ` FROM assistance_requests WHERE id = $1`

	a, err := scanRequest(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByID: %w", err)
	}
	return a, nil
}

// List returns assistance requests newest first, optionally for one truck.
func (r *Repository) List(ctx context.Context, truckID string, page, limit int) ([]models.AssistanceRequest, error) {
	query := `SELECT ` + assistanceColumns + ` FROM assistance_requests
		WHERE ($1 = '' OR truck_id = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, truckID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("repository.List: %w", err)
	}
	defer rows.Close()

	var requests []models.AssistanceRequest
	for rows.Next() {
		a, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.List: scan: %w", err)
		}
		requests = append(requests, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.List: %w", err)
	}
	return requests, nil
}

// UpdateStatus moves a request to a new status.
func (r *Repository) UpdateStatus(ctx context.Context, id, status string) (*models.AssistanceRequest, error) {
	query := `UPDATE assistance_requests SET status = $2, updated_at = NOW() WHERE id = $1
		RETURNING ` + assistanceColumns

	a, err := scanRequest(r.db.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateStatus: %w", err)
	}
	return a, nil
}
