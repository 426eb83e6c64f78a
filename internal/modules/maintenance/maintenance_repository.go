package maintenance

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

const maintenanceColumns = `id, truck_id, issue, scheduled_date, status, created_at, updated_at`

func scanRequest(row pgx.Row) (*models.MaintenanceRequest, error) {
	var m models.MaintenanceRequest
	err := row.Scan(&m.ID, &m.TruckID, &m.Issue, &m.ScheduledDate, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new maintenance request.
func (r *Repository) Create(ctx context.Context, m *models.MaintenanceRequest) (*models.MaintenanceRequest, error) {
	query := `
		INSERT INTO maintenance_requests (id, truck_id, issue, scheduled_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + maintenanceColumns

	created, err := scanRequest(r.db.QueryRow(ctx, query, m.ID, m.TruckID, m.Issue, m.ScheduledDate, m.Status))
	if err != nil {
		return nil, fmt.Errorf("repository.Create: %w", err)
	}
	return created, nil
}

// FindByID fetches one maintenance request.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.MaintenanceRequest, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_requests WHERE id = $1`

	m, err := scanRequest(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByID: %w", err)
	}
	return m, nil
}

// List returns maintenance requests newest first, optionally filtered by
// truck.
func (r *Repository) List(ctx context.Context, truckID string, page, limit int) ([]models.MaintenanceRequest, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_requests
		WHERE ($1 = '' OR truck_id = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, truckID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("repository.List: %w", err)
	}
	defer rows.Close()

	var requests []models.MaintenanceRequest
	for rows.Next() {
		m, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.List: scan: %w", err)
		}
		requests = append(requests, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.List: %w", err)
	}
	return requests, nil
}

// UpdateStatus moves a request to a new status.
func (r *Repository) UpdateStatus(ctx context.Context, id, status string) (*models.MaintenanceRequest, error) {
	query := `UPDATE maintenance_requests SET status = $2, updated_at = NOW() WHERE id = $1
		RETURNING ` + maintenanceColumns

	m, err := scanRequest(r.db.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateStatus: %w", err)
	}
	return m, nil
}
