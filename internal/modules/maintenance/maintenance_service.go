package maintenance

import (
	"context"
	"fmt"

	"truckpro/internal/models"
	"truckpro/pkg/utils"
)

// MaintenanceRepository is the persistence surface the service needs.
type MaintenanceRepository interface {
	Create(ctx context.Context, m *models.MaintenanceRequest) (*models.MaintenanceRequest, error)
	FindByID(ctx context.Context, id string) (*models.MaintenanceRequest, error)
	List(ctx context.Context, truckID string, page, limit int) ([]models.MaintenanceRequest, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.MaintenanceRequest, error)
}

// AlertSource supplies the live triage rows derived from current telemetry.
type AlertSource interface {
	MaintenanceAlerts() []models.MaintenanceAlert
}

var allowedTransitions = map[string][]string{
	models.MaintenanceStatusPending:   {models.MaintenanceStatusScheduled},
	models.MaintenanceStatusScheduled: {models.MaintenanceStatusCompleted},
}

type Service struct {
	repo   MaintenanceRepository
	alerts AlertSource
}

func NewService(repo MaintenanceRepository, alerts AlertSource) *Service {
	return &Service{repo: repo, alerts: alerts}
}

// Alerts returns the live triage table, most urgent first.
func (s *Service) Alerts() []models.MaintenanceAlert {
	return s.alerts.MaintenanceAlerts()
}

// Schedule records a new maintenance request for a truck.
func (s *Service) Schedule(ctx context.Context, req models.CreateMaintenanceRequest) (*models.MaintenanceRequest, error) {
	m := &models.MaintenanceRequest{
		ID:            utils.NewReference("MNT"),
		TruckID:       req.TruckID,
		Issue:         req.Issue,
		ScheduledDate: req.ScheduledDate,
		Status:        models.MaintenanceStatusPending,
	}
	created, err := s.repo.Create(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("service.Schedule: %w", err)
	}
	return created, nil
}

// List returns recorded maintenance requests, optionally for one truck.
func (s *Service) List(ctx context.Context, truckID string, page, limit int) ([]models.MaintenanceRequest, error) {
	return s.repo.List(ctx, truckID, page, limit)
}

// UpdateStatus applies a lifecycle action after checking the transition.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*models.MaintenanceRequest, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range allowedTransitions[current.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, models.ErrInvalidTransition
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
