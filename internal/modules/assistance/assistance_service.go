package assistance

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"truckpro/internal/models"
	"truckpro/pkg/email"
	"truckpro/pkg/utils"
)

// AssistanceRepository is the persistence surface the service needs.
type AssistanceRepository interface {
	Create(ctx context.Context, a *models.AssistanceRequest) (*models.AssistanceRequest, error)
	FindByID(ctx context.Context, id string) (*models.AssistanceRequest, error)
	List(ctx context.Context, truckID string, page, limit int) ([]models.AssistanceRequest, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.AssistanceRequest, error)
}

// DriverResolver maps a truck to the driver currently running it.
type DriverResolver interface {
	DriverName(truckID string) string
}

var allowedTransitions = map[string][]string{
	models.AssistanceStatusPending:    {models.AssistanceStatusDispatched},
	models.AssistanceStatusDispatched: {models.AssistanceStatusCompleted},
}

type Service struct {
	repo    AssistanceRepository
	drivers DriverResolver
	mailer  email.Sender
	opsAddr string
	log     logrus.FieldLogger
}

// NewService wires the assistance workflow. opsAddr receives the dispatch
// notification; an empty address disables it.
func NewService(repo AssistanceRepository, drivers DriverResolver, mailer email.Sender, opsAddr string, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, drivers: drivers, mailer: mailer, opsAddr: opsAddr, log: log}
}

// Create records a new assistance request. The driver is resolved from live
// telemetry, so the form never has to claim one.
func (s *Service) Create(ctx context.Context, req models.CreateAssistanceRequest) (*models.AssistanceRequest, error) {
	a := &models.AssistanceRequest{
		ID:          utils.NewReference("REQ"),
		TruckID:     req.TruckID,
		Driver:      s.drivers.DriverName(req.TruckID),
		IssueType:   req.IssueType,
		Description: req.Description,
		Status:      models.AssistanceStatusPending,
	}
	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("service.Create: %w", err)
	}
	return created, nil
}

// List returns assistance requests, optionally for one truck.
func (s *Service) List(ctx context.Context, truckID string, page, limit int) ([]models.AssistanceRequest, error) {
	return s.repo.List(ctx, truckID, page, limit)
}

// UpdateStatus applies a lifecycle action. Moving to dispatched sends the
// notification email best effort.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*models.AssistanceRequest, error) {
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

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	if status == models.AssistanceStatusDispatched && s.opsAddr != "" {
		subject, body := email.AssistanceDispatch(updated)
		if err := s.mailer.Send(ctx, s.opsAddr, subject, body); err != nil {
			s.log.WithError(err).WithField("request_id", updated.ID).Warn("assistance dispatch email failed")
		}
	}
	return updated, nil
}
