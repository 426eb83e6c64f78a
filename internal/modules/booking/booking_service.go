package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"truckpro/internal/models"
	"truckpro/pkg/email"
	"truckpro/pkg/utils"
)

// BookingRepository is the persistence surface the service needs.
type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) (*models.Booking, error)
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context, shipperName, status string, page, limit int) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error)
}

// allowedTransitions is the booking lifecycle: pending is decided by the
// owner, an accepted booking runs through active to completed.
var allowedTransitions = map[string][]string{
	models.BookingStatusPending:  {models.BookingStatusAccepted, models.BookingStatusRejected},
	models.BookingStatusAccepted: {models.BookingStatusActive},
	models.BookingStatusActive:   {models.BookingStatusCompleted},
}

type Service struct {
	repo   BookingRepository
	mailer email.Sender
	log    logrus.FieldLogger
}

func NewService(repo BookingRepository, mailer email.Sender, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, mailer: mailer, log: log}
}

// Estimate prices a prospective booking without persisting anything.
func (s *Service) Estimate(req models.PriceEstimateRequest) models.PriceEstimateResponse {
	return models.PriceEstimateResponse{EstimatedPrice: Estimate(req.LoadTonnes, req.DistanceKm)}
}

// Create persists a new pending booking priced from the form and sends the
// confirmation email best effort: a mail failure never fails the booking.
func (s *Service) Create(ctx context.Context, shipperName string, req models.CreateBookingRequest) (*models.Booking, error) {
	b := &models.Booking{
		ID:              utils.NewReference("BK"),
		ShipperName:     shipperName,
		Pickup:          req.Pickup,
		Drop:            req.Drop,
		LoadTonnes:      req.LoadTonnes,
		BookingDate:     req.BookingDate,
		BookingTime:     req.BookingTime,
		GoodsType:       req.GoodsType,
		TruckID:         req.TruckID,
		Status:          models.BookingStatusPending,
		CalculatedPrice: Estimate(req.LoadTonnes, req.DistanceKm),
	}
	if req.DistanceKm != nil {
		b.DistanceKm = sql.NullFloat64{Float64: *req.DistanceKm, Valid: true}
	}
	if req.ContactPhone != "" {
		b.ContactPhone = sql.NullString{String: req.ContactPhone, Valid: true}
	}
	if req.ContactEmail != "" {
		b.ContactEmail = sql.NullString{String: req.ContactEmail, Valid: true}
	}
	if req.Notes != "" {
		b.Notes = sql.NullString{String: req.Notes, Valid: true}
	}

	created, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("service.Create: %w", err)
	}

	if created.ContactEmail.Valid {
		subject, body := email.BookingConfirmation(created)
		if err := s.mailer.Send(ctx, created.ContactEmail.String, subject, body); err != nil {
			s.log.WithError(err).WithField("booking_id", created.ID).Warn("booking confirmation email failed")
		}
	}
	return created, nil
}

// Get fetches one booking. A shipper may only see their own.
func (s *Service) Get(ctx context.Context, id, shipperName string) (*models.Booking, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shipperName != "" && b.ShipperName != shipperName {
		return nil, models.ErrNotFound
	}
	return b, nil
}

// List returns bookings newest first. An empty shipperName lists the whole
// fleet (owner view), an empty status lists every lifecycle stage.
func (s *Service) List(ctx context.Context, shipperName, status string, page, limit int) ([]models.Booking, error) {
	return s.repo.List(ctx, shipperName, status, page, limit)
}

// Billing returns the completed bookings, which are the billable ones.
func (s *Service) Billing(ctx context.Context, shipperName string, page, limit int) ([]models.Booking, error) {
	return s.repo.List(ctx, shipperName, models.BookingStatusCompleted, page, limit)
}

// UpdateStatus applies an owner lifecycle action after checking the
// transition is allowed from the booking's current status.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error) {
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
