package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truckpro/internal/models"
)

// fakeRepo keeps bookings in memory for service tests.
type fakeRepo struct {
	bookings  map[string]*models.Booking
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[string]*models.Booking)}
}

func (f *fakeRepo) Create(_ context.Context, b *models.Booking) (*models.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	stored := *b
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.bookings[b.ID] = &stored
	return &stored, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return b, nil
}

func (f *fakeRepo) List(_ context.Context, shipperName, status string, _, _ int) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if shipperName != "" && b.ShipperName != shipperName {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id, status string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	return b, nil
}

// recordingMailer captures sends and can be told to fail.
type recordingMailer struct {
	sent []string
	err  error
}

func (m *recordingMailer) Send(_ context.Context, to, _, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func validCreateRequest() models.CreateBookingRequest {
	return models.CreateBookingRequest{
		Pickup:      "Pune",
		Drop:        "Nagpur",
		LoadTonnes:  5.5,
		BookingDate: "2026-09-01",
		BookingTime: "09:30",
		GoodsType:   "Electronics",
		TruckID:     "TRK-001",
	}
}

func TestCreateBookingPricesFromForm(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &recordingMailer{}, quietLogger())

	created, err := svc.Create(context.Background(), "acme", validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusPending, created.Status)
	assert.Equal(t, "acme", created.ShipperName)
	assert.InDelta(t, FormEstimate(5.5), created.CalculatedPrice, 1e-9)
	assert.Regexp(t, `^BK-[0-9A-F]{8}$`, created.ID)
	assert.False(t, created.DistanceKm.Valid)
}

func TestCreateBookingWithDistanceUsesTripRate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &recordingMailer{}, quietLogger())

	req := validCreateRequest()
	distance := 320.0
	req.DistanceKm = &distance

	created, err := svc.Create(context.Background(), "acme", req)
	require.NoError(t, err)
	assert.InDelta(t, TripRate(5.5, 320), created.CalculatedPrice, 1e-9)
	assert.Equal(t, 320.0, created.DistanceKm.Float64)
}

func TestCreateBookingSendsConfirmation(t *testing.T) {
	repo := newFakeRepo()
	mailer := &recordingMailer{}
	svc := NewService(repo, mailer, quietLogger())

	req := validCreateRequest()
	req.ContactEmail = "ops@acme.example.com"

	_, err := svc.Create(context.Background(), "acme", req)
	require.NoError(t, err)
	assert.Equal(t, []string{"ops@acme.example.com"}, mailer.sent)
}

func TestCreateBookingSurvivesMailFailure(t *testing.T) {
	repo := newFakeRepo()
	mailer := &recordingMailer{err: errors.New("ses down")}
	svc := NewService(repo, mailer, quietLogger())

	req := validCreateRequest()
	req.ContactEmail = "ops@acme.example.com"

	created, err := svc.Create(context.Background(), "acme", req)
	require.NoError(t, err, "mail failure must not fail the booking")
	assert.NotNil(t, created)
}

func TestGetEnforcesShipperOwnership(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &recordingMailer{}, quietLogger())

	created, err := svc.Create(context.Background(), "acme", validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), created.ID, "other-shipper")
	assert.ErrorIs(t, err, models.ErrNotFound)

	got, err := svc.Get(context.Background(), created.ID, "acme")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestUpdateStatusLifecycle(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &recordingMailer{}, quietLogger())

	created, err := svc.Create(context.Background(), "acme", validCreateRequest())
	require.NoError(t, err)

	for _, status := range []string{
		models.BookingStatusAccepted,
		models.BookingStatusActive,
		models.BookingStatusCompleted,
	} {
		updated, err := svc.UpdateStatus(context.Background(), created.ID, status)
		require.NoError(t, err, "transition to %s", status)
		assert.Equal(t, status, updated.Status)
	}
}

func TestUpdateStatusRejectsInvalidTransitions(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &recordingMailer{}, quietLogger())

	created, err := svc.Create(context.Background(), "acme", validCreateRequest())
	require.NoError(t, err)

	// Straight from pending to completed skips the lifecycle.
	_, err = svc.UpdateStatus(context.Background(), created.ID, models.BookingStatusCompleted)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	// A rejected booking is terminal.
	_, err = svc.UpdateStatus(context.Background(), created.ID, models.BookingStatusRejected)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), created.ID, models.BookingStatusActive)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestBillingListsOnlyCompleted(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &recordingMailer{}, quietLogger())

	first, err := svc.Create(context.Background(), "acme", validCreateRequest())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "acme", validCreateRequest())
	require.NoError(t, err)

	for _, status := range []string{models.BookingStatusAccepted, models.BookingStatusActive, models.BookingStatusCompleted} {
		_, err = svc.UpdateStatus(context.Background(), first.ID, status)
		require.NoError(t, err)
	}

	billable, err := svc.Billing(context.Background(), "acme", 1, 20)
	require.NoError(t, err)
	require.Len(t, billable, 1)
	assert.Equal(t, first.ID, billable[0].ID)
}
