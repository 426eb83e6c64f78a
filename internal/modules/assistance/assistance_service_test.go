package assistance

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

type fakeRepo struct {
	requests map[string]*models.AssistanceRequest
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{requests: make(map[string]*models.AssistanceRequest)}
}

func (f *fakeRepo) Create(_ context.Context, a *models.AssistanceRequest) (*models.AssistanceRequest, error) {
	stored := *a
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.requests[a.ID] = &stored
	return &stored, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*models.AssistanceRequest, error) {
	a, ok := f.requests[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return a, nil
}

func (f *fakeRepo) List(_ context.Context, truckID string, _, _ int) ([]models.AssistanceRequest, error) {
	var out []models.AssistanceRequest
	for _, a := range f.requests {
		if truckID != "" && a.TruckID != truckID {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id, status string) (*models.AssistanceRequest, error) {
	a, ok := f.requests[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	a.Status = status
	return a, nil
}

type fakeDrivers struct{}

func (fakeDrivers) DriverName(truckID string) string {
	if truckID == "TRK-001" {
		return "Asha"
	}
	return "Unknown Driver"
}

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

func newTestService(mailer *recordingMailer) *Service {
	return NewService(newFakeRepo(), fakeDrivers{}, mailer, "fleet-ops@truckpro.example.com", quietLogger())
}

func TestCreateResolvesDriverFromTelemetry(t *testing.T) {
	svc := newTestService(&recordingMailer{})

	created, err := svc.Create(context.Background(), models.CreateAssistanceRequest{
		TruckID:     "TRK-001",
		IssueType:   "engine",
		Description: "Smoke from the hood near mile marker 42",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha", created.Driver)
	assert.Equal(t, models.AssistanceStatusPending, created.Status)
	assert.Regexp(t, `^REQ-[0-9A-F]{8}$`, created.ID)
}

func TestDispatchSendsNotification(t *testing.T) {
	mailer := &recordingMailer{}
	svc := newTestService(mailer)

	created, err := svc.Create(context.Background(), models.CreateAssistanceRequest{
		TruckID:     "TRK-001",
		IssueType:   "tire",
		Description: "Front left blowout",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), created.ID, models.AssistanceStatusDispatched)
	require.NoError(t, err)
	assert.Equal(t, models.AssistanceStatusDispatched, updated.Status)
	assert.Equal(t, []string{"fleet-ops@truckpro.example.com"}, mailer.sent)
}

func TestDispatchSurvivesMailFailure(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("ses down")}
	svc := newTestService(mailer)

	created, err := svc.Create(context.Background(), models.CreateAssistanceRequest{
		TruckID:     "TRK-001",
		IssueType:   "fuel",
		Description: "Ran dry on the bypass",
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), created.ID, models.AssistanceStatusDispatched)
	assert.NoError(t, err, "mail failure must not fail the dispatch")
}

func TestAssistanceLifecycle(t *testing.T) {
	svc := newTestService(&recordingMailer{})

	created, err := svc.Create(context.Background(), models.CreateAssistanceRequest{
		TruckID:     "TRK-001",
		IssueType:   "breakdown",
		Description: "Transmission slipping badly",
	})
	require.NoError(t, err)

	// pending straight to completed skips dispatch.
	_, err = svc.UpdateStatus(context.Background(), created.ID, models.AssistanceStatusCompleted)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	_, err = svc.UpdateStatus(context.Background(), created.ID, models.AssistanceStatusDispatched)
	require.NoError(t, err)
	updated, err := svc.UpdateStatus(context.Background(), created.ID, models.AssistanceStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.AssistanceStatusCompleted, updated.Status)
}
