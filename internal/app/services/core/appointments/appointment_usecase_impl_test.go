package appointments

import (
	"context"
	"errors"
	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/utils"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) FindAll(ctx context.Context, filters models.AppointmentFilters) ([]models.Appointment, error) {
	args := m.Called(ctx, filters)
	appointments, _ := args.Get(0).([]models.Appointment)
	return appointments, args.Error(1)
}

func (m *MockAppointmentRepository) Count(ctx context.Context, filters models.AppointmentFilters) (int, error) {
	args := m.Called(ctx, filters)
	return args.Int(0), args.Error(1)
}

func (m *MockAppointmentRepository) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockAppointmentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAppointmentRepository) Create(ctx context.Context, appointment models.NewAppointment) (*models.AppointmentRecord, error) {
	args := m.Called(ctx, appointment)
	record, _ := args.Get(0).(*models.AppointmentRecord)
	return record, args.Error(1)
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []models.Notification
}

func (n *recordingNotifier) add(level models.NotificationLevel, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, models.Notification{Level: level, Message: message})
}

func (n *recordingNotifier) Success(ctx context.Context, message string) {
	n.add(models.NotificationSuccess, message)
}
func (n *recordingNotifier) Error(ctx context.Context, message string) {
	n.add(models.NotificationError, message)
}
func (n *recordingNotifier) Info(ctx context.Context, message string) {
	n.add(models.NotificationInfo, message)
}
func (n *recordingNotifier) Drain(ctx context.Context, sessionID string) ([]models.Notification, error) {
	return nil, nil
}

type recordingPublisher struct {
	events []models.AppointmentEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event models.AppointmentEvent) error {
	p.events = append(p.events, event)
	return p.err
}

type auditEntry struct {
	action   string
	entity   string
	entityID string
}

type recordingAudit struct {
	entries []auditEntry
}

func (a *recordingAudit) Record(ctx context.Context, action, entity, entityID string, metadata map[string]interface{}) {
	a.entries = append(a.entries, auditEntry{action: action, entity: entity, entityID: entityID})
}

func (a *recordingAudit) Close(ctx context.Context) error { return nil }

type usecaseFixture struct {
	repo      *MockAppointmentRepository
	notifier  *recordingNotifier
	publisher *recordingPublisher
	audit     *recordingAudit
	usecase   *appointmentUsecase
}

func newUsecaseFixture() *usecaseFixture {
	f := &usecaseFixture{
		repo:      new(MockAppointmentRepository),
		notifier:  &recordingNotifier{},
		publisher: &recordingPublisher{},
		audit:     &recordingAudit{},
	}
	f.usecase = NewAppointmentUsecase(f.repo, f.notifier, f.publisher, f.audit, zap.NewNop()).(*appointmentUsecase)
	f.usecase.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	return f
}

func TestListReturnsEmptyListOnFailure(t *testing.T) {
	f := newUsecaseFixture()
	filters := models.AppointmentFilters{Status: "confirmed"}
	f.repo.On("FindAll", mock.Anything, filters).Return(nil, errors.New("platform down"))

	result := f.usecase.List(context.Background(), filters)

	assert.NotNil(t, result)
	assert.Empty(t, result)
	require.Len(t, f.notifier.messages, 1)
	assert.Equal(t, models.NotificationError, f.notifier.messages[0].Level)
	assert.Equal(t, constvars.NotifyAppointmentsFetchFailed, f.notifier.messages[0].Message)
}

func TestListPassesRowsThrough(t *testing.T) {
	f := newUsecaseFixture()
	rows := []models.Appointment{{ID: "A1"}, {ID: "A2"}}
	f.repo.On("FindAll", mock.Anything, models.AppointmentFilters{}).Return(rows, nil)

	assert.Equal(t, rows, f.usecase.List(context.Background(), models.AppointmentFilters{}))
	assert.Empty(t, f.notifier.messages)
}

func TestCountReturnsZeroOnFailure(t *testing.T) {
	f := newUsecaseFixture()
	f.repo.On("Count", mock.Anything, mock.Anything).Return(0, errors.New("timeout"))

	assert.Equal(t, 0, f.usecase.Count(context.Background(), models.AppointmentFilters{}))
	assert.Len(t, f.notifier.messages, 1)
}

func TestUpdateStatusPublishesAndAudits(t *testing.T) {
	f := newUsecaseFixture()
	ctx := utils.WithSubjectID(context.Background(), "admin-1")
	f.repo.On("UpdateStatus", mock.Anything, "A1", models.AppointmentStatusCompleted).Return(nil)

	ok := f.usecase.UpdateStatus(ctx, "A1", models.AppointmentStatusCompleted)

	assert.True(t, ok)
	require.Len(t, f.publisher.events, 1)
	event := f.publisher.events[0]
	assert.Equal(t, constvars.AppointmentEventStatusChange, event.Type)
	assert.Equal(t, "A1", event.AppointmentID)
	assert.Equal(t, models.AppointmentStatusCompleted, event.Status)
	assert.Equal(t, "admin-1", event.ActorID)
	assert.NotEmpty(t, event.ID)
	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, auditEntry{constvars.AppointmentEventStatusChange, constvars.TableAppointments, "A1"}, f.audit.entries[0])
	assert.Equal(t, constvars.NotifyStatusUpdated, f.notifier.messages[0].Message)
}

func TestUpdateStatusAllowsAnyTransition(t *testing.T) {
	f := newUsecaseFixture()
	f.repo.On("UpdateStatus", mock.Anything, "A1", models.AppointmentStatusScheduled).Return(nil)

	assert.True(t, f.usecase.UpdateStatus(context.Background(), "A1", models.AppointmentStatusScheduled))
}

func TestUpdateStatusFailureReturnsFalse(t *testing.T) {
	f := newUsecaseFixture()
	f.repo.On("UpdateStatus", mock.Anything, "A1", models.AppointmentStatusConfirmed).Return(errors.New("rls denied"))

	assert.False(t, f.usecase.UpdateStatus(context.Background(), "A1", models.AppointmentStatusConfirmed))
	assert.Empty(t, f.publisher.events)
	assert.Empty(t, f.audit.entries)
	assert.Equal(t, constvars.NotifyStatusUpdateFailed, f.notifier.messages[0].Message)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := newUsecaseFixture()

	assert.False(t, f.usecase.UpdateStatus(context.Background(), "A1", models.AppointmentStatus("archived")))
	f.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	f := newUsecaseFixture()
	f.publisher.err = errors.New("broker gone")
	f.repo.On("Delete", mock.Anything, "A1").Return(nil)

	assert.True(t, f.usecase.Delete(context.Background(), "A1"))
	assert.Len(t, f.audit.entries, 1)
	assert.Equal(t, constvars.NotifyAppointmentDeleted, f.notifier.messages[0].Message)
}

func TestDeleteFailureReturnsFalse(t *testing.T) {
	f := newUsecaseFixture()
	f.repo.On("Delete", mock.Anything, "A1").Return(errors.New("not found"))

	assert.False(t, f.usecase.Delete(context.Background(), "A1"))
	assert.Equal(t, constvars.NotifyAppointmentDeleteFailed, f.notifier.messages[0].Message)
}

func TestCreateRejectsInvertedTimeRange(t *testing.T) {
	f := newUsecaseFixture()
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	record := f.usecase.Create(context.Background(), models.NewAppointment{StartTime: start, EndTime: start})

	assert.Nil(t, record)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Equal(t, constvars.NotifyAppointmentCreateFailed, f.notifier.messages[0].Message)
}

func TestCreateDefaultsStatusAndCreator(t *testing.T) {
	f := newUsecaseFixture()
	ctx := utils.WithSubjectID(context.Background(), "admin-1")
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	input := models.NewAppointment{StartTime: start, EndTime: start.Add(30 * time.Minute), PatientID: "p", PractitionerID: "d", CenterID: "c"}

	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(a models.NewAppointment) bool {
		return a.Status == models.AppointmentStatusScheduled && a.CreatedBy != nil && *a.CreatedBy == "admin-1"
	})).Return(&models.AppointmentRecord{ID: "A9", Status: models.AppointmentStatusScheduled}, nil)

	record := f.usecase.Create(ctx, input)

	require.NotNil(t, record)
	assert.Equal(t, "A9", record.ID)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, constvars.AppointmentEventCreated, f.publisher.events[0].Type)
	f.repo.AssertExpectations(t)
}
