package dashboard

import (
	"context"
	"errors"
	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/dto/requests"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubProfiles struct {
	patients int
	err      error
}

func (s *stubProfiles) FindByID(ctx context.Context, id string) (*models.ProfileRecord, error) {
	return nil, nil
}
func (s *stubProfiles) FindByIDs(ctx context.Context, ids []string) ([]models.ProfileRecord, error) {
	return nil, nil
}
func (s *stubProfiles) FindNonAdmin(ctx context.Context) ([]models.ProfileRecord, error) {
	return nil, nil
}
func (s *stubProfiles) FindPatients(ctx context.Context) ([]models.ProfileRecord, error) {
	return nil, nil
}
func (s *stubProfiles) CountPatients(ctx context.Context) (int, error) { return s.patients, s.err }
func (s *stubProfiles) Update(ctx context.Context, id string, request *requests.UpdatePatient) (*models.ProfileRecord, error) {
	return nil, nil
}
func (s *stubProfiles) SetUserType(ctx context.Context, id, userType string) error { return nil }
func (s *stubProfiles) SetAvatarURL(ctx context.Context, id, avatarURL string) error {
	return nil
}

type stubPractitioners struct{ count int }

func (s *stubPractitioners) FindAll(ctx context.Context) ([]models.PractitionerRecord, error) {
	return nil, nil
}
func (s *stubPractitioners) FindUserIDs(ctx context.Context) ([]string, error) { return nil, nil }
func (s *stubPractitioners) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	return false, nil
}
func (s *stubPractitioners) Count(ctx context.Context) (int, error) { return s.count, nil }
func (s *stubPractitioners) Create(ctx context.Context, request *requests.CreatePractitioner) (*models.PractitionerRecord, error) {
	return nil, nil
}
func (s *stubPractitioners) Update(ctx context.Context, id string, request *requests.UpdatePractitioner) (*models.PractitionerRecord, error) {
	return nil, nil
}
func (s *stubPractitioners) Delete(ctx context.Context, id string) error { return nil }

type stubCenters struct{ count int }

func (s *stubCenters) FindAll(ctx context.Context) ([]models.HealthCenter, error) { return nil, nil }
func (s *stubCenters) Count(ctx context.Context) (int, error)                     { return s.count, nil }
func (s *stubCenters) Create(ctx context.Context, request *requests.HealthCenter, createdBy string) (*models.HealthCenter, error) {
	return nil, nil
}
func (s *stubCenters) Update(ctx context.Context, id string, request *requests.HealthCenter) (*models.HealthCenter, error) {
	return nil, nil
}
func (s *stubCenters) Delete(ctx context.Context, id string) error { return nil }

type countingAppointments struct {
	mu       sync.Mutex
	byStatus map[string]int
	filters  []models.AppointmentFilters
}

func (a *countingAppointments) List(ctx context.Context, filters models.AppointmentFilters) []models.Appointment {
	return nil
}
func (a *countingAppointments) Count(ctx context.Context, filters models.AppointmentFilters) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.filters = append(a.filters, filters)
	if filters.Status == "" {
		total := 0
		for _, n := range a.byStatus {
			total += n
		}
		return total
	}
	return a.byStatus[filters.Status]
}
func (a *countingAppointments) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) bool {
	return false
}
func (a *countingAppointments) Delete(ctx context.Context, id string) bool { return false }
func (a *countingAppointments) Create(ctx context.Context, appointment models.NewAppointment) *models.AppointmentRecord {
	return nil
}
func (a *countingAppointments) StatusPresentation(status string) models.AppointmentStatusPresentation {
	return models.AppointmentStatusPresentation{}
}
func (a *countingAppointments) StatusCatalog() []models.AppointmentStatusPresentation { return nil }

func TestStatsCountsEverything(t *testing.T) {
	appointments := &countingAppointments{byStatus: map[string]int{"scheduled": 4, "completed": 2}}

	stats, err := NewDashboardUsecase(&stubProfiles{patients: 12}, &stubPractitioners{count: 3}, &stubCenters{count: 2}, appointments, zap.NewNop()).
		Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalPatients)
	assert.Equal(t, 3, stats.TotalPractitioners)
	assert.Equal(t, 2, stats.TotalCenters)
	assert.Equal(t, 6, stats.TotalAppointments)
	assert.Equal(t, 4, stats.AppointmentsByStatus[models.AppointmentStatusScheduled])
	assert.Equal(t, 0, stats.AppointmentsByStatus[models.AppointmentStatusNoShow])
	assert.Len(t, stats.AppointmentsByStatus, len(models.AppointmentStatuses))
	assert.Len(t, appointments.filters, len(models.AppointmentStatuses)+1)
}

func TestStatsFailsOnRepositoryError(t *testing.T) {
	_, err := NewDashboardUsecase(&stubProfiles{err: errors.New("boom")}, &stubPractitioners{}, &stubCenters{}, &countingAppointments{}, zap.NewNop()).
		Stats(context.Background())

	assert.Error(t, err)
}
