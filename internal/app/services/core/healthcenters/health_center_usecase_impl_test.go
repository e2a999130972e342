package healthcenters

import (
	"context"
	"medisync-service/internal/app/models"
	"medisync-service/internal/app/services/platform/rest"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/dto/requests"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/utils"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockHealthCenterRepository struct {
	mock.Mock
}

func (m *MockHealthCenterRepository) FindAll(ctx context.Context) ([]models.HealthCenter, error) {
	args := m.Called(ctx)
	centers, _ := args.Get(0).([]models.HealthCenter)
	return centers, args.Error(1)
}

func (m *MockHealthCenterRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockHealthCenterRepository) Create(ctx context.Context, request *requests.HealthCenter, createdBy string) (*models.HealthCenter, error) {
	args := m.Called(ctx, request, createdBy)
	center, _ := args.Get(0).(*models.HealthCenter)
	return center, args.Error(1)
}

func (m *MockHealthCenterRepository) Update(ctx context.Context, id string, request *requests.HealthCenter) (*models.HealthCenter, error) {
	args := m.Called(ctx, id, request)
	center, _ := args.Get(0).(*models.HealthCenter)
	return center, args.Error(1)
}

func (m *MockHealthCenterRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockAffiliationRepository struct {
	mock.Mock
}

func (m *MockAffiliationRepository) FindAll(ctx context.Context) ([]models.PractitionerCenterRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]models.PractitionerCenterRecord)
	return records, args.Error(1)
}

func (m *MockAffiliationRepository) CountByCenter(ctx context.Context, centerID string) (int, error) {
	args := m.Called(ctx, centerID)
	return args.Int(0), args.Error(1)
}

func (m *MockAffiliationRepository) Exists(ctx context.Context, practitionerID, centerID string) (bool, error) {
	args := m.Called(ctx, practitionerID, centerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAffiliationRepository) Create(ctx context.Context, request *requests.CreateAffiliation) (*models.PractitionerCenterRecord, error) {
	args := m.Called(ctx, request)
	record, _ := args.Get(0).(*models.PractitionerCenterRecord)
	return record, args.Error(1)
}

func (m *MockAffiliationRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type recordingAudit struct{ actions []string }

func (a *recordingAudit) Record(ctx context.Context, action, entity, entityID string, metadata map[string]interface{}) {
	a.actions = append(a.actions, action)
}
func (a *recordingAudit) Close(ctx context.Context) error { return nil }

func TestDeleteRefusedWhileAffiliated(t *testing.T) {
	centers := new(MockHealthCenterRepository)
	affiliations := new(MockAffiliationRepository)
	affiliations.On("CountByCenter", mock.Anything, "c1").Return(2, nil)
	audit := &recordingAudit{}

	err := NewHealthCenterUsecase(centers, affiliations, audit, zap.NewNop()).Delete(context.Background(), "c1")

	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
	centers.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	assert.Empty(t, audit.actions)
}

func TestDeleteWithoutAffiliations(t *testing.T) {
	centers := new(MockHealthCenterRepository)
	centers.On("Delete", mock.Anything, "c1").Return(nil)
	affiliations := new(MockAffiliationRepository)
	affiliations.On("CountByCenter", mock.Anything, "c1").Return(0, nil)
	audit := &recordingAudit{}

	err := NewHealthCenterUsecase(centers, affiliations, audit, zap.NewNop()).Delete(context.Background(), "c1")

	require.NoError(t, err)
	centers.AssertExpectations(t)
	assert.Equal(t, []string{"health_center.deleted"}, audit.actions)
}

func TestCreatePassesSubjectAsCreator(t *testing.T) {
	centers := new(MockHealthCenterRepository)
	request := &requests.HealthCenter{Name: "Clinique du Parc", Address: "1 rue", City: "Lyon", Country: "France"}
	centers.On("Create", mock.Anything, request, "admin-1").Return(&models.HealthCenter{ID: "c9", Name: request.Name}, nil)
	audit := &recordingAudit{}

	ctx := utils.WithSubjectID(context.Background(), "admin-1")
	center, err := NewHealthCenterUsecase(centers, new(MockAffiliationRepository), audit, zap.NewNop()).Create(ctx, request)

	require.NoError(t, err)
	assert.Equal(t, "c9", center.ID)
	assert.Equal(t, []string{"health_center.created"}, audit.actions)
}

func TestRepositoryUpdateWithoutRowsIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "eq.c1", r.URL.Query().Get("id"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()
	client := rest.NewClient(server.URL, "anon-key", 5*time.Second, zap.NewNop())

	_, err := NewHealthCenterPlatformRepository(client, zap.NewNop()).Update(context.Background(), "c1", &requests.HealthCenter{Name: "x"})

	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
}

func TestRepositoryFindAllOrdersByName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/health_centers", r.URL.Path)
		assert.Equal(t, "name.asc", r.URL.Query().Get("order"))
		w.Write([]byte(`[{"id":"c1","name":"A","address":"x","city":"Lyon","country":"France"}]`))
	}))
	defer server.Close()
	client := rest.NewClient(server.URL, "anon-key", 5*time.Second, zap.NewNop())

	centers, err := NewHealthCenterPlatformRepository(client, zap.NewNop()).FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, centers, 1)
	assert.Equal(t, "Lyon", centers[0].City)
}
