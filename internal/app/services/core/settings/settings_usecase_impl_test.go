package settings

import (
	"context"
	"errors"
	"io"
	"medisync-service/internal/app/models"
	"medisync-service/internal/app/services/platform/rest"
	"medisync-service/internal/pkg/constvars"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) FindAll(ctx context.Context) ([]models.PlatformSetting, error) {
	args := m.Called(ctx)
	settings, _ := args.Get(0).([]models.PlatformSetting)
	return settings, args.Error(1)
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, settings []models.PlatformSetting) error {
	return m.Called(ctx, settings).Error(0)
}

type memoryRedis struct {
	values  map[string]string
	deleted []string
}

func newMemoryRedis() *memoryRedis {
	return &memoryRedis{values: map[string]string{}}
}

func (r *memoryRedis) Delete(ctx context.Context, key string) error {
	delete(r.values, key)
	r.deleted = append(r.deleted, key)
	return nil
}

func (r *memoryRedis) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.values[key] = string(raw)
	return nil
}

func (r *memoryRedis) Get(ctx context.Context, key string) (string, error) {
	return r.values[key], nil
}

func (r *memoryRedis) Expire(ctx context.Context, key string, exp time.Duration) error { return nil }
func (r *memoryRedis) PushToList(ctx context.Context, key string, values ...interface{}) error {
	return nil
}
func (r *memoryRedis) PopListRange(ctx context.Context, key string, count int64) ([]string, error) {
	return nil, nil
}
func (r *memoryRedis) ListLength(ctx context.Context, key string) (int64, error) { return 0, nil }
func (r *memoryRedis) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	return true, nil
}
func (r *memoryRedis) DeleteIfEquals(ctx context.Context, key string, value interface{}) (bool, error) {
	return false, nil
}
func (r *memoryRedis) ScanKeys(ctx context.Context, pattern string) ([]string, error) {
	return nil, nil
}

type recordingAudit struct{ actions []string }

func (a *recordingAudit) Record(ctx context.Context, action, entity, entityID string, metadata map[string]interface{}) {
	a.actions = append(a.actions, action)
}
func (a *recordingAudit) Close(ctx context.Context) error { return nil }

func TestGetMergesStoredOverDefaults(t *testing.T) {
	repo := new(MockSettingsRepository)
	repo.On("FindAll", mock.Anything).Return([]models.PlatformSetting{
		{SettingKey: "platform_name", SettingValue: "Clinique Plus"},
		{SettingKey: "custom_flag", SettingValue: true},
	}, nil).Once()
	cache := newMemoryRedis()

	uc := NewSettingsUsecase(repo, cache, &recordingAudit{}, time.Minute, zap.NewNop())
	settings, err := uc.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Clinique Plus", settings["platform_name"])
	assert.Equal(t, true, settings["custom_flag"])
	assert.Equal(t, 10, settings["max_appointments_per_day"])
	assert.Contains(t, cache.values, constvars.RedisKeyPlatformSettings)

	cached, err := uc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Clinique Plus", cached["platform_name"])
	repo.AssertNumberOfCalls(t, "FindAll", 1)
}

func TestGetIgnoresBrokenCacheEntry(t *testing.T) {
	repo := new(MockSettingsRepository)
	repo.On("FindAll", mock.Anything).Return([]models.PlatformSetting{}, nil)
	cache := newMemoryRedis()
	cache.values[constvars.RedisKeyPlatformSettings] = "{not json"

	settings, err := NewSettingsUsecase(repo, cache, &recordingAudit{}, time.Minute, zap.NewNop()).Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "MediSync", settings["platform_name"])
}

func TestGetPlatformFailure(t *testing.T) {
	repo := new(MockSettingsRepository)
	repo.On("FindAll", mock.Anything).Return(nil, errors.New("boom"))

	_, err := NewSettingsUsecase(repo, newMemoryRedis(), &recordingAudit{}, time.Minute, zap.NewNop()).Get(context.Background())

	assert.Error(t, err)
}

func TestSaveInvalidatesCache(t *testing.T) {
	repo := new(MockSettingsRepository)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(rows []models.PlatformSetting) bool {
		return len(rows) == 1 && rows[0].SettingKey == "maintenance_mode" && rows[0].SettingValue == true
	})).Return(nil)
	repo.On("FindAll", mock.Anything).Return([]models.PlatformSetting{
		{SettingKey: "maintenance_mode", SettingValue: true},
	}, nil)
	cache := newMemoryRedis()
	cache.values[constvars.RedisKeyPlatformSettings] = `{"maintenance_mode":false}`
	audit := &recordingAudit{}

	settings, err := NewSettingsUsecase(repo, cache, audit, time.Minute, zap.NewNop()).
		Save(context.Background(), map[string]interface{}{"maintenance_mode": true})

	require.NoError(t, err)
	assert.Equal(t, true, settings["maintenance_mode"])
	assert.Equal(t, []string{constvars.RedisKeyPlatformSettings}, cache.deleted)
	assert.Equal(t, []string{"settings.saved"}, audit.actions)
}

func TestSaveFailureKeepsCache(t *testing.T) {
	repo := new(MockSettingsRepository)
	repo.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("boom"))
	cache := newMemoryRedis()
	cache.values[constvars.RedisKeyPlatformSettings] = `{}`

	_, err := NewSettingsUsecase(repo, cache, &recordingAudit{}, time.Minute, zap.NewNop()).
		Save(context.Background(), map[string]interface{}{"contact_phone": "0102"})

	assert.Error(t, err)
	assert.Empty(t, cache.deleted)
}

func TestRepositoryUpsertTargetsSettingKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "setting_key", r.URL.Query().Get("on_conflict"))
		assert.Contains(t, r.Header.Get("Prefer"), "resolution=merge-duplicates")
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `[{"setting_key":"platform_name","setting_value":"X"}]`, string(body))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()
	client := rest.NewClient(server.URL, "anon-key", 5*time.Second, zap.NewNop())

	err := NewSettingsPlatformRepository(client, zap.NewNop()).Upsert(context.Background(), []models.PlatformSetting{
		{SettingKey: "platform_name", SettingValue: "X"},
	})

	require.NoError(t, err)
}
