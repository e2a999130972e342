package notifier

import (
	"context"
	"errors"
	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/utils"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type listRedis struct {
	mu      sync.Mutex
	lists   map[string][]string
	expires map[string]time.Duration
	popErr  error
}

func newListRedis() *listRedis {
	return &listRedis{lists: map[string][]string{}, expires: map[string]time.Duration{}}
}

func (r *listRedis) Delete(ctx context.Context, key string) error { return nil }
func (r *listRedis) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return nil
}
func (r *listRedis) Get(ctx context.Context, key string) (string, error) { return "", nil }
func (r *listRedis) Expire(ctx context.Context, key string, exp time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expires[key] = exp
	return nil
}
func (r *listRedis) PushToList(ctx context.Context, key string, values ...interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range values {
		r.lists[key] = append(r.lists[key], v.(string))
	}
	return nil
}
func (r *listRedis) PopListRange(ctx context.Context, key string, count int64) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.popErr != nil {
		return nil, r.popErr
	}
	list := r.lists[key]
	n := int(count)
	if n > len(list) {
		n = len(list)
	}
	head := append([]string(nil), list[:n]...)
	r.lists[key] = list[n:]
	return head, nil
}
func (r *listRedis) ListLength(ctx context.Context, key string) (int64, error) {
	return int64(len(r.lists[key])), nil
}
func (r *listRedis) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	return true, nil
}
func (r *listRedis) DeleteIfEquals(ctx context.Context, key string, value interface{}) (bool, error) {
	return false, nil
}
func (r *listRedis) ScanKeys(ctx context.Context, pattern string) ([]string, error) { return nil, nil }

func TestNotifierQueuesPerSessionInOrder(t *testing.T) {
	repo := newListRedis()
	svc := NewNotifierService(repo, 15*time.Minute, 10, zap.NewNop())

	ctx := utils.WithAppSessionID(context.Background(), "sess-1")
	svc.Success(ctx, "Connexion réussie!")
	svc.Error(ctx, "Erreur lors de la connexion")
	svc.Info(utils.WithAppSessionID(context.Background(), "sess-2"), "other session")

	got, err := svc.Drain(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.NotificationSuccess, got[0].Level)
	assert.Equal(t, "Connexion réussie!", got[0].Message)
	assert.Equal(t, models.NotificationError, got[1].Level)
	assert.NotEmpty(t, got[0].ID)
	assert.Less(t, got[0].ID, got[1].ID)
	assert.Equal(t, 15*time.Minute, repo.expires["notifications:sess-1"])

	again, err := svc.Drain(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestNotifierWithoutSessionIsDropped(t *testing.T) {
	repo := newListRedis()
	svc := NewNotifierService(repo, time.Minute, 10, zap.NewNop())

	svc.Error(context.Background(), "lost")

	assert.Empty(t, repo.lists)
}

func TestNotifierDrainRespectsLimit(t *testing.T) {
	repo := newListRedis()
	svc := NewNotifierService(repo, time.Minute, 2, zap.NewNop())
	ctx := utils.WithAppSessionID(context.Background(), "sess-1")
	for i := 0; i < 3; i++ {
		svc.Info(ctx, "msg")
	}

	first, err := svc.Drain(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := svc.Drain(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Len(t, second, 1)
}

func TestNotifierDrainError(t *testing.T) {
	repo := newListRedis()
	repo.popErr = errors.New("redis down")
	svc := NewNotifierService(repo, time.Minute, 2, zap.NewNop())

	got, err := svc.Drain(context.Background(), "sess-1")
	assert.Error(t, err)
	assert.Empty(t, got)
}

func TestNotifierFailedDrainKeepsQueue(t *testing.T) {
	repo := newListRedis()
	svc := NewNotifierService(repo, time.Minute, 10, zap.NewNop())
	ctx := utils.WithAppSessionID(context.Background(), "sess-1")
	svc.Success(ctx, "Statut mis à jour")
	svc.Info(ctx, "second")

	repo.popErr = errors.New("connection reset")
	_, err := svc.Drain(context.Background(), "sess-1")
	require.Error(t, err)
	assert.Len(t, repo.lists["notifications:sess-1"], 2)

	repo.popErr = nil
	got, err := svc.Drain(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Statut mis à jour", got[0].Message)
	assert.Equal(t, "second", got[1].Message)
}

func TestNotifierDrainSkipsUnreadableEntries(t *testing.T) {
	repo := newListRedis()
	repo.lists["notifications:sess-1"] = []string{"not-json", `{"id":"01J","level":"info","message":"ok"}`}
	svc := NewNotifierService(repo, time.Minute, 10, zap.NewNop())

	got, err := svc.Drain(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].Message)
	assert.Empty(t, repo.lists["notifications:sess-1"])
}
