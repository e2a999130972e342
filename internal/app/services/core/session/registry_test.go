package session

import (
	"context"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/app/services/core/identity"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type anonymousAuth struct {
	mu        sync.Mutex
	listeners int
}

func (a *anonymousAuth) GetSession(ctx context.Context) (*models.PlatformSession, error) {
	return nil, nil
}
func (a *anonymousAuth) GetUser(ctx context.Context) (*models.PlatformUser, error) { return nil, nil }
func (a *anonymousAuth) OnAuthStateChange(listener contracts.AuthChangeListener) func() {
	a.mu.Lock()
	a.listeners++
	a.mu.Unlock()
	return func() {
		a.mu.Lock()
		a.listeners--
		a.mu.Unlock()
	}
}
func (a *anonymousAuth) SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) error {
	return nil
}
func (a *anonymousAuth) SignInWithPassword(ctx context.Context, email, password string) (*models.PlatformSession, error) {
	return nil, nil
}
func (a *anonymousAuth) SignOut(ctx context.Context) error { return nil }

type noPrivilege struct{}

func (noPrivilege) IsAdmin(ctx context.Context, subjectID string) (bool, error) { return false, nil }

type noProfiles struct{}

func (noProfiles) FindByID(ctx context.Context, id string) (*models.ProfileRecord, error) {
	return nil, nil
}

type silentNotifier struct{}

func (silentNotifier) Success(ctx context.Context, message string) {}
func (silentNotifier) Error(ctx context.Context, message string) {}
func (silentNotifier) Info(ctx context.Context, message string) {}
func (silentNotifier) Drain(ctx context.Context, sessionID string) ([]models.Notification, error) {
	return nil, nil
}

type keyRedis struct {
	mu   sync.Mutex
	keys map[string]string
}

func (r *keyRedis) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.keys, key)
	return nil
}
func (r *keyRedis) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return nil
}
func (r *keyRedis) Get(ctx context.Context, key string) (string, error) { return "", nil }
func (r *keyRedis) Expire(ctx context.Context, key string, exp time.Duration) error { return nil }
func (r *keyRedis) PushToList(ctx context.Context, key string, values ...interface{}) error {
	return nil
}
func (r *keyRedis) PopListRange(ctx context.Context, key string, count int64) ([]string, error) {
	return nil, nil
}
func (r *keyRedis) ListLength(ctx context.Context, key string) (int64, error) { return 0, nil }
func (r *keyRedis) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	return true, nil
}
func (r *keyRedis) DeleteIfEquals(ctx context.Context, key string, value interface{}) (bool, error) {
	return false, nil
}
func (r *keyRedis) ScanKeys(ctx context.Context, pattern string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.keys))
	for k := range r.keys {
		keys = append(keys, k)
	}
	return keys, nil
}

func newTestRegistry(auths map[string]*anonymousAuth, redisRepo contracts.RedisRepository) *Registry {
	var mu sync.Mutex
	factory := func(sessionID string) *identity.Resolver {
		auth := &anonymousAuth{}
		mu.Lock()
		auths[sessionID] = auth
		mu.Unlock()
		return identity.NewResolver(auth, noPrivilege{}, noProfiles{}, silentNotifier{}, zap.NewNop())
	}
	return NewRegistry(factory, redisRepo, 10*time.Minute, zap.NewNop())
}

func TestAcquireReusesResolverPerSession(t *testing.T) {
	auths := map[string]*anonymousAuth{}
	registry := newTestRegistry(auths, &keyRedis{keys: map[string]string{}})
	defer registry.DisposeAll()

	first := registry.Acquire(context.Background(), "sess-1")
	second := registry.Acquire(context.Background(), "sess-1")
	other := registry.Acquire(context.Background(), "sess-2")

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, registry.Len())
	assert.Equal(t, identity.StateAnonymous, first.Snapshot().State)
}

func TestSweepDisposesIdleResolvers(t *testing.T) {
	auths := map[string]*anonymousAuth{}
	registry := newTestRegistry(auths, &keyRedis{keys: map[string]string{}})
	start := time.Now()
	registry.now = func() time.Time { return start }

	registry.Acquire(context.Background(), "idle")
	registry.now = func() time.Time { return start.Add(9 * time.Minute) }
	registry.Acquire(context.Background(), "busy")

	disposed := registry.Sweep(start.Add(11 * time.Minute))

	assert.Equal(t, 1, disposed)
	assert.Equal(t, 1, registry.Len())
	assert.Equal(t, 0, auths["idle"].listeners)
	assert.Equal(t, 1, auths["busy"].listeners)
	registry.DisposeAll()
}

func TestPurgeAllDeletesStoredSessions(t *testing.T) {
	redisRepo := &keyRedis{keys: map[string]string{
		"platform_session:a": "{}",
		"platform_session:b": "{}",
	}}
	auths := map[string]*anonymousAuth{}
	registry := newTestRegistry(auths, redisRepo)
	registry.Acquire(context.Background(), "a")

	purged, err := registry.PurgeAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, purged)
	assert.Equal(t, 0, registry.Len())
	assert.Empty(t, redisRepo.keys)
	assert.Equal(t, 0, auths["a"].listeners)
}

func TestSweepWorkerStopIsIdempotent(t *testing.T) {
	registry := newTestRegistry(map[string]*anonymousAuth{}, &keyRedis{keys: map[string]string{}})
	worker := NewSweepWorker(zap.NewNop(), registry, time.Second)

	stop := worker.Start(context.Background())

	assert.NotPanics(t, func() {
		stop()
		stop()
	})
}

func TestSweepWorkerStopsWithContext(t *testing.T) {
	registry := newTestRegistry(map[string]*anonymousAuth{}, &keyRedis{keys: map[string]string{}})
	worker := NewSweepWorker(zap.NewNop(), registry, 0)
	assert.Equal(t, fallbackSweepSpec, worker.spec)

	ctx, cancel := context.WithCancel(context.Background())
	stop := worker.Start(ctx)
	cancel()

	assert.NotPanics(t, stop, "stop after the context ended is a no-op")
}

func TestSweepWorkerRunOnceDisposesIdle(t *testing.T) {
	auths := map[string]*anonymousAuth{"idle": {}}
	registry := newTestRegistry(auths, &keyRedis{keys: map[string]string{}})
	registry.Acquire(context.Background(), "idle")
	require.Equal(t, 1, registry.Len())

	worker := NewSweepWorker(zap.NewNop(), registry, time.Minute)
	worker.runOnce(time.Now().Add(24 * time.Hour))

	assert.Equal(t, 0, registry.Len())
}

type stateCounts struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *stateCounts) move(from, to string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if from != "" {
		c.counts[from]--
	}
	if to != "" {
		c.counts[to]++
	}
}

func (c *stateCounts) get(state identity.State) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[string(state)]
}

func TestRegistryTracksResolverStates(t *testing.T) {
	registry := newTestRegistry(map[string]*anonymousAuth{}, &keyRedis{keys: map[string]string{}})
	counts := &stateCounts{counts: map[string]int{}}
	registry.moveState = counts.move

	registry.Acquire(context.Background(), "sess-1")
	registry.Acquire(context.Background(), "sess-2")

	require.Eventually(t, func() bool {
		return counts.get(identity.StateAnonymous) == 2
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, counts.get(identity.StateUninitialized))

	registry.Remove("sess-1")
	assert.Equal(t, 1, counts.get(identity.StateAnonymous))

	registry.DisposeAll()
	assert.Equal(t, 0, counts.get(identity.StateAnonymous))
	assert.Equal(t, 0, counts.get(identity.StateUninitialized))
}
