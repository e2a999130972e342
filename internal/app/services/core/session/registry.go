package session

import (
	"context"
	"fmt"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/services/core/identity"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/metrics"
	"medisync-service/internal/pkg/utils"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ResolverFactory builds the resolver of one app session.
type ResolverFactory func(sessionID string) *identity.Resolver

type entry struct {
	resolver    *identity.Resolver
	tracker     *stateTracker
	unsubscribe func()
	lastUsed    time.Time
	ready       chan struct{}
}

func (e *entry) dispose() {
	e.unsubscribe()
	e.tracker.release()
	e.resolver.Dispose()
}

// stateTracker follows the snapshots of one resolver and reports each state
// change until the resolver leaves the registry.
type stateTracker struct {
	mu       sync.Mutex
	state    identity.State
	released bool
	move     func(from, to string)
}

func (t *stateTracker) observe(snapshot identity.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.released || snapshot.State == t.state {
		return
	}
	t.move(string(t.state), string(snapshot.State))
	t.state = snapshot.State
}

func (t *stateTracker) release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.released {
		return
	}
	t.released = true
	if t.state != "" {
		t.move(string(t.state), "")
	}
}

// Registry keeps one identity resolver per app session on this replica.
// Tokens live in redis, so a resolver dropped here is rebuilt on the next
// request from the stored session.
type Registry struct {
	newResolver ResolverFactory
	redisRepo   contracts.RedisRepository
	idleTTL     time.Duration
	log         *zap.Logger
	now         func() time.Time
	moveState   func(from, to string)

	mu      sync.Mutex
	entries map[string]*entry
}

func NewRegistry(newResolver ResolverFactory, redisRepo contracts.RedisRepository, idleTTL time.Duration, logger *zap.Logger) *Registry {
	return &Registry{
		newResolver: newResolver,
		redisRepo:   redisRepo,
		idleTTL:     idleTTL,
		log:         logger,
		now:         time.Now,
		moveState:   metrics.MoveResolverState,
		entries:     make(map[string]*entry),
	}
}

// Acquire returns the resolver of sessionID, creating and initialising it on
// first use. The returned resolver may still be loading if ctx expired first.
func (r *Registry) Acquire(ctx context.Context, sessionID string) *identity.Resolver {
	r.mu.Lock()
	e, ok := r.entries[sessionID]
	if ok {
		e.lastUsed = r.now()
		r.mu.Unlock()
		select {
		case <-e.ready:
		case <-ctx.Done():
		}
		return e.resolver
	}

	e = &entry{
		resolver: r.newResolver(sessionID),
		tracker:  &stateTracker{move: r.moveState},
		lastUsed: r.now(),
		ready:    make(chan struct{}),
	}
	e.unsubscribe = e.resolver.Subscribe(e.tracker.observe)
	r.entries[sessionID] = e
	count := len(r.entries)
	r.mu.Unlock()
	metrics.SetActiveResolvers(count)

	requestID := utils.GetRequestID(ctx)
	r.log.Info("session.Registry.Acquire creating resolver",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppSessionIDKey, sessionID),
	)

	if err := e.resolver.Init(utils.WithAppSessionID(ctx, sessionID)); err != nil {
		r.log.Warn("session.Registry.Acquire resolver not settled yet",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppSessionIDKey, sessionID),
			zap.Error(err),
		)
	}
	close(e.ready)
	return e.resolver
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep disposes resolvers unused for longer than the idle TTL.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	var expired []*entry
	for id, e := range r.entries {
		select {
		case <-e.ready:
		default:
			continue
		}
		if now.Sub(e.lastUsed) > r.idleTTL {
			expired = append(expired, e)
			delete(r.entries, id)
		}
	}
	count := len(r.entries)
	r.mu.Unlock()

	for _, e := range expired {
		e.dispose()
	}
	metrics.SetActiveResolvers(count)
	return len(expired)
}

// Remove disposes the resolver of sessionID if this replica holds one.
func (r *Registry) Remove(sessionID string) {
	r.mu.Lock()
	e, ok := r.entries[sessionID]
	delete(r.entries, sessionID)
	count := len(r.entries)
	r.mu.Unlock()

	if ok {
		e.dispose()
	}
	metrics.SetActiveResolvers(count)
}

// DisposeAll drops every local resolver. Stored platform sessions are kept.
func (r *Registry) DisposeAll() {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[string]*entry)
	r.mu.Unlock()

	for _, e := range entries {
		e.dispose()
	}
	metrics.SetActiveResolvers(0)
}

// PurgeAll signs every app session out locally and deletes the stored
// platform sessions of all replicas. It returns the number of stored
// sessions removed.
func (r *Registry) PurgeAll(ctx context.Context) (int, error) {
	requestID := utils.GetRequestID(ctx)
	r.DisposeAll()

	pattern := strings.Replace(constvars.RedisKeyPlatformSessionFormat, "%s", "*", 1)
	keys, err := r.redisRepo.ScanKeys(ctx, pattern)
	if err != nil {
		r.log.Error("session.Registry.PurgeAll error calling redisRepo.ScanKeys",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return 0, err
	}

	purged := 0
	for _, key := range keys {
		if err := r.redisRepo.Delete(ctx, key); err != nil {
			r.log.Error("session.Registry.PurgeAll error calling redisRepo.Delete",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
			return purged, fmt.Errorf("purged %d of %d sessions: %w", purged, len(keys), err)
		}
		purged++
	}

	r.log.Info("session.Registry.PurgeAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, purged),
	)
	return purged, nil
}
