package identity

import (
	"context"
	"errors"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/metrics"
	"medisync-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultTaskTimeout = 15 * time.Second

type SignUpAttributes struct {
	FirstName string
	LastName  string
	UserType  models.Role
}

// Resolver owns the identity of one app session. It follows the platform
// auth client's events and derives the profile and admin flag of the
// signed-in subject.
//
// Every resolution carries the generation current when it started and is
// dropped if a newer session event arrived in the meantime.
type Resolver struct {
	auth        contracts.PlatformAuthClient
	privilege   contracts.PrivilegeChecker
	profiles    contracts.ProfileReader
	notifier    contracts.Notifier
	log         *zap.Logger
	now         func() time.Time
	taskTimeout time.Duration

	mu         sync.RWMutex
	snapshot   Snapshot
	generation uint64
	settled    chan struct{}

	subsMu    sync.Mutex
	subs      map[uint64]func(Snapshot)
	nextSubID uint64

	queue           *taskQueue
	baseCtx         context.Context
	cancel          context.CancelFunc
	unsubscribeAuth func()
	initOnce        sync.Once
	disposeOnce     sync.Once
	disposed        bool
}

func NewResolver(
	auth contracts.PlatformAuthClient,
	privilege contracts.PrivilegeChecker,
	profiles contracts.ProfileReader,
	notifier contracts.Notifier,
	logger *zap.Logger,
) *Resolver {
	return &Resolver{
		auth:        auth,
		privilege:   privilege,
		profiles:    profiles,
		notifier:    notifier,
		log:         logger,
		now:         time.Now,
		taskTimeout: defaultTaskTimeout,
		snapshot:    Snapshot{State: StateUninitialized},
		settled:     make(chan struct{}),
		subs:        make(map[uint64]func(Snapshot)),
		queue:       newTaskQueue(),
	}
}

// Init subscribes to auth events and resolves the existing session, if any.
// It returns once the resolver has left the loading state or ctx is done.
func (r *Resolver) Init(ctx context.Context) error {
	var err error
	r.initOnce.Do(func() {
		err = r.init(ctx)
	})
	return err
}

func (r *Resolver) init(ctx context.Context) error {
	requestID := utils.GetRequestID(ctx)
	r.log.Info("identity.Resolver.Init called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppSessionIDKey, utils.GetAppSessionID(ctx)),
	)

	r.mu.Lock()
	if r.disposed {
		r.mu.Unlock()
		return exceptions.ErrResolverDisposed(errors.New("init after dispose"))
	}
	r.baseCtx, r.cancel = context.WithCancel(utils.DetachedContext(ctx))
	r.snapshot = Snapshot{State: StateLoading}
	startGeneration := r.generation
	r.mu.Unlock()
	metrics.IncResolverTransition(string(StateLoading))

	go r.queue.run(r.baseCtx)
	unsubscribe := r.auth.OnAuthStateChange(r.onAuthStateChange)
	r.mu.Lock()
	r.unsubscribeAuth = unsubscribe
	r.mu.Unlock()

	session, err := r.auth.GetSession(ctx)
	if err != nil {
		r.log.Error("identity.Resolver.Init error calling auth.GetSession",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		r.notifier.Error(r.baseCtx, constvars.NotifyAuthInitFailed)
		r.settleAnonymous(startGeneration)
	} else if session == nil {
		r.settleAnonymous(startGeneration)
	} else {
		generation := r.begin(session)
		resolveCtx, cancel := r.taskContext()
		r.resolve(resolveCtx, generation, session)
		cancel()
	}

	_, err = r.WaitSettled(ctx)
	return err
}

// onAuthStateChange runs inside the auth client's lock. It only records the
// transition and posts the resolution to the task queue.
func (r *Resolver) onAuthStateChange(event models.AuthEvent, session *models.PlatformSession) {
	r.log.Info("identity.Resolver.onAuthStateChange called",
		zap.String(constvars.LoggingAuthEventKey, string(event)),
		zap.String(constvars.LoggingSubjectIDKey, session.SubjectID()),
	)

	switch event {
	case models.AuthEventSignedIn, models.AuthEventTokenRefreshed:
		if session == nil {
			return
		}
		generation := r.begin(session)
		r.queue.post(func() {
			ctx, cancel := r.taskContext()
			defer cancel()
			r.resolve(ctx, generation, session)
		})
	case models.AuthEventSignedOut:
		r.signedOut()
	}
}

func (r *Resolver) taskContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.baseCtx, r.taskTimeout)
}

// begin starts a resolution for session and returns its generation. A new
// subject goes back to loading with the admin flag cleared. A token refresh
// for the current subject keeps the resolved state while it re-resolves.
func (r *Resolver) begin(session *models.PlatformSession) uint64 {
	r.mu.Lock()
	if r.disposed {
		generation := r.generation
		r.mu.Unlock()
		return generation
	}
	r.generation++
	generation := r.generation

	sameSubject := r.snapshot.State == StateAuthenticated && r.snapshot.SubjectID() == session.SubjectID()
	if sameSubject {
		r.snapshot.Session = session
		r.mu.Unlock()
		return generation
	}

	if !r.snapshot.IsLoading() {
		r.settled = make(chan struct{})
	}
	r.snapshot = Snapshot{State: StateLoading, Session: session}
	snapshot := r.snapshot
	r.mu.Unlock()

	metrics.IncResolverTransition(string(StateLoading))
	r.publish(snapshot)
	return generation
}

type resolution struct {
	session *models.PlatformSession
	user    *models.PlatformUser
	profile *models.UserProfile
	isAdmin bool
}

// resolve never fails: every branch ends in commit so the resolver cannot
// stay in the loading state.
func (r *Resolver) resolve(ctx context.Context, generation uint64, session *models.PlatformSession) {
	subjectID := session.SubjectID()
	ctx = utils.WithPlatformAccessToken(ctx, session.AccessToken)
	r.log.Debug("identity.Resolver.resolve called",
		zap.String(constvars.LoggingSubjectIDKey, subjectID),
		zap.Uint64(constvars.LoggingGenerationKey, generation),
	)

	isAdmin, err := r.privilege.IsAdmin(ctx, subjectID)
	if err != nil {
		r.log.Warn("identity.Resolver.resolve privilege check failed, defaulting to non-admin",
			zap.String(constvars.LoggingSubjectIDKey, subjectID),
			zap.Error(err),
		)
		r.notifier.Error(ctx, constvars.NotifyPrivilegeCheckFailed)
		isAdmin = false
	}

	user := session.User
	fresh, err := r.auth.GetUser(ctx)
	if err != nil {
		r.log.Warn("identity.Resolver.resolve error calling auth.GetUser, using session user",
			zap.String(constvars.LoggingSubjectIDKey, subjectID),
			zap.Error(err),
		)
	} else if fresh != nil && fresh.ID == subjectID {
		user = *fresh
	}

	record, err := r.profiles.FindByID(ctx, subjectID)
	if err != nil {
		r.log.Error("identity.Resolver.resolve error calling profiles.FindByID",
			zap.String(constvars.LoggingSubjectIDKey, subjectID),
			zap.Error(err),
		)
		r.notifier.Error(ctx, constvars.NotifyProfileFetchFailed)
		record = nil
	}

	r.commit(generation, resolution{
		session: session,
		user:    &user,
		profile: MergeProfile(subjectID, record, user.UserMetadata, r.now()),
		isAdmin: isAdmin,
	})
}

func (r *Resolver) commit(generation uint64, result resolution) {
	r.mu.Lock()
	if r.disposed || generation != r.generation {
		current := r.generation
		r.mu.Unlock()
		metrics.IncStaleResolution()
		r.log.Info("identity.Resolver.commit discarding stale resolution",
			zap.String(constvars.LoggingSubjectIDKey, result.session.SubjectID()),
			zap.Uint64(constvars.LoggingGenerationKey, generation),
			zap.Uint64("current_generation", current),
		)
		return
	}

	wasLoading := r.snapshot.IsLoading()
	r.snapshot = Snapshot{
		State:   StateAuthenticated,
		Session: result.session,
		User:    result.user,
		Profile: result.profile,
		IsAdmin: result.isAdmin,
	}
	if wasLoading {
		close(r.settled)
	}
	snapshot := r.snapshot
	r.mu.Unlock()

	metrics.IncResolverTransition(string(StateAuthenticated))
	r.log.Info("identity.Resolver.commit authenticated",
		zap.String(constvars.LoggingSubjectIDKey, snapshot.SubjectID()),
		zap.Bool(constvars.LoggingIsAdminKey, snapshot.IsAdmin),
		zap.Uint64(constvars.LoggingGenerationKey, generation),
	)
	r.publish(snapshot)
}

// settleAnonymous ends the initial load without a session unless an auth
// event has superseded it.
func (r *Resolver) settleAnonymous(generation uint64) {
	r.mu.Lock()
	if r.disposed || generation != r.generation {
		r.mu.Unlock()
		return
	}
	r.setAnonymousLocked()
	snapshot := r.snapshot
	r.mu.Unlock()

	metrics.IncResolverTransition(string(StateAnonymous))
	r.publish(snapshot)
}

func (r *Resolver) signedOut() {
	r.mu.Lock()
	if r.disposed {
		r.mu.Unlock()
		return
	}
	r.generation++
	r.setAnonymousLocked()
	snapshot := r.snapshot
	r.mu.Unlock()

	metrics.IncResolverTransition(string(StateAnonymous))
	r.publish(snapshot)
}

func (r *Resolver) setAnonymousLocked() {
	wasLoading := r.snapshot.IsLoading()
	r.snapshot = Snapshot{State: StateAnonymous}
	if wasLoading {
		close(r.settled)
	}
}

func (r *Resolver) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

// WaitSettled blocks until the resolver is authenticated or anonymous.
func (r *Resolver) WaitSettled(ctx context.Context) (Snapshot, error) {
	for {
		r.mu.RLock()
		snapshot := r.snapshot
		settled := r.settled
		disposed := r.disposed
		r.mu.RUnlock()

		if disposed {
			return snapshot, exceptions.ErrResolverDisposed(errors.New("wait on disposed resolver"))
		}
		if !snapshot.IsLoading() {
			return snapshot, nil
		}

		select {
		case <-settled:
		case <-ctx.Done():
			return snapshot, exceptions.ErrResolverNotSettled(ctx.Err())
		}
	}
}

// Subscribe registers fn for every snapshot change, starting with the
// current one. Callbacks run on the resolver's task goroutine.
func (r *Resolver) Subscribe(fn func(Snapshot)) func() {
	r.subsMu.Lock()
	id := r.nextSubID
	r.nextSubID++
	r.subs[id] = fn
	r.subsMu.Unlock()

	current := r.Snapshot()
	r.queue.post(func() { fn(current) })

	var once sync.Once
	return func() {
		once.Do(func() {
			r.subsMu.Lock()
			delete(r.subs, id)
			r.subsMu.Unlock()
		})
	}
}

func (r *Resolver) publish(snapshot Snapshot) {
	r.subsMu.Lock()
	subs := make([]func(Snapshot), 0, len(r.subs))
	for _, fn := range r.subs {
		subs = append(subs, fn)
	}
	r.subsMu.Unlock()
	if len(subs) == 0 {
		return
	}

	r.queue.post(func() {
		for _, fn := range subs {
			fn(snapshot)
		}
	})
}

func (r *Resolver) SignUp(ctx context.Context, email, password string, attributes SignUpAttributes) error {
	requestID := utils.GetRequestID(ctx)
	r.log.Info("identity.Resolver.SignUp called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, email),
	)

	userType := attributes.UserType
	if _, ok := models.ParseSignUpRole(string(userType)); !ok {
		userType = models.RolePatient
	}
	metadata := map[string]interface{}{
		metadataFirstName: attributes.FirstName,
		metadataLastName:  attributes.LastName,
		metadataUserType:  string(userType),
	}

	if err := r.auth.SignUp(ctx, email, password, metadata); err != nil {
		r.log.Error("identity.Resolver.SignUp error calling auth.SignUp",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		r.notifier.Error(ctx, constvars.NotifySignUpFailed)
		return err
	}

	r.notifier.Success(ctx, constvars.NotifySignUpSuccess)
	return nil
}

// SignIn returns once the platform accepted the credentials. The resolver
// reaches the authenticated state through the resulting auth event, so
// callers wait with WaitSettled.
func (r *Resolver) SignIn(ctx context.Context, email, password string) error {
	requestID := utils.GetRequestID(ctx)
	r.log.Info("identity.Resolver.SignIn called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, email),
	)

	if _, err := r.auth.SignInWithPassword(ctx, email, password); err != nil {
		r.log.Error("identity.Resolver.SignIn error calling auth.SignInWithPassword",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		r.notifier.Error(ctx, constvars.NotifySignInFailed)
		return err
	}

	r.notifier.Success(ctx, constvars.NotifySignInSuccess)
	return nil
}

func (r *Resolver) SignOut(ctx context.Context) error {
	requestID := utils.GetRequestID(ctx)
	r.log.Info("identity.Resolver.SignOut called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if err := r.auth.SignOut(ctx); err != nil {
		r.log.Error("identity.Resolver.SignOut error calling auth.SignOut",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		r.notifier.Error(ctx, constvars.NotifySignOutFailed)
		return err
	}

	r.notifier.Success(ctx, constvars.NotifySignOutSuccess)
	return nil
}

// Dispose unsubscribes from the auth client and stops the task goroutine.
// In-flight resolutions finish but their results are dropped.
func (r *Resolver) Dispose() {
	r.disposeOnce.Do(func() {
		r.mu.Lock()
		r.disposed = true
		if r.snapshot.IsLoading() {
			close(r.settled)
		}
		cancel := r.cancel
		unsubscribe := r.unsubscribeAuth
		r.mu.Unlock()

		if unsubscribe != nil {
			unsubscribe()
		}
		r.queue.close()
		if cancel != nil {
			cancel()
		}
	})
}

// Session returns the platform session of this app session, refreshing it
// through the auth client when it is close to expiry.
func (r *Resolver) Session(ctx context.Context) (*models.PlatformSession, error) {
	return r.auth.GetSession(ctx)
}
