package auth

import (
	"context"
	"errors"
	"fmt"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/app/services/platform"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/utils"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	grantTypePassword     = "password"
	grantTypeRefreshToken = "refresh_token"
	peerRefreshPoll       = 100 * time.Millisecond
)

type Config struct {
	BaseUrl        string
	AnonKey        string
	Timeout        time.Duration
	RefreshMargin  time.Duration
	RefreshLockTTL time.Duration
}

// Factory builds one auth client per app session. Clients share the HTTP
// transport, the session store and the refresh lock.
type Factory struct {
	cfg       Config
	transport *platform.Transport
	store     contracts.PlatformSessionStore
	locker    contracts.LockerService
	log       *zap.Logger
	now       func() time.Time
}

func NewFactory(cfg Config, store contracts.PlatformSessionStore, locker contracts.LockerService, logger *zap.Logger) *Factory {
	baseUrl := strings.TrimRight(cfg.BaseUrl, "/") + constvars.PlatformAuthPath
	return &Factory{
		cfg:       cfg,
		transport: platform.NewTransport("auth", baseUrl, cfg.AnonKey, cfg.Timeout, logger),
		store:     store,
		locker:    locker,
		log:       logger,
		now:       time.Now,
	}
}

func (f *Factory) ForSession(sessionID string) contracts.PlatformAuthClient {
	return &Client{
		Factory:   f,
		sessionID: sessionID,
		listeners: make(map[uint64]contracts.AuthChangeListener),
	}
}

// Client is the platform auth client bound to one app session. Every state
// change is announced to listeners while mu is held, so a listener calling
// back into the client would deadlock.
type Client struct {
	*Factory
	sessionID string

	mu sync.Mutex

	listenersMu    sync.Mutex
	listeners      map[uint64]contracts.AuthChangeListener
	nextListenerID uint64
}

type tokenResponse struct {
	AccessToken  string               `json:"access_token"`
	TokenType    string               `json:"token_type"`
	ExpiresIn    int                  `json:"expires_in"`
	ExpiresAt    int64                `json:"expires_at"`
	RefreshToken string               `json:"refresh_token"`
	User         *models.PlatformUser `json:"user"`
}

func (r tokenResponse) session(now time.Time) *models.PlatformSession {
	session := &models.PlatformSession{
		AccessToken:  r.AccessToken,
		TokenType:    r.TokenType,
		ExpiresIn:    r.ExpiresIn,
		ExpiresAt:    r.ExpiresAt,
		RefreshToken: r.RefreshToken,
	}
	if session.ExpiresAt == 0 && r.ExpiresIn > 0 {
		session.ExpiresAt = now.Add(time.Duration(r.ExpiresIn) * time.Second).Unix()
	}
	if r.User != nil {
		session.User = *r.User
	}
	return session
}

func (c *Client) OnAuthStateChange(listener contracts.AuthChangeListener) func() {
	c.listenersMu.Lock()
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = listener
	c.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.listenersMu.Lock()
			delete(c.listeners, id)
			c.listenersMu.Unlock()
		})
	}
}

// emit must be called with mu held.
func (c *Client) emit(ctx context.Context, event models.AuthEvent, session *models.PlatformSession) {
	c.listenersMu.Lock()
	listeners := make([]contracts.AuthChangeListener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.listenersMu.Unlock()

	c.log.Info("auth.Client.emit auth state changed",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingAppSessionIDKey, c.sessionID),
		zap.String(constvars.LoggingAuthEventKey, string(event)),
		zap.String(constvars.LoggingSubjectIDKey, session.SubjectID()),
	)
	for _, l := range listeners {
		l(event, session)
	}
}

func (c *Client) requestToken(ctx context.Context, caller, grantType string, payload interface{}) (*models.PlatformSession, error) {
	query := url.Values{"grant_type": []string{grantType}}
	resp, err := c.transport.Do(ctx, caller, platform.Request{
		Method:   constvars.MethodPost,
		Path:     "/token",
		RawQuery: query.Encode(),
		Payload:  payload,
	})
	if err != nil {
		return nil, err
	}

	var token tokenResponse
	if err := json.Unmarshal(resp.Body, &token); err != nil {
		return nil, exceptions.ErrPlatformDecodeResponse(err, "auth/token")
	}
	if token.AccessToken == "" {
		return nil, exceptions.ErrPlatformDecodeResponse(errors.New("token response without access token"), "auth/token")
	}
	return token.session(c.now()), nil
}

func (c *Client) SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) error {
	requestID := utils.GetRequestID(ctx)
	c.log.Info("auth.Client.SignUp called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, email),
	)

	resp, err := c.transport.Do(ctx, "auth.Client.SignUp", platform.Request{
		Method: constvars.MethodPost,
		Path:   "/signup",
		Payload: map[string]interface{}{
			"email":    email,
			"password": password,
			"data":     metadata,
		},
	})
	if err != nil {
		return err
	}

	// Projects without email confirmation answer with a live session.
	var token tokenResponse
	if err := json.Unmarshal(resp.Body, &token); err != nil || token.AccessToken == "" {
		c.log.Info("auth.Client.SignUp succeeded, confirmation pending",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	session := token.session(c.now())
	if err := c.store.Save(ctx, c.sessionID, session); err != nil {
		return err
	}
	c.emit(ctx, models.AuthEventSignedIn, session)
	return nil
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*models.PlatformSession, error) {
	requestID := utils.GetRequestID(ctx)
	c.log.Info("auth.Client.SignInWithPassword called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, email),
	)

	session, err := c.requestToken(ctx, "auth.Client.SignInWithPassword", grantTypePassword, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		if status := platform.StatusOf(err); status == constvars.StatusBadRequest || status == constvars.StatusUnauthorized {
			return nil, exceptions.ErrInvalidCredentials(err)
		}
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Save(ctx, c.sessionID, session); err != nil {
		return nil, err
	}
	c.emit(ctx, models.AuthEventSignedIn, session)

	c.log.Info("auth.Client.SignInWithPassword succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, session.SubjectID()),
	)
	return session, nil
}

func (c *Client) SignOut(ctx context.Context) error {
	requestID := utils.GetRequestID(ctx)
	c.log.Info("auth.Client.SignOut called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppSessionIDKey, c.sessionID),
	)

	c.mu.Lock()
	defer c.mu.Unlock()

	session, err := c.store.Load(ctx, c.sessionID)
	if err != nil {
		return err
	}
	if session != nil {
		_, err := c.transport.Do(ctx, "auth.Client.SignOut", platform.Request{
			Method:      constvars.MethodPost,
			Path:        "/logout",
			AccessToken: session.AccessToken,
		})
		if err != nil {
			// local sign-out proceeds even if the token is already revoked
			c.log.Warn("auth.Client.SignOut platform logout failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}

	if err := c.store.Delete(ctx, c.sessionID); err != nil {
		return err
	}
	c.emit(ctx, models.AuthEventSignedOut, nil)
	return nil
}

// GetSession returns the stored session, refreshing it first when it is
// about to expire. A nil session without error means signed out.
func (c *Client) GetSession(ctx context.Context) (*models.PlatformSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, err := c.store.Load(ctx, c.sessionID)
	if err != nil || session == nil {
		return nil, err
	}
	if !session.ExpiresWithin(c.now(), c.cfg.RefreshMargin) {
		return session, nil
	}
	return c.refresh(ctx, session)
}

func (c *Client) refresh(ctx context.Context, stale *models.PlatformSession) (*models.PlatformSession, error) {
	requestID := utils.GetRequestID(ctx)
	lockKey := fmt.Sprintf(constvars.RedisKeyRefreshLockFormat, c.sessionID)

	acquired, lockValue, err := c.locker.TryLock(ctx, lockKey, c.cfg.RefreshLockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return c.awaitPeerRefresh(ctx, stale)
	}
	defer func() {
		if err := c.locker.Unlock(ctx, lockKey, lockValue); err != nil {
			c.log.Warn("auth.Client.refresh error releasing refresh lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}()

	// a peer may have refreshed between the load and the lock
	current, err := c.store.Load(ctx, c.sessionID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}
	if current.AccessToken != stale.AccessToken && !current.ExpiresWithin(c.now(), c.cfg.RefreshMargin) {
		c.emit(ctx, models.AuthEventTokenRefreshed, current)
		return current, nil
	}

	fresh, err := c.requestToken(ctx, "auth.Client.refresh", grantTypeRefreshToken, map[string]string{
		"refresh_token": current.RefreshToken,
	})
	if err != nil {
		if status := platform.StatusOf(err); status == constvars.StatusBadRequest || status == constvars.StatusUnauthorized {
			c.log.Info("auth.Client.refresh refresh token rejected, signing out",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppSessionIDKey, c.sessionID),
			)
			if err := c.store.Delete(ctx, c.sessionID); err != nil {
				return nil, err
			}
			c.emit(ctx, models.AuthEventSignedOut, nil)
			return nil, nil
		}
		return nil, err
	}

	if err := c.store.Save(ctx, c.sessionID, fresh); err != nil {
		return nil, err
	}
	c.emit(ctx, models.AuthEventTokenRefreshed, fresh)
	return fresh, nil
}

func (c *Client) awaitPeerRefresh(ctx context.Context, stale *models.PlatformSession) (*models.PlatformSession, error) {
	deadline := c.now().Add(c.cfg.RefreshLockTTL)
	ticker := time.NewTicker(peerRefreshPoll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, exceptions.ErrServerDeadlineExceeded(ctx.Err())
		case <-ticker.C:
		}

		current, err := c.store.Load(ctx, c.sessionID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			c.emit(ctx, models.AuthEventSignedOut, nil)
			return nil, nil
		}
		if current.AccessToken != stale.AccessToken {
			c.emit(ctx, models.AuthEventTokenRefreshed, current)
			return current, nil
		}
		if c.now().After(deadline) {
			if time.Unix(stale.ExpiresAt, 0).After(c.now()) {
				return stale, nil
			}
			return nil, exceptions.ErrPlatformRequest(errors.New("token refresh by another replica did not complete"), "auth/token")
		}
	}
}

func (c *Client) GetUser(ctx context.Context) (*models.PlatformUser, error) {
	session, err := c.GetSession(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, exceptions.ErrNoPlatformSession(fmt.Errorf("app session %s", c.sessionID))
	}

	resp, err := c.transport.Do(ctx, "auth.Client.GetUser", platform.Request{
		Method:      constvars.MethodGet,
		Path:        "/user",
		AccessToken: session.AccessToken,
	})
	if err != nil {
		return nil, err
	}

	user := new(models.PlatformUser)
	if err := json.Unmarshal(resp.Body, user); err != nil {
		return nil, exceptions.ErrPlatformDecodeResponse(err, "auth/user")
	}
	return user, nil
}
