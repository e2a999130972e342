package auth

import (
	"context"
	"io"
	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/exceptions"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryStore struct {
	mu       sync.Mutex
	sessions map[string]*models.PlatformSession
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: map[string]*models.PlatformSession{}}
}

func (s *memoryStore) Load(ctx context.Context, sessionID string) (*models.PlatformSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (s *memoryStore) Save(ctx context.Context, sessionID string, session *models.PlatformSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[sessionID] = &copied
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

type memoryLocker struct {
	mu    sync.Mutex
	held  map[string]bool
	taken bool
}

func (l *memoryLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held == nil {
		l.held = map[string]bool{}
	}
	if l.taken || l.held[key] {
		return false, "", nil
	}
	l.held[key] = true
	return true, "owner", nil
}

func (l *memoryLocker) Unlock(ctx context.Context, key, lockValue string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	return nil
}

type recordedEvent struct {
	event   models.AuthEvent
	subject string
}

func fakeGoTrue(t *testing.T, handler http.HandlerFunc) string {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server.URL
}

func newFactory(baseUrl string, store *memoryStore, locker *memoryLocker) *Factory {
	return NewFactory(Config{
		BaseUrl:        baseUrl,
		AnonKey:        "anon",
		Timeout:        5 * time.Second,
		RefreshMargin:  60 * time.Second,
		RefreshLockTTL: 300 * time.Millisecond,
	}, store, locker, zap.NewNop())
}

func tokenJSON(access, refresh, userID string, expiresAt int64) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"access_token":  access,
		"token_type":    "bearer",
		"expires_in":    3600,
		"expires_at":    expiresAt,
		"refresh_token": refresh,
		"user":          map[string]interface{}{"id": userID, "email": userID + "@example.com"},
	})
	return body
}

func TestSignInStoresSessionAndEmitsUnderLock(t *testing.T) {
	baseUrl := fakeGoTrue(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon", r.Header.Get("apikey"))
		w.Write(tokenJSON("at-1", "rt-1", "U1", time.Now().Add(time.Hour).Unix()))
	})
	store := newMemoryStore()
	client := newFactory(baseUrl, store, &memoryLocker{}).ForSession("sess-1").(*Client)

	var events []recordedEvent
	client.OnAuthStateChange(func(event models.AuthEvent, session *models.PlatformSession) {
		// the session lock is held while listeners run
		assert.False(t, client.mu.TryLock())
		events = append(events, recordedEvent{event: event, subject: session.SubjectID()})
	})

	session, err := client.SignInWithPassword(context.Background(), "u1@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "U1", session.SubjectID())

	stored, _ := store.Load(context.Background(), "sess-1")
	require.NotNil(t, stored)
	assert.Equal(t, "at-1", stored.AccessToken)
	assert.Equal(t, []recordedEvent{{event: models.AuthEventSignedIn, subject: "U1"}}, events)
}

func TestSignInWrongPasswordIsInvalidCredentials(t *testing.T) {
	baseUrl := fakeGoTrue(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
	})
	client := newFactory(baseUrl, newMemoryStore(), &memoryLocker{}).ForSession("sess-1")

	_, err := client.SignInWithPassword(context.Background(), "u1@example.com", "wrong")
	require.Error(t, err)
	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, customErr.StatusCode)
}

func TestGetSessionRefreshesNearExpiry(t *testing.T) {
	var refreshCalls int
	baseUrl := fakeGoTrue(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "refresh_token", r.URL.Query().Get("grant_type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"refresh_token":"rt-1"}`, string(body))
		refreshCalls++
		w.Write(tokenJSON("at-2", "rt-2", "U1", time.Now().Add(time.Hour).Unix()))
	})
	store := newMemoryStore()
	store.Save(context.Background(), "sess-1", &models.PlatformSession{
		AccessToken:  "at-1",
		RefreshToken: "rt-1",
		ExpiresAt:    time.Now().Add(10 * time.Second).Unix(),
		User:         models.PlatformUser{ID: "U1"},
	})
	client := newFactory(baseUrl, store, &memoryLocker{}).ForSession("sess-1")

	var events []models.AuthEvent
	client.OnAuthStateChange(func(event models.AuthEvent, session *models.PlatformSession) {
		events = append(events, event)
	})

	session, err := client.GetSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "at-2", session.AccessToken)
	assert.Equal(t, 1, refreshCalls)
	assert.Equal(t, []models.AuthEvent{models.AuthEventTokenRefreshed}, events)

	again, err := client.GetSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "at-2", again.AccessToken)
	assert.Equal(t, 1, refreshCalls)
}

func TestRejectedRefreshTokenSignsOut(t *testing.T) {
	baseUrl := fakeGoTrue(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant","error_description":"Refresh Token Not Found"}`))
	})
	store := newMemoryStore()
	store.Save(context.Background(), "sess-1", &models.PlatformSession{
		AccessToken:  "at-1",
		RefreshToken: "rt-1",
		ExpiresAt:    time.Now().Add(-time.Minute).Unix(),
		User:         models.PlatformUser{ID: "U1"},
	})
	client := newFactory(baseUrl, store, &memoryLocker{}).ForSession("sess-1")

	var events []models.AuthEvent
	client.OnAuthStateChange(func(event models.AuthEvent, session *models.PlatformSession) {
		events = append(events, event)
	})

	session, err := client.GetSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.Equal(t, []models.AuthEvent{models.AuthEventSignedOut}, events)
	stored, _ := store.Load(context.Background(), "sess-1")
	assert.Nil(t, stored)
}

func TestPeerRefreshIsPickedUpFromStore(t *testing.T) {
	baseUrl := fakeGoTrue(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected platform call %s", r.URL.Path)
	})
	store := newMemoryStore()
	store.Save(context.Background(), "sess-1", &models.PlatformSession{
		AccessToken:  "at-1",
		RefreshToken: "rt-1",
		ExpiresAt:    time.Now().Add(10 * time.Second).Unix(),
		User:         models.PlatformUser{ID: "U1"},
	})
	client := newFactory(baseUrl, store, &memoryLocker{taken: true}).ForSession("sess-1")

	go func() {
		time.Sleep(50 * time.Millisecond)
		store.Save(context.Background(), "sess-1", &models.PlatformSession{
			AccessToken:  "at-peer",
			RefreshToken: "rt-peer",
			ExpiresAt:    time.Now().Add(time.Hour).Unix(),
			User:         models.PlatformUser{ID: "U1"},
		})
	}()

	session, err := client.GetSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "at-peer", session.AccessToken)
}

func TestSignOutClearsSessionEvenWhenLogoutFails(t *testing.T) {
	baseUrl := fakeGoTrue(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/logout", r.URL.Path)
		assert.Equal(t, "Bearer at-1", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
	})
	store := newMemoryStore()
	store.Save(context.Background(), "sess-1", &models.PlatformSession{
		AccessToken: "at-1",
		ExpiresAt:   time.Now().Add(time.Hour).Unix(),
		User:        models.PlatformUser{ID: "U1"},
	})
	client := newFactory(baseUrl, store, &memoryLocker{}).ForSession("sess-1")

	var events []models.AuthEvent
	unsubscribe := client.OnAuthStateChange(func(event models.AuthEvent, session *models.PlatformSession) {
		events = append(events, event)
	})
	defer unsubscribe()

	require.NoError(t, client.SignOut(context.Background()))
	stored, _ := store.Load(context.Background(), "sess-1")
	assert.Nil(t, stored)
	assert.Equal(t, []models.AuthEvent{models.AuthEventSignedOut}, events)
}

func TestUnsubscribedListenerIsNotCalled(t *testing.T) {
	baseUrl := fakeGoTrue(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(tokenJSON("at-1", "rt-1", "U1", time.Now().Add(time.Hour).Unix()))
	})
	client := newFactory(baseUrl, newMemoryStore(), &memoryLocker{}).ForSession("sess-1")

	called := false
	unsubscribe := client.OnAuthStateChange(func(event models.AuthEvent, session *models.PlatformSession) {
		called = true
	})
	unsubscribe()
	unsubscribe()

	_, err := client.SignInWithPassword(context.Background(), "u1@example.com", "secret1")
	require.NoError(t, err)
	assert.False(t, called)
}

func TestGetUserWithoutSession(t *testing.T) {
	client := newFactory("http://127.0.0.1:0", newMemoryStore(), &memoryLocker{}).ForSession("sess-1")

	user, err := client.GetUser(context.Background())
	assert.Nil(t, user)
	assert.Error(t, err)
}

func TestSignUpSendsMetadata(t *testing.T) {
	baseUrl := fakeGoTrue(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "patient", data["user_type"])
		w.Write([]byte(`{"id":"U9","email":"new@example.com"}`))
	})
	store := newMemoryStore()
	client := newFactory(baseUrl, store, &memoryLocker{}).ForSession("sess-1")

	err := client.SignUp(context.Background(), "new@example.com", "secret1", map[string]interface{}{"user_type": "patient"})
	require.NoError(t, err)
	stored, _ := store.Load(context.Background(), "sess-1")
	assert.Nil(t, stored)
}
