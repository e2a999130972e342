package controllers

import (
	"context"
	"errors"
	"medisync-service/internal/app/config"
	"medisync-service/internal/app/services/core/identity"
	"medisync-service/internal/app/services/core/session"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/dto/responses"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

func requestTimeout(seconds int) time.Duration {
	if seconds <= 0 {
		seconds = constvars.DefaultRequestTimeoutInSeconds
	}
	return time.Duration(seconds) * time.Second
}

func settleTimeout(internalConfig *config.InternalConfig) time.Duration {
	seconds := internalConfig.Session.SettleTimeoutInSeconds
	if seconds <= 0 {
		seconds = constvars.DefaultSettleTimeoutInSeconds
	}
	return time.Duration(seconds) * time.Second
}

// bindJSON decodes the body into request and validates it.
func bindJSON(r *http.Request, request interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	if err := utils.ValidateStruct(request); err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}

func urlParamID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if id == "" {
		return "", exceptions.ErrURLParamIDValidation(errors.New("empty id"), "id")
	}
	return id, nil
}

func deadlineAware(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return exceptions.ErrServerDeadlineExceeded(err)
	}
	return err
}

func sessionState(snapshot identity.Snapshot) *responses.SessionState {
	state := &responses.SessionState{
		State:     string(snapshot.State),
		IsLoading: snapshot.IsLoading(),
		IsAdmin:   snapshot.IsAdmin,
		Profile:   snapshot.Profile,
	}
	if snapshot.Session != nil {
		state.ExpiresAt = snapshot.Session.ExpiresAt
	}
	if snapshot.User != nil {
		state.User = &responses.SessionUser{ID: snapshot.User.ID, Email: snapshot.User.Email}
	}
	return state
}

// settledSnapshot waits for the request's resolver to leave the loading state.
func settledSnapshot(ctx context.Context, timeout time.Duration) (*identity.Resolver, identity.Snapshot, error) {
	resolver, err := session.ResolverFrom(ctx)
	if err != nil {
		return nil, identity.Snapshot{}, err
	}
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	snapshot, err := resolver.WaitSettled(waitCtx)
	return resolver, snapshot, err
}
