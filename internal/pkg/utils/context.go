package utils

import (
	"context"
	"medisync-service/internal/pkg/constvars"
	"strings"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func GetRequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	return requestID
}

func GetAppSessionID(ctx context.Context) string {
	sessionID, _ := ctx.Value(constvars.CONTEXT_APP_SESSION_ID_KEY).(string)
	return sessionID
}

func WithAppSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, constvars.CONTEXT_APP_SESSION_ID_KEY, sessionID)
}

// WithPlatformAccessToken makes platform table and RPC calls run as the signed-in user.
func WithPlatformAccessToken(ctx context.Context, accessToken string) context.Context {
	return context.WithValue(ctx, constvars.CONTEXT_PLATFORM_ACCESS_TOKEN_KEY, accessToken)
}

func GetPlatformAccessToken(ctx context.Context) string {
	accessToken, _ := ctx.Value(constvars.CONTEXT_PLATFORM_ACCESS_TOKEN_KEY).(string)
	return accessToken
}

// DetachedContext keeps the request values but drops the request deadline and cancellation.
func DetachedContext(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

func WithSubjectID(ctx context.Context, subjectID string) context.Context {
	return context.WithValue(ctx, constvars.CONTEXT_SUBJECT_ID_KEY, subjectID)
}

func GetSubjectID(ctx context.Context) string {
	subjectID, _ := ctx.Value(constvars.CONTEXT_SUBJECT_ID_KEY).(string)
	return subjectID
}
