package contracts

import (
	"context"
	"medisync-service/internal/app/models"
)

// Notifier queues user-facing messages for the app session carried by ctx.
// Failures are logged and never returned.
type Notifier interface {
	Success(ctx context.Context, message string)
	Error(ctx context.Context, message string)
	Info(ctx context.Context, message string)
	Drain(ctx context.Context, sessionID string) ([]models.Notification, error)
}
