package contracts

import (
	"context"
	"medisync-service/internal/app/models"
)

type AuditRepository interface {
	Insert(ctx context.Context, event models.AuditEvent) error
}

type AuditLogger interface {
	Record(ctx context.Context, action, entity, entityID string, metadata map[string]interface{})
	Close(ctx context.Context) error
}
