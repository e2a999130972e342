package contracts

import (
	"context"
	"medisync-service/internal/app/models"
)

type AppointmentEventPublisher interface {
	Publish(ctx context.Context, event models.AppointmentEvent) error
}
