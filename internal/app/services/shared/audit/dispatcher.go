package audit

import (
	"context"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/metrics"
	"medisync-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

const writeTimeout = 5 * time.Second

// Dispatcher records admin mutations asynchronously. A full buffer drops the
// event and counts it.
type Dispatcher struct {
	repo  contracts.AuditRepository
	log   *zap.Logger
	queue chan models.AuditEvent
	done  chan struct{}
	once  sync.Once
	now   func() time.Time
}

func NewDispatcher(repo contracts.AuditRepository, bufferSize int, logger *zap.Logger) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 100
	}
	d := &Dispatcher{
		repo:  repo,
		log:   logger,
		queue: make(chan models.AuditEvent, bufferSize),
		done:  make(chan struct{}),
		now:   time.Now,
	}

	go d.worker()
	return d
}

var _ contracts.AuditLogger = (*Dispatcher)(nil)

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := d.repo.Insert(ctx, ev); err != nil {
			d.log.Error("audit.Dispatcher.worker error calling repo.Insert",
				zap.String(constvars.LoggingRequestIDKey, ev.RequestID),
				zap.String(constvars.LoggingEntityIDKey, ev.EntityID),
				zap.Error(err),
			)
		}
		cancel()
	}
}

func (d *Dispatcher) Record(ctx context.Context, action, entity, entityID string, metadata map[string]interface{}) {
	ev := models.AuditEvent{
		ID:         utils.NewULID(),
		ActorID:    utils.GetSubjectID(ctx),
		SessionID:  utils.GetAppSessionID(ctx),
		RequestID:  utils.GetRequestID(ctx),
		Action:     action,
		Entity:     entity,
		EntityID:   entityID,
		Metadata:   metadata,
		OccurredAt: d.now().UTC(),
	}

	defer func() {
		// send on closed channel after Close
		if recover() != nil {
			metrics.IncAuditDropped()
		}
	}()

	select {
	case d.queue <- ev:
	default:
		metrics.IncAuditDropped()
		d.log.Warn("audit.Dispatcher.Record queue full, dropping event",
			zap.String(constvars.LoggingRequestIDKey, ev.RequestID),
			zap.String("action", action),
		)
	}
}

// Close stops accepting events and waits for the buffered ones to be written.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.once.Do(func() { close(d.queue) })
	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
