package session

import (
	"context"
	"fmt"
	"medisync-service/internal/pkg/constvars"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const fallbackSweepSpec = "@every 1m"

// SweepWorker periodically disposes idle resolvers of this replica. The
// registry is process-local, so every replica sweeps on its own schedule.
type SweepWorker struct {
	log      *zap.Logger
	registry *Registry
	spec     string
	now      func() time.Time
}

func NewSweepWorker(log *zap.Logger, registry *Registry, interval time.Duration) *SweepWorker {
	spec := fallbackSweepSpec
	if interval > 0 {
		spec = fmt.Sprintf("@every %s", interval)
	}
	return &SweepWorker{
		log:      log,
		registry: registry,
		spec:     spec,
		now:      time.Now,
	}
}

// Start schedules the sweep. It returns a stop function that waits for a
// running sweep to finish; calling it more than once is safe.
func (w *SweepWorker) Start(ctx context.Context) (stop func()) {
	c := cron.New()
	_, err := c.AddFunc(w.spec, func() { w.runOnce(w.now()) })
	if err != nil {
		w.log.Warn("session.SweepWorker invalid schedule, falling back",
			zap.String("spec", w.spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(fallbackSweepSpec, func() { w.runOnce(w.now()) })
	}
	c.Start()
	w.log.Info("session.SweepWorker started", zap.String("spec", w.spec))

	done := make(chan struct{})
	var once sync.Once
	stop = func() {
		once.Do(func() {
			close(done)
			<-c.Stop().Done()
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			stop()
		case <-done:
		}
	}()

	return stop
}

func (w *SweepWorker) runOnce(now time.Time) {
	disposed := w.registry.Sweep(now)
	if disposed > 0 {
		w.log.Info("session.SweepWorker.runOnce disposed idle resolvers",
			zap.Int(constvars.LoggingCountKey, disposed),
			zap.Int("remaining", w.registry.Len()),
		)
	}
}
