package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/esim-activation-service/internal/events"
)

// AuditWorker logs activation lifecycle events off the request path.
type AuditWorker struct {
	logger *zap.Logger
	queue  chan events.Event
	stop   sync.Once
	done   chan struct{}
}

// StartAuditWorker subscribes to lifecycle events and begins draining them.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) *AuditWorker {
	w := &AuditWorker{
		logger: logger,
		queue:  make(chan events.Event, 128),
		done:   make(chan struct{}),
	}

	for _, eventType := range []events.EventType{
		events.EventActivationCreated,
		events.EventActivationUpdated,
		events.EventActivationDeleted,
		events.EventShortLinkCreated,
	} {
		dispatcher.Subscribe(eventType, w.enqueue)
	}

	go w.run()
	return w
}

// enqueue never blocks the publishing request; events are dropped when the
// buffer is full since the audit trail is advisory.
func (w *AuditWorker) enqueue(_ context.Context, event events.Event) error {
	select {
	case w.queue <- event:
	default:
		w.logger.Warn("audit queue full, dropping event", zap.String("event_type", string(event.Type)))
	}
	return nil
}

func (w *AuditWorker) run() {
	defer close(w.done)
	for event := range w.queue {
		w.logger.Info("audit",
			zap.String("event_type", string(event.Type)),
			zap.String("activation_id", event.ActivationID),
			zap.String("actor", event.Actor),
			zap.Time("at", event.Timestamp),
			zap.Any("payload", event.Payload))
	}
}

// Stop drains the queue and waits for the worker to exit.
func (w *AuditWorker) Stop() {
	w.stop.Do(func() { close(w.queue) })
	<-w.done
}
