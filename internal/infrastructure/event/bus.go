package event

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/shared"
)

// InMemoryEventBus implements shared.EventBus with in-memory pub/sub.
// Handlers run asynchronously; a failing or panicking handler is logged
// and never surfaces to the publisher. Notification delivery rides on
// this: a placed order must not fail because an email could not be sent.
type InMemoryEventBus struct {
	mu       sync.RWMutex
	handlers map[string][]shared.EventHandler
	logger   *zap.Logger
	wg       sync.WaitGroup
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		handlers: make(map[string][]shared.EventHandler),
		logger:   logger,
	}
}

// Publish dispatches events to all subscribed handlers asynchronously.
// Handlers outlive the publishing request, so they run on a context that
// keeps the caller's values but not its cancellation.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	dispatchCtx := context.WithoutCancel(ctx)
	for _, ev := range events {
		b.mu.RLock()
		handlers := make([]shared.EventHandler, len(b.handlers[ev.EventType()]))
		copy(handlers, b.handlers[ev.EventType()])
		b.mu.RUnlock()

		for _, handler := range handlers {
			b.wg.Add(1)
			go func(h shared.EventHandler, ev shared.DomainEvent) {
				defer b.wg.Done()
				if err := b.dispatch(dispatchCtx, h, ev); err != nil {
					b.logger.Error("handler failed to process event",
						zap.String("event_type", ev.EventType()),
						zap.String("event_id", ev.EventID().String()),
						zap.Error(err),
					)
				}
			}(handler, ev)
		}
	}
	return nil
}

// Subscribe registers a handler for specific event types
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range eventTypes {
		b.handlers[t] = append(b.handlers[t], handler)
	}
	b.logger.Debug("handler subscribed", zap.Strings("event_types", eventTypes))
}

// Stop waits for in-flight dispatches to finish
func (b *InMemoryEventBus) Stop(_ context.Context) error {
	b.wg.Wait()
	b.logger.Info("event bus stopped")
	return nil
}

// dispatch runs one handler, converting a panic into a logged error
func (b *InMemoryEventBus) dispatch(ctx context.Context, handler shared.EventHandler, ev shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler panicked",
				zap.String("event_type", ev.EventType()),
				zap.Any("panic", r),
			)
		}
	}()
	return handler.Handle(ctx, ev)
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
