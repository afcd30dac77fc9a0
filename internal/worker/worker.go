package worker

import (
	"context"
	"log"

	"kittystore/internal/broker"
	"kittystore/internal/models"
	"kittystore/internal/util"

	"go.uber.org/zap"
)

// Invalidator drops the cached dashboard snapshot.
type Invalidator interface {
	InvalidateSnapshot(ctx context.Context) error
}

// CacheWorker consumes order and catalog events and invalidates the dashboard
// snapshot cache, so admins see mutations on the next request instead of
// waiting out the TTL.
type CacheWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	cache        Invalidator
	logger       *zap.Logger
}

// NewCacheWorker creates a new cache invalidation worker
func NewCacheWorker(consumer *broker.Consumer, cache Invalidator) *CacheWorker {
	w := &CacheWorker{
		consumer: consumer,
		cache:    cache,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnOrderEvent(w.handleEvent)
	eventHandler.OnProductEvent(w.handleEvent)
	w.eventHandler = eventHandler

	return w
}

func (w *CacheWorker) handleEvent(ctx context.Context, event *models.BaseEvent) error {
	if err := w.cache.InvalidateSnapshot(ctx); err != nil {
		w.logger.Error("Failed to invalidate snapshot cache",
			zap.String("event_id", event.EventID),
			zap.String("event_type", event.EventType),
			zap.Error(err))
		return err
	}

	util.SnapshotInvalidations.Inc()
	w.logger.Debug("Snapshot cache invalidated",
		zap.String("event_type", event.EventType))
	return nil
}

// Start starts the worker
func (w *CacheWorker) Start(ctx context.Context) error {
	log.Println("Starting dashboard cache worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *CacheWorker) Stop() error {
	log.Println("Stopping dashboard cache worker...")
	return w.consumer.Close()
}
