package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"kittystore/internal/models"

	"github.com/segmentio/kafka-go"
)

// EventPublisher publishes domain events keyed so all events for one order
// land on the same partition.
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishOrderPaid publishes an OrderPaid event
func (ep *EventPublisher) PublishOrderPaid(ctx context.Context, event *models.OrderPaidEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishOrderStatusChanged publishes an OrderStatusChanged event
func (ep *EventPublisher) PublishOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishProductStockChanged publishes a ProductStockChanged event
func (ep *EventPublisher) PublishProductStockChanged(ctx context.Context, event *models.ProductStockChangedEvent) error {
	key := fmt.Sprintf("product-%d", event.ProductID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// EventHandler routes incoming messages by event type.
type EventHandler struct {
	onOrderEvent   func(context.Context, *models.BaseEvent) error
	onProductEvent func(context.Context, *models.BaseEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnOrderEvent registers a handler for order lifecycle events
func (eh *EventHandler) OnOrderEvent(handler func(context.Context, *models.BaseEvent) error) {
	eh.onOrderEvent = handler
}

// OnProductEvent registers a handler for catalog events
func (eh *EventHandler) OnProductEvent(handler func(context.Context, *models.BaseEvent) error) {
	eh.onProductEvent = handler
}

// HandleMessage routes messages to the registered handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	switch baseEvent.EventType {
	case models.EventTypeOrderPaid, models.EventTypeOrderStatusChanged:
		if eh.onOrderEvent != nil {
			return eh.onOrderEvent(ctx, &baseEvent)
		}

	case models.EventTypeProductStockChanged:
		if eh.onProductEvent != nil {
			return eh.onProductEvent(ctx, &baseEvent)
		}

	default:
		log.Printf("Unhandled event type: %s", baseEvent.EventType)
	}

	return nil
}
