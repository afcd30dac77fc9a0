package service

import (
	"context"
	"fmt"
	"time"

	"kittystore/internal/models"
	"kittystore/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderStore is the order read/write surface the admin service needs.
type OrderStore interface {
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	ListOrders(ctx context.Context, status models.OrderStatus, limit int) ([]models.Order, error)
	GetOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) error
	UpdateOrderPaymentStatus(ctx context.Context, orderID int64, status models.PaymentStatus) error
}

// Publisher publishes domain events for order and catalog mutations.
type Publisher interface {
	PublishOrderPaid(ctx context.Context, event *models.OrderPaidEvent) error
	PublishOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error
	PublishProductStockChanged(ctx context.Context, event *models.ProductStockChangedEvent) error
}

// OrderAdminService handles the admin-side order operations: listing,
// fulfillment status changes and the payment callback.
type OrderAdminService struct {
	store     OrderStore
	publisher Publisher
	logger    *zap.Logger
}

// NewOrderAdminService creates a new order admin service. publisher may be
// nil when event delivery is not wired (tests).
func NewOrderAdminService(store OrderStore, publisher Publisher) *OrderAdminService {
	return &OrderAdminService{
		store:     store,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// ListOrders lists orders newest first, optionally filtered by status.
func (s *OrderAdminService) ListOrders(ctx context.Context, status models.OrderStatus, limit int) ([]models.Order, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("unknown order status %q", status)
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.store.ListOrders(ctx, status, limit)
}

// GetOrder fetches an order with its items.
func (s *OrderAdminService) GetOrder(ctx context.Context, orderID int64) (*models.Order, []models.OrderItem, error) {
	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.store.GetOrderItems(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

// UpdateStatus moves an order to a new fulfillment status.
func (s *OrderAdminService) UpdateStatus(ctx context.Context, orderID int64, status models.OrderStatus) error {
	ctx, span := util.StartSpan(ctx, "OrderAdminService.UpdateStatus")
	defer span.End()

	if !status.Valid() {
		return fmt.Errorf("unknown order status %q", status)
	}

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status == status {
		return nil
	}

	if err := s.store.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	util.OrderStatusChangesTotal.WithLabelValues(string(status)).Inc()
	s.logger.Info("Order status changed",
		zap.Int64("order_id", orderID),
		zap.String("from", string(order.Status)),
		zap.String("to", string(status)))

	if s.publisher != nil {
		event := &models.OrderStatusChangedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeOrderStatusChanged,
				Timestamp: time.Now(),
			},
			OrderID: orderID,
			From:    order.Status,
			To:      status,
		}
		if err := s.publisher.PublishOrderStatusChanged(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderStatusChanged event", zap.Error(err))
		}
	}

	return nil
}

// MarkPaid records a successful payment for an order. This is the path the
// payment provider callback takes; the dashboard's paid-order aggregates pick
// the order up on the next snapshot.
func (s *OrderAdminService) MarkPaid(ctx context.Context, orderID int64) error {
	ctx, span := util.StartSpan(ctx, "OrderAdminService.MarkPaid")
	defer span.End()

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.PaymentStatus == models.PaymentStatusPaid {
		s.logger.Info("Order already paid", zap.Int64("order_id", orderID))
		return nil
	}

	if err := s.store.UpdateOrderPaymentStatus(ctx, orderID, models.PaymentStatusPaid); err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}

	util.OrdersMarkedPaidTotal.Inc()
	s.logger.Info("Order marked paid", zap.Int64("order_id", orderID))

	if s.publisher != nil {
		event := &models.OrderPaidEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeOrderPaid,
				Timestamp: time.Now(),
			},
			OrderID:     orderID,
			OrderNumber: order.OrderNumber,
			TotalAmount: order.TotalAmount.String(),
		}
		if err := s.publisher.PublishOrderPaid(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderPaid event", zap.Error(err))
		}
	}

	return nil
}
