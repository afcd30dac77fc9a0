package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"kittystore/internal/models"
	"kittystore/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	paid          []*models.OrderPaidEvent
	statusChanges []*models.OrderStatusChangedEvent
	stockChanges  []*models.ProductStockChangedEvent
}

func (p *fakePublisher) PublishOrderPaid(ctx context.Context, event *models.OrderPaidEvent) error {
	p.paid = append(p.paid, event)
	return nil
}

func (p *fakePublisher) PublishOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error {
	p.statusChanges = append(p.statusChanges, event)
	return nil
}

func (p *fakePublisher) PublishProductStockChanged(ctx context.Context, event *models.ProductStockChangedEvent) error {
	p.stockChanges = append(p.stockChanges, event)
	return nil
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	m := store.NewMemoryStore()
	svc := NewOrderAdminService(m, nil)

	err := svc.UpdateStatus(context.Background(), 1, models.OrderStatus("shipped-ish"))
	assert.Error(t, err)
}

func TestUpdateStatusPublishesTransition(t *testing.T) {
	m := store.NewMemoryStore()
	pub := &fakePublisher{}
	svc := NewOrderAdminService(m, pub)
	ctx := context.Background()

	order := m.AddOrder(models.Order{
		OrderNumber: "ORD-001",
		Status:      models.OrderStatusPending, PaymentStatus: models.PaymentStatusPaid,
		TotalAmount: dec("10"), CreatedAt: time.Now(),
	})

	require.NoError(t, svc.UpdateStatus(ctx, order.ID, models.OrderStatusProcessing))

	updated, err := m.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, updated.Status)

	require.Len(t, pub.statusChanges, 1)
	assert.Equal(t, models.OrderStatusPending, pub.statusChanges[0].From)
	assert.Equal(t, models.OrderStatusProcessing, pub.statusChanges[0].To)
	assert.Equal(t, models.EventTypeOrderStatusChanged, pub.statusChanges[0].EventType)
	assert.NotEmpty(t, pub.statusChanges[0].EventID)
}

func TestUpdateStatusNoopWhenUnchanged(t *testing.T) {
	m := store.NewMemoryStore()
	pub := &fakePublisher{}
	svc := NewOrderAdminService(m, pub)
	ctx := context.Background()

	order := m.AddOrder(models.Order{
		Status: models.OrderStatusPending, PaymentStatus: models.PaymentStatusUnpaid,
		TotalAmount: dec("10"), CreatedAt: time.Now(),
	})

	require.NoError(t, svc.UpdateStatus(ctx, order.ID, models.OrderStatusPending))
	assert.Empty(t, pub.statusChanges)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	m := store.NewMemoryStore()
	svc := NewOrderAdminService(m, nil)

	err := svc.UpdateStatus(context.Background(), 42, models.OrderStatusCompleted)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestMarkPaidIsIdempotent(t *testing.T) {
	m := store.NewMemoryStore()
	pub := &fakePublisher{}
	svc := NewOrderAdminService(m, pub)
	ctx := context.Background()

	order := m.AddOrder(models.Order{
		OrderNumber: "ORD-007",
		Status:      models.OrderStatusPending, PaymentStatus: models.PaymentStatusUnpaid,
		TotalAmount: dec("99.90"), CreatedAt: time.Now(),
	})

	require.NoError(t, svc.MarkPaid(ctx, order.ID))
	require.NoError(t, svc.MarkPaid(ctx, order.ID))

	updated, err := m.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, updated.PaymentStatus)

	// the second call found the order already paid and published nothing
	require.Len(t, pub.paid, 1)
	assert.Equal(t, "ORD-007", pub.paid[0].OrderNumber)
	assert.Equal(t, "99.90", pub.paid[0].TotalAmount)
}

func TestListOrdersFiltersByStatus(t *testing.T) {
	m := store.NewMemoryStore()
	svc := NewOrderAdminService(m, nil)
	ctx := context.Background()

	m.AddOrder(models.Order{Status: models.OrderStatusPending, PaymentStatus: models.PaymentStatusUnpaid, TotalAmount: dec("1"), CreatedAt: time.Now()})
	m.AddOrder(models.Order{Status: models.OrderStatusCompleted, PaymentStatus: models.PaymentStatusPaid, TotalAmount: dec("2"), CreatedAt: time.Now()})

	orders, err := svc.ListOrders(ctx, models.OrderStatusCompleted, 10)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderStatusCompleted, orders[0].Status)

	_, err = svc.ListOrders(ctx, models.OrderStatus("bogus"), 10)
	assert.Error(t, err)
}
