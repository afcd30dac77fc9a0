package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"kittystore/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestEmptyStoreReturnsZeros(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	stats, err := m.DashboardStats(ctx, 5)
	require.NoError(t, err)
	assert.True(t, stats.TotalRevenue.IsZero())
	assert.Zero(t, stats.TotalOrders)
	assert.Zero(t, stats.PendingOrders)
	assert.Zero(t, stats.TotalProducts)
	assert.Zero(t, stats.TotalCustomers)
	assert.Zero(t, stats.LowStock)

	recent, err := m.RecentOrders(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, recent)

	top, err := m.TopProducts(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, top)

	series, err := m.DailyRevenue(ctx, today.AddDate(0, 0, -6))
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestRevenueCountsProcessingAndCompletedOnly(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	m.AddOrder(models.Order{Status: models.OrderStatusProcessing, PaymentStatus: models.PaymentStatusPaid, TotalAmount: dec("100"), CreatedAt: today})
	m.AddOrder(models.Order{Status: models.OrderStatusCompleted, PaymentStatus: models.PaymentStatusPaid, TotalAmount: dec("250.50"), CreatedAt: today})
	m.AddOrder(models.Order{Status: models.OrderStatusPending, PaymentStatus: models.PaymentStatusPaid, TotalAmount: dec("999"), CreatedAt: today})
	m.AddOrder(models.Order{Status: models.OrderStatusCancelled, PaymentStatus: models.PaymentStatusPaid, TotalAmount: dec("50"), CreatedAt: today})

	stats, err := m.DashboardStats(ctx, 5)
	require.NoError(t, err)
	assert.True(t, stats.TotalRevenue.Equal(dec("350.50")), "got %s", stats.TotalRevenue)
	assert.EqualValues(t, 4, stats.TotalOrders)

	// moving a counted order out of the revenue set removes it on the next call
	require.NoError(t, m.UpdateOrderStatus(ctx, 2, models.OrderStatusCancelled))
	stats, err = m.DashboardStats(ctx, 5)
	require.NoError(t, err)
	assert.True(t, stats.TotalRevenue.Equal(dec("100")), "got %s", stats.TotalRevenue)
}

func TestPendingOrdersRequirePayment(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	m.AddOrder(models.Order{Status: models.OrderStatusPending, PaymentStatus: models.PaymentStatusPaid, TotalAmount: dec("10"), CreatedAt: today})
	m.AddOrder(models.Order{Status: models.OrderStatusPending, PaymentStatus: models.PaymentStatusUnpaid, TotalAmount: dec("10"), CreatedAt: today})
	m.AddOrder(models.Order{Status: models.OrderStatusProcessing, PaymentStatus: models.PaymentStatusPaid, TotalAmount: dec("10"), CreatedAt: today})

	stats, err := m.DashboardStats(ctx, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.PendingOrders)
}

func TestLowStockBoundary(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, m.CreateProduct(ctx, &models.Product{Name: "Plush", Stock: 5}))
	require.NoError(t, m.CreateProduct(ctx, &models.Product{Name: "Mug", Stock: 6}))
	require.NoError(t, m.CreateProduct(ctx, &models.Product{Name: "Sticker", Stock: 0}))

	stats, err := m.DashboardStats(ctx, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalProducts)
	assert.EqualValues(t, 2, stats.LowStock)
}

func TestCustomerCountExcludesAdmins(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	m.AddUser(models.User{Name: "Alice", Role: models.RoleCustomer})
	m.AddUser(models.User{Name: "Bob", Role: models.RoleCustomer})
	m.AddUser(models.User{Name: "Root", Role: models.RoleAdmin})

	stats, err := m.DashboardStats(ctx, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalCustomers)
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	user := m.AddUser(models.User{Name: "Alice", Role: models.RoleCustomer})
	for i := 0; i < 10; i++ {
		m.AddOrder(models.Order{
			OrderNumber:   fmt.Sprintf("ORD-%03d", i),
			UserID:        user.ID,
			Status:        models.OrderStatusPending,
			PaymentStatus: models.PaymentStatusUnpaid,
			TotalAmount:   dec("10"),
			CreatedAt:     today.Add(time.Duration(i) * time.Minute),
		})
	}

	recent, err := m.RecentOrders(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, "ORD-009", recent[0].OrderNumber)
	assert.Equal(t, "ORD-005", recent[4].OrderNumber)
	for i := 1; i < len(recent); i++ {
		assert.True(t, !recent[i-1].CreatedAt.Before(recent[i].CreatedAt))
	}
	assert.Equal(t, "Alice", recent[0].UserName)
}

func TestRecentOrdersSkipOrphanedOrders(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	user := m.AddUser(models.User{Name: "Alice", Role: models.RoleCustomer})
	for i := 0; i < 6; i++ {
		m.AddOrder(models.Order{
			OrderNumber:   fmt.Sprintf("ORD-%03d", i),
			UserID:        user.ID,
			Status:        models.OrderStatusPending,
			PaymentStatus: models.PaymentStatusUnpaid,
			TotalAmount:   dec("10"),
			CreatedAt:     today.Add(time.Duration(i) * time.Minute),
		})
	}
	// newest order points at a user id that was never created
	m.AddOrder(models.Order{
		OrderNumber:   "ORD-ORPHAN",
		UserID:        9999,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
		TotalAmount:   dec("10"),
		CreatedAt:     today.Add(time.Hour),
	})

	recent, err := m.RecentOrders(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	for _, r := range recent {
		assert.NotEqual(t, "ORD-ORPHAN", r.OrderNumber)
		assert.Equal(t, "Alice", r.UserName)
	}
	// the dropped order does not consume a slot of the limit
	assert.Equal(t, "ORD-005", recent[0].OrderNumber)
	assert.Equal(t, "ORD-001", recent[4].OrderNumber)
}

func TestTopProductsCountPaidItemsOnly(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	p := models.Product{Name: "Plush", ImageURL: "plush.png", Stock: 10}
	require.NoError(t, m.CreateProduct(ctx, &p))

	paid1 := m.AddOrder(models.Order{Status: models.OrderStatusCompleted, PaymentStatus: models.PaymentStatusPaid, TotalAmount: dec("30"), CreatedAt: today})
	paid2 := m.AddOrder(models.Order{Status: models.OrderStatusProcessing, PaymentStatus: models.PaymentStatusPaid, TotalAmount: dec("20"), CreatedAt: today})
	unpaid := m.AddOrder(models.Order{Status: models.OrderStatusPending, PaymentStatus: models.PaymentStatusUnpaid, TotalAmount: dec("100"), CreatedAt: today})

	m.AddOrderItem(models.OrderItem{OrderID: paid1.ID, ProductID: p.ID, Quantity: 3})
	m.AddOrderItem(models.OrderItem{OrderID: paid2.ID, ProductID: p.ID, Quantity: 2})
	m.AddOrderItem(models.OrderItem{OrderID: unpaid.ID, ProductID: p.ID, Quantity: 10})

	top, err := m.TopProducts(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Plush", top[0].Name)
	assert.Equal(t, "plush.png", top[0].ImageURL)
	assert.EqualValues(t, 5, top[0].Sold)
}

func TestTopProductsExcludeUnsoldAndSortDescending(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	a := models.Product{Name: "A", Stock: 1}
	b := models.Product{Name: "B", Stock: 1}
	c := models.Product{Name: "C", Stock: 1}
	unsold := models.Product{Name: "Unsold", Stock: 1}
	for _, p := range []*models.Product{&a, &b, &c, &unsold} {
		require.NoError(t, m.CreateProduct(ctx, p))
	}

	order := m.AddOrder(models.Order{Status: models.OrderStatusCompleted, PaymentStatus: models.PaymentStatusPaid, TotalAmount: dec("10"), CreatedAt: today})
	m.AddOrderItem(models.OrderItem{OrderID: order.ID, ProductID: a.ID, Quantity: 2})
	m.AddOrderItem(models.OrderItem{OrderID: order.ID, ProductID: b.ID, Quantity: 7})
	m.AddOrderItem(models.OrderItem{OrderID: order.ID, ProductID: c.ID, Quantity: 2})

	top, err := m.TopProducts(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "B", top[0].Name)
	// equal sold counts break ties on product id ascending
	assert.Equal(t, "A", top[1].Name)
	assert.Equal(t, "C", top[2].Name)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Sold, top[i].Sold)
	}
}

func TestDailyRevenueUsesPaymentStatusNotFulfillment(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	yesterday := today.AddDate(0, 0, -1)

	// cancelled but paid still contributes to the chart series
	m.AddOrder(models.Order{Status: models.OrderStatusCompleted, PaymentStatus: models.PaymentStatusPaid, TotalAmount: dec("100"), CreatedAt: today})
	m.AddOrder(models.Order{Status: models.OrderStatusPending, PaymentStatus: models.PaymentStatusPaid, TotalAmount: dec("50"), CreatedAt: today})
	m.AddOrder(models.Order{Status: models.OrderStatusCancelled, PaymentStatus: models.PaymentStatusPaid, TotalAmount: dec("200"), CreatedAt: yesterday})
	m.AddOrder(models.Order{Status: models.OrderStatusCompleted, PaymentStatus: models.PaymentStatusUnpaid, TotalAmount: dec("75"), CreatedAt: today})

	series, err := m.DailyRevenue(ctx, today.AddDate(0, 0, -6))
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, "2025-06-14", series[0].Date)
	assert.True(t, series[0].Total.Equal(dec("200")), "got %s", series[0].Total)
	assert.Equal(t, "2025-06-15", series[1].Date)
	assert.True(t, series[1].Total.Equal(dec("150")), "got %s", series[1].Total)
}

func TestDailyRevenueWindowExcludesOlderOrders(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	since := today.AddDate(0, 0, -6)
	m.AddOrder(models.Order{Status: models.OrderStatusCompleted, PaymentStatus: models.PaymentStatusPaid, TotalAmount: dec("40"), CreatedAt: since})
	m.AddOrder(models.Order{Status: models.OrderStatusCompleted, PaymentStatus: models.PaymentStatusPaid, TotalAmount: dec("60"), CreatedAt: since.Add(-time.Second)})

	series, err := m.DailyRevenue(ctx, since)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.True(t, series[0].Total.Equal(dec("40")))
}
