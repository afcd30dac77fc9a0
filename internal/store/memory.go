package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"kittystore/internal/models"

	"github.com/shopspring/decimal"
)

// MemoryStore is an in-memory implementation of the read and write surface the
// services depend on. It mirrors the SQL semantics of Store and backs unit
// tests that would otherwise need a live Postgres.
type MemoryStore struct {
	mu       sync.RWMutex
	orders   map[int64]models.Order
	items    map[int64]models.OrderItem
	products map[int64]models.Product
	users    map[int64]models.User
	nextID   int64
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orders:   make(map[int64]models.Order),
		items:    make(map[int64]models.OrderItem),
		products: make(map[int64]models.Product),
		users:    make(map[int64]models.User),
		nextID:   1,
	}
}

func (m *MemoryStore) allocID() int64 {
	id := m.nextID
	m.nextID++
	return id
}

// AddUser inserts a user, assigning an ID if unset.
func (m *MemoryStore) AddUser(user models.User) models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == 0 {
		user.ID = m.allocID()
	}
	m.users[user.ID] = user
	return user
}

// AddOrder inserts an order, assigning an ID if unset.
func (m *MemoryStore) AddOrder(order models.Order) models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	if order.ID == 0 {
		order.ID = m.allocID()
	}
	m.orders[order.ID] = order
	return order
}

// AddOrderItem inserts an order item, assigning an ID if unset.
func (m *MemoryStore) AddOrderItem(item models.OrderItem) models.OrderItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item.ID == 0 {
		item.ID = m.allocID()
	}
	m.items[item.ID] = item
	return item
}

// DashboardStats mirrors Store.DashboardStats.
func (m *MemoryStore) DashboardStats(ctx context.Context, lowStockThreshold int) (*models.DashboardStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counted := func(s models.OrderStatus) bool {
		for _, rs := range models.RevenueStatuses {
			if s == rs {
				return true
			}
		}
		return false
	}

	stats := models.DashboardStats{TotalRevenue: decimal.Zero}
	for _, o := range m.orders {
		stats.TotalOrders++
		if counted(o.Status) {
			stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalAmount)
		}
		if o.Status == models.OrderStatusPending && o.PaymentStatus == models.PaymentStatusPaid {
			stats.PendingOrders++
		}
	}
	for _, p := range m.products {
		stats.TotalProducts++
		if p.Stock <= lowStockThreshold {
			stats.LowStock++
		}
	}
	for _, u := range m.users {
		if u.Role == models.RoleCustomer {
			stats.TotalCustomers++
		}
	}
	return &stats, nil
}

// RecentOrders mirrors Store.RecentOrders.
func (m *MemoryStore) RecentOrders(ctx context.Context, limit int) ([]models.RecentOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	orders := make([]models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		// the SQL query joins users, so an order without one yields no row
		if _, ok := m.users[o.UserID]; !ok {
			continue
		}
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	if len(orders) > limit {
		orders = orders[:limit]
	}

	recent := make([]models.RecentOrder, 0, len(orders))
	for _, o := range orders {
		recent = append(recent, models.RecentOrder{
			OrderNumber:   o.OrderNumber,
			UserName:      m.users[o.UserID].Name,
			TotalAmount:   o.TotalAmount,
			Status:        o.Status,
			PaymentStatus: o.PaymentStatus,
			CreatedAt:     o.CreatedAt,
		})
	}
	return recent, nil
}

// TopProducts mirrors Store.TopProducts.
func (m *MemoryStore) TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sold := make(map[int64]int64)
	for _, item := range m.items {
		order, ok := m.orders[item.OrderID]
		if !ok || order.PaymentStatus != models.PaymentStatusPaid {
			continue
		}
		sold[item.ProductID] += int64(item.Quantity)
	}

	type ranked struct {
		productID int64
		sold      int64
	}
	ranking := make([]ranked, 0, len(sold))
	for id, qty := range sold {
		if qty <= 0 {
			continue
		}
		if _, ok := m.products[id]; !ok {
			continue
		}
		ranking = append(ranking, ranked{productID: id, sold: qty})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].sold != ranking[j].sold {
			return ranking[i].sold > ranking[j].sold
		}
		return ranking[i].productID < ranking[j].productID
	})
	if len(ranking) > limit {
		ranking = ranking[:limit]
	}

	top := make([]models.TopProduct, 0, len(ranking))
	for _, r := range ranking {
		p := m.products[r.productID]
		top = append(top, models.TopProduct{Name: p.Name, ImageURL: p.ImageURL, Sold: r.sold})
	}
	return top, nil
}

// DailyRevenue mirrors Store.DailyRevenue.
func (m *MemoryStore) DailyRevenue(ctx context.Context, since time.Time) ([]models.RevenuePoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byDate := make(map[string]decimal.Decimal)
	for _, o := range m.orders {
		if o.PaymentStatus != models.PaymentStatusPaid || o.CreatedAt.Before(since) {
			continue
		}
		date := o.CreatedAt.Format("2006-01-02")
		byDate[date] = byDate[date].Add(o.TotalAmount)
	}

	series := make([]models.RevenuePoint, 0, len(byDate))
	for date, total := range byDate {
		series = append(series, models.RevenuePoint{Date: date, Total: total})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series, nil
}

// GetOrderByID mirrors Store.GetOrderByID.
func (m *MemoryStore) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	return &o, nil
}

// ListOrders mirrors Store.ListOrders.
func (m *MemoryStore) ListOrders(ctx context.Context, status models.OrderStatus, limit int) ([]models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	orders := make([]models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		if status != "" && o.Status != status {
			continue
		}
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	if len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

// GetOrderItems mirrors Store.GetOrderItems.
func (m *MemoryStore) GetOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := []models.OrderItem{}
	for _, it := range m.items {
		if it.OrderID == orderID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// UpdateOrderStatus mirrors Store.UpdateOrderStatus.
func (m *MemoryStore) UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	m.orders[orderID] = o
	return nil
}

// UpdateOrderPaymentStatus mirrors Store.UpdateOrderPaymentStatus.
func (m *MemoryStore) UpdateOrderPaymentStatus(ctx context.Context, orderID int64, status models.PaymentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	o.PaymentStatus = status
	o.UpdatedAt = time.Now()
	m.orders[orderID] = o
	return nil
}

// GetProductByID mirrors Store.GetProductByID.
func (m *MemoryStore) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return &p, nil
}

// ListProducts mirrors Store.ListProducts.
func (m *MemoryStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	products := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

// ListLowStockProducts mirrors Store.ListLowStockProducts.
func (m *MemoryStore) ListLowStockProducts(ctx context.Context, threshold int) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	products := []models.Product{}
	for _, p := range m.products {
		if p.Stock <= threshold {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Stock != products[j].Stock {
			return products[i].Stock < products[j].Stock
		}
		return products[i].ID < products[j].ID
	})
	return products, nil
}

// CreateProduct mirrors Store.CreateProduct.
func (m *MemoryStore) CreateProduct(ctx context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if product.ID == 0 {
		product.ID = m.allocID()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	m.products[product.ID] = *product
	return nil
}

// UpdateProduct mirrors Store.UpdateProduct.
func (m *MemoryStore) UpdateProduct(ctx context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.products[product.ID]
	if !ok {
		return fmt.Errorf("product %d: %w", product.ID, ErrNotFound)
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()
	m.products[product.ID] = *product
	return nil
}

// DeleteProduct mirrors Store.DeleteProduct.
func (m *MemoryStore) DeleteProduct(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	delete(m.products, id)
	return nil
}

// GetUserByID mirrors Store.GetUserByID.
func (m *MemoryStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return &u, nil
}

// ListUsers mirrors Store.ListUsers.
func (m *MemoryStore) ListUsers(ctx context.Context, role models.Role) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	users := []models.User{}
	for _, u := range m.users {
		if u.Role == role {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}
