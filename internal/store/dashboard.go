package store

import (
	"context"
	"time"

	"kittystore/internal/models"

	"github.com/shopspring/decimal"
)

// Every query in this file is a set aggregate pushed down to Postgres.
// Rows are never pulled into memory to be counted or summed here.

// DashboardStats computes the six headline aggregates in one round-trip.
func (s *Store) DashboardStats(ctx context.Context, lowStockThreshold int) (*models.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COALESCE(SUM(total_amount), 0) FROM orders
				WHERE status IN ('processing', 'completed'))          AS total_revenue,
			(SELECT COUNT(*) FROM orders)                                 AS total_orders,
			(SELECT COUNT(*) FROM orders
				WHERE status = 'pending' AND payment_status = 'paid') AS pending_orders,
			(SELECT COUNT(*) FROM products)                               AS total_products,
			(SELECT COUNT(*) FROM users WHERE role = 'customer')          AS total_customers,
			(SELECT COUNT(*) FROM products WHERE stock <= $1)             AS low_stock`

	var stats models.DashboardStats
	if err := s.db.GetContext(ctx, &stats, query, lowStockThreshold); err != nil {
		return nil, err
	}
	return &stats, nil
}

// RecentOrders returns the limit most recently created orders, newest first,
// with the customer name joined in (one round-trip, no per-row lookup).
func (s *Store) RecentOrders(ctx context.Context, limit int) ([]models.RecentOrder, error) {
	query := `
		SELECT o.order_number, u.name AS user_name, o.total_amount,
		       o.status, o.payment_status, o.created_at
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC
		LIMIT $1`

	orders := []models.RecentOrder{}
	if err := s.db.SelectContext(ctx, &orders, query, limit); err != nil {
		return nil, err
	}
	return orders, nil
}

// TopProducts ranks products by quantity sold through paid orders.
// Ties break on product id ascending so the ranking is reproducible.
func (s *Store) TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error) {
	query := `
		SELECT p.name, p.image_url, SUM(oi.quantity) AS sold
		FROM products p
		JOIN order_items oi ON oi.product_id = p.id
		JOIN orders o ON o.id = oi.order_id
		WHERE o.payment_status = 'paid'
		GROUP BY p.id, p.name, p.image_url
		HAVING SUM(oi.quantity) > 0
		ORDER BY sold DESC, p.id ASC
		LIMIT $1`

	products := []models.TopProduct{}
	if err := s.db.SelectContext(ctx, &products, query, limit); err != nil {
		return nil, err
	}
	return products, nil
}

// DailyRevenue sums paid-order revenue per calendar day for orders created at
// or after since. Days with no paid orders produce no row.
func (s *Store) DailyRevenue(ctx context.Context, since time.Time) ([]models.RevenuePoint, error) {
	query := `
		SELECT created_at::date AS day, SUM(total_amount) AS total
		FROM orders
		WHERE payment_status = 'paid' AND created_at >= $1
		GROUP BY 1
		ORDER BY 1 ASC`

	var rows []struct {
		Day   time.Time       `db:"day"`
		Total decimal.Decimal `db:"total"`
	}
	if err := s.db.SelectContext(ctx, &rows, query, since); err != nil {
		return nil, err
	}

	series := make([]models.RevenuePoint, 0, len(rows))
	for _, r := range rows {
		series = append(series, models.RevenuePoint{
			Date:  r.Day.Format("2006-01-02"),
			Total: r.Total,
		})
	}
	return series, nil
}
