package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// RevenueStatuses are the statuses counted into headline revenue.
// The chart series filters on payment status instead; the two sets differ.
var RevenueStatuses = []OrderStatus{OrderStatusProcessing, OrderStatusCompleted}

// PaymentStatus is the payment state of an order, independent of fulfillment.
type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Role distinguishes store customers from admins.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Order represents a customer order
type Order struct {
	ID            int64           `db:"id" json:"id"`
	OrderNumber   string          `db:"order_number" json:"order_number"`
	UserID        int64           `db:"user_id" json:"user_id"`
	Status        OrderStatus     `db:"status" json:"status"`
	PaymentStatus PaymentStatus   `db:"payment_status" json:"payment_status"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"total_amount"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// OrderItem represents a line in an order
type OrderItem struct {
	ID        int64           `db:"id" json:"id"`
	OrderID   int64           `db:"order_id" json:"order_id"`
	ProductID int64           `db:"product_id" json:"product_id"`
	Quantity  int             `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
}

// Product represents a catalog product
type Product struct {
	ID        int64           `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	ImageURL  string          `db:"image_url" json:"image_url"`
	Price     decimal.Decimal `db:"price" json:"price"`
	Stock     int             `db:"stock" json:"stock"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// User represents a store user (customer or admin)
type User struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Role      Role      `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// DashboardStats are the headline numbers on the admin dashboard,
// each computed by a set aggregate in the database.
type DashboardStats struct {
	TotalRevenue   decimal.Decimal `db:"total_revenue" json:"total_revenue"`
	TotalOrders    int64           `db:"total_orders" json:"total_orders"`
	PendingOrders  int64           `db:"pending_orders" json:"pending_orders"`
	TotalProducts  int64           `db:"total_products" json:"total_products"`
	TotalCustomers int64           `db:"total_customers" json:"total_customers"`
	LowStock       int64           `db:"low_stock" json:"low_stock"`
}

// RecentOrder is an order row with the customer name already resolved.
type RecentOrder struct {
	OrderNumber   string          `db:"order_number" json:"order_number"`
	UserName      string          `db:"user_name" json:"user_name"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"total_amount"`
	Status        OrderStatus     `db:"status" json:"status"`
	PaymentStatus PaymentStatus   `db:"payment_status" json:"payment_status"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// TopProduct is a product ranked by quantity sold through paid orders.
type TopProduct struct {
	Name     string `db:"name" json:"name"`
	ImageURL string `db:"image_url" json:"image_url"`
	Sold     int64  `db:"sold" json:"sold"`
}

// RevenuePoint is one day of paid revenue. Date is formatted YYYY-MM-DD.
// Days without paid orders are absent from the series, not zero-filled.
type RevenuePoint struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// DashboardSnapshot is the full payload rendered by the admin dashboard.
type DashboardSnapshot struct {
	Stats        DashboardStats `json:"stats"`
	RecentOrders []RecentOrder  `json:"recent_orders"`
	TopProducts  []TopProduct   `json:"top_products"`
	RevenueChart []RevenuePoint `json:"revenue_chart"`
	GeneratedAt  time.Time      `json:"generated_at"`
}
