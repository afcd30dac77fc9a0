package models

import "time"

// Event types
const (
	EventTypeOrderPaid           = "ORDER_PAID"
	EventTypeOrderStatusChanged  = "ORDER_STATUS_CHANGED"
	EventTypeProductStockChanged = "PRODUCT_STOCK_CHANGED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderPaidEvent published when the payment webhook marks an order paid
type OrderPaidEvent struct {
	BaseEvent
	OrderID     int64  `json:"order_id"`
	OrderNumber string `json:"order_number"`
	TotalAmount string `json:"total_amount"`
}

// OrderStatusChangedEvent published when an admin changes fulfillment status
type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID int64       `json:"order_id"`
	From    OrderStatus `json:"from"`
	To      OrderStatus `json:"to"`
}

// ProductStockChangedEvent published when catalog edits change stock
type ProductStockChangedEvent struct {
	BaseEvent
	ProductID int64 `json:"product_id"`
	Stock     int   `json:"stock"`
}
