package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) String() string {
	return string(s)
}

// Order is the server's record of a placed order. The client never mutates
// it; it only reads the result of order-creation and listing calls.
type Order struct {
	ID              int64
	UserID          int64
	TotalAmount     Money
	Status          OrderStatus
	ShippingAddress string
	Items           []OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type OrderItem struct {
	ID         int64
	OrderID    int64
	ProductID  int64
	Quantity   int
	UnitPrice  Money
	TotalPrice Money
}

// OrderRequest is the payload for order creation.
type OrderRequest struct {
	UserID          int64
	Items           []OrderRequestItem
	ShippingAddress string
}

type OrderRequestItem struct {
	ProductID int64
	Quantity  int
}
