package client

import (
	"time"

	"github.com/fjod/shopease/internal/domain"
)

// Wire representations. Prices and amounts travel as JSON numbers; the
// services emit timestamps as naive ISO-8601 strings.

type productDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func (d productDTO) toDomain() domain.Product {
	return domain.Product{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Price:       domain.MoneyFromFloat(d.Price),
		Stock:       d.Stock,
		ImageURL:    d.ImageURL,
		CreatedAt:   parseTime(d.CreatedAt),
		UpdatedAt:   parseTime(d.UpdatedAt),
	}
}

type userDTO struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	CreatedAt string `json:"created_at"`
	IsActive  bool   `json:"is_active"`
}

func (d userDTO) toDomain() domain.User {
	return domain.User{
		ID:        d.ID,
		Username:  d.Username,
		Email:     d.Email,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		CreatedAt: parseTime(d.CreatedAt),
		IsActive:  d.IsActive,
	}
}

type orderItemDTO struct {
	ID         int64   `json:"id"`
	OrderID    int64   `json:"order_id"`
	ProductID  int64   `json:"product_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

type orderDTO struct {
	ID              int64          `json:"id"`
	UserID          int64          `json:"user_id"`
	TotalAmount     float64        `json:"total_amount"`
	Status          string         `json:"status"`
	ShippingAddress string         `json:"shipping_address"`
	Items           []orderItemDTO `json:"items"`
	CreatedAt       string         `json:"created_at"`
	UpdatedAt       string         `json:"updated_at"`
}

func (d orderDTO) toDomain() domain.Order {
	order := domain.Order{
		ID:              d.ID,
		UserID:          d.UserID,
		TotalAmount:     domain.MoneyFromFloat(d.TotalAmount),
		Status:          domain.OrderStatus(d.Status),
		ShippingAddress: d.ShippingAddress,
		CreatedAt:       parseTime(d.CreatedAt),
		UpdatedAt:       parseTime(d.UpdatedAt),
	}
	for _, item := range d.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ID:         item.ID,
			OrderID:    item.OrderID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  domain.MoneyFromFloat(item.UnitPrice),
			TotalPrice: domain.MoneyFromFloat(item.TotalPrice),
		})
	}
	return order
}

type paymentDTO struct {
	PaymentID     string  `json:"payment_id"`
	OrderID       int64   `json:"order_id"`
	UserID        int64   `json:"user_id"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	PaymentStatus string  `json:"payment_status"`
	TransactionID string  `json:"transaction_id"`
	CardLastFour  string  `json:"card_last_four"`
	CardBrand     string  `json:"card_brand"`
	CreatedAt     string  `json:"created_at"`
}

func (d paymentDTO) toDomain() domain.Payment {
	return domain.Payment{
		PaymentID:     d.PaymentID,
		OrderID:       d.OrderID,
		UserID:        d.UserID,
		Amount:        domain.MoneyFromFloat(d.Amount),
		Method:        domain.PaymentMethod(d.PaymentMethod),
		Status:        domain.PaymentStatus(d.PaymentStatus),
		TransactionID: d.TransactionID,
		CardLastFour:  d.CardLastFour,
		CardBrand:     d.CardBrand,
		CreatedAt:     parseTime(d.CreatedAt),
	}
}

// parseTime handles the services' naive isoformat timestamps. A missing or
// malformed timestamp maps to the zero time.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02T15:04:05.999999", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
