package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fjod/shopease/internal/domain"
)

type OrderClient struct {
	*Client
}

func NewOrderClient(c *Client) *OrderClient {
	return &OrderClient{Client: c}
}

type orderRequestItemDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type orderRequestDTO struct {
	UserID          int64                 `json:"user_id"`
	Items           []orderRequestItemDTO `json:"items"`
	ShippingAddress string                `json:"shipping_address"`
}

// Create places an order. idempotencyKey, when non-empty, is forwarded as
// the Idempotency-Key header so a retried submission cannot double-order.
func (c *OrderClient) Create(ctx context.Context, req domain.OrderRequest, idempotencyKey string) (domain.Order, error) {
	dto := orderRequestDTO{
		UserID:          req.UserID,
		ShippingAddress: req.ShippingAddress,
		Items:           make([]orderRequestItemDTO, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		dto.Items = append(dto.Items, orderRequestItemDTO{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	var headers map[string]string
	if idempotencyKey != "" {
		headers = map[string]string{"Idempotency-Key": idempotencyKey}
	}

	var resp orderDTO
	if err := c.do(ctx, http.MethodPost, "/orders", headers, dto, &resp); err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}
	return resp.toDomain(), nil
}

func (c *OrderClient) Get(ctx context.Context, orderID int64) (domain.Order, error) {
	var dto orderDTO
	if err := c.get(ctx, fmt.Sprintf("/orders/%d", orderID), &dto); err != nil {
		return domain.Order{}, fmt.Errorf("get order %d: %w", orderID, err)
	}
	return dto.toDomain(), nil
}

// ListByUser returns a user's order history, newest first.
func (c *OrderClient) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	var dtos []orderDTO
	if err := c.get(ctx, fmt.Sprintf("/orders/user/%d", userID), &dtos); err != nil {
		return nil, fmt.Errorf("list orders for user %d: %w", userID, err)
	}

	orders := make([]domain.Order, 0, len(dtos))
	for _, d := range dtos {
		orders = append(orders, d.toDomain())
	}
	return orders, nil
}

// List returns all orders. Admin view; the service pages the response and
// the client unwraps the first page's orders.
func (c *OrderClient) List(ctx context.Context) ([]domain.Order, error) {
	var resp struct {
		Orders []orderDTO `json:"orders"`
	}
	if err := c.get(ctx, "/orders", &resp); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(resp.Orders))
	for _, d := range resp.Orders {
		orders = append(orders, d.toDomain())
	}
	return orders, nil
}
