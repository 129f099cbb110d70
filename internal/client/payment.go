package client

import (
	"context"
	"fmt"

	"github.com/fjod/shopease/internal/domain"
)

type PaymentClient struct {
	*Client
}

func NewPaymentClient(c *Client) *PaymentClient {
	return &PaymentClient{Client: c}
}

type cardDetailsDTO struct {
	Number string `json:"number"`
	Brand  string `json:"brand"`
}

type paymentRequestDTO struct {
	OrderID       int64           `json:"order_id"`
	UserID        int64           `json:"user_id"`
	Amount        float64         `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	CardDetails   *cardDetailsDTO `json:"card_details,omitempty"`
}

// Process submits a payment. The gateway answers 201 for declined payments
// too; the returned Payment's Status tells the real outcome.
func (c *PaymentClient) Process(ctx context.Context, req domain.PaymentRequest) (domain.Payment, error) {
	dto := paymentRequestDTO{
		OrderID:       req.OrderID,
		UserID:        req.UserID,
		Amount:        req.Amount.Float64(),
		PaymentMethod: string(req.Method),
	}
	if req.Method.RequiresCard() && req.Card != nil {
		dto.CardDetails = &cardDetailsDTO{Number: req.Card.Number, Brand: req.Card.Brand}
	}

	var resp paymentDTO
	if err := c.post(ctx, "/payments", dto, &resp); err != nil {
		return domain.Payment{}, fmt.Errorf("process payment: %w", err)
	}
	return resp.toDomain(), nil
}

// Stats returns the aggregate payment statistics. Admin view.
func (c *PaymentClient) Stats(ctx context.Context) (domain.PaymentStats, error) {
	var dto struct {
		TotalPayments     int     `json:"total_payments"`
		CompletedPayments int     `json:"completed_payments"`
		FailedPayments    int     `json:"failed_payments"`
		SuccessRate       float64 `json:"success_rate"`
		TotalRevenue      float64 `json:"total_revenue"`
	}
	if err := c.get(ctx, "/payments/stats", &dto); err != nil {
		return domain.PaymentStats{}, fmt.Errorf("payment stats: %w", err)
	}

	return domain.PaymentStats{
		TotalPayments:     dto.TotalPayments,
		CompletedPayments: dto.CompletedPayments,
		FailedPayments:    dto.FailedPayments,
		SuccessRate:       dto.SuccessRate,
		TotalRevenue:      domain.MoneyFromFloat(dto.TotalRevenue),
	}, nil
}
