package domain

import "time"

type PaymentMethod string

const (
	PaymentMethodCard       PaymentMethod = "card"
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodNetbanking PaymentMethod = "netbanking"
	PaymentMethodWallet     PaymentMethod = "wallet"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodUPI, PaymentMethodNetbanking, PaymentMethodWallet:
		return true
	}
	return false
}

// RequiresCard reports whether the method needs card details in the payload.
func (m PaymentMethod) RequiresCard() bool {
	return m == PaymentMethodCard
}

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

func (s PaymentStatus) Completed() bool {
	return s == PaymentStatusCompleted
}

func (s PaymentStatus) String() string {
	return string(s)
}

// Payment is the gateway's record of a payment attempt. The payment service
// answers 201 even for declined payments, so callers must check Status and
// not just the HTTP result.
type Payment struct {
	PaymentID     string
	OrderID       int64
	UserID        int64
	Amount        Money
	Method        PaymentMethod
	Status        PaymentStatus
	TransactionID string
	CardLastFour  string
	CardBrand     string
	CreatedAt     time.Time
}

type CardDetails struct {
	Number string
	Brand  string
}

// PaymentRequest is the payload for payment submission. Card is only
// consulted when Method requires it.
type PaymentRequest struct {
	OrderID int64
	UserID  int64
	Amount  Money
	Method  PaymentMethod
	Card    *CardDetails
}

// PendingPayment is the ephemeral reference held between order creation and
// payment submission. It is consumed exactly once.
type PendingPayment struct {
	OrderID int64
	Amount  Money
}

type PaymentStats struct {
	TotalPayments     int
	CompletedPayments int
	FailedPayments    int
	SuccessRate       float64
	TotalRevenue      Money
}
