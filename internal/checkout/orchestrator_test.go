package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjod/shopease/internal/cart"
	"github.com/fjod/shopease/internal/domain"
)

func filledCart(t *testing.T) *cart.Store {
	t.Helper()
	s := cart.NewStore()
	require.NoError(t, s.AddItem(domain.Product{ID: 3, Name: "keyboard", Price: domain.MoneyFromFloat(999.00), Stock: 5}))
	require.NoError(t, s.SetQuantity(3, 2, 5))
	require.NoError(t, s.AddItem(domain.Product{ID: 8, Name: "mouse", Price: domain.MoneyFromFloat(499.00), Stock: 2}))
	return s
}

func confirmedOrder() domain.Order {
	return domain.Order{
		ID:          42,
		UserID:      7,
		TotalAmount: domain.MoneyFromFloat(2497.00),
		Status:      domain.OrderStatusPending,
	}
}

func completedPayment() domain.Payment {
	return domain.Payment{
		PaymentID: "PAY_OK",
		OrderID:   42,
		Status:    domain.PaymentStatusCompleted,
	}
}

// newTestOrchestrator wires an Orchestrator with mocks sharing one recorder.
func newTestOrchestrator(t *testing.T, c *cart.Store) (*Orchestrator, *MockOrderService, *MockPaymentService, *callRecorder) {
	t.Helper()
	rec := &callRecorder{}
	orders := &MockOrderService{recorder: rec, Order: confirmedOrder()}
	payments := &MockPaymentService{recorder: rec, Payment: completedPayment()}
	o := NewOrchestrator(orders, payments, c, loggedInSession(7))
	return o, orders, payments, rec
}

func TestBegin_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		cart    func(t *testing.T) *cart.Store
		session SessionSource
		address string
		wantErr error
	}{
		{
			name:    "not logged in",
			cart:    filledCart,
			session: &MockSession{},
			address: "221B Baker Street",
			wantErr: ErrNotLoggedIn,
		},
		{
			name:    "empty cart",
			cart:    func(t *testing.T) *cart.Store { return cart.NewStore() },
			session: loggedInSession(7),
			address: "221B Baker Street",
			wantErr: ErrEmptyCart,
		},
		{
			name:    "blank shipping address",
			cart:    filledCart,
			session: loggedInSession(7),
			address: "   ",
			wantErr: ErrNoShippingAddress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := &MockOrderService{Order: confirmedOrder()}
			payments := &MockPaymentService{}
			o := NewOrchestrator(orders, payments, tt.cart(t), tt.session)

			_, err := o.Begin(context.Background(), tt.address)

			require.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsValidationFailure(err))
			assert.Nil(t, orders.GotRequest, "no network call on validation failure")
			assert.Equal(t, StatusIdle, o.Status())
		})
	}
}

func TestBegin_PlacesOrderAndAwaitsPayment(t *testing.T) {
	c := filledCart(t)
	o, orders, _, _ := newTestOrchestrator(t, c)

	pending, err := o.Begin(context.Background(), "221B Baker Street")

	require.NoError(t, err)
	assert.Equal(t, int64(42), pending.OrderID)
	assert.True(t, pending.Amount.Amount.Equal(confirmedOrder().TotalAmount.Amount))
	assert.Equal(t, StatusAwaitingPayment, o.Status())

	require.NotNil(t, orders.GotRequest)
	assert.Equal(t, int64(7), orders.GotRequest.UserID)
	assert.Equal(t, "221B Baker Street", orders.GotRequest.ShippingAddress)
	require.Len(t, orders.GotRequest.Items, 2)
	assert.Equal(t, domain.OrderRequestItem{ProductID: 3, Quantity: 2}, orders.GotRequest.Items[0])
	assert.Equal(t, domain.OrderRequestItem{ProductID: 8, Quantity: 1}, orders.GotRequest.Items[1])
	require.Len(t, orders.GotIdemKeys, 1)
	assert.NotEmpty(t, orders.GotIdemKeys[0])

	// cart untouched until payment completes
	assert.Equal(t, 2, c.Len())
}

func TestBegin_OrderRejected(t *testing.T) {
	c := filledCart(t)
	o, orders, _, _ := newTestOrchestrator(t, c)
	orders.Err = errors.New("Insufficient stock for product 3")

	_, err := o.Begin(context.Background(), "221B Baker Street")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Insufficient stock")
	assert.Equal(t, StatusIdle, o.Status(), "failure resets for retry")
	assert.Equal(t, 2, c.Len(), "cart preserved on failure")
	_, ok := o.Pending()
	assert.False(t, ok)
}

func TestSubmitPayment_CompletesCheckout(t *testing.T) {
	c := filledCart(t)
	o, _, payments, rec := newTestOrchestrator(t, c)

	pending, err := o.Begin(context.Background(), "221B Baker Street")
	require.NoError(t, err)

	payment, err := o.SubmitPayment(context.Background(), domain.PaymentMethodCard, &domain.CardDetails{
		Number: "4111111111111111",
		Brand:  "Visa",
	})

	require.NoError(t, err)
	assert.True(t, payment.Status.Completed())
	assert.True(t, c.Empty(), "cart cleared on completed payment")
	assert.Equal(t, StatusIdle, o.Status(), "machine reset for next checkout")
	_, ok := o.Pending()
	assert.False(t, ok, "pending payment consumed")

	require.NotNil(t, payments.GotRequest)
	assert.Equal(t, pending.OrderID, payments.GotRequest.OrderID)
	assert.Equal(t, int64(7), payments.GotRequest.UserID)
	assert.True(t, payments.GotRequest.Amount.Amount.Equal(pending.Amount.Amount))
	require.NotNil(t, payments.GotRequest.Card)

	// temporal ordering: order creation strictly precedes payment submission
	assert.Equal(t, []string{"orders.Create", "payments.Process"}, rec.calls)
}

func TestSubmitPayment_DeclinedKeepsCart(t *testing.T) {
	c := filledCart(t)
	o, _, payments, _ := newTestOrchestrator(t, c)
	payments.Payment = domain.Payment{PaymentID: "PAY_NO", OrderID: 42, Status: domain.PaymentStatusFailed}

	_, err := o.Begin(context.Background(), "221B Baker Street")
	require.NoError(t, err)

	_, err = o.SubmitPayment(context.Background(), domain.PaymentMethodUPI, nil)

	require.ErrorIs(t, err, ErrPaymentDeclined)
	assert.Equal(t, 2, c.Len(), "cart unchanged on payment failure")
	assert.Equal(t, StatusIdle, o.Status())
	_, ok := o.Pending()
	assert.False(t, ok, "pending payment consumed even on failure")
}

func TestSubmitPayment_TransportFailureKeepsCart(t *testing.T) {
	c := filledCart(t)
	o, _, payments, _ := newTestOrchestrator(t, c)
	payments.Err = errors.New("connection refused")

	_, err := o.Begin(context.Background(), "221B Baker Street")
	require.NoError(t, err)

	_, err = o.SubmitPayment(context.Background(), domain.PaymentMethodWallet, nil)

	require.Error(t, err)
	assert.False(t, IsValidationFailure(err))
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, StatusIdle, o.Status())
}

func TestSubmitPayment_WithoutPendingPayment(t *testing.T) {
	o, orders, payments, _ := newTestOrchestrator(t, filledCart(t))

	_, err := o.SubmitPayment(context.Background(), domain.PaymentMethodCard, nil)

	require.ErrorIs(t, err, ErrNoPendingPayment)
	assert.Nil(t, orders.GotRequest)
	assert.Nil(t, payments.GotRequest)
}

func TestSubmitPayment_UnsupportedMethod(t *testing.T) {
	o, _, payments, _ := newTestOrchestrator(t, filledCart(t))

	_, err := o.Begin(context.Background(), "221B Baker Street")
	require.NoError(t, err)

	_, err = o.SubmitPayment(context.Background(), domain.PaymentMethod("cheque"), nil)

	require.ErrorIs(t, err, ErrUnsupportedMethod)
	assert.Nil(t, payments.GotRequest)
	assert.Equal(t, StatusAwaitingPayment, o.Status(), "machine still awaits a valid submission")
}

func TestBegin_RejectedWhileAwaitingPayment(t *testing.T) {
	c := filledCart(t)
	o, orders, _, _ := newTestOrchestrator(t, c)

	_, err := o.Begin(context.Background(), "221B Baker Street")
	require.NoError(t, err)
	require.Len(t, orders.GotIdemKeys, 1)

	_, err = o.Begin(context.Background(), "somewhere else")

	require.ErrorIs(t, err, ErrCheckoutInFlight)
	assert.Len(t, orders.GotIdemKeys, 1, "no second order placed")
	assert.Equal(t, StatusAwaitingPayment, o.Status())
	pending, ok := o.Pending()
	require.True(t, ok)
	assert.Equal(t, int64(42), pending.OrderID, "first checkout untouched")
}

func TestCancel_DismissesPaymentModal(t *testing.T) {
	c := filledCart(t)
	o, _, _, _ := newTestOrchestrator(t, c)

	_, err := o.Begin(context.Background(), "221B Baker Street")
	require.NoError(t, err)

	require.NoError(t, o.Cancel())

	assert.Equal(t, StatusIdle, o.Status())
	_, ok := o.Pending()
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len(), "cart kept after dismissal")

	// nothing left to cancel
	assert.ErrorIs(t, o.Cancel(), ErrNoPendingPayment)
}

func TestRetryAfterFailureSucceeds(t *testing.T) {
	c := filledCart(t)
	o, orders, _, _ := newTestOrchestrator(t, c)
	orders.Err = errors.New("temporarily unavailable")

	_, err := o.Begin(context.Background(), "221B Baker Street")
	require.Error(t, err)

	orders.Err = nil
	pending, err := o.Begin(context.Background(), "221B Baker Street")

	require.NoError(t, err)
	assert.Equal(t, int64(42), pending.OrderID)
	assert.Len(t, orders.GotIdemKeys, 2)
	assert.NotEqual(t, orders.GotIdemKeys[0], orders.GotIdemKeys[1], "each attempt gets a fresh idempotency key")
}

func TestCanTransitionTo(t *testing.T) {
	assert.True(t, CanTransitionTo(StatusIdle, StatusOrderPending))
	assert.True(t, CanTransitionTo(StatusOrderPending, StatusAwaitingPayment))
	assert.True(t, CanTransitionTo(StatusAwaitingPayment, StatusPaymentSubmitting))
	assert.True(t, CanTransitionTo(StatusPaymentSubmitting, StatusCompleted))

	assert.False(t, CanTransitionTo(StatusIdle, StatusPaymentSubmitting))
	assert.False(t, CanTransitionTo(StatusOrderPending, StatusCompleted))
	assert.False(t, CanTransitionTo(StatusCompleted, StatusFailed))
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.False(t, StatusIdle.IsTerminal())
	assert.False(t, StatusAwaitingPayment.IsTerminal())
}
