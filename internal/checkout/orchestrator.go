// Package checkout sequences order creation, payment submission and cart
// clearing against the order and payment services. A single sequence may be
// in flight at a time; every failure leaves the cart intact for a retry.
package checkout

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/fjod/shopease/internal/domain"
)

type OrderService interface {
	Create(ctx context.Context, req domain.OrderRequest, idempotencyKey string) (domain.Order, error)
}

type PaymentService interface {
	Process(ctx context.Context, req domain.PaymentRequest) (domain.Payment, error)
}

type CartStore interface {
	Lines() []domain.CartLine
	Empty() bool
	Clear()
}

type SessionSource interface {
	Current() (domain.Session, bool)
}

type Orchestrator struct {
	orders   OrderService
	payments PaymentService
	cart     CartStore
	session  SessionSource

	mu      sync.Mutex
	status  Status
	pending *domain.PendingPayment
	userID  int64 // captured at Begin, used for the payment payload
}

func NewOrchestrator(orders OrderService, payments PaymentService, cart CartStore, session SessionSource) *Orchestrator {
	return &Orchestrator{
		orders:   orders,
		payments: payments,
		cart:     cart,
		session:  session,
		status:   StatusIdle,
	}
}

// Begin validates the preconditions, places the order and leaves the
// machine awaiting an explicit payment submission. Validation failures are
// reported before any network call and leave everything unchanged.
func (o *Orchestrator) Begin(ctx context.Context, shippingAddress string) (domain.PendingPayment, error) {
	o.mu.Lock()

	if o.status != StatusIdle {
		o.mu.Unlock()
		return domain.PendingPayment{}, ErrCheckoutInFlight
	}

	session, ok := o.session.Current()
	if !ok || !session.Active() {
		o.mu.Unlock()
		return domain.PendingPayment{}, ErrNotLoggedIn
	}
	if o.cart.Empty() {
		o.mu.Unlock()
		return domain.PendingPayment{}, ErrEmptyCart
	}
	if strings.TrimSpace(shippingAddress) == "" {
		o.mu.Unlock()
		return domain.PendingPayment{}, ErrNoShippingAddress
	}

	if err := o.transition(StatusOrderPending); err != nil {
		o.mu.Unlock()
		return domain.PendingPayment{}, err
	}
	o.userID = session.User.ID

	req := domain.OrderRequest{
		UserID:          session.User.ID,
		ShippingAddress: shippingAddress,
	}
	for _, line := range o.cart.Lines() {
		req.Items = append(req.Items, domain.OrderRequestItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	o.mu.Unlock()

	order, err := o.orders.Create(ctx, req, uuid.NewString())

	o.mu.Lock()
	defer o.mu.Unlock()

	if err != nil {
		o.fail()
		return domain.PendingPayment{}, fmt.Errorf("order creation rejected: %w", err)
	}

	o.pending = &domain.PendingPayment{OrderID: order.ID, Amount: order.TotalAmount}
	if err := o.transition(StatusAwaitingPayment); err != nil {
		return domain.PendingPayment{}, err
	}
	return *o.pending, nil
}

// SubmitPayment consumes the pending payment. It completes the checkout only
// when the gateway call succeeds AND reports a completed status; anything
// else fails the sequence with the order left unpaid on the server and the
// cart preserved. There is no automatic retry.
func (o *Orchestrator) SubmitPayment(ctx context.Context, method domain.PaymentMethod, card *domain.CardDetails) (domain.Payment, error) {
	o.mu.Lock()

	if o.status != StatusAwaitingPayment || o.pending == nil {
		o.mu.Unlock()
		return domain.Payment{}, ErrNoPendingPayment
	}
	if !method.Valid() {
		o.mu.Unlock()
		return domain.Payment{}, fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}

	if err := o.transition(StatusPaymentSubmitting); err != nil {
		o.mu.Unlock()
		return domain.Payment{}, err
	}
	pending := *o.pending

	req := domain.PaymentRequest{
		OrderID: pending.OrderID,
		UserID:  o.userID,
		Amount:  pending.Amount,
		Method:  method,
	}
	if method.RequiresCard() {
		req.Card = card
	}
	o.mu.Unlock()

	payment, err := o.payments.Process(ctx, req)

	o.mu.Lock()
	defer o.mu.Unlock()

	o.pending = nil // consumed exactly once, whatever the outcome

	if err != nil {
		o.fail()
		return domain.Payment{}, fmt.Errorf("payment submission failed: %w", err)
	}
	if !payment.Status.Completed() {
		o.fail()
		return payment, fmt.Errorf("%w: gateway status %q", ErrPaymentDeclined, payment.Status)
	}

	if err := o.transition(StatusCompleted); err != nil {
		return payment, err
	}
	o.cart.Clear()
	o.reset()
	return payment, nil
}

// Cancel dismisses the payment step, discarding the pending payment. The
// already-created order stays in its unpaid server-side state; the cart is
// untouched.
func (o *Orchestrator) Cancel() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.status != StatusAwaitingPayment {
		return ErrNoPendingPayment
	}
	o.pending = nil
	return o.transition(StatusIdle)
}

func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// Pending returns the payment reference captured at order creation, or
// false when no payment is awaited.
func (o *Orchestrator) Pending() (domain.PendingPayment, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.pending == nil {
		return domain.PendingPayment{}, false
	}
	return *o.pending, true
}

// transition moves the machine, refusing edges the state machine does not
// define. Callers hold the mutex.
func (o *Orchestrator) transition(to Status) error {
	if !CanTransitionTo(o.status, to) {
		return fmt.Errorf("%w: %s -> %s", IllegalTransitionError, o.status, to)
	}
	o.status = to
	return nil
}

// fail marks the sequence failed, then resets to Idle so the user can retry.
// The cart is deliberately not cleared. Callers hold the mutex.
func (o *Orchestrator) fail() {
	if err := o.transition(StatusFailed); err != nil {
		log.Printf("checkout state error: %v", err)
	}
	o.reset()
}

func (o *Orchestrator) reset() {
	o.status = StatusIdle
}
