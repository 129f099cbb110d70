package checkout

type Status string

const (
	StatusIdle              Status = "IDLE"
	StatusOrderPending      Status = "ORDER_PENDING"
	StatusAwaitingPayment   Status = "AWAITING_PAYMENT"
	StatusPaymentSubmitting Status = "PAYMENT_SUBMITTING"
	StatusCompleted         Status = "COMPLETED"
	StatusFailed            Status = "FAILED"
)

// transitions is the full state machine. Payment submission is reachable
// only through a successful order creation, which is what guarantees the
// order-before-payment ordering.
var transitions = map[Status][]Status{
	StatusIdle:              {StatusOrderPending},
	StatusOrderPending:      {StatusAwaitingPayment, StatusFailed},
	StatusAwaitingPayment:   {StatusPaymentSubmitting, StatusIdle},
	StatusPaymentSubmitting: {StatusCompleted, StatusFailed},
	StatusCompleted:         {StatusIdle},
	StatusFailed:            {StatusIdle},
}

func CanTransitionTo(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status ends a checkout sequence. Terminal
// statuses reset to Idle so the next checkout can start.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}
