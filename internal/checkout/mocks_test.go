package checkout

import (
	"context"

	"github.com/fjod/shopease/internal/domain"
)

// callRecorder keeps the order in which collaborators were invoked, shared
// between the mocks of one test.
type callRecorder struct {
	calls []string
}

func (r *callRecorder) record(name string) {
	r.calls = append(r.calls, name)
}

// MockOrderService implements OrderService for testing
type MockOrderService struct {
	recorder *callRecorder

	Order       domain.Order
	Err         error
	GotRequest  *domain.OrderRequest // captures the request passed to Create
	GotIdemKeys []string
}

func (m *MockOrderService) Create(_ context.Context, req domain.OrderRequest, idempotencyKey string) (domain.Order, error) {
	if m.recorder != nil {
		m.recorder.record("orders.Create")
	}
	m.GotRequest = &req
	m.GotIdemKeys = append(m.GotIdemKeys, idempotencyKey)
	if m.Err != nil {
		return domain.Order{}, m.Err
	}
	return m.Order, nil
}

// MockPaymentService implements PaymentService for testing
type MockPaymentService struct {
	recorder *callRecorder

	Payment    domain.Payment
	Err        error
	GotRequest *domain.PaymentRequest
}

func (m *MockPaymentService) Process(_ context.Context, req domain.PaymentRequest) (domain.Payment, error) {
	if m.recorder != nil {
		m.recorder.record("payments.Process")
	}
	m.GotRequest = &req
	if m.Err != nil {
		return domain.Payment{}, m.Err
	}
	return m.Payment, nil
}

// MockSession implements SessionSource for testing
type MockSession struct {
	Session  domain.Session
	LoggedIn bool
}

func (m *MockSession) Current() (domain.Session, bool) {
	return m.Session, m.LoggedIn
}

func loggedInSession(userID int64) *MockSession {
	return &MockSession{
		Session: domain.Session{
			User:  domain.User{ID: userID, Username: "yogesh"},
			Token: "tok-123",
		},
		LoggedIn: true,
	}
}
