// Package app assembles the storefront: catalog, cart, session, checkout
// and the service clients. Rendering is someone else's job; consumers
// subscribe to the event bus and re-read state when notified.
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/asaskevich/EventBus"

	"github.com/fjod/shopease/internal/cart"
	"github.com/fjod/shopease/internal/catalog"
	"github.com/fjod/shopease/internal/checkout"
	"github.com/fjod/shopease/internal/client"
	"github.com/fjod/shopease/internal/domain"
	"github.com/fjod/shopease/internal/session"
	"github.com/fjod/shopease/internal/storage"
)

// Bus topics render consumers can subscribe to.
const (
	TopicCartChanged       = "cart.changed"
	TopicSessionChanged    = "session.changed"
	TopicCheckoutCompleted = "checkout.completed"
	TopicNotification      = "notification"
)

type Config struct {
	ProductServiceURL string
	UserServiceURL    string
	OrderServiceURL   string
	PaymentServiceURL string

	// HTTPClient overrides the default client on every service connection.
	HTTPClient *http.Client
}

type Storefront struct {
	Catalog  *catalog.Catalog
	Cart     *cart.Store
	Session  *session.Manager
	Checkout *checkout.Orchestrator

	Products *client.ProductClient
	Users    *client.UserClient
	Orders   *client.OrderClient
	Payments *client.PaymentClient

	bus EventBus.Bus
}

func New(cfg Config, store storage.Store) *Storefront {
	baseOpts := func(extra ...client.Option) []client.Option {
		if cfg.HTTPClient != nil {
			extra = append(extra, client.WithHTTPClient(cfg.HTTPClient))
		}
		return extra
	}

	cartStore := cart.NewStore()

	// The user client carries no token source: the session manager that
	// would supply tokens is built on top of it.
	users := client.NewUserClient(client.New(cfg.UserServiceURL, baseOpts()...))
	sessions := session.NewManager(users, store, cartStore)

	products := client.NewProductClient(client.New(cfg.ProductServiceURL, baseOpts(client.WithTokenSource(sessions))...))
	orders := client.NewOrderClient(client.New(cfg.OrderServiceURL, baseOpts(client.WithTokenSource(sessions))...))
	payments := client.NewPaymentClient(client.New(cfg.PaymentServiceURL, baseOpts(client.WithTokenSource(sessions))...))

	return &Storefront{
		Catalog:  catalog.New(products),
		Cart:     cartStore,
		Session:  sessions,
		Checkout: checkout.NewOrchestrator(orders, payments, cartStore, sessions),
		Products: products,
		Users:    users,
		Orders:   orders,
		Payments: payments,
		bus:      EventBus.New(),
	}
}

// Start restores a persisted session and loads the catalog, the startup
// sequence of the storefront. A missing session is not an error; an
// unreachable product service is.
func (s *Storefront) Start(ctx context.Context) error {
	restored, err := s.Session.Restore(ctx)
	if err != nil {
		log.Printf("session restore error: %v", err)
	}
	if restored {
		s.bus.Publish(TopicSessionChanged)
	}

	if _, err := s.Catalog.Refresh(ctx); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	return nil
}

// AddToCart adds one unit of a catalogued product, bounded by the stock
// snapshot from the last catalog refresh.
func (s *Storefront) AddToCart(productID int64) error {
	product, ok := s.Catalog.Get(productID)
	if !ok {
		return catalog.ErrProductNotFound
	}

	if err := s.Cart.AddItem(product); err != nil {
		return err
	}

	s.bus.Publish(TopicCartChanged)
	s.bus.Publish(TopicNotification, "Product added to cart!")
	return nil
}

func (s *Storefront) UpdateQuantity(productID int64, quantity int) error {
	product, ok := s.Catalog.Get(productID)
	if !ok {
		return catalog.ErrProductNotFound
	}

	if err := s.Cart.SetQuantity(productID, quantity, product.Stock); err != nil {
		return err
	}

	s.bus.Publish(TopicCartChanged)
	return nil
}

func (s *Storefront) RemoveFromCart(productID int64) {
	s.Cart.RemoveItem(productID)
	s.bus.Publish(TopicCartChanged)
}

// BeginCheckout places the order and leaves the payment step awaiting an
// explicit submission.
func (s *Storefront) BeginCheckout(ctx context.Context, shippingAddress string) (domain.PendingPayment, error) {
	return s.Checkout.Begin(ctx, shippingAddress)
}

func (s *Storefront) SubmitPayment(ctx context.Context, method domain.PaymentMethod, card *domain.CardDetails) (domain.Payment, error) {
	payment, err := s.Checkout.SubmitPayment(ctx, method, card)
	if err != nil {
		return payment, err
	}

	s.bus.Publish(TopicCartChanged)
	s.bus.Publish(TopicCheckoutCompleted, payment)
	s.bus.Publish(TopicNotification, fmt.Sprintf("Payment of %s completed!", payment.Amount.Display()))
	return payment, nil
}

func (s *Storefront) CancelPayment() error {
	return s.Checkout.Cancel()
}

func (s *Storefront) Login(ctx context.Context, username, password string) (domain.Session, error) {
	sess, err := s.Session.Login(ctx, username, password)
	if err != nil {
		return domain.Session{}, err
	}

	s.bus.Publish(TopicSessionChanged)
	return sess, nil
}

func (s *Storefront) Logout(ctx context.Context) error {
	if err := s.Session.Logout(ctx); err != nil {
		return err
	}

	s.bus.Publish(TopicSessionChanged)
	s.bus.Publish(TopicCartChanged)
	return nil
}

// Subscribe registers a render consumer on a bus topic.
func (s *Storefront) Subscribe(topic string, fn interface{}) error {
	return s.bus.Subscribe(topic, fn)
}
