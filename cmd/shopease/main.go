package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/fjod/shopease/internal/app"
	"github.com/fjod/shopease/internal/domain"
	"github.com/fjod/shopease/internal/storage"
)

type Config struct {
	ProductServiceURL string
	UserServiceURL    string
	OrderServiceURL   string
	PaymentServiceURL string
	RedisAddr         string // when set, session state goes to Redis
	StatePath         string // bbolt file used otherwise
}

func loadConfig() *Config {
	return &Config{
		ProductServiceURL: getEnv("PRODUCT_SERVICE_URL", "http://localhost:5000"),
		UserServiceURL:    getEnv("USER_SERVICE_URL", "http://localhost:5001"),
		OrderServiceURL:   getEnv("ORDER_SERVICE_URL", "http://localhost:5002"),
		PaymentServiceURL: getEnv("PAYMENT_SERVICE_URL", "http://localhost:5003"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		StatePath:         getEnv("SHOPEASE_STATE", "shopease.db"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func openStorage(cfg *Config) (storage.Store, func(), error) {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return storage.NewRedisStore(client), func() { client.Close() }, nil
	}

	bolt, err := storage.NewBoltStore(cfg.StatePath)
	if err != nil {
		return nil, nil, err
	}
	return bolt, func() { bolt.Close() }, nil
}

func main() {
	cfg := loadConfig()

	store, closeStore, err := openStorage(cfg)
	if err != nil {
		log.Fatalf("failed to open session storage: %v", err)
	}
	defer closeStore()

	shop := app.New(app.Config{
		ProductServiceURL: cfg.ProductServiceURL,
		UserServiceURL:    cfg.UserServiceURL,
		OrderServiceURL:   cfg.OrderServiceURL,
		PaymentServiceURL: cfg.PaymentServiceURL,
	}, store)

	// render-side subscriptions
	if err := shop.Subscribe(app.TopicCartChanged, func() {
		fmt.Printf("[cart: %d items]\n", shop.Cart.ItemCount())
	}); err != nil {
		log.Fatalf("subscribe: %v", err)
	}
	if err := shop.Subscribe(app.TopicNotification, func(message string) {
		fmt.Println(">>", message)
	}); err != nil {
		log.Fatalf("subscribe: %v", err)
	}

	ctx := context.Background()
	if err := shop.Start(ctx); err != nil {
		log.Printf("startup warning: %v", err)
	}
	if session, ok := shop.Session.Current(); ok {
		fmt.Printf("welcome back, %s\n", session.User.Username)
	}

	runLoop(ctx, shop)
}

func runLoop(ctx context.Context, shop *app.Storefront) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("shopease — type 'help' for commands")

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if err := dispatch(ctx, shop, fields); err != nil {
			fmt.Println("error:", err)
		}
		if fields[0] == "quit" {
			return
		}
	}
}

func dispatch(ctx context.Context, shop *app.Storefront, fields []string) error {
	switch fields[0] {
	case "help":
		fmt.Println(`products | search TERM | add ID | qty ID N | remove ID | cart
checkout ADDRESS... | pay METHOD [CARDNUMBER BRAND] | dismiss
login USER PASS | register USER EMAIL PASS | logout | orders | stats | quit`)

	case "products":
		products, err := shop.Catalog.Refresh(ctx)
		if err != nil {
			return err
		}
		printProducts(products)

	case "search":
		if len(fields) < 2 {
			return fmt.Errorf("usage: search TERM")
		}
		printProducts(shop.Catalog.Search(strings.Join(fields[1:], " ")))

	case "add":
		id, err := parseID(fields)
		if err != nil {
			return err
		}
		return shop.AddToCart(id)

	case "qty":
		if len(fields) != 3 {
			return fmt.Errorf("usage: qty ID N")
		}
		id, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return fmt.Errorf("bad product id %q", fields[1])
		}
		n, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("bad quantity %q", fields[2])
		}
		return shop.UpdateQuantity(id, n)

	case "remove":
		id, err := parseID(fields)
		if err != nil {
			return err
		}
		shop.RemoveFromCart(id)

	case "cart":
		for _, line := range shop.Cart.Lines() {
			fmt.Printf("%4d x%d  %-30s %s\n", line.ProductID, line.Quantity, line.Name, line.Subtotal().Display())
		}
		fmt.Println("total:", shop.Cart.Total().Display())

	case "checkout":
		if len(fields) < 2 {
			return fmt.Errorf("usage: checkout ADDRESS...")
		}
		pending, err := shop.BeginCheckout(ctx, strings.Join(fields[1:], " "))
		if err != nil {
			return err
		}
		fmt.Printf("order #%d placed, %s due — 'pay METHOD' to complete\n", pending.OrderID, pending.Amount.Display())

	case "pay":
		if len(fields) < 2 {
			return fmt.Errorf("usage: pay METHOD [CARDNUMBER BRAND]")
		}
		method := domain.PaymentMethod(fields[1])
		var card *domain.CardDetails
		if method.RequiresCard() {
			if len(fields) != 4 {
				return fmt.Errorf("usage: pay card CARDNUMBER BRAND")
			}
			card = &domain.CardDetails{Number: fields[2], Brand: fields[3]}
		}
		payment, err := shop.SubmitPayment(ctx, method, card)
		if err != nil {
			return err
		}
		fmt.Printf("payment %s via %s: %s\n", payment.PaymentID, payment.Method, payment.Status)

	case "dismiss":
		return shop.CancelPayment()

	case "login":
		if len(fields) != 3 {
			return fmt.Errorf("usage: login USER PASS")
		}
		session, err := shop.Login(ctx, fields[1], fields[2])
		if err != nil {
			return err
		}
		fmt.Println("logged in as", session.User.Username)

	case "register":
		if len(fields) != 4 {
			return fmt.Errorf("usage: register USER EMAIL PASS")
		}
		user, err := shop.Session.Register(ctx, domain.Registration{
			Username: fields[1],
			Email:    fields[2],
			Password: fields[3],
		})
		if err != nil {
			return err
		}
		fmt.Printf("registered %s (#%d), log in to start shopping\n", user.Username, user.ID)

	case "logout":
		return shop.Logout(ctx)

	case "orders":
		session, ok := shop.Session.Current()
		if !ok {
			return fmt.Errorf("log in first")
		}
		orders, err := shop.Orders.ListByUser(ctx, session.User.ID)
		if err != nil {
			return err
		}
		for _, o := range orders {
			fmt.Printf("#%d  %-10s %s\n", o.ID, o.Status, o.TotalAmount.Display())
		}

	case "stats":
		stats, err := shop.Payments.Stats(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%d payments, %d completed, %.1f%% success, revenue %s\n",
			stats.TotalPayments, stats.CompletedPayments, stats.SuccessRate, stats.TotalRevenue.Display())

	case "quit":

	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
	return nil
}

func printProducts(products []domain.Product) {
	for _, p := range products {
		fmt.Printf("%4d  %-30s %-12s %s  stock:%d\n", p.ID, p.Name, p.Category, p.Price.Display(), p.Stock)
	}
}

func parseID(fields []string) (int64, error) {
	if len(fields) != 2 {
		return 0, fmt.Errorf("usage: %s ID", fields[0])
	}
	id, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad product id %q", fields[1])
	}
	return id, nil
}
