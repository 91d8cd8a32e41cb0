package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"

	domcart "example.com/storefront-cart/internal/domain/cart"
	"example.com/storefront-cart/internal/infra/catalogfile"
	"example.com/storefront-cart/internal/infra/notify"
	"example.com/storefront-cart/internal/infra/persistence/cartfile"
	"example.com/storefront-cart/internal/infra/persistence/mysql"
	api "example.com/storefront-cart/internal/interface/http"
	cartuc "example.com/storefront-cart/internal/usecase/cart"
	checkoutuc "example.com/storefront-cart/internal/usecase/checkout"
	productuc "example.com/storefront-cart/internal/usecase/product"
	"example.com/storefront-cart/pkg/logger"
	"example.com/storefront-cart/pkg/shutdown"
)

func main() {
	port := getenv("APP_PORT", "5000")
	cartPath := getenv("CART_FILE", "cart.txt")
	productsPath := getenv("PRODUCTS_FILE", "products.txt")
	storeKind := getenv("CART_STORE", "file")
	mysqlDSN := getenv("MYSQL_DSN", "user:pass@tcp(mysql:3306)/cartdb?parseTime=true")
	notifyKind := getenv("ORDER_NOTIFY", "webhook")
	webhookURL := getenv("ORDER_WEBHOOK_URL", "http://localhost:9000/orders")
	kafkaBrokers := getenv("KAFKA_BROKERS", "localhost:9092")
	kafkaTopic := getenv("KAFKA_TOPIC", "orders-placed")
	notifyTimeout := getenvDuration("CHECKOUT_NOTIFY_TIMEOUT", 5*time.Second)

	log := logger.New(logger.Options{
		Service: "storefront-cart",
		Level:   getenv("LOG_LEVEL", "info"),
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	var cartStore domcart.Repository
	switch storeKind {
	case "file":
		cartStore = cartfile.New(cartPath, log)
	case "mysql":
		db, err := sql.Open("mysql", mysqlDSN)
		if err != nil {
			log.Error("open mysql", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := mysql.Migrate(db); err != nil {
			log.Error("migrate cart schema", "error", err)
			os.Exit(1)
		}
		cartStore = mysql.New(db)
	default:
		log.Error("unknown CART_STORE", "value", storeKind)
		os.Exit(1)
	}

	var notifier checkoutuc.Notifier
	switch notifyKind {
	case "webhook":
		notifier = notify.NewWebhook(webhookURL)
	case "kafka":
		k := notify.NewKafka(strings.Split(kafkaBrokers, ","), kafkaTopic)
		defer k.Close()
		notifier = k
	default:
		log.Error("unknown ORDER_NOTIFY", "value", notifyKind)
		os.Exit(1)
	}

	catalog := catalogfile.New(productsPath, log)
	cartSvc := cartuc.NewService(cartStore, catalog, log)

	handler := api.NewAPI(api.Dependencies{
		ProductService:  productuc.NewService(catalog),
		CartService:     cartSvc,
		CheckoutService: checkoutuc.NewService(cartSvc, notifier, notifyTimeout, log),
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown", "error", err)
		}
	}()

	log.Info("listening", "port", port, "cart_store", storeKind, "order_notify", notifyKind)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
