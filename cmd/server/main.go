package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/storeops/backoffice/internal/inventory"
	inventorydomain "github.com/storeops/backoffice/internal/inventory/domain"
	"github.com/storeops/backoffice/internal/invoice"
	invoicedomain "github.com/storeops/backoffice/internal/invoice/domain"
	"github.com/storeops/backoffice/internal/notification"
	"github.com/storeops/backoffice/internal/order"
	orderdomain "github.com/storeops/backoffice/internal/order/domain"
	ordercommand "github.com/storeops/backoffice/internal/order/usecase/command"
	"github.com/storeops/backoffice/internal/payment"
	paymentdomain "github.com/storeops/backoffice/internal/payment/domain"
	"github.com/storeops/backoffice/internal/payment/provider"
	paymentrepo "github.com/storeops/backoffice/internal/payment/repository"
	"github.com/storeops/backoffice/internal/purchase"
	purchasedomain "github.com/storeops/backoffice/internal/purchase/domain"
	"github.com/storeops/backoffice/internal/shipping"
	shippingdomain "github.com/storeops/backoffice/internal/shipping/domain"
	"github.com/storeops/backoffice/kafka"
	"github.com/storeops/backoffice/pkg/database"
	"github.com/storeops/backoffice/pkg/logger"
	"github.com/storeops/backoffice/pkg/middleware"
	"github.com/storeops/backoffice/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "backoffice-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting back-office service")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "backofficedb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&inventorydomain.Warehouse{},
		&inventorydomain.StockMovement{},
		&inventorydomain.StockLevel{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceItem{},
		&paymentdomain.Payment{},
		&paymentdomain.PaymentGatewayConfig{},
		&purchasedomain.PurchaseOrder{},
		&purchasedomain.PurchaseOrderItem{},
		&shippingdomain.ShippingMethod{},
		&shippingdomain.ShippingZone{},
		&shippingdomain.ShippingZoneRate{},
	); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Kafka publisher is optional. Without brokers notifications fall back
	// to structured logs.
	var publisher *kafka.Publisher
	var notifier notification.Notifier = notification.NewLogNotifier()
	var statusPublisher ordercommand.StatusEventPublisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		publisher, err = kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to connect kafka publisher, falling back to log notifier")
		} else {
			defer publisher.Close()
			notifier = notification.NewKafkaDispatcher(publisher)
			statusPublisher = publisher
			logger.Logger.Info().Str("brokers", brokers).Msg("Kafka publisher connected")
		}
	}

	// Redis serializes duplicate gateway callbacks
	rdb := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
	})
	defer rdb.Close()

	// Payment gateway providers
	providers := provider.NewRegistry(
		provider.NewZarinpal(getEnv("ZARINPAL_MERCHANT_ID", "")),
		provider.NewIDPay(getEnv("IDPAY_API_KEY", ""), getEnv("IDPAY_SANDBOX", "false") == "true"),
	)

	// Inventory facade shared by the order and purchase engines
	inventoryService := inventory.NewService(
		inventory.ProvideLedgerTxRunner(db),
		inventory.ProvideWarehouseRepository(db),
	)

	// Initialize handlers with Wire DI
	inventoryHandler, err := inventory.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize inventory handler")
	}
	orderHandler, err := order.InitializeHTTPHandler(db, inventoryService, notifier, statusPublisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize order handler")
	}
	purchaseHandler, err := purchase.InitializeHTTPHandler(db, inventoryService)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize purchase handler")
	}
	paymentHandler, err := payment.InitializeHTTPHandler(db, providers, paymentrepo.NewRedisCallbackLocker(rdb))
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize payment handler")
	}
	shippingHandler, err := shipping.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize shipping handler")
	}
	invoiceHandler := invoice.InitializeHTTPHandler(db)

	// Setup router
	router := mux.NewRouter()
	inventoryHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router)
	purchaseHandler.RegisterRoutes(router)
	paymentHandler.RegisterRoutes(router)
	shippingHandler.RegisterRoutes(router)
	invoiceHandler.RegisterRoutes(router)

	// Health check endpoint
	inventoryHandler.RegisterHealthCheck(router, sqlDB)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := c.Handler(middleware.Logging(router))
	handler = middleware.Tracing(serviceName, handler)

	httpPort := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:    ":" + httpPort,
		Handler: handler,
	}

	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

