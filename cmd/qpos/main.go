package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/quickretail/qpos/internal/api/handlers"
	"github.com/quickretail/qpos/internal/api/middleware"
	"github.com/quickretail/qpos/internal/config"
	"github.com/quickretail/qpos/internal/events"
	"github.com/quickretail/qpos/internal/health"
	"github.com/quickretail/qpos/internal/metrics"
	"github.com/quickretail/qpos/internal/models"
	repository "github.com/quickretail/qpos/internal/repositories"
	service "github.com/quickretail/qpos/internal/services"
	"github.com/quickretail/qpos/internal/telemetry"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// .env is optional; real deployments inject the environment directly
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", slog.String("error", err.Error()))
	}

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := telemetry.Setup(context.Background(), cfg.Otel)
	if err != nil {
		slog.Error("Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cartRepo := repository.NewCartRepo(redisClient, cfg.Cart.SnapshotTTL)

	jwtKey := []byte(cfg.Security.JWTKey)
	bus := events.NewBus(logger)

	userService := service.NewUserService(repos.User, cfg.Security)
	userHandler := handlers.NewUserHandler(userService)
	cartService := service.NewCartService(cartRepo, repos.Product, bus, cfg.Store.TaxRate)
	cartHandler := handlers.NewCartHandler(cartService)
	stockService := service.NewStockService(repos.Product, repos.StockLog)
	stockHandler := handlers.NewStockHandler(stockService)
	checkoutService := service.NewCheckoutService(cartService, stockService, repos.Order, repos.Customer, bus)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	reportService := service.NewReportService(repos.Order)
	reportHandler := handlers.NewReportHandler(reportService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{
		DB:          repos.DB,
		RedisClient: redisClient,
	})
	if err != nil {
		slog.Error("Error initializing health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())

	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/discount", authMiddleware.Authenticate(cartHandler.SetDiscount()))
	routerMux.HandleFunc("DELETE /api/v1/cart/discount", authMiddleware.Authenticate(cartHandler.ClearDiscount()))
	routerMux.HandleFunc("POST /api/v1/cart/coupon", authMiddleware.Authenticate(cartHandler.ApplyCoupon()))
	routerMux.HandleFunc("PUT /api/v1/cart/customer", authMiddleware.Authenticate(cartHandler.SetCustomer()))
	routerMux.HandleFunc("DELETE /api/v1/cart", authMiddleware.Authenticate(cartHandler.ClearCart()))

	routerMux.HandleFunc("POST /api/v1/checkout", authMiddleware.Authenticate(checkoutHandler.Begin()))
	routerMux.HandleFunc("GET /api/v1/checkout", authMiddleware.Authenticate(checkoutHandler.Get()))
	routerMux.HandleFunc("PUT /api/v1/checkout/method", authMiddleware.Authenticate(checkoutHandler.SelectMethod()))
	routerMux.HandleFunc("PUT /api/v1/checkout/tender", authMiddleware.Authenticate(checkoutHandler.EnterTender()))
	routerMux.HandleFunc("POST /api/v1/checkout/split", authMiddleware.Authenticate(checkoutHandler.AddSplitEntry()))
	routerMux.HandleFunc("DELETE /api/v1/checkout/split/{id}", authMiddleware.Authenticate(checkoutHandler.RemoveSplitEntry()))
	routerMux.HandleFunc("DELETE /api/v1/checkout", authMiddleware.Authenticate(checkoutHandler.Cancel()))
	routerMux.HandleFunc("POST /api/v1/checkout/confirm", authMiddleware.Authenticate(checkoutHandler.Confirm()))

	routerMux.HandleFunc("POST /api/v1/stock/adjust",
		authMiddleware.Authenticate(authMiddleware.RequireRole(models.RoleAdmin, stockHandler.Adjust())))
	routerMux.HandleFunc("GET /api/v1/stock/{id}/history", authMiddleware.Authenticate(stockHandler.History()))

	routerMux.HandleFunc("GET /api/v1/reports/summary", authMiddleware.Authenticate(reportHandler.Summary()))
	routerMux.HandleFunc("GET /api/v1/reports/daily", authMiddleware.Authenticate(reportHandler.Daily()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(reportHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(reportHandler.GetOrder()))

	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "qpos-http")

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("Tracing shutdown encountered an issue", slog.String("error", err.Error()))
	}

}
