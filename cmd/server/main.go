package main

import (
	"context"
	"flag"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/application/authz"
	billingapp "github.com/shopfront/backend/internal/application/billing"
	catalogapp "github.com/shopfront/backend/internal/application/catalog"
	identityapp "github.com/shopfront/backend/internal/application/identity"
	orderingapp "github.com/shopfront/backend/internal/application/ordering"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/infrastructure/auth"
	"github.com/shopfront/backend/internal/infrastructure/config"
	"github.com/shopfront/backend/internal/infrastructure/logger"
	"github.com/shopfront/backend/internal/infrastructure/notify"
	"github.com/shopfront/backend/internal/infrastructure/persistence"
	"github.com/shopfront/backend/internal/infrastructure/storage"
	"github.com/shopfront/backend/internal/infrastructure/telemetry"
	"github.com/shopfront/backend/internal/interfaces/http/handler"
	"github.com/shopfront/backend/internal/interfaces/http/router"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional, env vars always apply)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting shopfront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.String("addr", cfg.HTTP.Addr()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, &cfg.Telemetry, cfg.App.Name, cfg.App.Environment)
	if err != nil {
		log.Fatal("Failed to set up tracing", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database, cfg.Telemetry.Enabled)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to access database pool", zap.Error(err))
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	shopRepo := persistence.NewGormShopRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	customerRepo := persistence.NewGormCustomerRepository(db)
	planRepo := persistence.NewGormPlanRepository(db)
	channelRepo := persistence.NewGormPaymentChannelRepository(db)
	paymentRepo := persistence.NewGormSubscriptionPaymentRepository(db)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(db)
	userRepo := persistence.NewGormUserRepository(db)

	guard := authz.NewGuard(persistence.NewGormOwnershipResolver(db))

	proofStore, err := storage.NewS3Storage(ctx, &cfg.Storage)
	if err != nil {
		log.Fatal("Failed to initialize proof storage", zap.Error(err))
	}

	// The ledger notifier is optional; leave the publisher nil when no
	// webhook is configured so the order service skips it entirely.
	var publisher shared.EventPublisher
	if n := notify.NewLedgerNotifier(&cfg.Ledger, log); n != nil {
		publisher = n
		log.Info("Order ledger sync enabled", zap.String("webhook", cfg.Ledger.WebhookURL))
	}

	// Application services
	orderService := orderingapp.NewOrderService(orderRepo, customerRepo, productRepo, shopRepo, guard, publisher)
	paymentService := billingapp.NewPaymentService(planRepo, channelRepo, paymentRepo, subscriptionRepo, proofStore, log)
	catalogService := catalogapp.NewCatalogService(shopRepo, productRepo, guard)
	profileService := identityapp.NewProfileService(userRepo)

	jwtService := auth.NewJWTService(&cfg.JWT)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(router.Options{
		Logger:       log,
		JWTService:   jwtService,
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
		Tracing:      cfg.Telemetry.Enabled,
		ServiceName:  cfg.App.Name,
		System:       handler.NewSystemHandler(db, cfg.App.Name),
		Orders:       handler.NewOrderHandler(orderService),
		Billing:      handler.NewBillingHandler(paymentService),
		Catalog:      handler.NewCatalogHandler(catalogService),
		Profile:      handler.NewProfileHandler(profileService),
		Admin:        handler.NewAdminHandler(paymentService),
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	stop()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		log.Error("Error flushing traces", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
