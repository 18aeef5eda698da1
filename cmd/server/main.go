package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	billingapp "github.com/rentworks/backend/internal/application/billing"
	partnerapp "github.com/rentworks/backend/internal/application/partner"
	"github.com/rentworks/backend/internal/domain/billing"
	"github.com/rentworks/backend/internal/infrastructure/config"
	"github.com/rentworks/backend/internal/infrastructure/logger"
	"github.com/rentworks/backend/internal/infrastructure/persistence"
	"github.com/rentworks/backend/internal/infrastructure/scheduler"
	"github.com/rentworks/backend/internal/interfaces/http/dto"
	"github.com/rentworks/backend/internal/interfaces/http/handler"
	"github.com/rentworks/backend/internal/interfaces/http/middleware"
	"github.com/rentworks/backend/internal/interfaces/http/router"
)

// version is stamped at build time via -ldflags
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting RentWorks Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Tax policy comes from configuration, validated at load time
	policy, err := taxPolicyFromConfig(cfg.Billing)
	if err != nil {
		log.Fatal("Invalid billing configuration", zap.Error(err))
	}

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	outletRepo := persistence.NewGormOutletRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)

	// Initialize application services
	customerService := partnerapp.NewCustomerService(customerRepo, log)
	outletService := partnerapp.NewOutletService(outletRepo, log)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, customerRepo, outletRepo, db, policy, log)
	paymentService := billingapp.NewPaymentService(invoiceRepo, paymentRepo, db, policy, log)
	overdueService := billingapp.NewOverdueService(invoiceRepo, log)
	exportService := billingapp.NewExportService(invoiceRepo, customerRepo, log)

	// Start the daily overdue sweep (if enabled)
	if cfg.Scheduler.Enabled {
		triggerConfig := scheduler.DefaultSweepTriggerConfig()
		triggerConfig.SweepHour = cfg.Scheduler.SweepHour
		triggerConfig.SweepMinute = cfg.Scheduler.SweepMinute

		sweepTrigger := scheduler.NewSweepTrigger(triggerConfig, overdueService, log)
		if err := sweepTrigger.Start(context.Background()); err != nil {
			log.Fatal("Failed to start overdue sweep trigger", zap.Error(err))
		}
		defer func() {
			if err := sweepTrigger.Stop(context.Background()); err != nil {
				log.Error("Error stopping overdue sweep trigger", zap.Error(err))
			}
		}()
		log.Info("Overdue sweep trigger started",
			zap.Int("sweep_hour", cfg.Scheduler.SweepHour),
			zap.Int("sweep_minute", cfg.Scheduler.SweepMinute),
		)
	}

	// Initialize HTTP handlers
	customerHandler := handler.NewCustomerHandler(customerService)
	outletHandler := handler.NewOutletHandler(outletService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	reportHandler := handler.NewReportHandler(exportService, overdueService)
	systemHandler := handler.NewSystemHandler(db.Ping, version)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Install custom binding rules (gstin, statecode)
	if err := dto.RegisterValidators(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order: request ID first so recovery and request logs carry it.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig()))

	r := router.NewRouter(engine)
	r.Register(systemHandler)
	r.Register(customerHandler)
	r.Register(outletHandler)
	r.Register(invoiceHandler)
	r.Register(paymentHandler)
	r.Register(reportHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// taxPolicyFromConfig builds the billing tax policy from its string form.
// config.Load has already validated the values; errors here mean the two
// layers disagree and should stop startup.
func taxPolicyFromConfig(cfg config.BillingConfig) (billing.TaxPolicy, error) {
	rate, err := decimal.NewFromString(cfg.DefaultGSTRate)
	if err != nil {
		return billing.TaxPolicy{}, err
	}
	tolerance, err := decimal.NewFromString(cfg.SettlementTolerance)
	if err != nil {
		return billing.TaxPolicy{}, err
	}

	policy := billing.TaxPolicy{
		DefaultGSTRate:      rate,
		SettlementTolerance: tolerance,
	}
	if cfg.FallbackTreatment != "" {
		treatment := billing.TaxTreatment(cfg.FallbackTreatment)
		policy.FallbackTreatment = &treatment
	}
	return policy, policy.Validate()
}
