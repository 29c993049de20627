package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shop-pos/internal/application/service"
	"github.com/sangkips/shop-pos/internal/config"
	domainRepo "github.com/sangkips/shop-pos/internal/domain/repository"
	"github.com/sangkips/shop-pos/internal/infrastructure/database"
	"github.com/sangkips/shop-pos/internal/infrastructure/repository"
	"github.com/sangkips/shop-pos/internal/presentation/http/handler"
	"github.com/sangkips/shop-pos/internal/presentation/http/middleware"
	"github.com/sangkips/shop-pos/internal/presentation/http/routes"
	"github.com/sangkips/shop-pos/pkg/logger"
	"github.com/sangkips/shop-pos/pkg/printer"
	"github.com/sangkips/shop-pos/pkg/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	if err := cfg.EnsureJWTSecret(); err != nil {
		log.WithError(err).Fatal("invalid session configuration")
	}
	if cfg.JWT.Generated {
		log.Warn("JWT_SECRET not set, using a random secret; manager sessions end on restart")
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	loc := cfg.App.Location()

	// Initialize repositories
	var (
		stateRepo       domainRepo.StateRepository
		idempotencyRepo domainRepo.IdempotencyRepository
	)
	if cfg.Store.Driver == database.DriverMemory {
		log.Warn("using in-memory store, nothing will be persisted")
		stateRepo = repository.NewMemoryStateRepository()
		idempotencyRepo = repository.NewMemoryIdempotencyRepository()
	} else {
		db, err := database.NewDB(&cfg.Store, log)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to database")
		}
		defer func() {
			if err := database.Close(db); err != nil {
				log.WithError(err).Warn("failed to close database")
			}
		}()

		if err := database.AutoMigrate(db, log); err != nil {
			log.WithError(err).Fatal("failed to run migrations")
		}
		stateRepo = repository.NewStateRepository(db)
		idempotencyRepo = repository.NewIdempotencyRepository(db)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours, cfg.App.Name)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.Path, cfg.Printer.Address)
	if err != nil {
		log.WithError(err).Warn("failed to initialize printer, receipts will not be printed")
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()

	// Initialize services
	store := service.NewStateStore(stateRepo)
	ledgerService := service.NewLedgerService(store)
	catalogService := service.NewCatalogService(store, log)
	cartService := service.NewCartService(store)
	printerService := service.NewPrinterService(thermalPrinter, cfg.Printer.Type, store, ledgerService, loc, log)
	checkoutService := service.NewCheckoutService(cartService, store, ledgerService, printerService, loc, log)
	reportService := service.NewReportService(store, loc)
	settingsService := service.NewSettingsService(store, log)
	backupService := service.NewBackupService(store, log)
	authService := service.NewAuthService(store, jwtManager)

	// Load once so a broken store fails at startup rather than at the first sale
	if _, err := store.Read(context.Background()); err != nil {
		log.WithError(err).Fatal("failed to load shop state")
	}

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Product:     handler.NewProductHandler(catalogService),
		Cart:        handler.NewCartHandler(cartService),
		Checkout:    handler.NewCheckoutHandler(checkoutService),
		Transaction: handler.NewTransactionHandler(ledgerService, printerService, loc),
		Report:      handler.NewReportHandler(reportService),
		Settings:    handler.NewSettingsHandler(settingsService),
		Backup:      handler.NewBackupHandler(backupService),
		Printer:     handler.NewPrinterHandler(printerService),
	}

	rateLimiter := middleware.NewClientRateLimiter(
		middleware.RateLimiterConfigFromWindow(cfg.RateLimit.Requests, cfg.RateLimit.Duration),
	)
	defer rateLimiter.Stop()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Log:             log,
		Sessions:        authService,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go purgeIdempotencyKeys(ctx, idempotencyRepo, log)

	srv := &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":  srv.Addr,
			"env":   cfg.App.Env,
			"store": cfg.Store.Driver,
		}).Infof("starting %s server", cfg.App.Name)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server forced to shut down")
	}
}

// purgeIdempotencyKeys drops expired checkout replay keys every hour
func purgeIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, log *logrus.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if err := repo.DeleteExpired(ctx, now); err != nil {
				log.WithError(err).Warn("failed to purge idempotency keys")
			}
		}
	}
}
