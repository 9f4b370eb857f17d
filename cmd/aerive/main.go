package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/shashidharbabu/aerive-client/internal/authsession"
	"github.com/shashidharbabu/aerive-client/internal/bookings"
	"github.com/shashidharbabu/aerive-client/internal/cart"
	"github.com/shashidharbabu/aerive-client/internal/checkout"
	"github.com/shashidharbabu/aerive-client/internal/diag"
	"github.com/shashidharbabu/aerive-client/internal/gateway"
	"github.com/shashidharbabu/aerive-client/internal/reaper"
	"github.com/shashidharbabu/aerive-client/internal/storage"
	"github.com/shashidharbabu/aerive-client/pkg/config"
	"github.com/shashidharbabu/aerive-client/pkg/enums"
	"github.com/shashidharbabu/aerive-client/pkg/logger"
	"github.com/shashidharbabu/aerive-client/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "aerive-client"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "aerive-client",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()

	durable, err := openStorage(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to open durable storage", err)
		os.Exit(1)
	}

	authManager, err := authsession.NewManager(ctx, durable, logg)
	if err != nil {
		logg.Error(ctx, "failed to restore auth session", err)
		os.Exit(1)
	}

	gatewayClient, err := gateway.NewClient(cfg.API, logg, gateway.WithTokenSource(authManager.Token))
	if err != nil {
		logg.Error(ctx, "failed to build gateway", err)
		os.Exit(1)
	}

	cartStore, err := cart.NewStore(ctx, durable, logg)
	if err != nil {
		logg.Error(ctx, "failed to hydrate cart", err)
		os.Exit(1)
	}

	coordinator, err := checkout.NewCoordinator(checkout.CoordinatorParams{
		Cart:    cartStore,
		Gateway: gatewayClient,
		Durable: durable,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to build checkout coordinator", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	paymentMetrics := metrics.NewPaymentMetrics(registry)

	bookingReaper, err := reaper.New(reaper.Params{
		Gateway:     gatewayClient,
		Coordinator: coordinator,
		Metrics:     paymentMetrics,
		Logger:      logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to build reaper", err)
		os.Exit(1)
	}

	bookingsVM, err := bookings.NewViewModel(ctx, gatewayClient, durable, logg)
	if err != nil {
		logg.Error(ctx, "failed to build bookings view model", err)
		os.Exit(1)
	}

	// Process start counts as cart-surface entry: reclaim any Pending
	// bookings left behind by a previous run that died mid-checkout, then
	// warm the bookings snapshot.
	if session := authManager.Current(); session != nil && session.UserType == enums.UserTypeTraveler {
		entryCtx := logg.WithUserID(ctx, session.UserID)
		if err := bookingReaper.OnEntry(entryCtx, session.UserID); err != nil {
			logg.Warn(entryCtx, "startup reap failed: "+err.Error())
		}
		if err := bookingsVM.Load(entryCtx, session.UserID); err != nil {
			logg.Warn(entryCtx, "initial bookings load failed: "+err.Error())
		}
	}

	if cfg.App.DemoCheckout {
		if session := authManager.Current(); session != nil && session.UserType == enums.UserTypeTraveler {
			runCheckoutDemo(logg.WithUserID(ctx, session.UserID), demoParams{
				Config:      cfg,
				Gateway:     gatewayClient,
				Cart:        cartStore,
				Coordinator: coordinator,
				Bookings:    bookingsVM,
				Metrics:     paymentMetrics,
				Logger:      logg,
				UserID:      session.UserID,
			})
		} else {
			logg.Warn(ctx, "demo checkout requires a signed-in traveler")
		}
	}

	var diagServer *diag.Server
	if cfg.Diag.Enabled {
		diagServer = diag.NewServer(cfg.Diag, registry, logg)
		go func() {
			if err := diagServer.Start(ctx); err != nil {
				logg.Error(ctx, "diagnostics listener stopped unexpectedly", err)
			}
		}()
	}

	logg.Info(logg.WithField(ctx, "env", cfg.App.Env), "client core ready")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var closeErr error
	if diagServer != nil {
		closeErr = multierr.Append(closeErr, diagServer.Shutdown(shutdownCtx))
	}
	closeErr = multierr.Append(closeErr, durable.Close())
	if closeErr != nil {
		logg.Error(shutdownCtx, "shutdown finished with errors", closeErr)
		os.Exit(1)
	}
	logg.Info(shutdownCtx, "client core stopped")
}

func openStorage(ctx context.Context, cfg *config.Config, logg *logger.Logger) (storage.Store, error) {
	backend, err := enums.ParseStorageBackend(cfg.Storage.Backend)
	if err != nil {
		return nil, err
	}
	switch backend {
	case enums.StorageBackendRedis:
		return storage.NewRedisStore(ctx, cfg.Redis, logg)
	default:
		return storage.NewSQLiteStore(ctx, cfg.Storage, logg)
	}
}
