package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightpocket/internal/domain/repository"
	"flightpocket/internal/infrastructure/config"
	"flightpocket/internal/infrastructure/connectivity"
	"flightpocket/internal/infrastructure/oauth"
	"flightpocket/internal/infrastructure/persistence"
	storeRepo "flightpocket/internal/interface/repository"
	"flightpocket/internal/interface/rest"
	"flightpocket/internal/usecase"
	"flightpocket/pkg/logger"
	"flightpocket/pkg/metrics"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	defer log.Sync()
	log.Info("Starting Flightpocket Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open the local store. A store that cannot open degrades the service to
	// empty favorites and an unqueueable request form, it never kills it.
	favoriteRepo, requestRepo, gormDB := openStore(ctx, cfg, log)

	// Set up the remote feed, with OAuth when configured
	httpClient := feedHTTPClient(ctx, cfg, log)
	feedRepo := storeRepo.NewHTTPFlightFeedRepository(cfg.FeedBaseURL, cfg.FeedAPIKey, httpClient, log)

	// Connectivity monitor probes the feed; initial state comes from an
	// immediate probe
	monitor := connectivity.NewMonitor(feedRepo, cfg.ProbeInterval, log)

	appMetrics := metrics.NewMetrics("flightpocket")

	// Set up usecases
	favoritesManager := usecase.NewFavoritesManager(favoriteRepo, log)
	if err := favoritesManager.Refresh(ctx); err != nil {
		log.Error("Initial favorites load failed", "error", err)
	}

	selector := usecase.NewSourceSelector(feedRepo, favoritesManager, monitor, log, appMetrics)
	selector.Start(ctx)
	defer selector.Stop()

	trigger := usecase.NewReconnectTrigger(monitor, log)
	queue := usecase.NewRequestQueue(feedRepo, requestRepo, monitor, trigger, log, appMetrics)
	trigger.Start(queue)
	defer trigger.Stop()

	// Requests left over from the last run must still reach the feed: arm
	// the trigger so the next reconnect drains them even when we start
	// offline
	if err := queue.ArmIfPending(ctx); err != nil {
		log.Warn("Leftover requests cannot be auto-delivered", "error", err)
	}

	// Seed the online view and deliver anything left over from the last run
	if monitor.IsOnline() {
		if err := selector.Refetch(ctx); err != nil {
			log.Error("Initial fetch failed", "error", err)
		}
		go func() {
			if _, err := queue.Drain(ctx); err != nil {
				log.Warn("Startup drain incomplete", "error", err)
			}
		}()
	}

	monitor.Start()
	defer monitor.Stop()

	// Set up HTTP server
	handlers := rest.NewHandlers(selector, favoritesManager, queue, monitor, log)
	engine := gin.Default()
	handlers.Register(engine)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	if gormDB != nil {
		if err := persistence.CloseDatabase(gormDB); err != nil {
			log.Error("Store close error", "error", err)
		}
	}

	log.Info("Flightpocket Service stopped")
}

// openStore opens the configured driver and falls back to the degraded null
// store when it cannot. The returned *gorm.DB is nil for non-gorm drivers.
func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.FavoriteRepository, repository.PendingRequestRepository, *gorm.DB) {
	switch cfg.StoreDriver {
	case "redis":
		log.Info("Opening redis store", "addr", cfg.RedisAddr)
		rdb, err := persistence.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Error("Failed to open redis store, continuing degraded", "error", err)
			return storeRepo.NewNullFavoriteRepository(), storeRepo.NewNullPendingRequestRepository(), nil
		}
		return storeRepo.NewRedisFavoriteRepository(rdb), storeRepo.NewRedisPendingRequestRepository(rdb), nil
	default:
		log.Info("Opening local store", "driver", cfg.StoreDriver)
		db, err := persistence.OpenDatabase(cfg.StoreDriver, cfg.SQLitePath, cfg.PostgresDSN)
		if err != nil {
			log.Error("Failed to open local store, continuing degraded", "error", err)
			return storeRepo.NewNullFavoriteRepository(), storeRepo.NewNullPendingRequestRepository(), nil
		}
		return storeRepo.NewGormFavoriteRepository(db), storeRepo.NewGormPendingRequestRepository(db), db
	}
}

// feedHTTPClient returns the OAuth client when the feed requires
// client-credentials auth, nil otherwise.
func feedHTTPClient(ctx context.Context, cfg *config.Config, log logger.Logger) *http.Client {
	if cfg.FeedTokenURL == "" {
		return nil
	}

	log.Info("Feed OAuth enabled", "tokenUrl", cfg.FeedTokenURL)
	feedOAuth := oauth.NewFeedOAuth(cfg.FeedTokenURL, cfg.FeedClientID, cfg.FeedClientSecret, log)
	client := feedOAuth.HTTPClient(ctx)
	client.Timeout = 30 * time.Second
	return client
}
