package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kuedapur/backend-go/internal/api"
	"github.com/kuedapur/backend-go/internal/cache"
	"github.com/kuedapur/backend-go/internal/config"
	"github.com/kuedapur/backend-go/internal/repository/postgres"
	"github.com/kuedapur/backend-go/internal/service"
	"github.com/kuedapur/backend-go/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	dashboardCache, err := cache.NewInventoryDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Cache unavailable, continuing without it")
		dashboardCache = cache.NewNoopInventoryDashboardCache()
	}

	ingredients := postgres.NewIngredientRepository(db)
	recipes := postgres.NewRecipeRepository(db)
	snapshots := postgres.NewSnapshotRepository(db)
	hppAlerts := postgres.NewHppAlertRepository(db)
	inventoryAlerts := postgres.NewInventoryAlertRepository(db)
	orders := postgres.NewOrderRepository(db)
	customers := postgres.NewCustomerRepository(db)
	notifications := postgres.NewNotificationRepository(db)

	snapshotSvc := service.NewSnapshotService(recipes, snapshots, hppAlerts, notifications, cfg.Business)
	inventorySvc := service.NewInventoryService(ingredients, inventoryAlerts, notifications, dashboardCache, cfg.Business)
	inventorySvc.SetPriceChangeListener(snapshotSvc)

	services := &api.Services{
		Costing:       service.NewCostingService(recipes),
		Snapshots:     snapshotSvc,
		Inventory:     inventorySvc,
		Customers:     service.NewCustomerService(customers),
		Orders:        service.NewOrderService(orders, customers, notifications, cfg.Business),
		Notifications: service.NewNotificationService(notifications),
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
