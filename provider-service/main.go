package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wanyos2005/carserve-backend/provider-service/config"
	"github.com/wanyos2005/carserve-backend/provider-service/handlers"
	"github.com/wanyos2005/carserve-backend/provider-service/models"
	"github.com/wanyos2005/carserve-backend/provider-service/services"
	"github.com/wanyos2005/carserve-backend/shared/audit"
	sharedconfig "github.com/wanyos2005/carserve-backend/shared/config"
	"github.com/wanyos2005/carserve-backend/shared/database"
	"github.com/wanyos2005/carserve-backend/shared/middleware"
	"github.com/wanyos2005/carserve-backend/shared/utils"
)

func main() {
	// Load .env file if it exists (optional - fails silently if not found)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	slog.SetDefault(logger)

	slog.Info("Starting Provider Service initialization")

	db, err := database.Connect(database.NewConfigFromEnv())
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	err = database.Migrate(db,
		&models.ProviderCategory{},
		&models.ServiceCategory{},
		&models.Service{},
		&models.Provider{},
		&models.ProviderService{},
		&models.ServiceTemplate{},
		&models.ServiceTemplateItem{},
	)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	catalogCfg, err := config.LoadCatalogConfig(sharedconfig.GetEnvOrDefault("CATALOG_CONFIG_PATH", "config/catalog.yaml"))
	if err != nil {
		slog.Warn("Falling back to default catalog configuration", "error", err)
		catalogCfg = config.GetDefaultCatalogConfig()
	}

	publisher := audit.NewPublisherFromEnv("provider-service")
	defer publisher.Close()

	categoryService := services.NewCategoryService(db)
	catalogService := services.NewCatalogService(db, catalogCfg)
	registry := services.NewProviderRegistry(db, publisher)
	attachmentService := services.NewAttachmentService(db)
	templateService := services.NewTemplateService(db)

	// Seed the configured category taxonomies. Creation is idempotent so
	// restarts are safe.
	categoryService.Seed(context.Background(), catalogCfg)

	mux := http.NewServeMux()
	handlers.NewCatalogHandler(categoryService, catalogService).SetupRoutes(mux)
	handlers.NewProviderHandler(registry, attachmentService, templateService).SetupRoutes(mux)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","service":"provider-service","timestamp":"%s"}`, time.Now().Format(time.RFC3339))
	})
	mux.Handle("/metrics", promhttp.Handler())

	metrics := middleware.NewMetricsMiddleware("provider-service")
	handler := middleware.CORSMiddleware()(metrics.Instrument(utils.PanicRecoveryMiddleware(mux)))

	port := sharedconfig.GetEnvOrDefault("PORT", "8003")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Provider Service starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Failed to start Provider Service", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down Provider Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Provider Service exited")
}
