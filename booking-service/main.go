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

	"github.com/wanyos2005/carserve-backend/booking-service/handlers"
	"github.com/wanyos2005/carserve-backend/booking-service/models"
	"github.com/wanyos2005/carserve-backend/booking-service/services"
	"github.com/wanyos2005/carserve-backend/shared/audit"
	"github.com/wanyos2005/carserve-backend/shared/config"
	"github.com/wanyos2005/carserve-backend/shared/database"
	"github.com/wanyos2005/carserve-backend/shared/middleware"
	"github.com/wanyos2005/carserve-backend/shared/utils"
)

func main() {
	// Load .env file if it exists (optional - fails silently if not found)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	slog.SetDefault(logger)

	slog.Info("Starting Booking Service initialization")

	db, err := database.Connect(database.NewConfigFromEnv())
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(db, &models.Booking{}, &models.ServiceLog{}); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	publisher := audit.NewPublisherFromEnv("booking-service")
	defer publisher.Close()

	bookingService := services.NewBookingService(db, publisher)
	logService := services.NewServiceLogService(db)

	mux := http.NewServeMux()
	handlers.NewBookingHandler(bookingService).SetupRoutes(mux)
	handlers.NewServiceLogHandler(logService).SetupRoutes(mux)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","service":"booking-service","timestamp":"%s"}`, time.Now().Format(time.RFC3339))
	})
	mux.Handle("/metrics", promhttp.Handler())

	metrics := middleware.NewMetricsMiddleware("booking-service")
	handler := middleware.CORSMiddleware()(metrics.Instrument(utils.PanicRecoveryMiddleware(mux)))

	port := config.GetEnvOrDefault("PORT", "8004")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Booking Service starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Failed to start Booking Service", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down Booking Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Booking Service exited")
}
