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

	"github.com/wanyos2005/carserve-backend/expense-service/handlers"
	"github.com/wanyos2005/carserve-backend/expense-service/models"
	"github.com/wanyos2005/carserve-backend/expense-service/services"
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

	slog.Info("Starting Expense Service initialization")

	db, err := database.Connect(database.NewConfigFromEnv())
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(db, &models.Expense{}); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	expenseService := services.NewExpenseService(db)

	mux := http.NewServeMux()
	handlers.NewExpenseHandler(expenseService).SetupRoutes(mux)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","service":"expense-service","timestamp":"%s"}`, time.Now().Format(time.RFC3339))
	})
	mux.Handle("/metrics", promhttp.Handler())

	metrics := middleware.NewMetricsMiddleware("expense-service")
	handler := middleware.CORSMiddleware()(metrics.Instrument(utils.PanicRecoveryMiddleware(mux)))

	port := config.GetEnvOrDefault("PORT", "8005")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Expense Service starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Failed to start Expense Service", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down Expense Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Expense Service exited")
}
