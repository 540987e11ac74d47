package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"carelens/adapters/postgres"
	"carelens/internal"
	"carelens/internal/api"
	"carelens/internal/thresholds"
	"carelens/ports"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logger := internal.DefaultLogger.WithComponent("main")

	cfg, err := thresholds.Load()
	if err != nil {
		logger.Error("invalid threshold configuration: %v", err)
		os.Exit(1)
	}

	var reports ports.ReportRepository
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		db, err := sqlx.Connect("postgres", dbURL)
		if err != nil {
			logger.Error("failed to connect to database: %v", err)
			os.Exit(1)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			logger.Error("failed to prepare database: %v", err)
			os.Exit(1)
		}
		reports = postgres.NewReportRepository(db)
		logger.Info("report persistence enabled")
	} else {
		logger.Warn("DATABASE_URL not set, reports will not be persisted")
	}

	server := api.NewServer(cfg, reports)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("listening on :%s", port)
	if err := http.ListenAndServe(":"+port, server.Handler()); err != nil {
		logger.Error("server stopped: %v", err)
		os.Exit(1)
	}
}
