package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"invoice_idor/internal/config"
	"invoice_idor/internal/handlers"
	"invoice_idor/internal/logger"
	"invoice_idor/internal/repository"
	"invoice_idor/internal/repository/db"
	"invoice_idor/internal/server"
	"invoice_idor/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// load configs/config.yml + env
	cfg, err := config.Load("configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading config: %v\n", err)
		os.Exit(1)
	}

	// init logger
	log := logger.Get(cfg.LogLevel)

	// open storage
	repos, closeStore, err := openRepositories(cfg.Storage, log)
	if err != nil {
		log.Fatalw("failed to init storage", "driver", cfg.Storage.Driver, "err", err)
	}
	defer closeStore()

	// wire dependencies
	services := service.NewService(repos, service.Options{
		SessionSecret:   cfg.Session.Secret,
		RetentionPeriod: cfg.AccessLog.Retention,
	})
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// access log retention
	go func() {
		if err := services.Retention.Run(ctx, cfg.AccessLog.PruneSchedule, log); err != nil {
			log.Errorw("access log retention stopped", "err", err)
		}
	}()

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

// openRepositories returns seeded repositories for the configured driver
// and a func releasing whatever it opened.
func openRepositories(cfg config.StorageConfig, log *logger.Logger) (*repository.Repository, func(), error) {
	if cfg.Driver == config.DriverMemory {
		log.Infow("using in-memory storage")
		return repository.NewMemoryRepository(), func() {}, nil
	}

	conn, err := openDB(cfg.DBPath, log)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}
	if err := repository.Seed(context.Background(), conn, repository.SeedUsers(), repository.SeedInvoices()); err != nil {
		closeDB()
		return nil, nil, err
	}
	return repository.NewRepository(conn), closeDB, nil
}

// openDB initializes the SQLite database using configuration.
func openDB(dbPath string, log *logger.Logger) (*sql.DB, error) {
	if dbPath == "" {
		dbPath = db.MemoryPath
	}
	log.Infow("opening sqlite", "path", dbPath)
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
