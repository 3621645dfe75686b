package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadsniper/internal/config"
	"leadsniper/internal/db"
	"leadsniper/internal/jobs"
	"leadsniper/internal/server"
	"leadsniper/internal/source"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	// The entitlement store is optional. When it is missing or
	// unreachable the service still serves searches and acknowledges
	// webhooks without granting.
	var database *db.DB
	if cfg.HasStore() {
		var err error
		database, err = db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: entitlement store unavailable: %v", err)
			log.Println("Continuing without persistence; webhook grants will be skipped")
			database = nil
		} else {
			defer database.Close()
			if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
				log.Fatalf("Failed to run migrations: %v", err)
			}
			log.Println("Migrations completed successfully")
		}
	} else {
		log.Println("DATABASE_URL not set; entitlement store disabled")
	}

	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, database); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	// Background probe of the search source for observability.
	monitor := jobs.NewSourceMonitor(
		source.NewRedditProvider(cfg.RedditBaseURL, cfg.RedditUserAgent, nil),
		5*time.Minute,
	)
	go monitor.Start(ctx)

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
