/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the mowing scheduling server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags, load optional YAML config
  2. Initialize the repository (sqlite or in-memory)
  3. Create API handler with the shared business-day calendar
  4. Configure HTTP router
  5. Start the background forecast refresher
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  YAML config file path (optional)
  -port    HTTP server port (overrides config)
  -db      SQLite database path (overrides config)
  -memory  Use the in-memory store with demo data

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the forecast refresher
  4. Close the database connection
  5. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/mowing.db"

  # Run with demo data, no persistence
  ./server -memory

  # Run from a config file on a different port
  ./server -config=./mowing.yaml -port=3000

SEE ALSO:
  - config/config.go: File format and defaults
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/greenops/mowing-engine/api"
	"github.com/greenops/mowing-engine/config"
	"github.com/greenops/mowing-engine/schedule"
	memstore "github.com/greenops/mowing-engine/schedule/store"
	"github.com/greenops/mowing-engine/store/sqlite"
)

func main() {
	// Flags
	configPath := flag.String("config", "", "YAML config file path")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	memory := flag.Bool("memory", false, "Use the in-memory store with demo data")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Database.Driver = config.DriverSQLite
		cfg.Database.Path = *dbPath
	}
	if *memory {
		cfg.Database.Driver = config.DriverMemory
		cfg.Database.SeedDemo = true
	}

	// Initialize repository
	var repo schedule.Repository
	switch cfg.Database.Driver {
	case config.DriverMemory:
		mem := memstore.NewMemory()
		if cfg.Database.SeedDemo {
			if err := memstore.SeedDemo(mem); err != nil {
				log.Fatalf("Failed to seed demo data: %v", err)
			}
			log.Println("Loaded demo dataset into memory store")
		}
		repo = mem
	default:
		store, err := sqlite.New(cfg.Database.Path)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer store.Close()
		repo = store
	}

	// Initialize handler with the shared business-day calendar
	calendar := schedule.NewCalendar()
	handler := api.NewHandler(repo, calendar)

	// Create router
	router := api.NewRouter(handler)

	// Background forecast refresher
	refresher := api.NewForecastRefresher(repo)
	refresher.Enabled = cfg.RefresherEnabled()
	if interval, err := cfg.Refresher.Interval(); err == nil {
		refresher.CheckInterval = interval
	}
	refresher.Start()
	defer refresher.Stop()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", cfg.Server.Port)
		log.Printf("📊 API available at http://localhost:%d/api", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
