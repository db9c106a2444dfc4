/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the event allocation server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and parse command-line flags
  2. Initialize the SQLite catalog store
  3. Seed the demo catalog on first run (empty database)
  4. Create the API handler and router
  5. Start the server with graceful shutdown

CONFIGURATION:
  -port / PORT       HTTP server port (default: 8080)
  -db / DB_PATH      SQLite database path (default: planner.db)
                     Use ":memory:" for an in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the database connection
  4. Exit

EXAMPLES:
  ./server -db="./data/planner.db"
  PORT=3000 ./server

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
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
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nathfher/planificador-evento/api"
	"github.com/nathfher/planificador-evento/factory"
	"github.com/nathfher/planificador-evento/store/sqlite"
)

func main() {
	// .env is optional; flags and real environment win.
	_ = godotenv.Load()

	port := flag.Int("port", envInt("PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", envString("DB_PATH", "planner.db"), "SQLite database path")
	flag.Parse()

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	// First run: seed the demo catalog so the server is usable immediately.
	catalog, err := store.LoadCatalog(ctx)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	if len(catalog.Venues) == 0 {
		log.Println("Empty catalog, seeding demo data")
		if err := store.SaveCatalog(ctx, api.SeedCatalog()); err != nil {
			log.Fatalf("Failed to seed catalog: %v", err)
		}
	}

	handler, err := api.NewHandler(ctx, store, factory.StandardRules())
	if err != nil {
		log.Fatalf("Failed to initialize handler: %v", err)
	}
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		log.Printf("API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
