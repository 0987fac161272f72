package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-library/api"
	"github.com/gcbaptista/go-library/config"
	"github.com/gcbaptista/go-library/internal/analytics"
	"github.com/gcbaptista/go-library/internal/catalog"
	"github.com/gcbaptista/go-library/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Define command-line flags
	var (
		help       = flag.Bool("help", false, "Show help message")
		version    = flag.Bool("version", false, "Show version information")
		configPath = flag.String("config", "", "Path to a YAML configuration file")
		port       = flag.String("port", "", "Port to run the server on (overrides the config file, default 8080)")
		dataDir    = flag.String("data-dir", "", "Directory to store catalog data (overrides the config file, default ./library_data)")
		seedFile   = flag.String("seed", "", "JSON file with initial items keyed by collection (overrides the config file)")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Go Library - A multilingual digital library catalog with boolean search\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                              # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000                  # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --config library.yaml        # Load collections and paths from a file\n", os.Args[0])
		fmt.Printf("  %s --seed seed.json             # Load initial items on startup\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Go Library v1.0.0\n")
		fmt.Printf("Books, articles, audios, videos and artists with AND/OR/NOT search\n")
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != "" {
		cfg.Port = *port
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *seedFile != "" {
		cfg.SeedFile = *seedFile
	}

	// Initialize the catalog
	log.Printf("Using data directory: %s", cfg.DataDir)
	library := catalog.NewCatalog(cfg.DataDir, cfg.ResolveCollections()...)

	if cfg.SeedFile != "" {
		if err := library.SeedFromFile(cfg.SeedFile); err != nil {
			log.Fatalf("Failed to seed catalog: %v", err)
		}
	}

	analyticsService := analytics.NewService(library, filepath.Join(cfg.DataDir, analytics.DataFileName))

	// Initialize Gin router
	router := gin.Default()
	router.Use(metrics.Middleware(), api.RequestSizeLimitMiddleware(cfg.MaxBodyBytes))

	// Setup API routes
	api.SetupRoutes(router, library, analyticsService)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Printf("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Warning: Error during shutdown: %v", err)
	}
	if err := library.PersistAll(); err != nil {
		log.Printf("Warning: Failed to persist collections on shutdown: %v", err)
	}

	log.Printf("Server stopped gracefully")
}

// loadConfig reads the configuration file when one is given and falls back
// to defaults otherwise.
func loadConfig(path string) (config.ServerConfig, error) {
	if path == "" {
		var cfg config.ServerConfig
		cfg.ApplyDefaults()
		return cfg, nil
	}
	return config.Load(path)
}
