package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"sitewright/internal/config"
	"sitewright/internal/contenttype"
	"sitewright/internal/handler"
	"sitewright/internal/middleware"
	"sitewright/internal/repository/postgres"
	"sitewright/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.Debug {
		if logFile, err := config.SetupLogFile("logs", 10); err != nil {
			fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", err)
		} else {
			defer logFile.Close()
			logOut = io.MultiWriter(os.Stdout, logFile)
		}
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create table names and ensure the schema exists
	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	projectRepo := postgres.NewProjectRepository(repoConfig)
	versionRepo := postgres.NewVersionRepository(repoConfig)
	fileRepo := postgres.NewFileRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Initialize content type registry (embedded YAML table)
	typeRegistry, err := contenttype.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize content type registry: %v", err)
	}

	// Create services
	siteURLs := service.SiteURLs{
		PreviewPrefix: cfg.PreviewPathPrefix,
		AppPrefix:     cfg.AppPathPrefix,
	}
	projectService := service.NewProjectRegistry(projectRepo, versionRepo, fileRepo, logger)
	versionService := service.NewVersionManager(projectRepo, versionRepo, fileRepo, txManager, siteURLs, logger)
	editorService := service.NewFileEditor(projectRepo, fileRepo, typeRegistry, logger)

	// Create handlers
	toolsHandler := handler.NewToolsHandler(projectService, versionService, editorService, logger)
	siteHandler := handler.NewSiteHandler(projectRepo, fileRepo, logger)
	healthHandler := handler.NewHealthHandler(pool)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", healthHandler.Check)

	// Tool dispatch routes
	mux.HandleFunc("POST /api/tools", toolsHandler.Dispatch)
	mux.HandleFunc("GET /api/tools", toolsHandler.ListTools)

	// Site serving routes (draft preview and published app)
	mux.HandleFunc("GET "+cfg.PreviewPathPrefix+"/{slug}", siteHandler.ServePreview)
	mux.HandleFunc("GET "+cfg.PreviewPathPrefix+"/{slug}/{path...}", siteHandler.ServePreview)
	mux.HandleFunc("GET "+cfg.AppPathPrefix+"/{slug}", siteHandler.ServeApp)
	mux.HandleFunc("GET "+cfg.AppPathPrefix+"/{slug}/{path...}", siteHandler.ServeApp)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Identity → Routes
	root = middleware.Identity()(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be first to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", middleware.CallerHeader},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
