package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"phonetrace/db"
	"phonetrace/internal/config"
	"phonetrace/internal/location"
	"phonetrace/internal/provider"
	"phonetrace/internal/web"
	"phonetrace/middleware"
)

// Global loggers for different output streams
var (
	infoLogger  = log.New(os.Stdout, "", log.LstdFlags)
	errorLogger = log.New(os.Stderr, "", log.LstdFlags)
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		errorLogger.Fatalf("Failed to load configuration: %v", err)
	}

	var repoFactory *db.RepositoryFactory
	if cfg.DatabaseType == config.MongoDB {
		infoLogger.Println("Using MongoDB database")
		mongoClient, err := db.ConnectToMongo(cfg.MongoURI)
		if err != nil {
			errorLogger.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		repoFactory = db.NewRepositoryFactory(nil, mongoClient, cfg.DatabaseName)
	} else {
		infoLogger.Println("Using SQLite database")
		sqliteDB, err := db.ConnectToSQLite(cfg.SQLitePath)
		if err != nil {
			errorLogger.Fatalf("Failed to connect to SQLite: %v", err)
		}
		if err := db.InitializeSchema(sqliteDB); err != nil {
			errorLogger.Fatalf("Failed to initialize database schema: %v", err)
		}
		repoFactory = db.NewRepositoryFactory(sqliteDB, nil, cfg.DatabaseName)
	}

	locationRepo := repoFactory.NewLocationRepository()
	dbManager := db.NewDBManager()

	providerClient := provider.NewClient(cfg.AbstractAPIKey, cfg.AbstractAPIURL)
	if !providerClient.IsConfigured() {
		infoLogger.Println("AbstractAPI key is missing. Lookups will fall back to generated data.")
	}

	locationService := location.NewLocationService(locationRepo, providerClient, dbManager)
	locationHandlers := location.NewLocationHandlers(locationService, cfg)

	router := web.NewRouter(locationHandlers)
	handler := middleware.LoggingMiddleware(middleware.SetupCORS()(router))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		infoLogger.Printf("Server is starting on port %s...", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errorLogger.Fatalf("Server ListenAndServe error: %v", err)
		}
	}()

	waitForShutdown(server, dbManager, locationRepo)
}

func waitForShutdown(server *http.Server, dbManager *db.DBManager, repo db.LocationRepository) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	sig := <-stop
	infoLogger.Printf("Received shutdown signal: %v", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	infoLogger.Println("Shutting down the server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		errorLogger.Printf("Server Shutdown error: %v", err)
	}

	dbManager.Stop()
	if err := repo.Close(); err != nil {
		errorLogger.Printf("Error closing repository: %v", err)
	}

	infoLogger.Println("[SUCCESS] Services stopped")
}
