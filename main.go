package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"evidencija/adapters/postgres"
	"evidencija/internal"
	"evidencija/internal/config"
	"evidencija/internal/container"
	"evidencija/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewConfiguredLogger(appConfig.Log.Level, appConfig.Log.JSON)
	gin.SetMode(appConfig.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, appConfig.Database.Driver, appConfig.Database.URL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	appContainer, err := container.New(appConfig, logger)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	if err := appContainer.InitWithDatabase(db); err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	if err := appContainer.StartBackground(); err != nil {
		log.Fatalf("Failed to start session pruning: %v", err)
	}

	uiApp, err := ui.NewApp(ui.Config{
		CookieName:   appConfig.Session.CookieName,
		SecureCookie: appConfig.Session.SecureCookie,
		AccessLog:    true,
	}, ui.Deps{
		Sessions:   appContainer.Sessions,
		Settings:   appContainer.SettingsRepo,
		Exports:    appContainer.Exports,
		Travel:     appContainer.Travel,
		Dashboard:  appContainer.Dashboard,
		ORSHandler: appContainer.ORSHandler,
		Logger:     logger,
	})
	if err != nil {
		log.Fatalf("Failed to initialize UI: %v", err)
	}

	server := &http.Server{
		Addr:              ":" + appConfig.Server.Port,
		Handler:           uiApp,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting evidencija on port %s", appConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed: %v", err)
	}
}
