package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gec-catalog/internal/config"
	"gec-catalog/internal/database"
	"gec-catalog/internal/handler"
	"gec-catalog/internal/repository"
	"gec-catalog/internal/router"
	"gec-catalog/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is fine; system environment variables win anyway.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting catalog API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Schema is brought up to date before the first request is served.
	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	productRepo := repository.NewProductRepository(pool, logger)
	folderRepo := repository.NewFolderRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	settingRepo := repository.NewSettingRepository(pool, logger)

	productService := service.NewProductService(productRepo, logger)
	folderService := service.NewFolderService(folderRepo, logger)
	orderService := service.NewOrderService(orderRepo, logger)
	settingService := service.NewSettingService(settingRepo, logger)

	productHandler := handler.NewProductHandler(productService, logger)
	folderHandler := handler.NewFolderHandler(folderService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	settingHandler := handler.NewSettingHandler(settingService, logger)

	mux := router.New(productHandler, folderHandler, orderHandler, settingHandler, cfg.Auth.AdminKey, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
