/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mlukashov/usergraph/internal/api"
	"github.com/mlukashov/usergraph/internal/core/config"
	"github.com/mlukashov/usergraph/internal/core/db"
	"github.com/mlukashov/usergraph/internal/core/logger"
	"github.com/mlukashov/usergraph/internal/core/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use: "serve",
	Run: func(_ *cobra.Command, _ []string) {
		// Initialize Config
		config.InitConfig(cfgFile)

		// Initialize Logger first
		logger.InitLogger(logger.Environment(config.Cfg.App.Environment), logger.LogLevel(config.Cfg.Log.Level), config.Cfg.Log.Levels)
		logger.L.Info("Starting usergraph server...")

		// Initialize database with configured options
		sqlDB, err := db.InitDB(db.InitDBOptions{
			DSN:           db.FileDSN(config.Cfg.Database.Path),
			MigrationMode: db.ParseMigrationMode(config.Cfg.Database.MigrationMode),
			Environment:   config.Cfg.App.Environment,
		})
		if err != nil {
			logger.L.Fatal("Failed to initialize database", zap.Error(err))
		}
		defer db.CloseDB(sqlDB)

		// Start API Server
		r, err := api.SetupRouter(store.New(sqlDB))
		if err != nil {
			logger.L.Fatal("Failed to setup router", zap.Error(err))
		}

		addr := fmt.Sprintf("%s:%d", config.Cfg.Server.Host, config.Cfg.Server.Port)
		logger.L.Info("Server starting", zap.String("address", addr))

		srv := &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.L.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// Wait for interrupt signal to gracefully shutdown the server with
		// a timeout of 5 seconds.
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.L.Info("Shutdown signal received, stopping server...")

		// The context is used to inform the server it has 5 seconds to finish
		// the request it is currently handling
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.L.Fatal("Server forced to shutdown", zap.Error(err))
		}

		logger.L.Info("Server exiting")
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
