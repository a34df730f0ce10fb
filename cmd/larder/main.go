package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/larder/internal/dataset"
	"github.com/HerbHall/larder/internal/plugin"
	"github.com/HerbHall/larder/internal/recipes"
	"github.com/HerbHall/larder/internal/server"
	"github.com/HerbHall/larder/internal/shopping"
	"github.com/HerbHall/larder/internal/store"
	"github.com/HerbHall/larder/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Larder server starting", zap.String("version", version.Short()))

	// Load configuration
	config, err := server.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	// Open the shared store
	st, err := store.New(config.GetString("store.path"))
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer st.Close()

	// Load and normalize the catalog dataset
	loadCtx, loadCancel := context.WithTimeout(context.Background(), config.GetDuration("dataset.timeout"))
	loader := dataset.NewLoader(config.GetString("dataset.source"), config.GetDuration("dataset.timeout"), logger)
	collections, err := loader.Load(loadCtx)
	loadCancel()
	loader.Close()
	if err != nil {
		logger.Fatal("failed to load dataset", zap.Error(err))
	}
	cat := dataset.Normalize(collections)

	// Create plugin registry
	registry := plugin.NewRegistry(logger)

	// Register all modules (compile-time composition)
	modules := []plugin.Plugin{
		recipes.New(cat),
		shopping.New(cat, st),
	}
	for _, p := range modules {
		if err := registry.Register(p); err != nil {
			logger.Fatal("failed to register module", zap.Error(err))
		}
	}

	// Initialize all modules
	if err := registry.InitAll(config); err != nil {
		logger.Fatal("failed to initialize modules", zap.Error(err))
	}

	// Start modules
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := registry.StartAll(ctx); err != nil {
		logger.Fatal("failed to start modules", zap.Error(err))
	}

	// Create and start HTTP server
	addr := config.GetString("server.host") + ":" + config.GetString("server.port")
	if addr == ":" {
		addr = "0.0.0.0:8080"
	}
	srv := server.New(addr, registry, logger)

	// Start server in background
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("Larder server ready", zap.String("addr", addr))

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	registry.StopAll()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("Larder server stopped")
}
