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

	"github.com/joho/godotenv"

	"github.com/comigor/journey-go/internal/config"
	"github.com/comigor/journey-go/internal/gateway"
	"github.com/comigor/journey-go/internal/journey"
	"github.com/comigor/journey-go/internal/logger"
	"github.com/comigor/journey-go/internal/server"
	"github.com/comigor/journey-go/internal/view"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.L.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.Log.Level)

	if cfg.LLM.APIKey == "" && cfg.LLM.Provider != config.ProviderOllama {
		logger.L.Warn("no API key configured; every submission will fail until API_KEY is set")
	}

	gw, err := gateway.New(cfg.LLM, cfg.Prompt)
	if err != nil {
		logger.L.Error("failed to create gateway", "error", err)
		os.Exit(1)
	}

	store, err := journey.Open(context.Background(), cfg.Journey.Backend)
	if err != nil {
		logger.L.Error("failed to open journey store", "error", err)
		os.Exit(1)
	}

	machine := view.New(gw, store, view.WithTimeout(cfg.LLM.Timeout))
	srv := server.New(machine)

	// Start server
	serverAddr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{Addr: serverAddr, Handler: srv.Router()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.LLM.Timeout+5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.L.Warn("server shutdown incomplete", "error", err)
		}
	}()

	logger.L.Info("starting server", "address", serverAddr, "provider", cfg.LLM.Provider, "model", cfg.LLM.Model, "store", cfg.Journey.Backend)
	err = httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		// in-flight submissions still write to the store
		<-drained
	}
	if cerr := journey.Close(store); cerr != nil {
		logger.L.Warn("failed to close journey store", "error", cerr)
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.L.Error("failed to start server", "error", err)
		os.Exit(1)
	}
	logger.L.Info("server stopped")
}
