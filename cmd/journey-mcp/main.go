package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"github.com/comigor/journey-go/internal/config"
	"github.com/comigor/journey-go/internal/gateway"
	"github.com/comigor/journey-go/internal/journey"
	"github.com/comigor/journey-go/internal/logger"
	"github.com/comigor/journey-go/internal/mcpserver"
	"github.com/comigor/journey-go/internal/view"
	"github.com/comigor/journey-go/pkg/tools"
)

const version = "0.1.0"

func main() {
	// stdout carries the protocol
	logger.SetOutput(os.Stderr)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.L.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.Log.Level)

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

	mgr := tools.NewToolManager()
	tools.RegisterJourneyTools(mgr, view.New(gw, store, view.WithTimeout(cfg.LLM.Timeout)))

	logger.L.Info("serving MCP over stdio", "tools", len(mgr.List()))
	err = server.ServeStdio(mcpserver.New(mgr, version))
	if cerr := journey.Close(store); cerr != nil {
		logger.L.Warn("failed to close journey store", "error", cerr)
	}
	if err != nil {
		logger.L.Error("MCP server stopped", "error", err)
		os.Exit(1)
	}
}
