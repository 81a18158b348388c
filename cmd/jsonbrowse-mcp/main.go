package main

import (
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	mcpadapter "jsonbrowse/internal/adapters/mcp"
	"jsonbrowse/internal/adapters/placeholder"
	"jsonbrowse/internal/adapters/sqlite"
	"jsonbrowse/internal/application"
	"jsonbrowse/internal/config"
	"jsonbrowse/internal/logging"
)

func main() {
	configFlag := flag.String("config", "", "config file (default "+config.DefaultConfigPath+")")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("jsonbrowse-mcp: %v", err)
	}

	// stdout carries the protocol, so logs go to stderr
	logger, err := logging.New(cfg.LogLevel, "")
	if err != nil {
		log.Fatalf("jsonbrowse-mcp: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	store, err := sqlite.Open(cfg.StorePath, logger)
	if err != nil {
		log.Fatalf("jsonbrowse-mcp: %v", err)
	}
	defer store.Close()

	remote, err := placeholder.NewClient(cfg.APIBase, cfg.Timeout)
	if err != nil {
		log.Fatalf("jsonbrowse-mcp: %v", err)
	}

	mcpServer := server.NewMCPServer(
		"jsonbrowse-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpadapter.RegisterReadTools(mcpServer, application.NewRenderer(remote, store, logger))
	mcpadapter.RegisterWriteTools(mcpServer, store)

	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error("server stopped", zap.Error(err))
		log.Fatalf("jsonbrowse-mcp: %v", err)
	}
}
