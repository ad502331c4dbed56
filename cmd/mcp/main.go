package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	mcpadapter "github.com/shagunnguptaa/DocSumm/internal/adapters/mcp"
	"github.com/shagunnguptaa/DocSumm/internal/bootstrap"
	"github.com/shagunnguptaa/DocSumm/internal/config"
	"github.com/shagunnguptaa/DocSumm/internal/observability/logging"
)

const serviceName = "mcp"

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	// stdout carries JSON-RPC frames.
	slog.SetDefault(logging.NewJSONLoggerTo(os.Stderr, serviceName, cfg.LogLevel))

	app, err := bootstrap.New(context.Background(), cfg, serviceName)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	s := mcpadapter.NewServer(version, app.SummarizeUC)
	slog.Info("mcp_serving_stdio", "version", version)
	if err := server.ServeStdio(s); err != nil {
		slog.Error("mcp_server_error", "error", err)
		os.Exit(1)
	}
}
