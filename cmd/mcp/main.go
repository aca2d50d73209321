package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lecturelens/lecturelens/internal/pipeline"
	"github.com/lecturelens/lecturelens/pkg/logger_i"
)

// Exposes the local pipeline tools over MCP stdio so editors and agents can
// classify and extract lecture files without the HTTP API.
func main() {
	logger_i.Init()
	logger := logger_i.NewLogger("mcp")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := mcp.NewServer(&mcp.Implementation{Name: "lecturelens", Version: "1.0.0"}, nil)
	pipeline.RegisterMCP(srv)

	if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil {
		logger.Error("mcp server stopped", "error", err)
		os.Exit(1)
	}
}
