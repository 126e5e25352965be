package cmd

import (
	"context"
	"time"

	"github.com/mj1618/webimage/internal/browser"
	"github.com/mj1618/webimage/internal/observability"
	"github.com/mj1618/webimage/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing webimage tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes the image
operations as tools. The browser is opened on the first tool call and kept
for the life of the server, so highlight state survives between calls.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  webimage serve
  webimage serve --transport streamable-http --port 8080
  webimage serve --debugger-url http://127.0.0.1:9222 --cache-ttl 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", 500, "Window control tree cache TTL in milliseconds (0 to disable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")

	logger := observability.GetLogger()
	srv := newServer(time.Duration(cacheTTLMs) * time.Millisecond)
	defer func() {
		if err := srv.Close(); err != nil {
			logger.Warn("Failed to close browser.", zap.Error(err))
		}
	}()
	return srv.Serve(transport, port)
}

func newServer(cacheTTL time.Duration) *server.Server {
	cfg := currentConfig()
	logger := observability.GetLogger()
	return server.New(server.Options{
		Version: Version,
		Config:  cfg,
		Open: func(ctx context.Context) (browser.Session, error) {
			// The session outlives the tool call that opened it.
			return openSessionFunc(context.WithoutCancel(ctx), cfg.Browser, logger)
		},
		Provider: newProviderFunc,
		Launcher: imageLauncher,
		CacheTTL: cacheTTL,
		Logger:   logger,
	})
}
