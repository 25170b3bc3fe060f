package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"dracormcp/internal/config"
	"dracormcp/internal/dracor"
	"dracormcp/internal/log"
	"dracormcp/internal/mcp"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const shutdownGrace = 10 * time.Second

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio or streamable HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "dracor.yaml", "path to the optional config file")
	return cmd
}

func runServe(configPath string) error {
	// A .env file is a convenience for local runs; its absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := log.New(cfg.LogLevel)
	client := dracor.New(cfg.BaseURL, cfg.Timeout())
	server := mcp.NewServer(client, logger, version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Transport == config.TransportStdio {
		logger.Info("starting stdio transport", "base_url", cfg.BaseURL)
		return server.Run(ctx, &sdk.StdioTransport{})
	}

	httpServer := &http.Server{
		Addr:    cfg.Addr(),
		Handler: server.HTTPHandler(),
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("starting streamable http transport", "addr", cfg.Addr(), "base_url", cfg.BaseURL)
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
