// Command server is the main entry point for the UniProt MCP server
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

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theapemachine/mcp-server-uniprot/core"
	"github.com/theapemachine/mcp-server-uniprot/core/middleware"
	"github.com/theapemachine/mcp-server-uniprot/pkg/config"
	"github.com/theapemachine/mcp-server-uniprot/pkg/tools/uniprotkb"
	"github.com/theapemachine/mcp-server-uniprot/pkg/uniprot"
)

const (
	serverName    = "uniprot"
	serverVersion = "1.0.0"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		v          = viper.New()
		configFile string
		stdio      bool
	)

	cmd := &cobra.Command{
		Use:          "uniprot-mcp",
		Short:        "MCP server exposing UniProt REST API tools",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}

			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}

			// --stdio wins over --transport.
			if stdio {
				cfg.Server.Transport = config.TransportStdio
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			return run(cmd.Context(), cfg, newLogger(cfg.Log.Level))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "Optional configuration file (yaml, json or toml)")
	flags.BoolVar(&stdio, "stdio", false, "Run in stdio mode (default when used with Claude Desktop)")
	config.AddFlags(flags)

	return cmd
}

// newLogger writes to stderr; stdout belongs to the stdio transport.
func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          serverName,
	})

	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}

	return logger
}

// newServer builds the registry of UniProt tools and attaches it to a fresh MCP server.
func newServer(cfg *config.Config, logger *log.Logger) (*server.MCPServer, *core.Registry, error) {
	client := uniprot.NewClient(
		logger,
		uniprot.WithUserAgent(cfg.UniProt.UserAgent),
		uniprot.WithTimeout(cfg.UniProt.Timeout),
	)

	service := uniprotkb.NewService(
		client,
		uniprotkb.WithBaseURL(cfg.UniProt.BaseURL),
		uniprotkb.WithPolicy(cfg.Policy()),
		uniprotkb.WithLogger(logger),
	)

	registry := core.NewRegistry()
	if err := registry.Register(uniprotkb.RegisterTools(service)...); err != nil {
		return nil, nil, fmt.Errorf("failed to register tools: %w", err)
	}

	mcpServer := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithResourceCapabilities(false, false),
		server.WithLogging(),
	)

	registry.Attach(mcpServer, middleware.Recover(logger), middleware.Logging(logger))

	return mcpServer, registry, nil
}

func run(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	mcpServer, registry, err := newServer(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("Starting UniProt MCP server",
		"transport", cfg.Server.Transport,
		"base_url", cfg.UniProt.BaseURL,
		"policy", cfg.Policy(),
		"tools", registry.Names(),
	)

	switch cfg.Server.Transport {
	case config.TransportStdio:
		if err := server.ServeStdio(mcpServer); err != nil {
			logger.Error("Server error", "error", err)
			return err
		}
	case config.TransportSSE:
		if err := serveSSE(ctx, mcpServer, cfg.Addr(), logger); err != nil {
			logger.Error("Server error", "error", err)
			return err
		}
	default:
		return fmt.Errorf("transport method %q not implemented", cfg.Server.Transport)
	}

	logger.Info("Server shutdown complete")
	return nil
}

func serveSSE(ctx context.Context, mcpServer *server.MCPServer, addr string, logger *log.Logger) error {
	sseServer := server.NewSSEServer(mcpServer, "http://"+addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- sseServer.Start(addr)
	}()

	logger.Info("Listening for SSE clients", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logger.Info("Shutting down SSE server")
		return sseServer.Shutdown(shutdownCtx)
	}
}
