package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/colloquy-dev/colloquy/internal/config"
	"github.com/colloquy-dev/colloquy/internal/preview"
)

func previewCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Start the preview server",
		Long: `Start the preview server with hot reload.

The preview server renders the project's fixture pages through a real
engine and reloads connected browsers when a fixture changes.

Features:
  • Static and live-polling comment list rendering
  • Demo sign-in with the fixture accounts
  • Prometheus metrics at /metrics
  • Reload on pages.json / users.json edits

Examples:
  colloquy preview
  colloquy preview --port=8080
  colloquy preview --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(port, host)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from colloquy.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from colloquy.json)")

	return cmd
}

func runPreview(port int, host string) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Apply command-line overrides
	if port > 0 {
		cfg.Preview.Port = port
	}
	if host != "" {
		cfg.Preview.Host = host
	}

	printBanner()
	fmt.Println("  preview")
	fmt.Println()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	server, err := preview.NewServer(preview.ServerOptions{
		Config: cfg,
		Logger: logger,
		OnReload: func(clients int) {
			success("Reloaded %d browser(s)", clients)
		},
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\n\n  Shutting down...")
		cancel()
	}()

	success("Serving %s", cfg.PreviewURL())
	return server.Start(ctx)
}
