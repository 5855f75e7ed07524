// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/x509-chain-validator/src/version"
)

var appVersion = version.Version // default version

// GetVersion returns the current version of the MCP server.
//
// The version is initially set to the default from the version package,
// but can be overridden when calling Run() with a specific version string.
func GetVersion() string {
	return appVersion
}

// Run starts the MCP server with X509 certificate chain validation tools.
//
// Parameters:
//   - version: Version string to set for the server (e.g., "0.3.1")
//
// Returns:
//   - error: Server startup or runtime error, or graceful shutdown signal
//
// Configuration loads from the file named by the MCP_X509_CONFIG_FILE
// environment variable, falling back to built-in defaults when unset.
//
// Server Lifecycle:
//  1. Load configuration from environment
//  2. Register the validation tools with their config-bound handlers
//  3. Set up signal handling for graceful shutdown
//  4. Start stdio server with context cancellation support
//  5. Wait for either server error or shutdown signal
//
// Graceful Shutdown:
//   - Responds to SIGINT (Ctrl+C) and SIGTERM signals
//   - Returns context.Canceled wrapped in a shutdown error on signal
func Run(version string) error {
	// Set the version for GetVersion
	appVersion = version

	// Load configuration
	config, err := loadConfig(os.Getenv("MCP_X509_CONFIG_FILE"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	s := server.NewMCPServer(
		"X509 Certificate Chain Validator",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	// Register tools with handlers bound to the loaded configuration
	for _, def := range createTools() {
		s.AddTool(def.Tool, def.Handler(config))
	}

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create stdio server to connect with our context
	stdioServer := server.NewStdioServer(s)

	// Start server with graceful shutdown support
	errChan := make(chan error, 1)
	go func() {
		errChan <- stdioServer.Listen(ctx, os.Stdin, os.Stdout)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		// Graceful shutdown triggered by signal
		return fmt.Errorf("server shutdown: %w", ctx.Err())
	}
}
