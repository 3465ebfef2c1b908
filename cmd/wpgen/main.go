package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "embed"

	"github.com/tigerroll/wpgen/internal/cli"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/logger"
)

// embeddedConfig embeds the content of the application's YAML configuration file.
//
//go:embed resources/application.yaml
var embeddedConfig []byte

// main is the entry point of the application.
// It wires signal handling to the command context and runs the command line.
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signal handling for graceful shutdown (e.g., Ctrl+C)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Warnf("Received signal '%v'. Stopping after the current chunk...", sig)
		cancel()
	}()

	err := cli.Execute(ctx, embeddedConfig)
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
