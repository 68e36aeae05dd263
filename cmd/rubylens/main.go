package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/japaniel/rubylens/pkg/cli"
)

func main() {
	// Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		// cobra has already printed the error
		cancel()
		os.Exit(1)
	}
}
