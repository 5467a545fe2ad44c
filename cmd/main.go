package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/chatterino-tools/cpm/internal/interfaces/cli"
	"github.com/chatterino-tools/cpm/internal/interfaces/di"
)

func main() {
	container := di.NewContainer()
	logger := container.Logger

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Warn("Received shutdown signal, cancelling")
		cancel()
	}()

	cli.Execute(ctx, container.GetCLIContainer())
}
