// Command hesabctl prints the dashboard views of a Hesab book from the
// terminal. It reads through the configured data source, either the live API
// or the embedded demo books.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hesab/backend/internal/infrastructure/config"
	"github.com/hesab/backend/internal/infrastructure/datasource"
	"github.com/hesab/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
	"golang.org/x/text/message"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "hesabctl: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{Level: "warn", Format: "console", Output: "stderr"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "hesabctl: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	src, err := datasource.New(cfg.DataSource, log)
	if err != nil {
		log.Error("Failed to create data source", zap.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli := &CLI{
		Source:  src,
		Out:     os.Stdout,
		Printer: message.NewPrinter(cfg.App.Language()),
	}
	if err := cli.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "hesabctl: %v\n", err)
		os.Exit(exitCode(err))
	}
}
