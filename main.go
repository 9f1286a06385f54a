package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jh125486/versiongate/cli"
	basecli "github.com/jh125486/versiongate/pkg/cli"
	"github.com/jh125486/versiongate/pkg/contextlog"
)

const name = "versiongate"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var grammar cli.CLI
	kctx := basecli.NewKongContext(name, basecli.Version(version), &grammar, os.Args[1:])

	logOpts := contextlog.Options{Level: grammar.LogLevel, Format: grammar.LogFormat}
	ctx = contextlog.Setup(ctx, logOpts,
		slog.String("app", name),
		slog.String("version", version),
		slog.String("commit", commit),
		slog.String("built", date),
	)
	svc := basecli.NewService("", "", "", "")
	if err := kctx.Run(basecli.Context{Context: ctx}, svc); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// tiny grace period for logs to flush
	time.Sleep(10 * time.Millisecond)
}
