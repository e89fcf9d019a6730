package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	app "github.com/lwmacct/260118-go-quick-regex/internal/command/replace"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Command.Run(ctx, os.Args); err != nil {
		slog.Error("应用程序运行失败", "error", err)
		stop()
		os.Exit(1)
	}
}
