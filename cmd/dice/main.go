package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	if err := newRootCmd(ctx).Execute(); err != nil {
		pterm.Error.Println(err)
		stop()
		os.Exit(1)
	}
}
