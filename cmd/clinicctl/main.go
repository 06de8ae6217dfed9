package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/madhurinidan/clinic-web/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := cli.DefaultOptions()
	if err := cli.NewRootCommand(opts).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(opts.Err, "Error:", err)
		stop()
		os.Exit(1)
	}
}
