// q4 runs the filter query: q4 <filter_expr>
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"mymyunsw/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Main(ctx, cli.Q4(), os.Args[1:], os.Getenv, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
