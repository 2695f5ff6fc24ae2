// q5 checks a student against an optional program and stream:
// q5 <zID> [Program] [Stream]
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
	code := cli.Main(ctx, cli.Q5(os.Args[0]), os.Args[1:], os.Getenv, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
