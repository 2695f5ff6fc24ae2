// q2 runs the subject query: q2 <SubjectCode>
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
	code := cli.Main(ctx, cli.Q2(), os.Args[1:], os.Getenv, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
