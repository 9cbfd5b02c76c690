package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// The compiler runs in its own process group, so interrupts reach it
	// through the context rather than the terminal.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
