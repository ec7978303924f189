// Command eventdesk manages the employee, client, supplier and event records
// of an event planning business.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"eventdesk/internal/cli"
)

var exitFunc = os.Exit

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Environ())
	stop()
	exitFunc(code)
}
