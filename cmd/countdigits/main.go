// Package main counts the decimal digits of an integer given as argument or typed in.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/abgdnv/inventory/internal/digits"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := digits.Run(ctx, os.Args[1:], os.Stdin, os.Stdout)
	stop()
	os.Exit(code)
}
