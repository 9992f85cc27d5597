// Package main is the entry point for the zcf CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/thoreinstein/zcf/cmd/zcf/commands"
	"github.com/thoreinstein/zcf/internal/errors"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := commands.ExecuteContext(ctx)
	if err == nil {
		return errors.ExitSuccess
	}
	exitErr := errors.Classify(err)
	fmt.Fprintf(os.Stderr, "✖ %v\n", exitErr)
	if exitErr.Suggestion != "" {
		fmt.Fprintf(os.Stderr, "  %s\n", exitErr.Suggestion)
	}
	return exitErr.Code
}
