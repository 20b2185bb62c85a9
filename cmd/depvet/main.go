// Package main is the entry point for the depvet CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"

	"github.com/depvet/depvet/cmd/depvet/commands"
	"github.com/depvet/depvet/internal/app"
	_ "github.com/depvet/depvet/internal/wiring"
)

// AppProvider is a function that returns the initialized application.
type AppProvider func(context.Context) (*app.App, error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.App, error) {
		a, _, err := graft.ExecuteFor[*app.App](ctx)
		return a, err
	}))
}

func run(ctx context.Context, args []string, stderr io.Writer, provider AppProvider) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}

	cli := commands.New(a)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	return 0
}
