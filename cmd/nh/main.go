// Package main is the entry point for the nh CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/runoshun/nh/internal/app"
	"github.com/runoshun/nh/internal/cli"
	"github.com/runoshun/nh/internal/domain"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	err := run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCode(err))
}

func run() error {
	container := app.New()
	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.ExecuteContext(context.Background())
}

// exitCode returns the process exit code for err.
// A failed child process passes its own exit code through.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *domain.ExitError
	if errors.As(err, &exitErr) && exitErr.Status.Code > 0 {
		return exitErr.Status.Code
	}
	return 1
}
