// Command puzzlebook solves and explains the multiples puzzle from the
// command line, an interactive REPL, a terminal dashboard or an HTTP API.
package main

import (
	"context"
	"os"

	"github.com/agbru/puzzlebook/internal/app"
	apperrors "github.com/agbru/puzzlebook/internal/errors"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if app.HasVersionFlag(args[1:]) {
		app.PrintVersion(os.Stdout)
		return apperrors.ExitSuccess
	}

	a, err := app.New(args, os.Stderr)
	switch {
	case app.IsHelpError(err):
		return apperrors.ExitSuccess
	case err != nil:
		return apperrors.ExitErrorConfig
	}
	return a.Run(context.Background(), os.Stdout)
}
