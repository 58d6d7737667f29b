// Command rnafold predicts RNA secondary structure with the Nussinov
// algorithm.
package main

import (
	"context"
	"os"

	"github.com/agbru/rnafold/internal/app"
	apperrors "github.com/agbru/rnafold/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitErrorConfig)
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
