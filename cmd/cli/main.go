package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/atomsim/lammpsflow/internal/app"
	"github.com/atomsim/lammpsflow/internal/cli"
	"github.com/atomsim/lammpsflow/internal/hcl"
)

// main is the entrypoint for the lammpsflow application.
func main() {
	// A missing .env file is fine; it only provides optional defaults.
	_ = godotenv.Load()

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling.
func run(outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, parseErr := cli.Parse(args, outW)
	if parseErr != nil {
		return parseErr
	}
	if shouldExit {
		return nil
	}

	// The app panics on critical startup errors (unreadable or malformed
	// specification), so recover here and hand the cause back as an error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	loader := hcl.NewLoader()
	lammpsflowApp := app.NewApp(outW, appConfig, loader)

	return lammpsflowApp.Run(context.Background())
}
