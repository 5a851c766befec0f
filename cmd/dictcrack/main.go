// ABOUTME: Main entry point for the dictcrack CLI
// ABOUTME: Builds the cobra root command, executes it and maps outcomes to exit codes

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// Version information (set by ldflags).
var (
	version   = "dev"
	gitSHA    = "unknown"
	buildTime = "unknown"
)

// Process exit codes.
const (
	exitFound        = 0
	exitNotFound     = 1
	exitInvalidInput = 2
	exitSourceError  = 3
	exitCancelled    = 130
)

// exitError carries a process exit code out of a command. Silent errors have
// already been reported to the user.
type exitError struct {
	code   int
	err    error
	silent bool
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin}
	defer a.close()

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitFound
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if !ee.silent {
			fmt.Fprintf(stderr, "Error: %v\n", ee)
		}
		return ee.code
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitInvalidInput
}
