// Command mermaider saves and lists diagram snippets from the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	_ "time/tzdata"

	"github.com/containerd/errdefs"
)

const (
	exitOK = iota
	exitError
	exitInvalidArgument
	exitNotFound
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute runs the command line and returns the process exit code.
func execute(args []string, in io.Reader, out, errOut io.Writer) int {
	return executeContext(context.Background(), args, in, out, errOut)
}

// executeContext is execute with a caller-supplied context; long-running
// commands such as watch return when ctx is done.
func executeContext(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	c := &cli{in: in, out: out}
	defer c.teardown()

	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetErr(errOut)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return exitCode(err)
	}
	return exitOK
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errdefs.IsNotFound(err):
		return exitNotFound
	case errdefs.IsInvalidArgument(err), errors.Is(err, errUsage):
		return exitInvalidArgument
	default:
		return exitError
	}
}
