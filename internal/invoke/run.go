package invoke

import (
	"context"
	"io"
	"os/exec"
)

// Runner starts a process and waits for it to exit.
type Runner interface {
	Run(ctx context.Context, bin string, args []string, stdout, stderr io.Writer) error
}

// ExecRunner runs processes with os/exec, passing output straight through.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, bin string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}
