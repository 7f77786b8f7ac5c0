// Package invoke runs a composed compiler invocation.
package invoke

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	"github.com/orcac/orcatool/internal/env"
	"github.com/orcac/orcatool/internal/flags"
)

// CompileError reports a compiler that exited unsuccessfully.
type CompileError struct {
	Status int // exit status of the compiler
	Err    error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compilation failed with exit status %d", e.Status)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Options control how the invocation is reported.
type Options struct {
	Verbose bool // echo the command line before running it
	Stats   bool // time the build and measure the artifact
}

// Result describes one finished build.
type Result struct {
	ExitStatus int
	Output     string // path of the artifact

	// Elapsed and Size are set only when Stats was requested.
	Stats   bool
	Elapsed time.Duration
	Size    int64
}

// Executor runs the compiler for a FlagSet.
type Executor struct {
	Compiler string
	Runner   Runner
	Log      *zap.Logger

	Stdout io.Writer // compiler output and stats
	Stderr io.Writer // compiler diagnostics and the verbose echo

	now func() time.Time
}

// New returns an Executor that runs cc with os/exec and the process's
// standard streams.
func New(cc string, log *zap.Logger) *Executor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Executor{
		Compiler: cc,
		Runner:   ExecRunner{},
		Log:      log,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// Args returns the compiler arguments for fs writing to output. Libraries
// come last so the linker resolves them after every object that uses them.
func Args(fs *flags.FlagSet, output string) []string {
	args := fs.CompileFlags()
	args = append(args, "-o", output)
	args = append(args, fs.Sources...)
	args = append(args, fs.LibraryFlags()...)
	return args
}

// CommandLine returns the shell-quoted command that Execute would run.
func (e *Executor) CommandLine(fs *flags.FlagSet, output string) string {
	return shellquote.Join(append([]string{e.Compiler}, Args(fs, output)...)...)
}

// Execute builds fs into root/configName/fs.Output. Both directories must be
// directories or absent before the compiler starts.
func (e *Executor) Execute(ctx context.Context, fs *flags.FlagSet, root, configName string, opts Options) (*Result, error) {
	if err := env.EnsureDir(root); err != nil {
		return nil, err
	}
	if err := env.EnsureDir(env.OutputDir(root, configName)); err != nil {
		return nil, err
	}
	output := env.ArtifactPath(root, configName, fs.Output)

	for _, note := range fs.Notes {
		e.Log.Warn(note)
	}
	if opts.Verbose {
		fmt.Fprintln(e.Stderr, e.CommandLine(fs, output))
	}

	start := e.clock()
	err := e.Runner.Run(ctx, e.Compiler, Args(fs, output), e.Stdout, e.Stderr)
	elapsed := e.clock().Sub(start)
	if err != nil {
		// *exec.ExitError carries the status.
		var exited interface{ ExitCode() int }
		if errors.As(err, &exited) {
			return nil, &CompileError{Status: exited.ExitCode(), Err: err}
		}
		return nil, fmt.Errorf("failed to run %s: %w", e.Compiler, err)
	}

	res := &Result{Output: output}
	if !opts.Stats {
		return res, nil
	}
	info, err := os.Stat(output)
	if err != nil {
		return nil, fmt.Errorf("failed to measure %s: %w", output, err)
	}
	res.Stats = true
	res.Elapsed = elapsed
	res.Size = info.Size()
	e.printStats(res)
	return res, nil
}

func (e *Executor) printStats(res *Result) {
	fmt.Fprintf(e.Stdout, "time: %.3fs\n", res.Elapsed.Seconds())
	fmt.Fprintf(e.Stdout, "size: %d bytes (%s)\n", res.Size, humanize.IBytes(uint64(res.Size)))
}

func (e *Executor) clock() time.Time {
	if e.now != nil {
		return e.now()
	}
	return time.Now()
}
