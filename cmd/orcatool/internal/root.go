package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/orcac/orcatool/internal/config"
	"github.com/orcac/orcatool/internal/invoke"
	"github.com/orcac/orcatool/internal/logging"
	"github.com/orcac/orcatool/internal/toolchain"
)

// globalFlags are accepted before or after any command.
type globalFlags struct {
	verbose     bool
	compiler    string
	protections bool
	pie         bool
	stats       bool
	configFile  string
	buildDir    string
	portMidi    bool
	noPortMidi  bool
	mouse       bool
	noMouse     bool
}

// app holds the process boundary: streams and the probes that touch the
// real system. Tests swap them out.
type app struct {
	flags  globalFlags
	stdout io.Writer
	stderr io.Writer

	uname  func() string
	prober toolchain.Prober
	runner invoke.Runner
}

func newApp() *app {
	return &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
		uname:  toolchain.UnameSysname,
		prober: toolchain.ExecProber{},
		runner: invoke.ExecRunner{},
	}
}

// runContext is everything one command needs, resolved once from flags,
// the environment and the config file.
type runContext struct {
	cfg      *config.Config
	log      *zap.Logger
	compiler string
	root     string
}

func (a *app) newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "orcatool",
		Short: "orcatool builds orca",
		Long: `orcatool builds the orca livecoding environment and its headless CLI.

Artifacts are written to build/<config>/<target>.`,
		SilenceErrors: true,
	}
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	f := rootCmd.PersistentFlags()
	f.BoolVarP(&a.flags.verbose, "verbose", "v", false, "Print important commands as they are executed")
	f.StringVarP(&a.flags.compiler, "cc", "c", "", "C compiler executable (default: $CC, else cc)")
	f.BoolVarP(&a.flags.protections, "protections", "d", false, "Enable fortify and stack protector hardening")
	f.BoolVarP(&a.flags.pie, "pie", "p", false, "Build a position-independent executable")
	f.BoolVarP(&a.flags.stats, "stats", "s", false, "Print compile time and binary size")
	f.StringVar(&a.flags.configFile, "config", "", "config file (default is ./"+config.DefaultFile+" if present)")
	f.StringVar(&a.flags.buildDir, "build-dir", "", "build output root (default is build)")
	f.BoolVar(&a.flags.portMidi, "portmidi", false, "Enable hardware MIDI output with PortMidi (tui)")
	f.BoolVar(&a.flags.noPortMidi, "no-portmidi", false, "Disable PortMidi support (default)")
	f.BoolVar(&a.flags.mouse, "mouse", false, "Enable mouse support in the livecoding environment (default)")
	f.BoolVar(&a.flags.noMouse, "no-mouse", false, "Disable mouse support (tui)")
	rootCmd.MarkFlagsMutuallyExclusive("portmidi", "no-portmidi")
	rootCmd.MarkFlagsMutuallyExclusive("mouse", "no-mouse")

	rootCmd.AddCommand(a.newBuildCmd(), a.newCleanCmd(), a.newInfoCmd())
	return rootCmd
}

// prepare resolves the run context. It performs no filesystem writes.
func (a *app) prepare() (*runContext, error) {
	cfg, err := config.Load(a.flags.configFile)
	if err != nil {
		return nil, err
	}
	root := cfg.BuildDir
	if a.flags.buildDir != "" {
		root = a.flags.buildDir
	}
	return &runContext{
		cfg:      cfg,
		log:      logging.New(a.stderr, a.flags.verbose),
		compiler: cfg.Compiler(a.flags.compiler),
		root:     root,
	}, nil
}

func (a *app) detect(ctx context.Context, rc *runContext) toolchain.Info {
	d := toolchain.NewDetector(rc.log)
	d.Prober = a.prober
	return d.Detect(ctx, rc.compiler, a.uname())
}

func (a *app) execute(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := a.newRootCmd()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	a := newApp()
	err := a.execute(os.Args[1:])
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
	}
	return ExitCode(err)
}

// ExitCode maps an error to the process exit status. A failed compile exits
// with the compiler's own status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ce *invoke.CompileError
	if errors.As(err, &ce) && ce.Status > 0 {
		return ce.Status
	}
	return 1
}
