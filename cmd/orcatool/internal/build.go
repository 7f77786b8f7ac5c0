package internal

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/orcac/orcatool/internal/flags"
	"github.com/orcac/orcatool/internal/invoke"
)

func (a *app) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <config> <target>",
		Short: "Compile orca",
		Long: `Build compiles orca in one compiler invocation.

Configs: debug, release
Targets: orca (alias cli), tui
Output:  build/<config>/<target>`,
		Args: cobra.ExactArgs(2),
		RunE: a.runBuild,
	}
}

func (a *app) runBuild(cmd *cobra.Command, args []string) error {
	req, err := a.buildRequest(args)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	rc, err := a.prepare()
	if err != nil {
		return err
	}
	defer rc.log.Sync()

	// Config file feature defaults apply unless a flag says otherwise.
	if !a.flags.noPortMidi && rc.cfg.PortMidi {
		req.Options.PortMidi = true
	}
	if !a.flags.mouse && !rc.cfg.MouseEnabled() {
		req.Options.NoMouse = true
	}

	ctx := cmd.Context()
	info := a.detect(ctx, rc)

	fs, err := flags.Compose(info, req)
	if err != nil {
		return err
	}
	for _, rule := range flags.Matching(flags.FactsFor(info, req)) {
		rc.log.Debug("applying build rule", zap.String("rule", rule.Name))
	}

	exe := invoke.New(rc.compiler, rc.log)
	exe.Runner = a.runner
	exe.Stdout = a.stdout
	exe.Stderr = a.stderr
	res, err := exe.Execute(ctx, fs, rc.root, string(req.Config), invoke.Options{
		Verbose: req.Options.Verbose,
		Stats:   req.Options.Stats,
	})
	if err != nil {
		return fmt.Errorf("failed to build %s %s: %w", req.Config, req.Target, err)
	}
	rc.log.Debug("build finished", zap.String("output", res.Output))
	return nil
}

// buildRequest validates the positional arguments and folds in the flags.
func (a *app) buildRequest(args []string) (flags.Request, error) {
	cfg, err := flags.ParseConfig(args[0])
	if err != nil {
		return flags.Request{}, err
	}
	target, err := flags.ParseTarget(args[1])
	if err != nil {
		return flags.Request{}, err
	}
	return flags.Request{
		Config: cfg,
		Target: target,
		Options: flags.Options{
			Verbose:     a.flags.verbose,
			Protections: a.flags.protections,
			PIE:         a.flags.pie,
			Stats:       a.flags.stats,
			Compiler:    a.flags.compiler,
			PortMidi:    a.flags.portMidi,
			NoMouse:     a.flags.noMouse,
		},
	}, nil
}
