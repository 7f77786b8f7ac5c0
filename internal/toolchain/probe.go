package toolchain

import (
	"context"
	"os/exec"
	"strings"
)

// Prober runs the read-only queries detection needs.
type Prober interface {
	// VersionBanner returns the output of "<cc> --version".
	VersionBanner(ctx context.Context, cc string) (string, error)
	// FullVersion returns the output of "<cc> -dumpfullversion".
	FullVersion(ctx context.Context, cc string) (string, error)
	// LookPath reports the location of an executable on PATH.
	LookPath(name string) (string, error)
}

// ExecProber probes the real toolchain with os/exec.
type ExecProber struct{}

var _ Prober = ExecProber{}

func (ExecProber) VersionBanner(ctx context.Context, cc string) (string, error) {
	return output(ctx, cc, "--version")
}

func (ExecProber) FullVersion(ctx context.Context, cc string) (string, error) {
	return output(ctx, cc, "-dumpfullversion")
}

func (ExecProber) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func output(ctx context.Context, bin string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, bin, args...).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
