package toolchain

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"
)

// AltLinkerExecutable is the alternate fast linker looked up on PATH.
const AltLinkerExecutable = "ld.lld"

// Detector probes the build environment.
type Detector struct {
	Prober Prober
	Log    *zap.Logger
}

// NewDetector returns a Detector using the real toolchain. A nil logger
// discards warnings; they are still recorded in Info.Warnings.
func NewDetector(log *zap.Logger) *Detector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Detector{Prober: ExecProber{}, Log: log}
}

// Detect never fails: every step that goes wrong leaves its field at the
// unknown or empty value and records a warning.
func (d *Detector) Detect(ctx context.Context, compilerPath, osRaw string) Info {
	info := Info{
		CompilerPath: compilerPath,
		Compiler:     CompilerUnknown,
		Linker:       LinkerDefault,
	}

	family, verified := NormalizeOS(osRaw)
	info.OS = family
	if !verified {
		d.warn(&info, fmt.Sprintf("build has not been verified on this platform (%q)", osRaw), zap.String("os", osRaw))
	}

	d.detectCompiler(ctx, &info)

	if info.Compiler == CompilerUnknown {
		d.warn(&info, "failed to detect compiler type", zap.String("cc", compilerPath))
	}
	if info.Version == "" {
		d.warn(&info, "failed to detect compiler version", zap.String("cc", compilerPath))
	}

	// lld is not supported by the macOS toolchain.
	if info.OS != OSMac {
		if _, err := d.Prober.LookPath(AltLinkerExecutable); err == nil {
			info.Linker = LinkerLLD
		}
	}

	d.Log.Debug("detected toolchain",
		zap.String("os", string(info.OS)),
		zap.String("cc", info.CompilerPath),
		zap.String("compiler", string(info.Compiler)),
		zap.String("version", info.Version),
		zap.String("linker", string(info.Linker)))
	return info
}

func (d *Detector) detectCompiler(ctx context.Context, info *Info) {
	if banner, err := d.Prober.VersionBanner(ctx, info.CompilerPath); err == nil {
		if b := ParseBanner(banner); b.Compiler == CompilerClang {
			info.Compiler = CompilerClang
			info.Version = b.Version
			return
		}
	} else {
		d.Log.Debug("version banner query failed", zap.Error(err))
	}

	full, err := d.Prober.FullVersion(ctx, info.CompilerPath)
	if err != nil || full == "" {
		d.Log.Debug("full version query failed", zap.Error(err))
		return
	}
	info.Compiler = CompilerGCC
	info.Version = full
	if !semver.IsValid("v" + full) {
		d.warn(info, fmt.Sprintf("unrecognized compiler version %q", full), zap.String("version", full))
	}
}

func (d *Detector) warn(info *Info, msg string, fields ...zap.Field) {
	info.Warnings = append(info.Warnings, msg)
	d.Log.Warn(msg, fields...)
}
