package flags

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/orcac/orcatool/internal/toolchain"
)

var (
	linuxClang = toolchain.Info{OS: toolchain.OSLinux, Compiler: toolchain.CompilerClang, Version: "17.0.6", Linker: toolchain.LinkerDefault}
	linuxLLD   = toolchain.Info{OS: toolchain.OSLinux, Compiler: toolchain.CompilerClang, Version: "17.0.6", Linker: toolchain.LinkerLLD}
	macClang   = toolchain.Info{OS: toolchain.OSMac, Compiler: toolchain.CompilerClang, Version: "15.0.0", Linker: toolchain.LinkerDefault}
	bsdGCC     = toolchain.Info{OS: toolchain.OSBSD, Compiler: toolchain.CompilerGCC, Version: "12.2.0", Linker: toolchain.LinkerLLD}
)

var (
	allInfos   = []toolchain.Info{linuxClang, linuxLLD, macClang, bsdGCC}
	allConfigs = []Config{Debug, Release}
	allTargets = []Target{Orca, TUI}
)

// allOptions enumerates every combination of the switches that affect flags.
func allOptions() []Options {
	var opts []Options
	for i := 0; i < 1<<4; i++ {
		opts = append(opts, Options{
			Protections: i&1 != 0,
			PIE:         i&2 != 0,
			PortMidi:    i&4 != 0,
			NoMouse:     i&8 != 0,
		})
	}
	return opts
}

// forEachRequest calls fn for every valid request on every test toolchain.
func forEachRequest(t *testing.T, fn func(t *testing.T, info toolchain.Info, req Request, fs *FlagSet)) {
	t.Helper()
	for _, info := range allInfos {
		for _, c := range allConfigs {
			for _, tg := range allTargets {
				for _, o := range allOptions() {
					req := Request{Config: c, Target: tg, Options: o}
					fs, err := Compose(info, req)
					if err != nil {
						t.Fatalf("Compose(%+v, %+v): %v", info, req, err)
					}
					fn(t, info, req, fs)
				}
			}
		}
	}
}

func mustCompose(t *testing.T, info toolchain.Info, req Request) *FlagSet {
	t.Helper()
	fs, err := Compose(info, req)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	return fs
}

func TestComposeDeterministic(t *testing.T) {
	forEachRequest(t, func(t *testing.T, info toolchain.Info, req Request, fs *FlagSet) {
		again := mustCompose(t, info, req)
		if diff := cmp.Diff(fs, again); diff != "" {
			t.Errorf("Compose(%+v) not deterministic (-first +second):\n%s", req, diff)
		}
	})
}

func TestComposeDoesNotAliasPolicy(t *testing.T) {
	fs := mustCompose(t, linuxClang, Request{Config: Debug, Target: TUI})
	fs.Sources[0] = "changed.c"
	fs.Warnings[0] = "-Wchanged"
	again := mustCompose(t, linuxClang, Request{Config: Debug, Target: TUI})
	if again.Sources[0] != "gbuffer.c" || again.Warnings[0] != "-finput-charset=UTF-8" {
		t.Fatalf("mutating a FlagSet changed the policy: sources %q, warnings %q", again.Sources, again.Warnings)
	}
}

func TestSanitizersOnlyInDebug(t *testing.T) {
	forEachRequest(t, func(t *testing.T, info toolchain.Info, req Request, fs *FlagSet) {
		asan := fs.Has("-fsanitize=address") && fs.Has("-fsanitize=undefined")
		switch req.Config {
		case Debug:
			if !asan {
				t.Errorf("%+v: debug build without sanitizers", req)
			}
			if fs.Has("-O2") {
				t.Errorf("%+v: debug build with release optimization", req)
			}
		case Release:
			if len(fs.Sanitizers) != 0 {
				t.Errorf("%+v: release build with sanitizers %q", req, fs.Sanitizers)
			}
		}
	})
}

func TestPIELinkerFlagsExclusive(t *testing.T) {
	forEachRequest(t, func(t *testing.T, info toolchain.Info, req Request, fs *FlagSet) {
		notext, pieLink := fs.Has("-Wl,-z,notext"), fs.Has("-Wl,-pie")
		if notext && pieLink {
			t.Fatalf("%+v on %s: both PIE linker flags present", req, info.Linker)
		}
		if !req.Options.PIE {
			if notext || pieLink || fs.Has("-fpie") {
				t.Errorf("%+v: PIE flags without -p", req)
			}
			return
		}
		if !fs.Has("-fpie") {
			t.Errorf("%+v: missing -fpie", req)
		}
		if info.AltLinker() && !notext {
			t.Errorf("%+v with lld: missing -Wl,-z,notext", req)
		}
		if !info.AltLinker() && !pieLink {
			t.Errorf("%+v with default linker: missing -Wl,-pie", req)
		}
	})
}

func TestStackProtectorDisabledOnlyInRelease(t *testing.T) {
	forEachRequest(t, func(t *testing.T, info toolchain.Info, req Request, fs *FlagSet) {
		disabled := fs.Has("-fno-stack-protector")
		want := req.Config == Release && !req.Options.Protections
		if disabled != want {
			t.Errorf("%+v: -fno-stack-protector = %v, want %v", req, disabled, want)
		}
		if req.Options.Protections != (fs.Has("-fstack-protector-strong") && fs.Has("-D_FORTIFY_SOURCE=2")) {
			t.Errorf("%+v: hardening flags do not follow -d", req)
		}
	})
}

func TestStackProtectorFollowsWarnings(t *testing.T) {
	args := mustCompose(t, linuxClang, Request{Config: Release, Target: Orca}).CompileFlags()
	nsp := slices.Index(args, "-fno-stack-protector")
	wall := slices.Index(args, "-Wall")
	if nsp < 0 || wall < 0 || nsp < wall {
		t.Errorf("-fno-stack-protector at %d, -Wall at %d in %q", nsp, wall, args)
	}
}

func TestTUICurses(t *testing.T) {
	forEachRequest(t, func(t *testing.T, info toolchain.Info, req Request, fs *FlagSet) {
		if req.Target != TUI {
			if fs.Has("-D_XOPEN_SOURCE_EXTENDED=1") || len(fs.Libraries) != 0 {
				t.Errorf("%+v: orca build has tui flags %q %q", req, fs.Defines, fs.Libraries)
			}
			return
		}
		want := "ncursesw"
		if info.OS == toolchain.OSMac {
			want = "ncurses"
		}
		if fs.Libraries[0] != want {
			t.Errorf("%+v on %s: curses library %q, want %q", req, info.OS, fs.Libraries[0], want)
		}
		if !fs.Has("-D_XOPEN_SOURCE_EXTENDED=1") {
			t.Errorf("%+v: missing extended charset macro", req)
		}
	})
}

func TestCoreSourcesFirst(t *testing.T) {
	forEachRequest(t, func(t *testing.T, info toolchain.Info, req Request, fs *FlagSet) {
		if !slices.Equal(fs.Sources[:len(coreSources)], coreSources) {
			t.Errorf("%+v: sources %q do not start with core %q", req, fs.Sources, coreSources)
		}
		entry := fs.Sources[len(fs.Sources)-1]
		if want := map[Target]string{Orca: "cli_main.c", TUI: "tui_main.c"}[req.Target]; entry != want {
			t.Errorf("%+v: entry point %q, want %q", req, entry, want)
		}
		if fs.Output != string(req.Target) {
			t.Errorf("%+v: output %q", req, fs.Output)
		}
	})
}

// Release builds on mac are not stripped or LTO'd. This is a known gap.
func TestMacReleaseNotStripped(t *testing.T) {
	for _, tg := range allTargets {
		fs := mustCompose(t, macClang, Request{Config: Release, Target: tg})
		if fs.Has("-s") || fs.Has("-flto") {
			t.Errorf("mac release %s: got strip/lto in %q", tg, fs.CodeGen)
		}
		fs = mustCompose(t, linuxClang, Request{Config: Release, Target: tg})
		if !fs.Has("-s") || !fs.Has("-flto") {
			t.Errorf("linux release %s: missing strip/lto in %q", tg, fs.CodeGen)
		}
	}
}

func TestDebugOptimization(t *testing.T) {
	if got := mustCompose(t, macClang, Request{Config: Debug, Target: Orca}).Optimization; got != "-O1" {
		t.Errorf("mac debug optimization = %q, want -O1", got)
	}
	if got := mustCompose(t, linuxClang, Request{Config: Debug, Target: Orca}).Optimization; got != "-Og" {
		t.Errorf("linux debug optimization = %q, want -Og", got)
	}
}

func TestAltLinkerSelected(t *testing.T) {
	if fs := mustCompose(t, linuxLLD, Request{Config: Debug, Target: Orca}); fs.LinkerSelect != "-fuse-ld=lld" {
		t.Errorf("LinkerSelect = %q, want -fuse-ld=lld", fs.LinkerSelect)
	}
	if fs := mustCompose(t, linuxClang, Request{Config: Debug, Target: Orca}); fs.LinkerSelect != "" {
		t.Errorf("LinkerSelect = %q, want none", fs.LinkerSelect)
	}
}

func TestOptionalFeatures(t *testing.T) {
	opts := Options{PortMidi: true, NoMouse: true}

	fs := mustCompose(t, linuxClang, Request{Config: Debug, Target: TUI, Options: opts})
	if diff := cmp.Diff([]string{"ncursesw", "portmidi"}, fs.Libraries); diff != "" {
		t.Errorf("Libraries mismatch (-want +got):\n%s", diff)
	}
	if !fs.Has("-DFEAT_PORTMIDI") || !fs.Has("-DFEAT_NOMOUSE") {
		t.Errorf("Defines = %q, want FEAT_PORTMIDI and FEAT_NOMOUSE", fs.Defines)
	}
	if len(fs.Notes) != 1 {
		t.Errorf("Notes = %q, want the sanitizer note", fs.Notes)
	}

	fs = mustCompose(t, linuxClang, Request{Config: Release, Target: TUI, Options: opts})
	if len(fs.Notes) != 0 {
		t.Errorf("release Notes = %q, want none", fs.Notes)
	}

	fs = mustCompose(t, linuxClang, Request{Config: Debug, Target: Orca, Options: opts})
	if fs.Has("-DFEAT_PORTMIDI") || fs.Has("-DFEAT_NOMOUSE") || len(fs.Libraries) != 0 {
		t.Errorf("orca build picked up tui features: %q %q", fs.Defines, fs.Libraries)
	}
}

func TestComposeDebugOrcaLinux(t *testing.T) {
	fs := mustCompose(t, linuxClang, Request{Config: Debug, Target: Orca})
	want := []string{
		"-std=c99", "-pipe",
		"-finput-charset=UTF-8",
		"-Wall", "-Wpedantic", "-Wextra", "-Wwrite-strings",
		"-Wconversion", "-Wshadow", "-Wstrict-prototypes",
		"-Werror=implicit-function-declaration",
		"-Werror=implicit-int",
		"-Werror=incompatible-pointer-types",
		"-Werror=int-conversion",
		"-DDEBUG", "-ggdb", "-Og",
		"-fsanitize=address", "-fsanitize=undefined",
	}
	if diff := cmp.Diff(want, fs.CompileFlags()); diff != "" {
		t.Errorf("CompileFlags mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"gbuffer.c", "field.c", "vmio.c", "sim.c", "cli_main.c"}, fs.Sources); diff != "" {
		t.Errorf("Sources mismatch (-want +got):\n%s", diff)
	}
	if len(fs.LibraryFlags()) != 0 {
		t.Errorf("LibraryFlags = %q, want none", fs.LibraryFlags())
	}
	if fs.Output != "orca" {
		t.Errorf("Output = %q, want orca", fs.Output)
	}
}

func TestComposeReleaseTUIMacPIE(t *testing.T) {
	fs := mustCompose(t, macClang, Request{Config: Release, Target: TUI, Options: Options{PIE: true}})
	for _, arg := range []string{"-DNDEBUG", "-O2", "-g0", "-fno-stack-protector", "-fpie", "-Wl,-pie", "-D_XOPEN_SOURCE_EXTENDED=1", "-lncurses"} {
		if !fs.Has(arg) {
			t.Errorf("missing %s in %q %q", arg, fs.CompileFlags(), fs.LibraryFlags())
		}
	}
	for _, arg := range []string{"-ggdb", "-Wl,-z,notext", "-lncursesw", "-s", "-flto"} {
		if fs.Has(arg) {
			t.Errorf("unexpected %s in %q %q", arg, fs.CompileFlags(), fs.LibraryFlags())
		}
	}
	if fs.Output != "tui" {
		t.Errorf("Output = %q, want tui", fs.Output)
	}
}

func TestComposeRejectsInvalid(t *testing.T) {
	if _, err := Compose(linuxClang, Request{Config: "profile", Target: Orca}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Compose(profile) err = %v, want ErrInvalidConfig", err)
	}
	if _, err := Compose(linuxClang, Request{Config: Debug, Target: "cli"}); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("Compose(cli) err = %v, want ErrInvalidTarget; the alias is resolved by ParseTarget", err)
	}
}

func TestParse(t *testing.T) {
	for in, want := range map[string]Target{"orca": Orca, "cli": Orca, "tui": TUI} {
		if got, err := ParseTarget(in); err != nil || got != want {
			t.Errorf("ParseTarget(%q) = %q, %v, want %q", in, got, err, want)
		}
	}
	if _, err := ParseTarget("gui"); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("ParseTarget(gui) err = %v, want ErrInvalidTarget", err)
	}
	for _, in := range []string{"debug", "release"} {
		if got, err := ParseConfig(in); err != nil || string(got) != in {
			t.Errorf("ParseConfig(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseConfig("Debug"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ParseConfig(Debug) err = %v, want ErrInvalidConfig", err)
	}
}

func TestPolicyRuleNamesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range Policy {
		if seen[r.Name] {
			t.Errorf("duplicate rule %q", r.Name)
		}
		seen[r.Name] = true
	}
}
