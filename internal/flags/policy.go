package flags

import "github.com/orcac/orcatool/internal/toolchain"

// Facts are the inputs a policy rule may condition on.
type Facts struct {
	OS       toolchain.OSFamily
	Compiler toolchain.CompilerID
	Linker   toolchain.Linker
	Config   Config
	Target   Target
	Options  Options
}

// Rule adds Delta to the composed FlagSet whenever When holds.
type Rule struct {
	Name  string
	When  func(Facts) bool
	Delta FlagSet
}

// Source files shared by every target, in link order.
var coreSources = []string{"gbuffer.c", "field.c", "vmio.c", "sim.c"}

// Policy is the complete build policy, applied in order. Every platform
// exception appears here exactly once.
var Policy = []Rule{
	{
		Name: "baseline",
		When: always,
		Delta: FlagSet{
			Standard: "-std=c99",
			Pipe:     true,
			Warnings: []string{
				"-finput-charset=UTF-8",
				"-Wall", "-Wpedantic", "-Wextra", "-Wwrite-strings",
				"-Wconversion", "-Wshadow", "-Wstrict-prototypes",
			},
			Errors: []string{
				"-Werror=implicit-function-declaration",
				"-Werror=implicit-int",
				"-Werror=incompatible-pointer-types",
				"-Werror=int-conversion",
			},
		},
	},
	{
		Name:  "alt-linker",
		When:  altLinker,
		Delta: FlagSet{LinkerSelect: "-fuse-ld=lld"},
	},
	{
		Name: "protections",
		When: func(f Facts) bool { return f.Options.Protections },
		Delta: FlagSet{
			Defines: []string{"_FORTIFY_SOURCE=2"},
			CodeGen: []string{"-fstack-protector-strong"},
		},
	},
	{
		Name:  "pie",
		When:  pie,
		Delta: FlagSet{CodeGen: []string{"-fpie"}},
	},
	{
		// lld refuses text relocations in PIE output unless told otherwise,
		// and -Wl,-pie with lld produces a binary that crashes before main.
		Name:  "pie-link-lld",
		When:  both(pie, altLinker),
		Delta: FlagSet{LinkerFlags: []string{"-Wl,-z,notext"}},
	},
	{
		Name:  "pie-link",
		When:  both(pie, not(altLinker)),
		Delta: FlagSet{LinkerFlags: []string{"-Wl,-pie"}},
	},
	{
		Name: "debug",
		When: config(Debug),
		Delta: FlagSet{
			Defines:    []string{"DEBUG"},
			DebugInfo:  "-ggdb",
			Sanitizers: []string{"address", "undefined"},
		},
	},
	{
		// Apple clang has no -Og.
		Name:  "debug-opt-mac",
		When:  both(config(Debug), osIs(toolchain.OSMac)),
		Delta: FlagSet{Optimization: "-O1"},
	},
	{
		Name:  "debug-opt",
		When:  both(config(Debug), not(osIs(toolchain.OSMac))),
		Delta: FlagSet{Optimization: "-Og"},
	},
	{
		Name: "release",
		When: config(Release),
		Delta: FlagSet{
			Defines:      []string{"NDEBUG"},
			Optimization: "-O2",
			DebugInfo:    "-g0",
		},
	},
	{
		Name:  "release-no-protections",
		When:  both(config(Release), func(f Facts) bool { return !f.Options.Protections }),
		Delta: FlagSet{CodeGen: []string{"-fno-stack-protector"}},
	},
	{
		// Release builds on mac are neither LTO'd nor stripped. Nobody has
		// checked which strip invocation is safe there.
		Name:  "release-lto-strip",
		When:  both(config(Release), not(osIs(toolchain.OSMac))),
		Delta: FlagSet{CodeGen: []string{"-flto", "-s"}},
	},
	{
		Name:  "core-sources",
		When:  always,
		Delta: FlagSet{Sources: coreSources},
	},
	{
		Name: "orca",
		When: target(Orca),
		Delta: FlagSet{
			Sources: []string{"cli_main.c"},
			Output:  "orca",
		},
	},
	{
		Name: "tui",
		When: target(TUI),
		Delta: FlagSet{
			Defines: []string{"_XOPEN_SOURCE_EXTENDED=1"},
			Sources: []string{"osc_out.c", "term_util.c", "sysmisc.c", "thirdparty/oso.c", "tui_main.c"},
			Output:  "tui",
		},
	},
	{
		Name:  "tui-curses-mac",
		When:  both(target(TUI), osIs(toolchain.OSMac)),
		Delta: FlagSet{Libraries: []string{"ncurses"}},
	},
	{
		Name:  "tui-curses",
		When:  both(target(TUI), not(osIs(toolchain.OSMac))),
		Delta: FlagSet{Libraries: []string{"ncursesw"}},
	},
	{
		Name: "tui-portmidi",
		When: both(target(TUI), portMidi),
		Delta: FlagSet{
			Defines:   []string{"FEAT_PORTMIDI"},
			Libraries: []string{"portmidi"},
		},
	},
	{
		Name: "tui-portmidi-asan",
		When: both(target(TUI), both(portMidi, config(Debug))),
		Delta: FlagSet{
			Notes: []string{"PortMidi contains code that may trigger the address sanitizer in debug builds; these reports are not bugs in orca"},
		},
	},
	{
		Name:  "tui-nomouse",
		When:  both(target(TUI), func(f Facts) bool { return f.Options.NoMouse }),
		Delta: FlagSet{Defines: []string{"FEAT_NOMOUSE"}},
	},
}

func always(Facts) bool { return true }

func altLinker(f Facts) bool { return f.Linker == toolchain.LinkerLLD }

func pie(f Facts) bool { return f.Options.PIE }

func portMidi(f Facts) bool { return f.Options.PortMidi }

func config(c Config) func(Facts) bool {
	return func(f Facts) bool { return f.Config == c }
}

func target(t Target) func(Facts) bool {
	return func(f Facts) bool { return f.Target == t }
}

func osIs(os toolchain.OSFamily) func(Facts) bool {
	return func(f Facts) bool { return f.OS == os }
}

func both(a, b func(Facts) bool) func(Facts) bool {
	return func(f Facts) bool { return a(f) && b(f) }
}

func not(p func(Facts) bool) func(Facts) bool {
	return func(f Facts) bool { return !p(f) }
}
