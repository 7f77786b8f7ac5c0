package flags

import "slices"

// FlagSet is a fully composed compiler invocation, minus the compiler
// executable and output directory.
type FlagSet struct {
	Standard     string   // -std=...
	Pipe         bool     // -pipe
	Warnings     []string // -W...
	Errors       []string // warnings promoted to errors, -Werror=...
	LinkerSelect string   // -fuse-ld=...
	Defines      []string // NAME or NAME=VALUE, without -D
	DebugInfo    string   // -g...
	Optimization string   // -O...
	Sanitizers   []string // names for -fsanitize=
	CodeGen      []string // code generation switches applied after warnings
	LinkerFlags  []string // -Wl,...
	Libraries    []string // names for -l
	Sources      []string
	Output       string

	// Notes are advisory warnings about the composed build.
	Notes []string
}

// CompileFlags serializes every flag that precedes the output path.
// CodeGen comes after the warning set so that switches such as
// -fno-stack-protector override compiler defaults.
func (f *FlagSet) CompileFlags() []string {
	var args []string
	if f.Standard != "" {
		args = append(args, f.Standard)
	}
	if f.Pipe {
		args = append(args, "-pipe")
	}
	args = append(args, f.Warnings...)
	args = append(args, f.Errors...)
	if f.LinkerSelect != "" {
		args = append(args, f.LinkerSelect)
	}
	for _, d := range f.Defines {
		args = append(args, "-D"+d)
	}
	if f.DebugInfo != "" {
		args = append(args, f.DebugInfo)
	}
	if f.Optimization != "" {
		args = append(args, f.Optimization)
	}
	for _, s := range f.Sanitizers {
		args = append(args, "-fsanitize="+s)
	}
	args = append(args, f.CodeGen...)
	args = append(args, f.LinkerFlags...)
	return args
}

// LibraryFlags serializes the libraries to link against as -l flags.
func (f *FlagSet) LibraryFlags() []string {
	args := make([]string, 0, len(f.Libraries))
	for _, l := range f.Libraries {
		args = append(args, "-l"+l)
	}
	return args
}

// Has reports whether arg appears in the serialized compile or library flags.
func (f *FlagSet) Has(arg string) bool {
	return slices.Contains(f.CompileFlags(), arg) || slices.Contains(f.LibraryFlags(), arg)
}

// merge applies a delta: list fields append, scalar fields override when set.
func (f *FlagSet) merge(d *FlagSet) {
	if d.Standard != "" {
		f.Standard = d.Standard
	}
	f.Pipe = f.Pipe || d.Pipe
	f.Warnings = append(f.Warnings, d.Warnings...)
	f.Errors = append(f.Errors, d.Errors...)
	if d.LinkerSelect != "" {
		f.LinkerSelect = d.LinkerSelect
	}
	f.Defines = append(f.Defines, d.Defines...)
	if d.DebugInfo != "" {
		f.DebugInfo = d.DebugInfo
	}
	if d.Optimization != "" {
		f.Optimization = d.Optimization
	}
	f.Sanitizers = append(f.Sanitizers, d.Sanitizers...)
	f.CodeGen = append(f.CodeGen, d.CodeGen...)
	f.LinkerFlags = append(f.LinkerFlags, d.LinkerFlags...)
	f.Libraries = append(f.Libraries, d.Libraries...)
	f.Sources = append(f.Sources, d.Sources...)
	if d.Output != "" {
		f.Output = d.Output
	}
	f.Notes = append(f.Notes, d.Notes...)
}
