// Package toolchain detects the compiler, linker and operating system used
// to build orca.
package toolchain

import "golang.org/x/mod/semver"

// OSFamily is the normalized operating system the build runs on.
type OSFamily string

const (
	OSLinux   OSFamily = "linux"
	OSMac     OSFamily = "mac"
	OSCygwin  OSFamily = "cygwin"
	OSBSD     OSFamily = "bsd"
	OSUnknown OSFamily = "unknown"
)

// CompilerID identifies the compiler family.
type CompilerID string

const (
	CompilerClang   CompilerID = "clang"
	CompilerGCC     CompilerID = "gcc"
	CompilerUnknown CompilerID = "unknown"
)

// Linker is the linker the compiler driver will be told to use.
type Linker string

const (
	LinkerDefault Linker = "default"
	// LinkerLLD is the alternate fast linker. It needs -Wl,-z,notext instead
	// of -Wl,-pie for PIE builds.
	LinkerLLD Linker = "lld"
)

// Info holds the detected facts about the build environment. It is computed
// once per run and only read afterwards.
type Info struct {
	OS           OSFamily
	CompilerPath string
	Compiler     CompilerID
	Version      string
	Linker       Linker

	// Warnings lists every non-fatal detection problem in the order it was found.
	Warnings []string
}

// Semver returns the compiler version in canonical "vMAJOR.MINOR.PATCH" form,
// or "" if the detected version is not semver-shaped.
func (i Info) Semver() string {
	if i.Version == "" {
		return ""
	}
	return semver.Canonical("v" + i.Version)
}

// AltLinker reports whether the alternate fast linker is in use.
func (i Info) AltLinker() bool {
	return i.Linker == LinkerLLD
}
