// Package flags composes the compiler invocation for one orca build.
package flags

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates a build configuration other than debug or release.
	ErrInvalidConfig = errors.New("invalid build config")

	// ErrInvalidTarget indicates a build target other than orca, cli or tui.
	ErrInvalidTarget = errors.New("invalid build target")
)

// Config is the build configuration.
type Config string

const (
	Debug   Config = "debug"
	Release Config = "release"
)

// ParseConfig validates a configuration name.
func ParseConfig(s string) (Config, error) {
	switch c := Config(s); c {
	case Debug, Release:
		return c, nil
	}
	return "", fmt.Errorf("%w %q: must be debug or release", ErrInvalidConfig, s)
}

func (c Config) valid() bool {
	return c == Debug || c == Release
}

// Target is the front-end being built.
type Target string

const (
	// Orca is the headless command-line front-end.
	Orca Target = "orca"
	// TUI is the ncurses live-coding environment.
	TUI Target = "tui"
)

// ParseTarget validates a target name. "cli" is accepted as an alias of orca.
func ParseTarget(s string) (Target, error) {
	switch s {
	case "orca", "cli":
		return Orca, nil
	case "tui":
		return TUI, nil
	}
	return "", fmt.Errorf("%w %q: must be orca, cli or tui", ErrInvalidTarget, s)
}

func (t Target) valid() bool {
	return t == Orca || t == TUI
}

// Options are the user switches that affect a build.
type Options struct {
	Verbose     bool
	Protections bool // -d: fortify and stack protector
	PIE         bool // -p
	Stats       bool // -s
	Compiler    string

	PortMidi bool // tui only: hardware MIDI output through PortMidi
	NoMouse  bool // tui only: build without mouse support
}

// Request is the user's intent for one build.
type Request struct {
	Config  Config
	Target  Target
	Options Options
}
