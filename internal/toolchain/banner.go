package toolchain

import (
	"regexp"
	"strings"
)

// Banner is the result of parsing a compiler's "--version" output.
type Banner struct {
	Compiler CompilerID
	Version  string // empty if the banner names the compiler but no version
}

var bannerVersion = regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+`)

// ParseBanner recognizes clang version banners.
//
// Grammar: the first line containing the token "clang" (case-sensitive)
// identifies clang. Its version is the MAJOR.MINOR.PATCH token directly after
// the first "version " on that line, e.g.
//
//	clang version 17.0.6
//	Apple clang version 15.0.0 (clang-1500.3.9.4)
//	Ubuntu clang version 14.0.0-1ubuntu1.1
//
// Any other banner yields CompilerUnknown; gcc is detected with
// -dumpfullversion instead since its banner varies per distribution.
func ParseBanner(text string) Banner {
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, "clang") {
			continue
		}
		b := Banner{Compiler: CompilerClang}
		if i := strings.Index(line, "version "); i >= 0 {
			b.Version = bannerVersion.FindString(line[i+len("version "):])
		}
		return b
	}
	return Banner{Compiler: CompilerUnknown}
}
