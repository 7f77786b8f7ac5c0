package toolchain

import "strings"

// NormalizeOS maps a kernel name such as the output of "uname -s" to an
// OSFamily. The second result is false for families the build has not been
// verified on.
func NormalizeOS(raw string) (OSFamily, bool) {
	s := strings.ToLower(raw)
	switch {
	case strings.Contains(s, "linux"):
		return OSLinux, true
	case strings.Contains(s, "darwin"):
		return OSMac, true
	case strings.Contains(s, "cygwin"):
		return OSCygwin, true
	case strings.Contains(s, "bsd"):
		return OSBSD, false
	}
	return OSUnknown, false
}
