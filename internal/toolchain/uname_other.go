//go:build !unix

package toolchain

import "runtime"

// UnameSysname returns runtime.GOOS on platforms without uname(2).
func UnameSysname() string {
	return runtime.GOOS
}
