//go:build unix

package toolchain

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// UnameSysname returns the kernel name, as printed by "uname -s".
func UnameSysname() string {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return runtime.GOOS
	}
	return unix.ByteSliceToString(u.Sysname[:])
}
