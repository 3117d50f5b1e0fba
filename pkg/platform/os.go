package platform

import "strings"

// OS is an operating-system family name.
type OS string

// Operating-system families.
const (
	Windows OS = "windows"
	Linux   OS = "linux"
	MacOS   OS = "macos"
	FreeBSD OS = "freebsd"
	Solaris OS = "solaris"
)

// ParseOS normalizes an operating-system name. Common aliases such as
// "darwin", "osx" and "win32" are accepted; unknown names are kept as-is
// since only the Windows/other distinction matters for naming.
func ParseOS(s string) OS {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "windows", "win", "win32", "win64":
		return Windows
	case "linux":
		return Linux
	case "macos", "darwin", "osx", "mac os x":
		return MacOS
	case "freebsd":
		return FreeBSD
	case "solaris", "sunos":
		return Solaris
	}
	return OS(strings.ToLower(strings.TrimSpace(s)))
}

// IsWindows reports whether the family uses Windows library naming.
func (o OS) IsWindows() bool { return o == Windows }

// DefaultToolchain returns the toolchain family assumed when a binary does
// not name one: visualCpp on Windows, gcc elsewhere.
func (o OS) DefaultToolchain() Toolchain {
	if o.IsWindows() {
		return VisualCpp
	}
	return GCC
}
