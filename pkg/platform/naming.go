package platform

import "fmt"

// LibraryFiles names the files a library contributes for one linkage.
// Empty fields mean the role has no file (static run-time, api).
type LibraryFiles struct {
	Link    string // File passed to the linker
	Runtime string // File loaded at run time
}

// SharedLibraryFiles returns the import/link file and the run-time file of
// a shared library: foo.lib + foo.dll on Windows, libfoo.so for both roles
// elsewhere.
func SharedLibraryFiles(os OS, name string) LibraryFiles {
	if os.IsWindows() {
		return LibraryFiles{Link: name + ".lib", Runtime: name + ".dll"}
	}
	so := fmt.Sprintf("lib%s.so", name)
	return LibraryFiles{Link: so, Runtime: so}
}

// StaticLibraryFiles returns the archive of a static library: foo.lib on
// Windows, libfoo.a elsewhere. Static libraries have no run-time file.
func StaticLibraryFiles(os OS, name string) LibraryFiles {
	if os.IsWindows() {
		return LibraryFiles{Link: name + ".lib"}
	}
	return LibraryFiles{Link: fmt.Sprintf("lib%s.a", name)}
}
