// Package platform describes the binary targets a build produces and the
// platform rules that depend on them.
//
// A [Binary] is owned by the host build tool; nativedeps only reads it. The
// package provides:
//
//   - [OS]: operating-system family, which decides library file naming
//   - [Toolchain]: toolchain family, which decides linker flag syntax
//   - [LibraryFiles]: link-time and run-time file names per linkage
//
// File naming follows the platform conventions:
//
//	shared  windows: foo.lib (link) + foo.dll (run)   unix: libfoo.so (both)
//	static  windows: foo.lib                          unix: libfoo.a
//	api     no files, headers only
package platform
