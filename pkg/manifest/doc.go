// Package manifest loads nativedeps.toml project files.
//
// A manifest carries the declaration policy, the library declarations per
// usage bucket and the binary targets to resolve:
//
//	build_dir = "build"
//	buckets = "full"
//	test_components = ["fixtures"]
//
//	[[compile]]
//	library = "m"
//
//	[[compile]]
//	group = "org.acme"
//	library = "zlib"
//	version = "1.3"
//	linkage = "static"
//
//	[[binaries]]
//	name = "helloExecutable"
//	component = "hello"
//	platform = "linux_x86-64"
//	build_type = "debug"
//	os = "linux"
//
// Unknown keys are rejected so that typos do not silently drop
// declarations.
package manifest
