// Package pkg provides the libraries behind nativedeps.
//
// # Overview
//
// nativedeps declares the native libraries a project needs and computes,
// per binary target, what the build must fetch, link and search. The pkg
// directory is organized bottom-up:
//
//  1. [errors] - Coded errors and input validation
//  2. [deps] - Declarations, usage buckets and the declaration registry
//  3. [platform] - Binary targets, OS families and toolchain families
//  4. [resolve] - The resolution engine: classifiers, coordinates, files
//  5. [manifest] - nativedeps.toml loading
//  6. [graph] - Binary/library graph with DOT, SVG and JSON output
//  7. [observability] - Hooks for resolution and manifest events
//
// # Architecture
//
// The typical data flow:
//
//	nativedeps.toml
//	       ↓
//	manifest.Load → deps.Registry + []platform.Binary
//	       ↓
//	resolve.Engine.Resolve (per binary)
//	       ↓
//	resolve.Resolution → Submit to host resolver / graph / CLI output
//
// # Quick Start
//
//	reg := deps.NewRegistry(deps.DefaultPolicy())
//	reg.Compile(deps.Attributes{"group": "org.acme", "library": "zlib",
//	    "version": "1.3", "linkage": "static"})
//
//	engine := resolve.NewEngine(reg, resolve.Layout{BuildDir: "build"}, nil)
//	res, err := engine.Resolve(platform.Binary{
//	    Name: "helloExecutable", Platform: "linux_x86-64", BuildType: "debug",
//	    OS: platform.Linux, Toolchain: platform.GCC,
//	})
//
// [errors]: https://pkg.go.dev/github.com/matzehuels/nativedeps/pkg/errors
// [deps]: https://pkg.go.dev/github.com/matzehuels/nativedeps/pkg/deps
// [platform]: https://pkg.go.dev/github.com/matzehuels/nativedeps/pkg/platform
// [resolve]: https://pkg.go.dev/github.com/matzehuels/nativedeps/pkg/resolve
// [manifest]: https://pkg.go.dev/github.com/matzehuels/nativedeps/pkg/manifest
// [graph]: https://pkg.go.dev/github.com/matzehuels/nativedeps/pkg/graph
// [observability]: https://pkg.go.dev/github.com/matzehuels/nativedeps/pkg/observability
package pkg
