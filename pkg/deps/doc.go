// Package deps holds the native library declarations of a project.
//
// # Overview
//
// A project declares the libraries its binaries need per usage bucket:
//
//   - [Compile]: needed to compile and link main binaries
//   - [Runtime]: needed at run time by main binaries
//   - [TestCompile]: needed to compile and link test binaries
//   - [TestRuntime]: needed at run time by test binaries
//
// Each declaration is either local (already on disk, attached to binaries
// as-is) or downloaded (identified by repository coordinates). The presence
// of a group attribute is the only routing rule:
//
//	reg := deps.NewRegistry(deps.DefaultPolicy())
//	reg.Compile(deps.Attributes{"library": "m"})                     // local
//	reg.Compile(deps.Attributes{"group": "org.acme", "library": "zlib",
//	    "version": "1.3", "linkage": "static"})                       // downloaded
//
// # Declarations
//
// Attribute maps are parsed into a tagged variant at declaration time:
// [LocalLibrary] or [DownloadedLibrary]. Malformed downloaded declarations
// (missing group, library or version, unknown linkage, no way to derive a
// classifier) are rejected immediately with a coded error from
// [github.com/matzehuels/nativedeps/pkg/errors].
//
// # Policy
//
// [Policy] fixes the rules that differ between project setups:
//
//   - Buckets: four buckets ([BucketsFull]) or compile/testCompile only ([BucketsCompact])
//   - RequireVersion: whether a missing version is fatal or simply omitted
//   - Transitive: whether compile usages also emit a runtime transitive coordinate
//
// The registry knows nothing about binaries or platforms; see
// [github.com/matzehuels/nativedeps/pkg/resolve] for the engine that turns
// declarations into per-binary artifacts.
package deps
