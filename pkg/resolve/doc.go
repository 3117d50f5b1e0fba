// Package resolve computes what each binary target needs from the declared
// native libraries.
//
// # Overview
//
// For one [platform.Binary], the [Engine] reads a [deps.Registry] and
// produces a [Resolution]:
//
//  1. Local libraries of the applicable buckets, in declaration order
//  2. One primary [Coordinate] per downloaded library, plus a transitive
//     runtime coordinate for compile usages when the policy enables it
//  3. One [NativeLibrarySet] per downloaded library: include directory and
//     platform-specific link and run-time files
//  4. Library search path arguments for the toolchain's linker
//
// Downloaded files are expected under [Layout.DepsDir], where the host's
// fetch step unpacks them; this package never reads the filesystem.
//
// # Classifiers
//
// Artifacts are published with the classifiers "<platform>-shared-<build>"
// and "<platform>-static-<build>". The classifier doubles as the
// configuration name of the coordinate. See [ClassifiersFor] and
// [SelectClassifier].
//
// # Test Binaries
//
// Test suites receive every test bucket. Binaries of components declared
// with [deps.Registry.DeclareTestComponent] receive only downloaded test
// libraries, since they are themselves inputs to a test suite.
//
// # Host Integration
//
// [Resolution.Submit] hands the coordinates to a [DependencyHandler]. The
// [Recorder] handler keeps them for dry runs:
//
//	var rec resolve.Recorder
//	res, err := engine.Resolve(binary)
//	if err != nil {
//	    return err
//	}
//	res.Submit(&rec)
package resolve
