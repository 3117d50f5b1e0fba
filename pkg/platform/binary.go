package platform

import (
	"strings"

	"github.com/matzehuels/nativedeps/pkg/errors"
)

// Binary describes one binary target being built: a compiled artifact for a
// specific platform and build type. It is supplied by the host build tool.
type Binary struct {
	Name      string    // Unique binary name, e.g. "helloSharedLibrary"
	Component string    // Owning component name, e.g. "hello"
	Platform  string    // Target platform name, e.g. "linux_x86-64"
	BuildType string    // Build type name, e.g. "debug"
	OS        OS        // Operating-system family of the target platform
	Toolchain Toolchain // Toolchain family used to link
	TestSuite bool      // Structurally a test-suite binary in the host model
}

// Validate checks that the fields used for classifiers, directories and
// linker arguments are present.
func (b Binary) Validate() error {
	switch {
	case b.Name == "":
		return errors.New(errors.ErrCodeInvalidBinary, "binary name cannot be empty")
	case strings.ContainsAny(b.Name, "/\\") || strings.Contains(b.Name, ".."):
		// The name becomes a dependency directory component.
		return errors.New(errors.ErrCodeInvalidBinary, "binary name %q contains path characters", b.Name)
	case b.Platform == "":
		return errors.New(errors.ErrCodeInvalidBinary, "binary %s has no target platform", b.Name)
	case b.BuildType == "":
		return errors.New(errors.ErrCodeInvalidBinary, "binary %s has no build type", b.Name)
	case !b.Toolchain.Known():
		return errors.New(errors.ErrCodeUnsupportedToolchain, "binary %s uses unsupported toolchain %q", b.Name, string(b.Toolchain))
	}
	return nil
}
