package platform

import (
	"fmt"
	"strings"

	"github.com/matzehuels/nativedeps/pkg/errors"
)

// Toolchain is a toolchain family tag. It selects the syntax of linker
// arguments.
type Toolchain string

// Toolchain families.
const (
	GCC       Toolchain = "gcc"
	Clang     Toolchain = "clang"
	VisualCpp Toolchain = "visualCpp"
)

// searchPathFlags maps each toolchain family to its library search path
// argument template.
var searchPathFlags = map[Toolchain]string{
	GCC:       "-L%s",
	Clang:     "-L%s",
	VisualCpp: "/LIBPATH:%s",
}

// ParseToolchain normalizes a toolchain family name ("msvc" and "visualcpp"
// map to VisualCpp).
func ParseToolchain(s string) (Toolchain, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gcc", "mingw", "cygwin":
		return GCC, nil
	case "clang":
		return Clang, nil
	case "visualcpp", "msvc", "visual-cpp", "vc":
		return VisualCpp, nil
	}
	return "", errors.New(errors.ErrCodeUnsupportedToolchain, "unsupported toolchain %q (available: gcc, clang, visualCpp)", s)
}

// Known reports whether t has a search path flag template.
func (t Toolchain) Known() bool {
	_, ok := searchPathFlags[t]
	return ok
}

// SearchPathArg returns the linker argument that adds dir to the library
// search path, e.g. "-L/deps/lib" or "/LIBPATH:C:\deps\lib".
func (t Toolchain) SearchPathArg(dir string) (string, error) {
	tmpl, ok := searchPathFlags[t]
	if !ok {
		return "", errors.New(errors.ErrCodeUnsupportedToolchain, "unsupported toolchain %q", string(t))
	}
	return fmt.Sprintf(tmpl, dir), nil
}
