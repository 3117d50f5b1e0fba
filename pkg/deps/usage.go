package deps

import (
	"fmt"

	"github.com/matzehuels/nativedeps/pkg/errors"
)

// Usage names a dependency bucket: what a library is needed for.
type Usage int

const (
	Compile     Usage = iota // Needed to compile and link main binaries
	Runtime                  // Needed at run time by main binaries
	TestCompile              // Needed to compile and link test binaries
	TestRuntime              // Needed at run time by test binaries
)

// Usages lists every usage in attachment order.
var Usages = []Usage{Compile, Runtime, TestCompile, TestRuntime}

var usageNames = map[Usage]string{
	Compile:     "compile",
	Runtime:     "runtime",
	TestCompile: "testCompile",
	TestRuntime: "testRuntime",
}

// String returns the usage name used in configuration names and manifests.
func (u Usage) String() string {
	if s, ok := usageNames[u]; ok {
		return s
	}
	return fmt.Sprintf("Usage(%d)", int(u))
}

// IsTest reports whether the usage only applies to test binaries.
func (u Usage) IsTest() bool { return u == TestCompile || u == TestRuntime }

// IsRuntime reports whether the usage is a runtime bucket.
func (u Usage) IsRuntime() bool { return u == Runtime || u == TestRuntime }

// Scope returns the dependency directory scope for the usage: "main" or "test".
func (u Usage) Scope() string {
	if u.IsTest() {
		return ScopeTest
	}
	return ScopeMain
}

// RuntimeCounterpart returns the runtime usage that a compile usage
// propagates to. Runtime usages have no counterpart.
func (u Usage) RuntimeCounterpart() (Usage, bool) {
	switch u {
	case Compile:
		return Runtime, true
	case TestCompile:
		return TestRuntime, true
	}
	return u, false
}

// Dependency directory scopes.
const (
	ScopeMain = "main"
	ScopeTest = "test"
)

// ParseUsage converts a usage name ("compile", "testRuntime", ...) to a Usage.
// Manifest spellings with underscores ("test_compile") are accepted too.
func ParseUsage(s string) (Usage, error) {
	switch s {
	case "compile":
		return Compile, nil
	case "runtime":
		return Runtime, nil
	case "testCompile", "test_compile":
		return TestCompile, nil
	case "testRuntime", "test_runtime":
		return TestRuntime, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidUsage, "unknown usage %q", s)
}

// Origin says where a library comes from.
type Origin int

const (
	Local      Origin = iota // Already present on disk
	Downloaded               // Fetched from a repository by coordinates
)

func (o Origin) String() string {
	if o == Downloaded {
		return "downloaded"
	}
	return "local"
}

// OriginOf classifies attributes: a group attribute means the library is
// downloaded, otherwise it is local. Nothing else influences routing.
func OriginOf(attrs Attributes) Origin {
	if _, ok := attrs[AttrGroup]; ok {
		return Downloaded
	}
	return Local
}
