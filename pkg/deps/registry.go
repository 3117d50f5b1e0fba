package deps

import (
	"slices"
	"sort"

	"github.com/matzehuels/nativedeps/pkg/errors"
)

// Registry holds the libraries a project declares, partitioned by usage and
// origin. Insertion order within a bucket is preserved because it decides
// link-line order.
//
// A Registry is populated during project configuration and then handed to
// the resolution engine, which only reads it. It is not safe for concurrent
// mutation.
type Registry struct {
	policy         Policy
	testComponents map[string]struct{}
	local          map[Usage][]LocalLibrary
	downloaded     map[Usage][]DownloadedLibrary
}

// NewRegistry creates an empty registry governed by p.
func NewRegistry(p Policy) *Registry {
	return &Registry{
		policy:         p,
		testComponents: make(map[string]struct{}),
		local:          make(map[Usage][]LocalLibrary),
		downloaded:     make(map[Usage][]DownloadedLibrary),
	}
}

// Policy returns the registry's declaration policy.
func (r *Registry) Policy() Policy { return r.policy }

// Declare parses attrs and adds the library to the bucket for usage u.
// The library lands in the downloaded bucket if attrs has a group, and in the
// local bucket otherwise.
func (r *Registry) Declare(u Usage, attrs Attributes) error {
	if err := r.checkUsage(u); err != nil {
		return err
	}
	d, err := ParseDeclaration(attrs, r.policy.RequireVersion)
	if err != nil {
		return err
	}
	return r.Add(u, d)
}

// Compile declares a library needed to build main binaries.
func (r *Registry) Compile(attrs Attributes) error { return r.Declare(Compile, attrs) }

// Runtime declares a library needed to run main binaries.
func (r *Registry) Runtime(attrs Attributes) error { return r.Declare(Runtime, attrs) }

// TestCompile declares a library needed to build test binaries.
func (r *Registry) TestCompile(attrs Attributes) error { return r.Declare(TestCompile, attrs) }

// TestRuntime declares a library needed to run test binaries.
func (r *Registry) TestRuntime(attrs Attributes) error { return r.Declare(TestRuntime, attrs) }

// Add appends an already typed declaration. Attribute rules are not
// re-checked here; the resolution engine validates every downloaded library
// before using it.
func (r *Registry) Add(u Usage, d Declaration) error {
	if err := r.checkUsage(u); err != nil {
		return err
	}
	switch lib := d.(type) {
	case LocalLibrary:
		r.local[u] = append(r.local[u], lib.clone())
	case *LocalLibrary:
		if lib == nil {
			return errors.New(errors.ErrCodeInvalidDeclaration, "nil local library declaration")
		}
		r.local[u] = append(r.local[u], lib.clone())
	case DownloadedLibrary:
		r.downloaded[u] = append(r.downloaded[u], lib)
	case *DownloadedLibrary:
		if lib == nil {
			return errors.New(errors.ErrCodeInvalidDeclaration, "nil downloaded library declaration")
		}
		r.downloaded[u] = append(r.downloaded[u], *lib)
	default:
		return errors.New(errors.ErrCodeInvalidDeclaration, "unsupported declaration type %T", d)
	}
	return nil
}

func (r *Registry) checkUsage(u Usage) error {
	if !r.policy.Allows(u) {
		return errors.New(errors.ErrCodeInvalidUsage,
			"usage %s is not available with %s buckets", u, r.policy.Buckets)
	}
	return nil
}

// DeclareTestComponent marks a component as test-only: its binaries are
// treated as test binaries even when the host does not model them as test
// suites.
func (r *Registry) DeclareTestComponent(name string) {
	r.testComponents[name] = struct{}{}
}

// IsTestComponent reports whether name was declared with DeclareTestComponent.
func (r *Registry) IsTestComponent(name string) bool {
	_, ok := r.testComponents[name]
	return ok
}

// TestComponents returns the declared test component names, sorted.
func (r *Registry) TestComponents() []string {
	names := make([]string, 0, len(r.testComponents))
	for n := range r.testComponents {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Local returns the local libraries declared for u, in declaration order.
// The returned slice is a copy.
func (r *Registry) Local(u Usage) []LocalLibrary {
	out := make([]LocalLibrary, len(r.local[u]))
	for i, l := range r.local[u] {
		out[i] = l.clone()
	}
	return out
}

// Downloaded returns the downloaded libraries declared for u, in declaration
// order. The returned slice is a copy.
func (r *Registry) Downloaded(u Usage) []DownloadedLibrary {
	return slices.Clone(r.downloaded[u])
}

// Len returns the total number of declarations across all buckets.
func (r *Registry) Len() int {
	n := 0
	for _, u := range Usages {
		n += len(r.local[u]) + len(r.downloaded[u])
	}
	return n
}
