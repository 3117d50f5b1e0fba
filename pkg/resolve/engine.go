package resolve

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/nativedeps/pkg/deps"
	"github.com/matzehuels/nativedeps/pkg/errors"
	"github.com/matzehuels/nativedeps/pkg/observability"
	"github.com/matzehuels/nativedeps/pkg/platform"
)

// Engine turns a registry's declarations into per-binary artifacts. It only
// reads the registry and never touches the filesystem, so resolving the same
// binary twice yields the same result.
type Engine struct {
	registry *deps.Registry
	layout   Layout
	logger   *log.Logger
}

// NewEngine creates an engine reading from reg. A nil logger defaults to
// log.Default().
func NewEngine(reg *deps.Registry, layout Layout, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{registry: reg, layout: layout, logger: logger}
}

// Registry returns the registry the engine reads from.
func (e *Engine) Registry() *deps.Registry { return e.registry }

// Layout returns the dependency directory layout.
func (e *Engine) Layout() Layout { return e.layout }

// IsTestBinary reports whether b receives the test buckets: it is a test
// suite in the host model, or its component was declared as a test component.
func (e *Engine) IsTestBinary(b platform.Binary) bool {
	return b.TestSuite || (b.Component != "" && e.registry.IsTestComponent(b.Component))
}

// Resolve computes everything b needs from the registry. Any invalid
// declaration aborts the pass; there is no partial result.
func (e *Engine) Resolve(b platform.Binary) (res *Resolution, err error) {
	hooks := observability.Resolve()
	start := time.Now()
	hooks.OnResolveStart(b.Name)
	defer func() {
		var stats observability.ResolveStats
		if res != nil {
			stats = res.Stats()
		}
		hooks.OnResolveComplete(b.Name, stats, time.Since(start), err)
	}()

	if err := b.Validate(); err != nil {
		return nil, err
	}

	res = &Resolution{
		ID:     uuid.NewString(),
		Binary: b,
		Test:   e.IsTestBinary(b),
	}
	usages := e.usagesFor(b, res.Test)
	e.logger.Debug("resolving binary", "binary", b.Name, "platform", b.Platform,
		"buildType", b.BuildType, "test", res.Test, "usages", len(usages))

	// Locals go first so the toolchain finds them before fetched libraries.
	for _, u := range usages {
		if u.IsTest() && !b.TestSuite {
			continue
		}
		for _, lib := range e.registry.Local(u) {
			res.Local = append(res.Local, AttachedLocal{Usage: u.String(), Library: lib})
		}
	}

	classifiers := ClassifiersFor(b)
	for _, u := range usages {
		if err := e.attachDownloaded(res, u, classifiers); err != nil {
			return nil, fmt.Errorf("binary %s: %w", b.Name, err)
		}
	}

	for _, scope := range scopesFor(res.Test) {
		arg, err := b.Toolchain.SearchPathArg(e.layout.LibDir(b, scope))
		if err != nil {
			return nil, err
		}
		res.LinkerArgs = append(res.LinkerArgs, arg)
	}

	e.logger.Debug("resolved binary", "binary", b.Name, "local", len(res.Local),
		"registrations", len(res.Registrations), "libraries", len(res.Libraries))
	return res, nil
}

// ResolveAll resolves each binary in order and stops at the first error.
func (e *Engine) ResolveAll(binaries []platform.Binary) ([]*Resolution, error) {
	out := make([]*Resolution, 0, len(binaries))
	for _, b := range binaries {
		res, err := e.Resolve(b)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

func (e *Engine) attachDownloaded(res *Resolution, u deps.Usage, c Classifiers) error {
	b := res.Binary
	policy := e.registry.Policy()
	configuration := ConfigurationName(b, u)
	dir := e.layout.DepsDir(b, u.Scope())

	for _, lib := range e.registry.Downloaded(u) {
		primary, err := PrimaryCoordinate(lib, c, policy.RequireVersion)
		if err != nil {
			return fmt.Errorf("%s library %s: %w", u, libraryLabel(lib), err)
		}
		res.Registrations = append(res.Registrations, Registration{Configuration: configuration, Coordinate: primary})
		e.logger.Debug("adding dependency", "configuration", configuration, "coordinate", primary.String())

		if rt, ok := u.RuntimeCounterpart(); ok && policy.Transitive {
			transitive, err := TransitiveCoordinate(lib, c, policy.RequireVersion)
			if err != nil {
				return fmt.Errorf("%s library %s: %w", u, libraryLabel(lib), err)
			}
			rtConfiguration := ConfigurationName(b, rt)
			res.Registrations = append(res.Registrations, Registration{Configuration: rtConfiguration, Coordinate: transitive})
			e.logger.Debug("adding dependency", "configuration", rtConfiguration, "coordinate", transitive.String())
		}

		set, err := ResolveLibrarySet(lib, b.OS, dir)
		if err != nil {
			return fmt.Errorf("%s library %s: %w", u, libraryLabel(lib), err)
		}
		set.Usage = u.String()
		res.Libraries = append(res.Libraries, set)
	}
	return nil
}

// usagesFor lists the buckets b consumes, main before test.
func (e *Engine) usagesFor(b platform.Binary, test bool) []deps.Usage {
	var out []deps.Usage
	for _, u := range e.registry.Policy().Buckets.Usages() {
		if u.IsTest() && !test {
			continue
		}
		out = append(out, u)
	}
	return out
}

func scopesFor(test bool) []string {
	if test {
		return []string{deps.ScopeMain, deps.ScopeTest}
	}
	return []string{deps.ScopeMain}
}

func libraryLabel(lib deps.DownloadedLibrary) string {
	if lib.Name == "" {
		return "<unnamed>"
	}
	if lib.Group == "" {
		return lib.Name
	}
	return lib.Group + ":" + lib.Name
}

// ErrNoBinaries is returned by callers that require at least one target.
var ErrNoBinaries = errors.New(errors.ErrCodeNotFound, "no binaries to resolve")
