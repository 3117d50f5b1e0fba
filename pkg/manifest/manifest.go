package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/nativedeps/pkg/deps"
	"github.com/matzehuels/nativedeps/pkg/errors"
	"github.com/matzehuels/nativedeps/pkg/observability"
	"github.com/matzehuels/nativedeps/pkg/platform"
	"github.com/matzehuels/nativedeps/pkg/resolve"
)

// DefaultFilename is the manifest looked up when no path is given.
const DefaultFilename = "nativedeps.toml"

// DefaultBuildDir is used when the manifest has no build_dir.
const DefaultBuildDir = "build"

// Manifest is the decoded form of a nativedeps.toml file.
type Manifest struct {
	BuildDir       string   `toml:"build_dir"`
	Buckets        string   `toml:"buckets"`
	RequireVersion *bool    `toml:"require_version"`
	Transitive     *bool    `toml:"transitive"`
	TestComponents []string `toml:"test_components"`

	Compile     []map[string]string `toml:"compile"`
	Runtime     []map[string]string `toml:"runtime"`
	TestCompile []map[string]string `toml:"test_compile"`
	TestRuntime []map[string]string `toml:"test_runtime"`

	Binaries []Binary `toml:"binaries"`

	dir string // Directory the manifest was loaded from
}

// Binary is a binary target entry.
type Binary struct {
	Name      string `toml:"name"`
	Component string `toml:"component"`
	Platform  string `toml:"platform"`
	BuildType string `toml:"build_type"`
	OS        string `toml:"os"`
	Toolchain string `toml:"toolchain"`
	TestSuite bool   `toml:"test_suite"`
}

// Load reads and decodes the manifest at path. Relative paths in the
// manifest are resolved against its absolute directory, so produced file
// paths and linker arguments do not depend on the working directory.
func Load(path string) (m *Manifest, err error) {
	var declarations, binaries int
	defer func() {
		if m != nil {
			declarations, binaries = m.Declarations(), len(m.Binaries)
		}
		observability.Manifest().OnManifestLoaded(path, declarations, binaries, err)
	}()

	if err := errors.ValidateManifestFilename(filepath.Base(path)); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "manifest %s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	m, err = Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolve manifest directory: %w", err)
	}
	m.dir = dir
	return m, nil
}

// Parse decodes manifest data. Relative paths resolve against the working
// directory.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode manifest")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidManifest, "unknown manifest keys: %s", strings.Join(keys, ", "))
	}
	if m.BuildDir != "" {
		if err := errors.ValidatePath(m.BuildDir); err != nil {
			return nil, fmt.Errorf("build_dir: %w", err)
		}
	}
	m.dir = "."
	return &m, nil
}

// Dir returns the directory relative paths are resolved against.
func (m *Manifest) Dir() string { return m.dir }

// Declarations returns the number of library declarations across buckets.
func (m *Manifest) Declarations() int {
	return len(m.Compile) + len(m.Runtime) + len(m.TestCompile) + len(m.TestRuntime)
}

// Policy derives the declaration policy. The buckets mode selects the base
// policy; require_version and transitive override it when set.
func (m *Manifest) Policy() (deps.Policy, error) {
	mode, err := deps.ParseBucketMode(m.Buckets)
	if err != nil {
		return deps.Policy{}, errors.Wrap(errors.ErrCodeInvalidManifest, err, "buckets")
	}
	p := deps.DefaultPolicy()
	if mode == deps.BucketsCompact {
		p = deps.CompactPolicy()
	}
	if m.RequireVersion != nil {
		p.RequireVersion = *m.RequireVersion
	}
	if m.Transitive != nil {
		p.Transitive = *m.Transitive
	}
	return p, nil
}

// Registry builds a registry holding every declaration of the manifest.
// Declarations are added bucket by bucket in file order.
func (m *Manifest) Registry() (*deps.Registry, error) {
	p, err := m.Policy()
	if err != nil {
		return nil, err
	}
	reg := deps.NewRegistry(p)
	for _, name := range m.TestComponents {
		reg.DeclareTestComponent(name)
	}

	buckets := []struct {
		key   string
		usage deps.Usage
		decls []map[string]string
	}{
		{"compile", deps.Compile, m.Compile},
		{"runtime", deps.Runtime, m.Runtime},
		{"test_compile", deps.TestCompile, m.TestCompile},
		{"test_runtime", deps.TestRuntime, m.TestRuntime},
	}
	for _, b := range buckets {
		for i, attrs := range b.decls {
			if err := reg.Declare(b.usage, deps.Attributes(attrs)); err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", b.key, i, err)
			}
		}
	}
	return reg, nil
}

// Targets converts the binary entries. A missing toolchain defaults from the
// operating system.
func (m *Manifest) Targets() ([]platform.Binary, error) {
	out := make([]platform.Binary, 0, len(m.Binaries))
	seen := make(map[string]bool, len(m.Binaries))
	for i, entry := range m.Binaries {
		b, err := entry.Target()
		if err != nil {
			return nil, fmt.Errorf("binaries[%d]: %w", i, err)
		}
		if seen[b.Name] {
			return nil, errors.New(errors.ErrCodeInvalidBinary, "binaries[%d]: duplicate binary %s", i, b.Name)
		}
		seen[b.Name] = true
		out = append(out, b)
	}
	return out, nil
}

// Target converts the entry to a validated binary target.
func (e Binary) Target() (platform.Binary, error) {
	family := platform.ParseOS(e.OS)
	tc := family.DefaultToolchain()
	if e.Toolchain != "" {
		parsed, err := platform.ParseToolchain(e.Toolchain)
		if err != nil {
			return platform.Binary{}, err
		}
		tc = parsed
	}
	b := platform.Binary{
		Name:      e.Name,
		Component: e.Component,
		Platform:  e.Platform,
		BuildType: e.BuildType,
		OS:        family,
		Toolchain: tc,
		TestSuite: e.TestSuite,
	}
	if err := b.Validate(); err != nil {
		return platform.Binary{}, err
	}
	return b, nil
}

// Layout returns the dependency layout rooted at the manifest's build dir.
// For a manifest created with Parse the build dir stays relative.
func (m *Manifest) Layout() resolve.Layout {
	dir := m.BuildDir
	if dir == "" {
		dir = DefaultBuildDir
	}
	return resolve.Layout{BuildDir: filepath.Join(m.dir, dir)}
}

// Engine builds the registry and returns an engine over it.
func (m *Manifest) Engine(logger *log.Logger) (*resolve.Engine, error) {
	reg, err := m.Registry()
	if err != nil {
		return nil, err
	}
	return resolve.NewEngine(reg, m.Layout(), logger), nil
}

// Resolve builds an engine and resolves every binary target in file order.
func (m *Manifest) Resolve(logger *log.Logger) ([]*resolve.Resolution, error) {
	targets, err := m.Targets()
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, resolve.ErrNoBinaries
	}
	engine, err := m.Engine(logger)
	if err != nil {
		return nil, err
	}
	return engine.ResolveAll(targets)
}
