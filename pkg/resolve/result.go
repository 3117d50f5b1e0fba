package resolve

import (
	"sort"

	"github.com/matzehuels/nativedeps/pkg/deps"
	"github.com/matzehuels/nativedeps/pkg/observability"
	"github.com/matzehuels/nativedeps/pkg/platform"
)

// AttachedLocal is a local library attached to a binary as declared.
type AttachedLocal struct {
	Usage   string            `json:"usage"`
	Library deps.LocalLibrary `json:"library"`
}

// Resolution is everything resolved for one binary: local libraries,
// coordinates for the host resolver, resolved native library sets and linker
// arguments, each in attachment order.
type Resolution struct {
	ID            string             `json:"id"`
	Binary        platform.Binary    `json:"binary"`
	Test          bool               `json:"test"`
	Local         []AttachedLocal    `json:"local,omitempty"`
	Registrations []Registration     `json:"registrations,omitempty"`
	Libraries     []NativeLibrarySet `json:"libraries,omitempty"`
	LinkerArgs    []string           `json:"linkerArgs,omitempty"`
}

// Stats summarizes the resolution for observability hooks.
func (r *Resolution) Stats() observability.ResolveStats {
	return observability.ResolveStats{
		Local:         len(r.Local),
		Registrations: len(r.Registrations),
		Libraries:     len(r.Libraries),
		LinkerArgs:    len(r.LinkerArgs),
	}
}

// ByConfiguration groups registered coordinates by host configuration.
func (r *Resolution) ByConfiguration() map[string][]Coordinate {
	out := make(map[string][]Coordinate)
	for _, reg := range r.Registrations {
		out[reg.Configuration] = append(out[reg.Configuration], reg.Coordinate)
	}
	return out
}

// DependencyHandler is the host resolver's entry point for new dependencies.
type DependencyHandler interface {
	Add(configuration string, notation map[string]string) error
}

// Submit hands every registration to h in order. The first error aborts.
func (r *Resolution) Submit(h DependencyHandler) error {
	for _, reg := range r.Registrations {
		if err := h.Add(reg.Configuration, reg.Coordinate.Notation()); err != nil {
			return err
		}
	}
	return nil
}

// Recorder is a DependencyHandler that keeps what it receives. It stands in
// for a host resolver in dry runs and tests.
type Recorder struct {
	added map[string][]map[string]string
}

// Add records notation under configuration.
func (r *Recorder) Add(configuration string, notation map[string]string) error {
	if r.added == nil {
		r.added = make(map[string][]map[string]string)
	}
	r.added[configuration] = append(r.added[configuration], notation)
	return nil
}

// Configurations returns the configurations that received dependencies, sorted.
func (r *Recorder) Configurations() []string {
	names := make([]string, 0, len(r.added))
	for name := range r.added {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Notations returns the notations recorded for configuration, in order.
func (r *Recorder) Notations(configuration string) []map[string]string {
	return r.added[configuration]
}

// Len returns the number of recorded notations.
func (r *Recorder) Len() int {
	n := 0
	for _, ns := range r.added {
		n += len(ns)
	}
	return n
}
