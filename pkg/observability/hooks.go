// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about resolution passes and manifest loading.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetResolveHooks(&myResolveHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Resolve().OnResolveStart(binary)
//	// ... resolve ...
//	observability.Resolve().OnResolveComplete(binary, stats, duration, err)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Resolve Hooks
// =============================================================================

// ResolveStats summarizes what a resolution pass produced for one binary.
type ResolveStats struct {
	Local         int // Local libraries attached
	Registrations int // Coordinates submitted to the host resolver
	Libraries     int // Resolved native library sets attached
	LinkerArgs    int // Linker arguments added
}

// ResolveHooks receives events from the resolution engine.
type ResolveHooks interface {
	// OnResolveStart is called before a binary is resolved.
	OnResolveStart(binary string)
	// OnResolveComplete is called after a binary is resolved, with err set
	// when the pass aborted.
	OnResolveComplete(binary string, stats ResolveStats, duration time.Duration, err error)
}

// =============================================================================
// Manifest Hooks
// =============================================================================

// ManifestHooks receives events from manifest loading.
type ManifestHooks interface {
	// OnManifestLoaded records a manifest that was decoded.
	OnManifestLoaded(path string, declarations, binaries int, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopResolveHooks is a no-op implementation of ResolveHooks.
type NoopResolveHooks struct{}

func (NoopResolveHooks) OnResolveStart(string)                                         {}
func (NoopResolveHooks) OnResolveComplete(string, ResolveStats, time.Duration, error) {}

// NoopManifestHooks is a no-op implementation of ManifestHooks.
type NoopManifestHooks struct{}

func (NoopManifestHooks) OnManifestLoaded(string, int, int, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	resolveHooks  ResolveHooks  = NoopResolveHooks{}
	manifestHooks ManifestHooks = NoopManifestHooks{}
	hooksMu       sync.RWMutex
)

// SetResolveHooks registers custom resolve hooks.
// This should be called once at application startup before any resolution.
func SetResolveHooks(h ResolveHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		resolveHooks = h
	}
}

// SetManifestHooks registers custom manifest hooks.
func SetManifestHooks(h ManifestHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		manifestHooks = h
	}
}

// Resolve returns the registered resolve hooks.
func Resolve() ResolveHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return resolveHooks
}

// Manifest returns the registered manifest hooks.
func Manifest() ManifestHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return manifestHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	resolveHooks = NoopResolveHooks{}
	manifestHooks = NoopManifestHooks{}
}
