package deps

import (
	"fmt"
	"slices"

	"github.com/matzehuels/nativedeps/pkg/errors"
)

// BucketMode selects how many usage buckets a registry accepts.
type BucketMode int

const (
	// BucketsFull accepts compile, runtime, testCompile and testRuntime.
	BucketsFull BucketMode = iota
	// BucketsCompact accepts compile and testCompile only.
	BucketsCompact
)

func (m BucketMode) String() string {
	if m == BucketsCompact {
		return "compact"
	}
	return "full"
}

// ParseBucketMode converts "full" or "compact" to a BucketMode.
// The empty string selects BucketsFull.
func ParseBucketMode(s string) (BucketMode, error) {
	switch s {
	case "", "full":
		return BucketsFull, nil
	case "compact":
		return BucketsCompact, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown bucket mode %q (available: full, compact)", s)
}

// Usages returns the usages accepted under this mode, in attachment order.
func (m BucketMode) Usages() []Usage {
	if m == BucketsCompact {
		return []Usage{Compile, TestCompile}
	}
	return slices.Clone(Usages)
}

// Policy fixes the declaration rules that differ between project setups.
type Policy struct {
	Buckets        BucketMode // Which usage buckets exist
	RequireVersion bool       // Missing version is fatal (otherwise omitted)
	Transitive     bool       // Emit runtime transitive coordinates for compile usages
}

// DefaultPolicy returns the four-bucket policy: versions required and
// transitive runtime coordinates emitted.
func DefaultPolicy() Policy {
	return Policy{Buckets: BucketsFull, RequireVersion: true, Transitive: true}
}

// CompactPolicy returns the two-bucket policy: versions optional and no
// transitive coordinates.
func CompactPolicy() Policy {
	return Policy{Buckets: BucketsCompact}
}

// Allows reports whether the policy accepts declarations for u.
func (p Policy) Allows(u Usage) bool {
	return slices.Contains(p.Buckets.Usages(), u)
}

func (p Policy) String() string {
	return fmt.Sprintf("buckets=%s require_version=%t transitive=%t", p.Buckets, p.RequireVersion, p.Transitive)
}
