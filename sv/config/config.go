// Package config holds the single configuration record threaded through
// every stage of the structural-variation caller. There is no
// process-wide mutable state; every component takes a *Config explicitly.
package config

// Global tuning constants, fixed across all profiles.
const (
	// Window is the minimum SV size an INS/DEL event must exceed to be
	// emitted.
	Window = 100
	// Span is the tolerance multiplier applied to inward_max when splitting
	// inward- from outward-evidence clusters and gating liveness, and to
	// outward_max when bounding the combined extent of a fusion.
	Span = 2.5
	// KMeansK is the number of clusters used by the fragment-size inferrer's
	// k-means pass over histogram bin counts.
	KMeansK = 3
	// KMeansDelta is the convergence threshold between successive centroid
	// shifts.
	KMeansDelta = 0.001
	// MaxSigma bounds the noise-threshold search in the fragment-size
	// inferrer; exceeding it without a usable peak raises PoorLibraryError.
	MaxSigma = 3
	// HistogramBinSize is the bucket width (bp) used to build the absolute
	// template-length histogram.
	HistogramBinSize = 100
)

// Config is the full set of options accepted by the caller. It corresponds
// to the "lite profile" configuration surface of the specification, plus
// the fields needed to drive the auto-profile fragment-size inferrer and
// the ambient stack (logging, masking).
type Config struct {
	// BAMFile is the path to the input alignment file (required).
	BAMFile string

	// Lite selects the lite profile: InwardMin/Max and OutwardMin/Max are
	// taken directly from this struct rather than inferred from the
	// template-length histogram.
	Lite bool

	InwardMin  int
	InwardMax  int
	OutwardMin int
	OutwardMax int

	// MaskBED is an optional path to a tab-separated chrom/start/end mask.
	MaskBED string

	// MinClusterCount is the minimum number of fused pairs for a cluster to
	// be considered live.
	MinClusterCount int

	// MinMappingQuality rejects records below this mapping quality.
	MinMappingQuality int

	// UniqueMapping requires the XT:A:U optional tag to be present.
	UniqueMapping bool

	// SVName is the annotation prefix used when naming emitted events.
	SVName string

	// QCFilter enables the QC de-duplication sweep of the post-pass.
	QCFilter bool

	// Parallel opts into per-bucket parallel post-pass sweeps. Correctness
	// does not depend on this; it is purely a throughput knob.
	Parallel bool

	// ErrFile optionally redirects diagnostic logging away from stderr.
	ErrFile string
}

// Default returns a Config populated with the documented defaults for every
// field the specification assigns one.
func Default() Config {
	return Config{
		MinClusterCount:   2,
		MinMappingQuality: 0,
		SVName:            "SV",
	}
}
