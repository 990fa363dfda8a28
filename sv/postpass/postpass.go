// Package postpass implements the three-sweep cluster algebra that follows
// streaming clustering: QC de-duplication, inward/outward cluster fusion,
// and inversion pairing into balanced events. Every sweep operates within a
// single bucket; buckets never interact, which is what makes the optional
// parallel driver in parallel.go safe.
package postpass

import (
	"github.com/grailbio/svcaller/sv/cluster"
	"github.com/grailbio/svcaller/sv/config"
)

// Run executes QC de-duplication (if enabled), inward/outward fusion, and
// inversion pairing, in that order, against every bucket in buckets.
func Run(buckets []*cluster.Bucket, cfg *config.Config) {
	for _, b := range buckets {
		if cfg.QCFilter {
			qcDedup(b, cfg)
		}
		fuse(b, cfg)
		if b.Same() {
			pairInversions(b, cfg)
		}
	}
}

// IsLive implements the specification's liveness invariant: qc, a minimum
// fused-pair count, sufficient spatial spread, and a side-range floor
// proportional to the longest contributing read. It is the test sv/emit
// applies when selecting which stabilized (post-fusion) clusters to emit.
func IsLive(c *cluster.Cluster, cfg *config.Config) bool {
	if c == nil || !c.QC || c.Count < cfg.MinClusterCount {
		return false
	}
	if float64(c.Size()) <= float64(cfg.InwardMax)*config.Span {
		return false
	}
	floor := c.SeqLength * cfg.MinClusterCount
	if c.P1Max-c.P1Min < floor || c.P2Max-c.P2Min < floor {
		return false
	}
	return true
}

// isBaseLive is the weaker liveness test (qc + minimum count only) used by
// sweeps that operate before size/spread have stabilized, such as QC
// de-duplication comparing two clusters that have not yet been fused.
func isBaseLive(c *cluster.Cluster, cfg *config.Config) bool {
	return c != nil && c.QC && c.Count >= cfg.MinClusterCount
}
