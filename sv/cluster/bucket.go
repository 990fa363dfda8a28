package cluster

import (
	"github.com/dgryski/go-farm"

	"github.com/grailbio/svcaller/sv/record"
)

// parity describes whether the two halves of a pair share an orientation.
type parity string

const (
	parSame parity = "same"
	parDiff parity = "diff"
)

func orientationParity(a record.Aligned) parity {
	if a.O1 == a.O2 {
		return parSame
	}
	return parDiff
}

// chromKey is the canonical, order-independent chromosome-pair label
// min(c1,c2)-max(c1,c2).
func chromKey(c1, c2 string) string {
	if c1 <= c2 {
		return c1 + "-" + c2
	}
	return c2 + "-" + c1
}

// bucketHash is a 64-bit farm fingerprint of (chromKey, parity), used as the
// map key for the bucket index in place of the composite string. It is
// recomputed from that string on every Clusterer.Add.
type bucketHash uint64

func hashBucket(ck string, p parity) bucketHash {
	buf := make([]byte, 0, len(ck)+1+len(p))
	buf = append(buf, ck...)
	buf = append(buf, '|')
	buf = append(buf, p...)
	return bucketHash(farm.Hash64WithSeed(buf, 0))
}

// Bucket holds every live cluster for one (chromosome-pair, parity)
// partition. An entry becomes nil when inward/outward fusion absorbs that
// cluster into its partner (a logical delete in the arena-plus-index
// model); callers must skip nil entries.
type Bucket struct {
	chromKey string
	par      parity
	clusters []*Cluster
}

// ChromKey is the canonical chromosome-pair label of this bucket.
func (b *Bucket) ChromKey() string { return b.chromKey }

// Same reports whether this bucket holds same-orientation pairs (the
// parity required for inversion pairing, and for the orientation-swap
// branch of QC de-duplication).
func (b *Bucket) Same() bool { return b.par == parSame }

// Clusters returns the bucket's cluster slice directly; nil entries are
// logically-deleted clusters and must be skipped by callers.
func (b *Bucket) Clusters() []*Cluster { return b.clusters }

// SetCluster replaces (or logically deletes, with nil) the cluster at
// index i.
func (b *Bucket) SetCluster(i int, c *Cluster) { b.clusters[i] = c }

// Append adds a new cluster to the bucket and returns its index.
func (b *Bucket) Append(c *Cluster) int {
	b.clusters = append(b.clusters, c)
	return len(b.clusters) - 1
}

// NewBucketForTest builds a Bucket directly from a cluster slice, for
// postpass sweep tests that don't want to drive a full Clusterer to set
// up bucket contents. sameParity selects the "same"/"diff" partition.
func NewBucketForTest(chromKey string, sameParity bool, clusters []*Cluster) *Bucket {
	par := parDiff
	if sameParity {
		par = parSame
	}
	return &Bucket{chromKey: chromKey, par: par, clusters: clusters}
}
