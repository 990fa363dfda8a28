// Package cluster implements the single-pass streaming clusterer that
// groups discordant mate pairs into breakpoint candidates, partitioned by
// chromosome-pair and orientation-parity.
package cluster

import (
	"github.com/grailbio/svcaller/sv/record"
)

// SVType is the structural-variant class a cluster member votes for.
type SVType int

const (
	UNK SVType = iota
	INS
	DEL
	INV
	ITX
	CTX
)

func (t SVType) String() string {
	switch t {
	case INS:
		return "INS"
	case DEL:
		return "DEL"
	case INV:
		return "INV"
	case ITX:
		return "ITX"
	case CTX:
		return "CTX"
	default:
		return "UNK"
	}
}

// BackRef is a weak handle to another cluster in the same bucket, used by
// inversion pairing. It is an arena-plus-index reference rather than a
// pointer: the arena is the bucket's cluster slice, Index is the position
// within it. A partner slot that is nil (logically deleted) is detected by
// the consuming code checking the bucket slice, not by this struct.
type BackRef struct {
	ChromKey string
	Parity   string
	Index    int
	Valid    bool
}

// Cluster is a mutable aggregate of fused discordant pairs, as specified.
type Cluster struct {
	C1, C2 string
	O1, O2 record.Orientation

	P1Min, P1Max int
	P2Min, P2Max int

	ReadIDs *ReadIDSet

	Fragments []int
	Indels    []int

	Count int

	// SeqLength is the largest read length observed among contributing
	// pairs, used by the liveness and fusion-eligibility side-range floor
	// (seq_length * min_cluster_count).
	SeqLength int

	TypeTally map[SVType]int

	Merge    bool
	InvMerge bool
	InvRef   BackRef

	QC bool // true = live, false = suppressed by QC dedup
}

// Size is the spatial extent of the cluster, used for tie-breaks and merge
// gating: (p1_max-p1_min) + (p2_max-p2_min).
func (c *Cluster) Size() int {
	return (c.P1Max - c.P1Min) + (c.P2Max - c.P2Min)
}

// DominantType returns the SV type with the highest tally, breaking ties by
// the enum order declared above (UNK < INS < DEL < INV < ITX < CTX), which
// keeps DominantType a pure function of TypeTally.
func (c *Cluster) DominantType() SVType {
	best := UNK
	bestCount := -1
	for t := UNK; t <= CTX; t++ {
		if n := c.TypeTally[t]; n > bestCount {
			bestCount = n
			best = t
		}
	}
	if bestCount <= 0 {
		return UNK
	}
	return best
}

// newCluster seeds a cluster from the first discordant pair that opens it.
func newCluster(a record.Aligned) *Cluster {
	c := &Cluster{
		C1: a.C1, C2: a.C2,
		O1: a.O1, O2: a.O2,
		P1Min: a.P1, P1Max: a.P1,
		P2Min: a.P2, P2Max: a.P2,
		ReadIDs:   newReadIDSet(),
		SeqLength: a.SeqLength,
		TypeTally: make(map[SVType]int),
		QC:        true,
	}
	c.ReadIDs.Add(a.ReadID)
	return c
}
