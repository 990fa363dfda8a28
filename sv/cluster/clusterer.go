package cluster

import (
	"github.com/grailbio/svcaller/sv/config"
	"github.com/grailbio/svcaller/sv/record"
)

// Clusterer partitions discordant pairs by (chromosome-pair,
// orientation-parity) and incrementally merges each new record into an
// existing cluster in its bucket, or opens a new one. It is strictly
// online: each record is consumed exactly once, in arrival order, with no
// rewind.
type Clusterer struct {
	cfg     *config.Config
	buckets map[bucketHash]*Bucket
}

// New builds an empty Clusterer.
func New(cfg *config.Config) *Clusterer {
	return &Clusterer{cfg: cfg, buckets: make(map[bucketHash]*Bucket)}
}

// Buckets returns every bucket touched so far, in no particular order. The
// post-pass operates one bucket at a time.
func (cl *Clusterer) Buckets() []*Bucket {
	out := make([]*Bucket, 0, len(cl.buckets))
	for _, b := range cl.buckets {
		out = append(out, b)
	}
	return out
}

// Add merges a into its bucket: the first cluster (in insertion order)
// whose intersect test holds and whose post-merge side ranges stay within
// OutwardMax accepts it; otherwise a new cluster is opened. This is the
// greedy, order-dependent merge strategy the specification calls out as a
// default behavior test cases rely on — first-matching, not
// closest-midpoint.
func (cl *Clusterer) Add(a record.Aligned) {
	ck := chromKey(a.C1, a.C2)
	par := orientationParity(a)
	h := hashBucket(ck, par)

	b, ok := cl.buckets[h]
	if !ok {
		b = &Bucket{chromKey: ck, par: par}
		cl.buckets[h] = b
	}

	for _, c := range b.clusters {
		if c == nil {
			continue
		}
		if c.ReadIDs.Contains(a.ReadID) {
			// Same read identifier: already merged, idempotent.
			return
		}
		assign, ok := cl.assignSides(c, a)
		if !ok {
			continue
		}
		if cl.tryMerge(c, a, assign) {
			return
		}
	}
	b.Append(newCluster(a))
}

// sideAssignment records which half of an incoming pair maps to a
// cluster's side 1 vs side 2.
type sideAssignment struct {
	p1 int
	o1 record.Orientation
	p2 int
	o2 record.Orientation
}

// assignSides implements the intersect test of the specification: for a
// same-chromosome cluster, choose whichever assignment of (a.P1,a.P2) to
// the two sides minimizes distance to the cluster's midpoints; for a
// cross-chromosome cluster, match by exact chromosome identity in either
// order. Either way, the chosen assignment must then agree in orientation
// and fall within OutwardMax of the corresponding midpoint on both sides.
func (cl *Clusterer) assignSides(c *Cluster, a record.Aligned) (sideAssignment, bool) {
	m1 := float64(c.P1Min+c.P1Max) / 2
	m2 := float64(c.P2Min+c.P2Max) / 2

	direct := sideAssignment{p1: a.P1, o1: a.O1, p2: a.P2, o2: a.O2}
	swapped := sideAssignment{p1: a.P2, o1: a.O2, p2: a.P1, o2: a.O1}

	var chosen sideAssignment
	if c.C1 == c.C2 {
		dDirect := absF(float64(direct.p1)-m1) + absF(float64(direct.p2)-m2)
		dSwapped := absF(float64(swapped.p1)-m1) + absF(float64(swapped.p2)-m2)
		if dDirect <= dSwapped {
			chosen = direct
		} else {
			chosen = swapped
		}
	} else {
		switch {
		case a.C1 == c.C1 && a.C2 == c.C2:
			chosen = direct
		case a.C1 == c.C2 && a.C2 == c.C1:
			chosen = swapped
		default:
			return sideAssignment{}, false
		}
	}

	if chosen.o1 != c.O1 || chosen.o2 != c.O2 {
		return sideAssignment{}, false
	}
	if absF(float64(chosen.p1)-m1) > float64(cl.cfg.OutwardMax) {
		return sideAssignment{}, false
	}
	if absF(float64(chosen.p2)-m2) > float64(cl.cfg.OutwardMax) {
		return sideAssignment{}, false
	}
	return chosen, true
}

// tryMerge attempts to fold a into c under the given side assignment. It
// commits the merge (updating ranges, read IDs, fragments, indels, count
// and type tally) only if the resulting side ranges stay within
// OutwardMax; otherwise c is left untouched and false is returned so the
// caller can keep searching the bucket.
func (cl *Clusterer) tryMerge(c *Cluster, a record.Aligned, assign sideAssignment) bool {
	newP1Min, newP1Max := minMax(c.P1Min, c.P1Max, assign.p1)
	newP2Min, newP2Max := minMax(c.P2Min, c.P2Max, assign.p2)

	if newP1Max-newP1Min > cl.cfg.OutwardMax {
		return false
	}
	if newP2Max-newP2Min > cl.cfg.OutwardMax {
		return false
	}

	c.P1Min, c.P1Max = newP1Min, newP1Max
	c.P2Min, c.P2Max = newP2Min, newP2Max
	c.ReadIDs.Add(a.ReadID)
	c.Count++
	c.Fragments = append(c.Fragments, a.TLen)
	if a.SeqLength > c.SeqLength {
		c.SeqLength = a.SeqLength
	}

	t, indel := voteType(a, cl.cfg)
	c.TypeTally[t]++
	if t == INS || t == DEL {
		c.Indels = append(c.Indels, indel)
	}
	return true
}

func minMax(curMin, curMax, p int) (int, int) {
	min, max := curMin, curMax
	if p < min {
		min = p
	}
	if p > max {
		max = p
	}
	return min, max
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// voteType implements the initial SV-type vote of the specification,
// recorded into TypeTally as each pair is fused.
func voteType(a record.Aligned, cfg *config.Config) (SVType, int) {
	if a.C1 != a.C2 {
		return CTX, 0
	}
	if a.O1 == a.O2 {
		return INV, 0
	}
	if record.IsRF(a) {
		switch {
		case a.TLen < cfg.OutwardMin:
			return INS, cfg.OutwardMin - a.TLen
		case a.TLen > cfg.OutwardMax:
			return DEL, a.TLen - cfg.OutwardMax
		default:
			return UNK, 0
		}
	}
	if record.IsFR(a) {
		return ITX, 0
	}
	return UNK, 0
}
