package postpass

import (
	"github.com/grailbio/svcaller/sv/cluster"
	"github.com/grailbio/svcaller/sv/config"
)

// fuse pairs every live outward-evidence cluster in b with every live
// inward-evidence cluster describing the same joint, merging on the first
// eligible match. A cluster merged as an outward or inward partner is
// logically deleted (set to nil in the bucket slice) rather than removed,
// so indices of untouched clusters stay stable for the remainder of the
// sweep and for the inversion-pairing sweep that follows.
func fuse(b *cluster.Bucket, cfg *config.Config) {
	clusters := b.Clusters()
	for i, outward := range clusters {
		if !isBaseLive(outward, cfg) || isInward(outward, cfg) {
			continue
		}
		for j, inward := range clusters {
			if i == j {
				continue
			}
			if !isBaseLive(inward, cfg) || !isInward(inward, cfg) {
				continue
			}
			if !seqFloorMet(inward, cfg) || !seqFloorMet(outward, cfg) {
				continue
			}
			if !fusable(outward, inward, cfg) {
				continue
			}
			mergeFusion(b, outward, inward)
			break
		}
	}
}

// isInward reports whether c is inward-evidence (size below the
// inward-spread threshold); otherwise it is outward-evidence.
func isInward(c *cluster.Cluster, cfg *config.Config) bool {
	return float64(c.Size()) < float64(cfg.InwardMax)*config.Span
}

// seqFloorMet requires each side range to span at least
// seq_length * min_cluster_count base pairs, the fusion-eligibility floor.
func seqFloorMet(c *cluster.Cluster, cfg *config.Config) bool {
	floor := c.SeqLength * cfg.MinClusterCount
	return c.P1Max-c.P1Min >= floor && c.P2Max-c.P2Min >= floor
}

// fusable implements the inward/outward fusion predicate: under the direct
// or, failing that, the swapped side assignment, orientations must disagree
// on both sides and midpoints must agree within outward_max on both sides;
// and the summed union span across both sides must stay within
// outward_max * span.
func fusable(outward, inward *cluster.Cluster, cfg *config.Config) bool {
	direct := outward.O1 != inward.O1 && outward.O2 != inward.O2
	swapped := outward.O1 != inward.O2 && outward.O2 != inward.O1

	om1, om2 := mid(outward)
	im1, im2 := mid(inward)

	within := func(a, b float64) bool {
		d := a - b
		if d < 0 {
			d = -d
		}
		return d <= float64(cfg.OutwardMax)
	}

	var matched bool
	switch {
	case direct && within(om1, im1) && within(om2, im2):
		matched = true
	case swapped && within(om1, im2) && within(om2, im1):
		matched = true
	}
	if !matched {
		return false
	}

	unionMin1, unionMax1 := union(outward.P1Min, outward.P1Max, inward.P1Min, inward.P1Max)
	unionMin2, unionMax2 := union(outward.P2Min, outward.P2Max, inward.P2Min, inward.P2Max)
	limit := float64(cfg.OutwardMax) * config.Span
	sum := (unionMax1 - unionMin1) + (unionMax2 - unionMin2)
	return float64(sum) <= limit
}

func mid(c *cluster.Cluster) (float64, float64) {
	return float64(c.P1Min+c.P1Max) / 2, float64(c.P2Min+c.P2Max) / 2
}

func union(aMin, aMax, bMin, bMax int) (int, int) {
	min, max := aMin, aMax
	if bMin < min {
		min = bMin
	}
	if bMax > max {
		max = bMax
	}
	return min, max
}

// mergeFusion folds inward into outward, or outward into inward if inward
// is spatially larger (outward evidence dominates only when it is the
// larger partner), then logically deletes the absorbed cluster from b.
func mergeFusion(b *cluster.Bucket, outward, inward *cluster.Cluster) {
	survivor, absorbed := outward, inward
	if inward.Size() > outward.Size() {
		survivor, absorbed = inward, outward
	}

	survivor.P1Min, survivor.P1Max = union(survivor.P1Min, survivor.P1Max, absorbed.P1Min, absorbed.P1Max)
	survivor.P2Min, survivor.P2Max = union(survivor.P2Min, survivor.P2Max, absorbed.P2Min, absorbed.P2Max)
	survivor.ReadIDs.UnionFrom(absorbed.ReadIDs)
	survivor.Fragments = append(survivor.Fragments, absorbed.Fragments...)
	survivor.Indels = append(survivor.Indels, absorbed.Indels...)
	survivor.Count += absorbed.Count
	if absorbed.SeqLength > survivor.SeqLength {
		survivor.SeqLength = absorbed.SeqLength
	}
	// survivor is already the larger-size partner, so its own orientation
	// and type_tally are retained as-is; only the absorbed tally folds in.
	for t, n := range absorbed.TypeTally {
		survivor.TypeTally[t] += n
	}
	survivor.Merge = true

	clusters := b.Clusters()
	for idx, c := range clusters {
		if c == absorbed {
			b.SetCluster(idx, nil)
			break
		}
	}
}
