package postpass

import (
	"github.com/grailbio/svcaller/sv/cluster"
	"github.com/grailbio/svcaller/sv/config"
)

// pairInversions finds, within a same-chromosome/same-parity bucket, pairs
// of live INV clusters with opposite orientations and overlapping
// side-windows, and records a back-reference between them. Each cluster
// participates in at most one pairing; pairing never mutates positions,
// only InvMerge/InvRef.
func pairInversions(b *cluster.Bucket, cfg *config.Config) {
	clusters := b.Clusters()
	for i, ci := range clusters {
		if !isBaseLive(ci, cfg) || ci.InvMerge || ci.DominantType() != cluster.INV {
			continue
		}
		for j := i + 1; j < len(clusters); j++ {
			cj := clusters[j]
			if !isBaseLive(cj, cfg) || cj.InvMerge || cj.DominantType() != cluster.INV {
				continue
			}
			if !invPairable(ci, cj, cfg) {
				continue
			}
			ci.InvMerge = true
			ci.InvRef = cluster.BackRef{ChromKey: b.ChromKey(), Parity: "same", Index: j, Valid: true}
			cj.InvMerge = true
			cj.InvRef = cluster.BackRef{ChromKey: b.ChromKey(), Parity: "same", Index: i, Valid: true}
			break
		}
	}
}

// invPairable requires opposite orientations (one ++, one --) and
// side-windows that overlap within outward_max tolerance on either side
// assignment.
func invPairable(a, b *cluster.Cluster, cfg *config.Config) bool {
	if !(a.O1 == a.O2 && b.O1 == b.O2 && a.O1 != b.O1) {
		return false
	}

	am1, am2 := mid(a)
	bm1, bm2 := mid(b)

	within := func(x, y float64) bool {
		d := x - y
		if d < 0 {
			d = -d
		}
		return d <= float64(cfg.OutwardMax)
	}

	if within(am1, bm1) && within(am2, bm2) {
		return true
	}
	if within(am1, bm2) && within(am2, bm1) {
		return true
	}
	return false
}
