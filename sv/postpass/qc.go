package postpass

import (
	"github.com/grailbio/svcaller/sv/cluster"
	"github.com/grailbio/svcaller/sv/config"
)

// qcDedup suppresses overlapping live clusters within a bucket, keeping the
// one with the larger Count (ties broken by larger Size; a double tie
// suppresses both). It never mutates cluster structure, only the QC flag.
func qcDedup(b *cluster.Bucket, cfg *config.Config) {
	clusters := b.Clusters()
	for i := range clusters {
		ci := clusters[i]
		if !isBaseLive(ci, cfg) {
			continue
		}
		for j := i + 1; j < len(clusters); j++ {
			cj := clusters[j]
			if !isBaseLive(cj, cfg) {
				continue
			}
			if !ci.QC {
				break
			}
			if !overlaps(ci, cj, b.Same()) {
				continue
			}
			switch {
			case ci.Count > cj.Count:
				cj.QC = false
			case cj.Count > ci.Count:
				ci.QC = false
			case ci.Size() > cj.Size():
				cj.QC = false
			case cj.Size() > ci.Size():
				ci.QC = false
			default:
				ci.QC = false
				cj.QC = false
			}
		}
	}
}

// overlaps implements cluster_intersect?: two clusters overlap if both
// side ranges intersect, under either the direct orientation match or —
// for same-chromosome, same-orientation-parity buckets — the swapped
// match.
func overlaps(a, b *cluster.Cluster, sameParity bool) bool {
	if a.O1 == b.O1 && a.O2 == b.O2 {
		if rangesOverlap(a.P1Min, a.P1Max, b.P1Min, b.P1Max) &&
			rangesOverlap(a.P2Min, a.P2Max, b.P2Min, b.P2Max) {
			return true
		}
	}
	if sameParity && a.C1 == a.C2 && a.O1 == b.O2 && a.O2 == b.O1 {
		if rangesOverlap(a.P1Min, a.P1Max, b.P2Min, b.P2Max) &&
			rangesOverlap(a.P2Min, a.P2Max, b.P1Min, b.P1Max) {
			return true
		}
	}
	return false
}

func rangesOverlap(aMin, aMax, bMin, bMax int) bool {
	return aMin <= bMax && bMin <= aMax
}
