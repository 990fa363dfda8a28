// Package emit re-derives the dominant SV type of each live cluster,
// reorients coordinates to the inward-pair convention, and builds the
// classified Event records that sv/svp serializes. It contains no I/O: the
// caller hands emit.Classify its buckets and writes the resulting events
// through whichever sv/svp writers it wants.
package emit

import (
	"github.com/grailbio/svcaller/sv/cluster"
	"github.com/grailbio/svcaller/sv/config"
	"github.com/grailbio/svcaller/sv/postpass"
	"github.com/grailbio/svcaller/sv/record"
)

// Event is a finished, classified structural-variant call, oriented and
// sized, ready for serialization.
type Event struct {
	Type cluster.SVType

	C1, C2       string
	P1, P2       int
	O1, O2       record.Orientation
	Size         int
	Count        int
	Merge        bool
	InvMerge     bool
	MateOf       *Event // set on both CTX records of a pair, pointing at the other
	AnnotationNR int    // read-pair support count, duplicated into the NR tag
}

// invert flips a stored strand to the inward-pair convention the wire
// format expects: the observable orientation is the complement of the
// internally-tracked one.
func invert(o record.Orientation) record.Orientation {
	if o == record.Forward {
		return record.Reverse
	}
	return record.Forward
}

// Classify walks every live, non-absorbed cluster across buckets and
// produces the Events the specification's emitter branch selects by
// dominant type. Clusters already consumed as an inversion or fusion
// partner are skipped: fusion survivors carry Merge=true and superseded
// partners are nil'd out of their bucket by postpass; inversion partners
// are emitted once, as a single composite event, by the owning (lower
// bucket index) cluster only.
func Classify(buckets []*cluster.Bucket, cfg *config.Config) []Event {
	var events []Event
	for _, b := range buckets {
		clusters := b.Clusters()
		consumed := make(map[int]bool)
		for i, c := range clusters {
			if c == nil || consumed[i] {
				continue
			}
			if !liveForEmit(c, cfg) {
				continue
			}
			if c.InvMerge {
				if !c.InvRef.Valid || c.InvRef.Index <= i {
					// Partner already emitted this pair (or missing); skip.
					continue
				}
				partner := clusters[c.InvRef.Index]
				if partner == nil {
					continue
				}
				if ev, ok := classifyInversionPair(c, partner); ok {
					events = append(events, ev)
				}
				consumed[c.InvRef.Index] = true
				continue
			}
			events = append(events, classifyOne(c)...)
		}
	}
	return events
}

func liveForEmit(c *cluster.Cluster, cfg *config.Config) bool {
	return postpass.IsLive(c, cfg)
}

// classifyOne dispatches a single (non-paired-inversion) cluster to its
// emission branch, returning zero, one, or two events (CTX emits a pair).
func classifyOne(c *cluster.Cluster) []Event {
	switch c.DominantType() {
	case cluster.INS, cluster.DEL:
		if ev, ok := classifyIndel(c); ok {
			return []Event{ev}
		}
	case cluster.ITX:
		if ev, ok := classifyITX(c); ok {
			return []Event{ev}
		}
	case cluster.CTX:
		return classifyCTX(c)
	case cluster.INV:
		return []Event{classifyUnpairedInversion(c)}
	}
	return nil
}

// classifyIndel implements the INS/DEL branch: sv_size is the mean of
// indels; the orientation is reoriented so the smaller midpoint side
// writes p1_max and the larger writes p2_min; emission requires
// p2_min > p1_max and sv_size > window.
func classifyIndel(c *cluster.Cluster) (Event, bool) {
	if len(c.Indels) == 0 {
		return Event{}, false
	}
	sum := 0
	for _, v := range c.Indels {
		sum += v
	}
	size := sum / len(c.Indels)

	m1 := (c.P1Min + c.P1Max) / 2
	m2 := (c.P2Min + c.P2Max) / 2
	p1, p2 := c.P1Max, c.P2Min
	if m2 < m1 {
		p1, p2 = c.P2Max, c.P1Min
	}
	if p2 <= p1 || size <= config.Window {
		return Event{}, false
	}
	return Event{
		Type: c.DominantType(), C1: c.C1, C2: c.C2,
		P1: p1, P2: p2,
		O1: invert(c.O1), O2: invert(c.O2),
		Size: size, Count: c.Count, Merge: c.Merge,
		AnnotationNR: c.ReadIDs.Len(),
	}, true
}

// classifyITX sizes the gap between the outer bounds on the low-midpoint
// and high-midpoint sides and emits only if positive.
func classifyITX(c *cluster.Cluster) (Event, bool) {
	m1 := (c.P1Min + c.P1Max) / 2
	m2 := (c.P2Min + c.P2Max) / 2

	loMax, hiMin := c.P1Max, c.P2Min
	if m2 < m1 {
		loMax, hiMin = c.P2Max, c.P1Min
	}
	size := hiMin - loMax
	if size <= 0 {
		return Event{}, false
	}
	return Event{
		Type: cluster.ITX, C1: c.C1, C2: c.C2,
		P1: loMax, P2: hiMin,
		O1: invert(c.O1), O2: invert(c.O2),
		Size: size, Count: c.Count, Merge: c.Merge,
		AnnotationNR: c.ReadIDs.Len(),
	}, true
}

// classifyCTX emits the two paired records the specification requires for
// an inter-chromosomal event, each carrying the other's chromosome/position
// as its mate coordinates.
func classifyCTX(c *cluster.Cluster) []Event {
	a := Event{
		Type: cluster.CTX, C1: c.C1, C2: c.C2,
		P1: c.P1Max, P2: c.P2Min,
		O1: invert(c.O1), O2: invert(c.O2),
		Count: c.Count, Merge: c.Merge,
		AnnotationNR: c.ReadIDs.Len(),
	}
	b := Event{
		Type: cluster.CTX, C1: c.C2, C2: c.C1,
		P1: c.P2Min, P2: c.P1Max,
		O1: invert(c.O2), O2: invert(c.O1),
		Count: c.Count, Merge: c.Merge,
		AnnotationNR: c.ReadIDs.Len(),
	}
	events := []Event{a, b}
	events[0].MateOf, events[1].MateOf = &events[1], &events[0]
	return events
}

// classifyUnpairedInversion emits a single inversion record whose anchor on
// each side depends on the stored orientation: '+' uses the side minimum,
// '-' uses the side maximum.
func classifyUnpairedInversion(c *cluster.Cluster) Event {
	a1 := anchor(c.O1, c.P1Min, c.P1Max)
	a2 := anchor(c.O2, c.P2Min, c.P2Max)
	size := a2 - a1
	if size < 0 {
		size = -size
	}
	return Event{
		Type: cluster.INV, C1: c.C1, C2: c.C2,
		P1: a1, P2: a2,
		O1: invert(c.O1), O2: invert(c.O2),
		Size: size, Count: c.Count, Merge: c.Merge,
		AnnotationNR: c.ReadIDs.Len(),
	}
}

func anchor(o record.Orientation, min, max int) int {
	if o == record.Forward {
		return min
	}
	return max
}

// classifyInversionPair builds the single composite event a balanced
// inversion pairing emits: the four per-side anchors of the two clusters,
// sorted, must alternate between cluster and orientation; the event spans
// anchors [0] and [3].
func classifyInversionPair(a, b *cluster.Cluster) (Event, bool) {
	type tagged struct {
		pos    int
		from   int // 0 = a, 1 = b
		orient record.Orientation
	}
	anchors := []tagged{
		{anchor(a.O1, a.P1Min, a.P1Max), 0, a.O1},
		{anchor(a.O2, a.P2Min, a.P2Max), 0, a.O2},
		{anchor(b.O1, b.P1Min, b.P1Max), 1, b.O1},
		{anchor(b.O2, b.P2Min, b.P2Max), 1, b.O2},
	}
	for i := 0; i < len(anchors); i++ {
		for j := i + 1; j < len(anchors); j++ {
			if anchors[j].pos < anchors[i].pos {
				anchors[i], anchors[j] = anchors[j], anchors[i]
			}
		}
	}
	for i := 1; i < len(anchors); i++ {
		if anchors[i].from == anchors[i-1].from || anchors[i].orient == anchors[i-1].orient {
			return Event{}, false
		}
	}

	size := anchors[3].pos - anchors[0].pos
	return Event{
		Type: cluster.INV, C1: a.C1, C2: a.C2,
		P1: anchors[0].pos, P2: anchors[3].pos,
		O1: invert(anchors[0].orient), O2: invert(anchors[3].orient),
		Size: size, Count: a.Count + b.Count, InvMerge: true,
		AnnotationNR: a.ReadIDs.Len() + b.ReadIDs.Len(),
	}, true
}
