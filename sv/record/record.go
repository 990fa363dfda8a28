// Package record decodes aligned-record tuples from a stream of SAM/BAM
// records. It is the leaf of the pipeline: everything downstream consumes
// only the normalized Aligned value, never a *sam.Record directly.
package record

import (
	"github.com/grailbio/hts/sam"
)

// Orientation is the strand an aligned half of a pair was mapped to.
type Orientation byte

const (
	// Forward is the '+' orientation.
	Forward Orientation = '+'
	// Reverse is the '-' orientation.
	Reverse Orientation = '-'
)

// Aligned is the normalized, immutable per-pair tuple described by the
// specification: one value is produced per admissible alignment record, so
// each mate of a pair yields its own value (both share ReadID), carrying
// everything downstream components need and nothing they don't (no CIGAR,
// no quality string).
type Aligned struct {
	ReadID string

	C1  string
	P1  int
	O1  Orientation
	C2  string
	P2  int
	O2  Orientation

	TLen int // absolute template length

	MapQ      byte
	UniqueTag bool // XT:A:U present
	SeqLength int
}

var uniqueMappingTag = sam.NewTag("XT")

// FromRecord reduces a *sam.Record into an Aligned tuple. Orientation is
// derived from the Reverse/MateReverse flag bits (values 16 and 32 in the
// raw BAM FLAG field); the mate-chromosome self-reference ("=") is already
// resolved to the primary reference by the sam package, so C2 collapses to
// C1 naturally whenever MateRef == Ref.
//
// FromRecord does not filter; it only normalizes. Flag-based rejection is
// Admissible's job; mask-based rejection happens in package mask.
func FromRecord(r *sam.Record) (Aligned, bool) {
	if r.Ref == nil || r.MateRef == nil {
		return Aligned{}, false
	}

	o1 := Forward
	if r.Flags&sam.Reverse != 0 {
		o1 = Reverse
	}
	o2 := Forward
	if r.Flags&sam.MateReverse != 0 {
		o2 = Reverse
	}

	tlen := r.TempLen
	if tlen < 0 {
		tlen = -tlen
	}

	a := Aligned{
		ReadID:    r.Name,
		C1:        r.Ref.Name(),
		P1:        r.Pos + 1, // spec positions are 1-based
		O1:        o1,
		C2:        r.MateRef.Name(),
		P2:        r.MatePos + 1,
		O2:        o2,
		TLen:      tlen,
		MapQ:      r.MapQ,
		SeqLength: r.Seq.Length,
	}
	if aux := r.AuxFields.Get(uniqueMappingTag); aux != nil {
		if v, ok := aux.Value().(string); ok && v == "U" {
			a.UniqueTag = true
		}
	}
	return a, true
}

// RequiredFlags and ExcludedFlags implement the flag filter the caller
// requests from the aligner: paired, and none of
// duplicate/QC-fail/secondary/supplementary/unmapped/mate-unmapped. That is
// "-f 1 -F 1804" with supplementary (2048) excluded as well, i.e. -F 3852.
const (
	RequiredFlags = sam.Paired
	ExcludedFlags = sam.Duplicate | sam.QCFail | sam.Secondary |
		sam.Supplementary | sam.Unmapped | sam.MateUnmapped
)

// Admissible reports whether r passes the flag filter the caller requests
// from the aligner, independent of mask/insert-size filtering.
func Admissible(r *sam.Record) bool {
	return r.Flags&RequiredFlags == RequiredFlags && r.Flags&ExcludedFlags == 0
}
