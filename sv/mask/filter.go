package mask

import (
	"sync"

	"github.com/blainsmith/seahash"

	"github.com/grailbio/svcaller/sv/config"
	"github.com/grailbio/svcaller/sv/record"
)

const numRejectShards = 256

// rejectedMates remembers read identifiers whose first-seen half was
// rejected, so the other half is dropped too when it is encountered later
// in the stream — the two mates of a pair must be judged together. It is
// sharded by a fast non-cryptographic hash of the read name, the same shape
// of read-name-keyed sharded map used elsewhere in this stack for mate
// bookkeeping, even though this filter itself runs single-threaded; the
// shape keeps Filter safe to drive from multiple decode goroutines later
// without a redesign.
type rejectedMates struct {
	shards [numRejectShards]struct {
		mu   sync.Mutex
		seen map[string]struct{}
	}
}

func newRejectedMates() *rejectedMates {
	rm := &rejectedMates{}
	for i := range rm.shards {
		rm.shards[i].seen = make(map[string]struct{})
	}
	return rm
}

func (rm *rejectedMates) shardFor(readID string) *struct {
	mu   sync.Mutex
	seen map[string]struct{}
} {
	h := seahash.Sum64([]byte(readID))
	return &rm.shards[h%numRejectShards]
}

func (rm *rejectedMates) mark(readID string) {
	s := rm.shardFor(readID)
	s.mu.Lock()
	s.seen[readID] = struct{}{}
	s.mu.Unlock()
}

func (rm *rejectedMates) wasRejected(readID string) bool {
	s := rm.shardFor(readID)
	s.mu.Lock()
	_, ok := s.seen[readID]
	s.mu.Unlock()
	return ok
}

// Filter applies mapping-quality, unique-tag, mask-containment and
// concordant-pair rejection to a stream of record.Aligned values, and
// ensures that once either half of a pair is rejected the other half is
// dropped too, even if it arrives later in the stream.
type Filter struct {
	mask *Set
	cfg  *config.Config
	seen *rejectedMates
}

// NewFilter builds a Filter. mask may be Empty() when no mask is
// configured.
func NewFilter(mask *Set, cfg *config.Config) *Filter {
	return &Filter{mask: mask, cfg: cfg, seen: newRejectedMates()}
}

// Keep reports whether a should proceed to the clusterer. It mutates the
// filter's cross-mate memory as a side effect.
func (f *Filter) Keep(a record.Aligned) bool {
	if f.seen.wasRejected(a.ReadID) {
		return false
	}
	if f.reject(a) {
		f.seen.mark(a.ReadID)
		return false
	}
	return true
}

func (f *Filter) reject(a record.Aligned) bool {
	if int(a.MapQ) < f.cfg.MinMappingQuality {
		return true
	}
	if f.cfg.UniqueMapping && !a.UniqueTag {
		return true
	}
	if f.mask.Contains(a.C1, a.P1) || f.mask.Contains(a.C2, a.P2) {
		return true
	}
	if a.C1 == a.C2 && concordant(a, f.cfg) {
		return true
	}
	return false
}

func concordant(a record.Aligned, cfg *config.Config) bool {
	if a.O1 == a.O2 {
		return false
	}
	if a.TLen <= cfg.InwardMax && record.IsFR(a) {
		return true
	}
	if a.TLen >= cfg.OutwardMin && a.TLen <= cfg.OutwardMax && record.IsRF(a) {
		return true
	}
	return false
}
