package cluster

import (
	"github.com/minio/highwayhash"
)

// readIDKey is a fixed-size highwayhash fingerprint of a read identifier,
// the same shape used elsewhere in this stack to turn a variable-length key
// into a fixed-size map key. The fingerprint is recomputed from the string
// on every Contains and Add, including the Adds UnionFrom makes.
type readIDKey = [highwayhash.Size]byte

var zeroHashKey = readIDKey{}

func keyFor(readID string) readIDKey {
	return readIDKey(highwayhash.Sum([]byte(readID), zeroHashKey[:]))
}

// ReadIDSet is the set of read identifiers that have already contributed a
// half-pair to a cluster. Membership suppresses double-fusing the two
// mates of the same pair; it is never used to remove a read once added.
type ReadIDSet struct {
	keys map[readIDKey]struct{}
	ids  []string
}

func newReadIDSet() *ReadIDSet {
	return &ReadIDSet{keys: make(map[readIDKey]struct{})}
}

// NewReadIDSetForTest builds an empty ReadIDSet for use by other packages'
// tests that need to construct a Cluster literal directly instead of
// driving it through Clusterer.Add.
func NewReadIDSetForTest() *ReadIDSet { return newReadIDSet() }

// Contains reports whether id has already been added.
func (s *ReadIDSet) Contains(id string) bool {
	_, ok := s.keys[keyFor(id)]
	return ok
}

// Add records id, if not already present.
func (s *ReadIDSet) Add(id string) {
	k := keyFor(id)
	if _, ok := s.keys[k]; ok {
		return
	}
	s.keys[k] = struct{}{}
	s.ids = append(s.ids, id)
}

// Len reports the number of distinct read identifiers recorded.
func (s *ReadIDSet) Len() int { return len(s.ids) }

// IDs returns the read identifiers in insertion order. The caller must not
// mutate the returned slice.
func (s *ReadIDSet) IDs() []string { return s.ids }

// UnionFrom adds every identifier of other into s.
func (s *ReadIDSet) UnionFrom(other *ReadIDSet) {
	for _, id := range other.ids {
		s.Add(id)
	}
}
