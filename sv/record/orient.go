package record

// IsFR reports whether a is inward-facing (the leftmost mate maps to the
// forward strand, the two mates point toward each other). Undefined
// (returns false) when O1 == O2.
func IsFR(a Aligned) bool {
	if a.O1 == a.O2 {
		return false
	}
	switch {
	case a.P1 < a.P2:
		return a.O1 == Forward
	case a.P2 < a.P1:
		return a.O2 == Forward
	default:
		return a.O1 == Forward || a.O2 == Forward
	}
}

// IsRF reports whether a is outward-facing (the leftmost mate maps to the
// reverse strand, the two mates point away from each other) —
// characteristic of a mate-pair/Nextera library. Undefined (returns false)
// when O1 == O2.
func IsRF(a Aligned) bool {
	if a.O1 == a.O2 {
		return false
	}
	switch {
	case a.P1 < a.P2:
		return a.O1 == Reverse
	case a.P2 < a.P1:
		return a.O2 == Reverse
	default:
		return a.O1 == Reverse || a.O2 == Reverse
	}
}
