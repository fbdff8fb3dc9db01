package container

// ResetSet is a set of integers in [0, N) that supports adding and
// membership testing in O(1) and clearing the whole set in O(1), by
// bumping a timestamp instead of zeroing the backing array. Adapted from
// the CDCL solver's seen-variable set, repurposed here for the
// simplification pass's per-rule-side literal dedup.
type ResetSet struct {
	addedAt   []uint32
	timestamp uint32
}

// NewResetSet returns an empty ResetSet accepting values in [0, capacity).
func NewResetSet(capacity int) *ResetSet {
	return &ResetSet{
		addedAt:   make([]uint32, capacity),
		timestamp: 1,
	}
}

// Contains returns true if v was added since the last Clear.
func (rs *ResetSet) Contains(v int) bool {
	return rs.addedAt[v] == rs.timestamp
}

// Add marks v as a member of the set.
func (rs *ResetSet) Add(v int) {
	rs.addedAt[v] = rs.timestamp
}

// Clear empties the set in O(1).
func (rs *ResetSet) Clear() {
	rs.timestamp++
	if rs.timestamp == 0 { // overflow, fall back to a real reset
		rs.timestamp = 1
		for i := range rs.addedAt {
			rs.addedAt[i] = 0
		}
	}
}
