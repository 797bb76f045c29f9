package callsite

import (
	"github.com/sasha-s/go-deadlock"
)

// Table is an arity-indexed callsite intern table. The zero value is
// not usable; construct with NewTable. A Table is safe for concurrent
// use: it is the one structure shared across graphs, guarded by a
// single mutex the way the source VM guards its callsite interning
// mutex.
type Table struct {
	mu      deadlock.Mutex
	buckets map[int][]*Callsite
}

// NewTable constructs an empty intern table.
func NewTable() *Table {
	return &Table{buckets: make(map[int][]*Callsite)}
}

// TryIntern attempts to replace *cs with an already-interned,
// structurally equal Callsite. If none exists, *cs is added to the
// table and marked interned in place. Three conditions make a
// callsite ineligible for interning, checked in this order, matching
// MVM_callsite_try_intern:
//
//  1. it flattens a list of arguments into the call (the set of
//     flattened values is not shape-stable),
//  2. it has named arguments but no recorded argument names (nothing
//     to compare names against),
//  3. its flag count meets or exceeds MVMInternArityLimit (the linear
//     scan cost is not worth it above this size).
//
// In all three cases TryIntern is a no-op: *cs is left as given and
// IsInterned stays false.
func (t *Table) TryIntern(cs **Callsite) {
	c := *cs
	numNameds := c.NumNameds()
	numFlags := c.NumFlags()

	if c.HasFlattening {
		return
	}
	if numNameds > 0 && c.ArgNames == nil {
		return
	}
	if numFlags >= MVMInternArityLimit {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	bucket := t.buckets[numFlags]
	for _, existing := range bucket {
		if existing.ArgCount == c.ArgCount && existing.NumPos == c.NumPos &&
			equalTo(existing, c, numFlags, numNameds) {
			*cs = existing
			return
		}
	}

	c.IsInterned = true
	t.buckets[numFlags] = appendGrowByEight(bucket, c)
}

// appendGrowByEight mirrors the source VM's bucket growth strategy:
// capacity is extended in chunks of 8 rather than relying on Go's
// default amortized-doubling slice growth, to keep this table's
// growth behavior independently testable and documented.
func appendGrowByEight(bucket []*Callsite, cs *Callsite) []*Callsite {
	if len(bucket) == cap(bucket) {
		grown := make([]*Callsite, len(bucket), cap(bucket)+8)
		copy(grown, bucket)
		bucket = grown
	}
	return append(bucket, cs)
}
