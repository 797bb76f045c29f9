// Package callsite implements the callsite interning table: a
// process-wide, arity-indexed store of argument-shape descriptors
// that the call optimizer (internal/callopt) relies on to compare
// call shapes by pointer identity instead of by repeated structural
// comparison — two callsites compare equal by the interner iff they
// are represented by the same handle.
package callsite

// ArgFlag describes the kind of one positional or named argument
// slot in a callsite.
type ArgFlag uint8

const (
	ArgObj ArgFlag = 1 << iota
	ArgInt
	ArgNum
	ArgStr
	ArgNamed
)

// MVMInternArityLimit bounds the total flag count (positional +
// named) a callsite may have and still be eligible for interning,
// matching the source VM's MVM_INTERN_ARITY_LIMIT.
const MVMInternArityLimit = 8

// Callsite describes the shape of a call: positional argument kinds,
// how many of those are named, whether the call flattens a list of
// arguments, and (if any arguments are named) their names in order.
// Once interned, a Callsite is immutable and shared — callers must
// treat an interned Callsite as read-only for the table's lifetime.
type Callsite struct {
	ArgFlags      []ArgFlag
	NumPos        int
	ArgCount      int
	HasFlattening bool
	ArgNames      []string
	IsInterned    bool
}

// NumNameds reports how many of ArgFlags correspond to named
// arguments, derived the same way the source VM derives it:
// (arg_count - num_pos) / 2, since each named argument consumes two
// argument registers (name, value) but one flag slot.
func (cs *Callsite) NumNameds() int {
	return (cs.ArgCount - cs.NumPos) / 2
}

// NumFlags reports the total flag count: positional plus named.
func (cs *Callsite) NumFlags() int {
	return cs.NumPos + cs.NumNameds()
}

// equalTo reports whether cs and other have the same shape: identical
// flag bytes over NumFlags positions, and (if named) argument names
// that compare equal string-for-string at each position. numFlags and
// numNameds are passed in rather than recomputed, matching the source
// VM's callsites_equal signature, since both are already known to the
// caller from the bucket it is scanning.
func equalTo(cs, other *Callsite, numFlags, numNameds int) bool {
	for i := 0; i < numFlags; i++ {
		if cs.ArgFlags[i] != other.ArgFlags[i] {
			return false
		}
	}
	for i := 0; i < numNameds; i++ {
		if cs.ArgNames[i] != other.ArgNames[i] {
			return false
		}
	}
	return true
}
