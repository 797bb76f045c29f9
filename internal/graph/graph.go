package graph

// GuardKind enumerates the kinds of argument guard a spesh candidate
// can carry.
type GuardKind int

const (
	GuardUnknown GuardKind = iota
	GuardConc
	GuardType
	GuardDCConc
	GuardDCType
)

// ArgGuard describes the condition under which a specialization is
// valid for one argument slot: the slot index, the guard kind, and
// the expected type it must match against.
type ArgGuard struct {
	Slot   int
	Kind   GuardKind
	Expect TypeHandle
}

// LogGuard pairs a runtime-recorded guard instruction with whether
// any optimization ended up consuming the observation it recorded.
// Guards left unused after optimization are dead and are deleted by
// the cleanup pass.
type LogGuard struct {
	BB   *BasicBlock
	Ins  *Instruction
	Used bool
}

// Graph is the spesh graph for one routine, one argument profile: the
// in-memory IR the optimizer mutates in place. A Graph is owned
// exclusively by the thread running Optimize on it; nothing in
// this package synchronizes access to a Graph's fields.
type Graph struct {
	Entry  *BasicBlock
	NumBBs int

	// HLL names the high-level language this routine belongs to. The
	// hllize rule compares a value's own HLL against this one to
	// decide whether localizing it is a no-op.
	HLL string

	facts map[Reg]*Facts

	SpeshSlots []ObjectHandle

	ArgGuards []ArgGuard
	LogGuards []*LogGuard

	nextInsID int
}

// NewGraph creates an empty graph rooted at entry.
func NewGraph(entry *BasicBlock) *Graph {
	return &Graph{
		Entry:  entry,
		NumBBs: 1,
		facts:  make(map[Reg]*Facts),
	}
}

// FactsDirect obtains the facts for an operand without recording any
// usage, mirroring the source's get_facts_direct — used internally by
// CopyFrom-style rewrites that must not themselves count as a use.
func (g *Graph) FactsDirect(o Operand) *Facts {
	if o.Kind != OperandReg {
		panic("graph: FactsDirect on non-register operand")
	}
	f, ok := g.facts[o.Reg]
	if !ok {
		f = &Facts{}
		g.facts[o.Reg] = f
	}
	return f
}

// FactsFor obtains the facts for an operand, marking the originating
// log guard (if any) as used — the optimizer's ordinary way of
// reading facts, matching MVM_spesh_get_facts. Any rule that inspects
// a register's facts in order to make an optimization decision must
// go through FactsFor, not FactsDirect, so that log guards whose
// observation actually influenced codegen are kept.
func (g *Graph) FactsFor(o Operand) *Facts {
	f := g.FactsDirect(o)
	if f.Flags.Has(FactFromLogGuard) {
		if int(f.LogGuard) < len(g.LogGuards) {
			g.LogGuards[f.LogGuard].Used = true
		}
	}
	return f
}

// AddSpeshSlot appends c to the spesh-slot table and returns its
// index. Growth is chunked by 8 to amortize allocation — Go's append
// would do this adequately on its own, but the explicit chunking
// documents the invariant that slot indices, once handed out, are
// never invalidated by a later grow.
func (g *Graph) AddSpeshSlot(c ObjectHandle) int16 {
	if cap(g.SpeshSlots) == len(g.SpeshSlots) {
		grown := make([]ObjectHandle, len(g.SpeshSlots), len(g.SpeshSlots)+8)
		copy(grown, g.SpeshSlots)
		g.SpeshSlots = grown
	}
	g.SpeshSlots = append(g.SpeshSlots, c)
	return int16(len(g.SpeshSlots) - 1)
}

// AddLogGuard registers ins as a log guard in bb and returns its
// index, for use as a Facts.LogGuard payload.
func (g *Graph) AddLogGuard(bb *BasicBlock, ins *Instruction) int32 {
	g.LogGuards = append(g.LogGuards, &LogGuard{BB: bb, Ins: ins})
	return int32(len(g.LogGuards) - 1)
}
