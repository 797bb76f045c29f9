// Package rules implements the per-opcode rewrite rules the driver
// (internal/optimize) fires in dominator order over a graph.Graph.
// Each rule inspects the facts already known about an
// instruction's operands and, when those facts let it resolve the
// instruction's outcome statically, rewrites the instruction in
// place. A rule that cannot resolve anything leaves the instruction
// untouched and returns nil — the "don't know yet" outcome is not an
// error, just the common case.
package rules

import (
	"spesh/internal/graph"
	"spesh/internal/vmerr"
)

// Rule is the signature every per-opcode rewrite function shares. The
// driver calls a Rule with the instruction it is currently visiting;
// a Rule may delete ins, rewrite it in place, or replace it with a
// different instruction sequence via g/bb. It returns a non-nil error
// only for a Fatal condition — a genuine programmer/graph-invariant
// violation, never a missed optimization opportunity.
type Rule func(g *graph.Graph, collab graph.Collaborators, bb *graph.BasicBlock, ins *graph.Instruction) error

// replaceWithConstI rewrites ins in place into a const_i64_16 that
// writes v into ins's destination register, matching the source VM's
// habit of turning a resolved predicate into a cheap materialized
// constant rather than deleting-and-re-deriving. It also propagates
// KNOWN_VALUE onto dst, since a register now holding a materialized
// constant is itself a statically known value for anything reading it
// downstream. Callers remain responsible for decrementing the usage
// counts of whatever operands they stopped reading to fold the value.
func replaceWithConstI(g *graph.Graph, ins *graph.Instruction, dst graph.Operand, v int64) {
	ins.Opcode = graph.OpConstI64_16
	ins.Operands = []graph.Operand{dst, graph.I64Operand(v)}
	dstFacts := g.FactsDirect(dst)
	dstFacts.Flags |= graph.FactKnownValue
	dstFacts.Value = graph.TaggedValue{Int: v}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func fatalUnhandledOpcode(op graph.Opcode) error {
	return vmerr.NewFatal("rules: unhandled opcode %s", op)
}

// Table builds the opcode -> Rule dispatch table the driver consults
// for every instruction it visits in dominator order. canOpEnabled
// threads through the one rule that is gated by a config flag rather
// than always being safe to fire.
func Table(canOpEnabled bool) map[graph.Opcode]Rule {
	canOp := CanOp(canOpEnabled)
	t := map[graph.Opcode]Rule{
		graph.OpSet:                Set,
		graph.OpIfI:                Iffy,
		graph.OpUnlessI:            Iffy,
		graph.OpIfN:                Iffy,
		graph.OpUnlessN:            Iffy,
		graph.OpIfO:                Iffy,
		graph.OpUnlessO:            Iffy,
		graph.OpIfNonNull:          Iffy,
		graph.OpIsList:             IsReprID,
		graph.OpIsHash:             IsReprID,
		graph.OpIsInt:              IsReprID,
		graph.OpIsNum:              IsReprID,
		graph.OpIsStr:              IsReprID,
		graph.OpIsConcrete:         IsConcrete,
		graph.OpIsType:             IsType,
		graph.OpFindMeth:           FindMeth,
		graph.OpCan:                canOp,
		graph.OpCanS:               canOp,
		graph.OpHllize:             Hllize,
		graph.OpDecont:             Decont,
		graph.OpAssertParamCheck:   AssertParamCheck,
		graph.OpCoerceIN:           Coerce,
	}
	for op := range reprOpOpcodes {
		t[op] = ReprOp
	}
	t[graph.OpGetLexStaticO] = GetLexKnown
	t[graph.OpGetLexPerInvTypeO] = GetLexKnown
	return t
}
