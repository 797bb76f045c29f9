package rules

import "spesh/internal/graph"

// reprIDByOpcode maps each representation-id predicate opcode to the
// ReprID it tests for, per optimize_is_reprid's switch on the opcode
// being optimized.
var reprIDByOpcode = map[graph.Opcode]graph.ReprID{
	graph.OpIsList: graph.ReprIDMVMArray,
	graph.OpIsHash: graph.ReprIDMVMHash,
	graph.OpIsInt:  graph.ReprIDP6int,
	graph.OpIsNum:  graph.ReprIDP6num,
	graph.OpIsStr:  graph.ReprIDP6str,
}

// IsReprID implements islist/ishash/isint/isnum/isstr. When the
// operand's type is known statically, the representation either
// cannot match (rewritten to a constant 0 — it will never match
// regardless of concreteness) or can match (rewritten to isnonnull,
// since a type object of the right representation still answers false
// until it is instantiated).
func IsReprID(g *graph.Graph, _ graph.Collaborators, _ *graph.BasicBlock, ins *graph.Instruction) error {
	want, ok := reprIDByOpcode[ins.Opcode]
	if !ok {
		return nil
	}
	dst, src := ins.Operands[0], ins.Operands[1]
	facts := g.FactsFor(src)
	if !facts.Flags.Has(graph.FactKnownType) {
		return nil
	}
	if facts.Type.ReprID() != want {
		replaceWithConstI(g, ins, dst, 0)
		facts.Usages--
		return nil
	}
	ins.Opcode = graph.OpIsNonNull
	ins.Operands = []graph.Operand{dst, src}
	return nil
}
