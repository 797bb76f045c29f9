package rules

import "spesh/internal/graph"

// reprOpOpcodes lists the opcodes optimize_repr_op dispatches on:
// every operation whose behavior is defined by the operand's
// representation rather than by the opcode alone.
var reprOpOpcodes = map[graph.Opcode]bool{
	graph.OpBindAttrI: true, graph.OpBindAttrN: true, graph.OpBindAttrS: true, graph.OpBindAttrO: true,
	graph.OpBindAttrsI: true, graph.OpBindAttrsN: true, graph.OpBindAttrsS: true, graph.OpBindAttrsO: true,
	graph.OpGetAttrI: true, graph.OpGetAttrN: true, graph.OpGetAttrS: true, graph.OpGetAttrO: true,
	graph.OpGetAttrsI: true, graph.OpGetAttrsN: true, graph.OpGetAttrsS: true, graph.OpGetAttrsO: true,
	graph.OpBoxI: true, graph.OpBoxN: true, graph.OpBoxS: true,
	graph.OpUnboxI: true, graph.OpUnboxN: true, graph.OpUnboxS: true,
	graph.OpElems: true, graph.OpCreate: true,
}

// reprOpOperandIndex names, per opcode, which operand carries the
// object whose representation should be consulted. bindattr/getattr,
// unbox_*, elems and create read it from operand 1; box_* writes a
// fresh object into operand 0 and reads the representation off the
// type being boxed into, carried in operand 2.
var reprOpOperandIndex = map[graph.Opcode]int{
	graph.OpBindAttrI: 1, graph.OpBindAttrN: 1, graph.OpBindAttrS: 1, graph.OpBindAttrO: 1,
	graph.OpBindAttrsI: 1, graph.OpBindAttrsN: 1, graph.OpBindAttrsS: 1, graph.OpBindAttrsO: 1,
	graph.OpGetAttrI: 1, graph.OpGetAttrN: 1, graph.OpGetAttrS: 1, graph.OpGetAttrO: 1,
	graph.OpGetAttrsI: 1, graph.OpGetAttrsN: 1, graph.OpGetAttrsS: 1, graph.OpGetAttrsO: 1,
	graph.OpBoxI: 2, graph.OpBoxN: 2, graph.OpBoxS: 2,
	graph.OpUnboxI: 1, graph.OpUnboxN: 1, graph.OpUnboxS: 1,
	graph.OpElems: 1, graph.OpCreate: 1,
}

// ReprOp implements optimize_repr_op: a representation-specific
// rewrite hint is only worth asking for once the relevant operand's
// type is known, since the representation lives on the type, not on
// the instruction.
func ReprOp(g *graph.Graph, collab graph.Collaborators, bb *graph.BasicBlock, ins *graph.Instruction) error {
	if !reprOpOpcodes[ins.Opcode] {
		return nil
	}
	idx, ok := reprOpOperandIndex[ins.Opcode]
	if !ok || idx >= len(ins.Operands) {
		return nil
	}
	facts := g.FactsFor(ins.Operands[idx])
	if !facts.Flags.Has(graph.FactKnownType) {
		return nil
	}
	collab.ReprSpeshHook(facts.Type, g, bb, ins)
	return nil
}
