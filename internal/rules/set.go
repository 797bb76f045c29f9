package rules

import "spesh/internal/graph"

// Set implements the `set dst, src` fact-propagation rule: dst's
// facts become a copy of src's, the same way the driver's handling of
// MVM_OP_set lets every later rule see through a register copy
// without special-casing it. Set never rewrites or deletes the
// instruction itself; copy elimination is left to eliminate_dead_ins,
// which can only remove it once nothing downstream still reads dst
// through a path that depends on it being a separate register.
func Set(g *graph.Graph, _ graph.Collaborators, _ *graph.BasicBlock, ins *graph.Instruction) error {
	if ins.Opcode != graph.OpSet {
		return nil
	}
	dst, src := ins.Operands[0], ins.Operands[1]
	srcFacts := g.FactsFor(src)
	dstFacts := g.FactsDirect(dst)
	dstFacts.CopyFrom(srcFacts)
	return nil
}
