package rules

import "spesh/internal/graph"

// Hllize implements optimize_hllize: localizing a value into the
// graph's own HLL is a no-op whenever the value's type already
// belongs to that HLL, in which case hllize degenerates to a plain
// register copy and can be folded the same way Set is.
func Hllize(g *graph.Graph, _ graph.Collaborators, _ *graph.BasicBlock, ins *graph.Instruction) error {
	if ins.Opcode != graph.OpHllize {
		return nil
	}
	dst, src := ins.Operands[0], ins.Operands[1]
	facts := g.FactsFor(src)
	if !facts.Flags.Has(graph.FactKnownType) || facts.Type.HLL() != g.HLL {
		return nil
	}
	ins.Opcode = graph.OpSet
	ins.Operands = []graph.Operand{dst, src}
	g.FactsDirect(dst).CopyFrom(facts)
	return nil
}
