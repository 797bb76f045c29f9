package rules

import "spesh/internal/graph"

// Coerce implements optimize_coerce: coerce_in converts an int
// register to a num register, which folds to a num constant whenever
// the source int is itself a known constant.
func Coerce(g *graph.Graph, _ graph.Collaborators, _ *graph.BasicBlock, ins *graph.Instruction) error {
	if ins.Opcode != graph.OpCoerceIN {
		return nil
	}
	dst, src := ins.Operands[0], ins.Operands[1]
	facts := g.FactsFor(src)
	if !facts.Flags.Has(graph.FactKnownValue) || facts.Value.IsObj || facts.Value.IsStr {
		return nil
	}
	ins.Opcode = graph.OpConstN64
	ins.Operands = []graph.Operand{dst, graph.N64Operand(float64(facts.Value.Int))}
	dstFacts := g.FactsDirect(dst)
	dstFacts.Flags |= graph.FactKnownValue
	dstFacts.Value = graph.TaggedValue{Num: float64(facts.Value.Int), IsNum: true}
	return nil
}
