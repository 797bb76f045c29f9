package rules

import "spesh/internal/graph"

// AssertParamCheck implements optimize_assertparamcheck: when the
// guarded condition is statically known to be true, the check can
// never fail at runtime and the instruction is dead. When it is known
// false, the instruction must stay — it is what actually raises the
// parameter-binding error at runtime, and removing it would silently
// drop a program-visible failure.
func AssertParamCheck(g *graph.Graph, _ graph.Collaborators, bb *graph.BasicBlock, ins *graph.Instruction) error {
	if ins.Opcode != graph.OpAssertParamCheck {
		return nil
	}
	cond := ins.Operands[0]
	facts := g.FactsFor(cond)
	if !facts.Flags.Has(graph.FactKnownValue) {
		return nil
	}
	if facts.Value.Int != 0 {
		facts.Usages--
		graph.DeleteIns(bb, ins)
	}
	return nil
}
