package rules

import "spesh/internal/graph"

// IsConcrete implements isconcrete: when the operand is known to be
// either definitely concrete or definitely a type object, the check
// collapses to a constant.
func IsConcrete(g *graph.Graph, _ graph.Collaborators, _ *graph.BasicBlock, ins *graph.Instruction) error {
	if ins.Opcode != graph.OpIsConcrete {
		return nil
	}
	dst, src := ins.Operands[0], ins.Operands[1]
	facts := g.FactsFor(src)
	switch {
	case facts.Flags.Has(graph.FactConcrete):
		replaceWithConstI(g, ins, dst, 1)
		facts.Usages--
	case facts.Flags.Has(graph.FactTypeObj):
		replaceWithConstI(g, ins, dst, 0)
		facts.Usages--
	}
	return nil
}
