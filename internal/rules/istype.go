package rules

import "spesh/internal/graph"

// IsType implements istype: when both the checked object's type and
// the comparison type are known, the type-check cache is consulted
// through Collaborators.TryCacheTypeCheck. A cache miss (ok=false)
// means the answer isn't known well enough to fold, so the
// instruction is left alone rather than guessed at.
func IsType(g *graph.Graph, collab graph.Collaborators, _ *graph.BasicBlock, ins *graph.Instruction) error {
	if ins.Opcode != graph.OpIsType {
		return nil
	}
	dst, objOperand, wantOperand := ins.Operands[0], ins.Operands[1], ins.Operands[2]

	objFacts := g.FactsFor(objOperand)
	wantFacts := g.FactsFor(wantOperand)
	if !objFacts.Flags.Has(graph.FactKnownType) || !wantFacts.Flags.Has(graph.FactKnownType) {
		return nil
	}
	result, ok := collab.TryCacheTypeCheck(objFacts.Type, wantFacts.Type)
	if !ok {
		return nil
	}
	replaceWithConstI(g, ins, dst, boolToInt(result))
	objFacts.Usages--
	wantFacts.Usages--
	return nil
}
