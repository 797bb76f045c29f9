package rules

import "spesh/internal/graph"

// CanOp returns the rule implementing the `can`/`can_s` specializer.
// It is returned as a closure rather than a bare Rule because, unlike
// every other rule, it is gated by a feature flag the driver threads
// in from config: the source VM disables this specializer by default,
// noting it "causes problems... failed to fix up handlers" for code
// that relies on `can` triggering a real method resolution as a side
// effect. enabled lets a caller opt back in for workloads that don't
// hit that interaction.
func CanOp(enabled bool) Rule {
	return func(g *graph.Graph, collab graph.Collaborators, _ *graph.BasicBlock, ins *graph.Instruction) error {
		if !enabled {
			return nil
		}
		if ins.Opcode != graph.OpCan && ins.Opcode != graph.OpCanS {
			return nil
		}
		dst, invocant, nameOperand := ins.Operands[0], ins.Operands[1], ins.Operands[2]
		facts := g.FactsFor(invocant)
		if !facts.Flags.Has(graph.FactKnownType) {
			return nil
		}

		var name string
		switch ins.Opcode {
		case graph.OpCan:
			if nameOperand.Kind != graph.OperandLitStr {
				return nil
			}
			name = nameOperand.LitStr
		case graph.OpCanS:
			nameFacts := g.FactsFor(nameOperand)
			if !nameFacts.Flags.Has(graph.FactKnownValue) || !nameFacts.Value.IsStr {
				return nil
			}
			name = nameFacts.Value.Str
		}

		result, ok := collab.CanMethodCacheOnly(facts.Type, name)
		if !ok {
			return nil
		}
		replaceWithConstI(g, ins, dst, boolToInt(result))
		facts.Usages--
		if ins.Opcode == graph.OpCanS {
			g.FactsFor(nameOperand).Usages--
		}
		return nil
	}
}
