package rules

import "spesh/internal/graph"

// GetLexKnown implements optimize_getlex_known. getlexstatic_o and
// getlexperinvtype_o resolve a lexical whose value type inference has
// already pinned down (the destination register already carries
// KNOWN_VALUE facts by the time the driver reaches it); the rule's
// job is to turn that static knowledge into a cheap runtime lookup.
// It stashes the resolved object in a fresh spesh slot, rewrites the
// instruction to sp_getspeshslot, and — since the value is now nailed
// down for good — deletes an immediately following sp_log that was
// only there to observe this same register for exactly this purpose.
func GetLexKnown(g *graph.Graph, _ graph.Collaborators, bb *graph.BasicBlock, ins *graph.Instruction) error {
	if ins.Opcode != graph.OpGetLexStaticO && ins.Opcode != graph.OpGetLexPerInvTypeO {
		return nil
	}
	dst := ins.Operands[0]
	facts := g.FactsDirect(dst)
	if !facts.Flags.Has(graph.FactKnownValue) || !facts.Value.IsObj {
		return nil
	}

	slot := g.AddSpeshSlot(facts.Value.Obj)
	ins.Opcode = graph.OpSpGetSpeshSlot
	ins.Operands = []graph.Operand{dst, graph.I16Operand(slot)}

	facts.Flags |= graph.FactKnownType | graph.FactDeconted
	facts.Type = facts.Value.Obj.Type()
	if facts.Value.Obj.Concrete() {
		facts.Flags |= graph.FactConcrete
	} else {
		facts.Flags |= graph.FactTypeObj
	}

	if next := ins.Next; next != nil && next.Opcode == graph.OpSpLog {
		if len(next.Operands) > 0 && next.Operands[0] == dst {
			graph.DeleteIns(bb, next)
		}
	}
	return nil
}
