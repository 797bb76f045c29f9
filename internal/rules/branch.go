package rules

import "spesh/internal/graph"

// Iffy implements the optimize_iffy family: if_i/unless_i, if_n/unless_n,
// if_o/unless_o and ifnonnull all branch on a single register's
// truthiness, and all collapse the same two ways once that truthiness
// is known statically:
//
//   - always taken: rewrite the instruction into an unconditional
//     goto the taken target, and drop the fallthrough edge.
//   - never taken: delete the instruction outright (the block falls
//     through), and drop the taken edge.
//
// Boolification for if_o/unless_o is delegated to
// Collaborators.CoerceIsTrue; when that reports ok=false (the
// MVM_BOOL_MODE_CALL_METHOD case, which needs a real method call) the
// rule leaves the branch alone.
func Iffy(g *graph.Graph, collab graph.Collaborators, bb *graph.BasicBlock, ins *graph.Instruction) error {
	taken, ok := iffyTaken(g, collab, ins)
	if !ok {
		return nil
	}
	target := ins.Operands[1].Target
	// The condition is resolved either way now: both the goto and the
	// delete path stop reading it.
	g.FactsFor(ins.Operands[0]).Usages--
	if taken == isUnless(ins.Opcode) {
		// Condition resolves to "don't take the branch": the block
		// falls through, so the instruction and the taken edge go away.
		graph.DeleteIns(bb, ins)
		graph.RemoveSuccessor(bb, target)
		return nil
	}
	// Condition resolves to "take the branch": becomes unconditional.
	fallthroughTarget := bb.LinearNext
	ins.Opcode = graph.OpGoto
	ins.Operands = []graph.Operand{ins.Operands[1]}
	if fallthroughTarget != nil {
		graph.RemoveSuccessor(bb, fallthroughTarget)
	}
	return nil
}

func isUnless(op graph.Opcode) bool {
	switch op {
	case graph.OpUnlessI, graph.OpUnlessN, graph.OpUnlessO:
		return true
	default:
		return false
	}
}

// iffyTaken reports whether the condition operand's resolved
// truthiness satisfies an if_* (true) or unless_* (false) test,
// before inverting for unless_*. ok is false when the value isn't
// known statically.
func iffyTaken(g *graph.Graph, collab graph.Collaborators, ins *graph.Instruction) (truth bool, ok bool) {
	cond := ins.Operands[0]
	facts := g.FactsFor(cond)

	switch ins.Opcode {
	case graph.OpIfI, graph.OpUnlessI:
		if !facts.Flags.Has(graph.FactKnownValue) {
			return false, false
		}
		return facts.Value.Int != 0, true

	case graph.OpIfN, graph.OpUnlessN:
		if !facts.Flags.Has(graph.FactKnownValue) {
			return false, false
		}
		return facts.Value.Num != 0, true

	case graph.OpIfO, graph.OpUnlessO:
		if facts.Flags.Has(graph.FactTypeObj) {
			return false, true
		}
		if !facts.Flags.Has(graph.FactConcrete) || !facts.Flags.Has(graph.FactKnownValue) || !facts.Value.IsObj {
			return false, false
		}
		return collab.CoerceIsTrue(facts.Value.Obj)

	case graph.OpIfNonNull:
		if !facts.Flags.Has(graph.FactKnownValue) || !facts.Value.IsObj {
			return false, false
		}
		return facts.Value.Obj != nil, true

	default:
		return false, false
	}
}
