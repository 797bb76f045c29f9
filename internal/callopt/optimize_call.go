package callopt

import (
	"spesh/internal/graph"
	"spesh/internal/vmerr"
)

// fastInvokeByOpcode maps each invoke_* opcode to the sp_fastinvoke_*
// opcode codegen should emit once the callee has been devirtualized
// and inlining wasn't possible or didn't apply.
var fastInvokeByOpcode = map[graph.Opcode]graph.Opcode{
	graph.OpInvokeV: graph.OpSpFastInvokeV,
	graph.OpInvokeI: graph.OpSpFastInvokeI,
	graph.OpInvokeN: graph.OpSpFastInvokeN,
	graph.OpInvokeS: graph.OpSpFastInvokeS,
	graph.OpInvokeO: graph.OpSpFastInvokeO,
}

// OptimizeCall implements optimize_call: given an invoke_* instruction
// whose callee operand resolves to a known object via KNOWN_VALUE
// facts, it attempts full speculative devirtualization — resolve the
// callee to a concrete code object, find a matching spesh candidate
// for the call's argument shape, then either splice in an inlined
// copy of that candidate or rewrite the call to the faster
// sp_fastinvoke_* form. Any invoke_* opcode this function doesn't
// have a fast-invoke counterpart for is a VM-invariant violation, not
// a missed optimization, and is reported as Fatal.
func OptimizeCall(g *graph.Graph, collab graph.Collaborators, bb *graph.BasicBlock, ins *graph.Instruction, calleeObj graph.ObjectHandle, info *CallInfo, candidates []Candidate, isCompilerStub func(graph.ObjectHandle) bool, quirkSingleDispatchOnMultiInvocant bool) error {
	fastOp, known := fastInvokeByOpcode[ins.Opcode]
	if !known {
		return vmerr.NewFatal("callopt: unhandled invoke opcode %s", ins.Opcode)
	}

	resolved, ok := ResolveCallee(collab, calleeObj, info, quirkSingleDispatchOnMultiInvocant)
	if !ok {
		return nil
	}

	calleeOperandIdx := calleeOperandIndex(ins.Opcode)
	if resolved.Target != calleeObj && isCompilerStub != nil && !isCompilerStub(resolved.Target) {
		slot := g.AddSpeshSlot(resolved.Target)
		rebind := g.Alloc(graph.OpSpGetSpeshSlot, []graph.Operand{ins.Operands[calleeOperandIdx], graph.I16Operand(slot)})
		graph.InsertInsAfter(bb, ins.Prev, rebind)
	}

	cand, ok := FindCandidate(info, candidates)
	if !ok {
		return nil
	}

	if collab.TryInline(g, info, bb, ins, resolved.Target, cand.Index) {
		return nil
	}

	ins.Opcode = fastOp
	ins.Operands = append(ins.Operands, graph.I16Operand(int16(cand.Index)))
	return nil
}

func calleeOperandIndex(op graph.Opcode) int {
	if op == graph.OpInvokeV {
		return 0
	}
	return 1
}
