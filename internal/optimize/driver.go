package optimize

import (
	"spesh/internal/callopt"
	"spesh/internal/graph"
	"spesh/internal/rules"
)

// CandidateSource supplies the spesh candidates available for a
// devirtualized callee. It is kept separate from graph.Collaborators
// to avoid an import cycle (graph cannot depend on callopt, which
// depends on graph) — a Collaborators implementation is free to
// implement this too, and usually will.
type CandidateSource interface {
	Candidates(target graph.ObjectHandle) []callopt.Candidate
}

// CompilerStubChecker answers whether an object is a compiler stub —
// a placeholder code object codegen never needs to rebind to via
// sp_getspeshslot. Optional: a nil checker disables that rebind
// entirely, same as passing isCompilerStub == nil to OptimizeCall.
type CompilerStubChecker interface {
	IsCompilerStub(graph.ObjectHandle) bool
}

var invokeOpcodes = map[graph.Opcode]bool{
	graph.OpInvokeV: true, graph.OpInvokeI: true, graph.OpInvokeN: true,
	graph.OpInvokeS: true, graph.OpInvokeO: true,
}

var argOpcodeSlot = map[graph.Opcode]bool{
	graph.OpArgI: true, graph.OpArgN: true, graph.OpArgS: true, graph.OpArgO: true,
	graph.OpArgConstI: true, graph.OpArgConstN: true, graph.OpArgConstS: true,
}

// OptimizeBB walks bb and then recurses into its dominator-tree
// children, firing rule-table rewrites on every instruction and
// maintaining a CallInfo across each prepargs...invoke_* span so call
// optimization (package callopt) has the argument facts it needs by
// the time it reaches the invoke.
func (s *Session) OptimizeBB(bb *graph.BasicBlock, collab graph.Collaborators, candSrc CandidateSource, stubs CompilerStubChecker) error {
	s.checkOwner()
	if s.tracer != nil {
		s.tracer.EnteringBlock(bb.Label)
	}

	ruleTable := rules.Table(s.cfg.EnableCanOpSpecializer)
	var current *callopt.CallInfo

	for ins := bb.FirstIns; ins != nil; {
		// A rule may delete ins (which clears its Next), so remember
		// where the walk continues before firing anything.
		next := ins.Next
		switch {
		case ins.Opcode == graph.OpPrepargs:
			current = &callopt.CallInfo{PrepargsIns: ins}

		case argOpcodeSlot[ins.Opcode] && current != nil:
			idx := int(ins.Operands[0].LitI16)
			var facts *graph.Facts
			isConst := ins.Opcode == graph.OpArgConstI || ins.Opcode == graph.OpArgConstN || ins.Opcode == graph.OpArgConstS
			if !isConst && len(ins.Operands) > 1 {
				facts = s.g.FactsFor(ins.Operands[1])
			}
			current.RecordArg(idx, ins, facts, isConst)

		case invokeOpcodes[ins.Opcode]:
			if err := s.optimizeInvoke(collab, bb, ins, current, candSrc, stubs); err != nil {
				return err
			}
			current = nil

		default:
			if rule, ok := ruleTable[ins.Opcode]; ok {
				if err := rule(s.g, collab, bb, ins); err != nil {
					return err
				}
			}
		}
		if ins.Block != nil {
			// Still linked: a rule may have deleted or inserted
			// instructions after it, so follow the current link.
			next = ins.Next
		}
		ins = next
	}

	for _, child := range bb.Children {
		if err := s.OptimizeBB(child, collab, candSrc, stubs); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) optimizeInvoke(collab graph.Collaborators, bb *graph.BasicBlock, ins *graph.Instruction, info *callopt.CallInfo, candSrc CandidateSource, stubs CompilerStubChecker) error {
	if info == nil || candSrc == nil {
		return nil
	}
	calleeIdx := 1
	if ins.Opcode == graph.OpInvokeV {
		calleeIdx = 0
	}
	if calleeIdx >= len(ins.Operands) {
		return nil
	}
	calleeFacts := s.g.FactsFor(ins.Operands[calleeIdx])
	if !calleeFacts.Flags.Has(graph.FactKnownValue) || !calleeFacts.Value.IsObj || calleeFacts.Value.Obj == nil {
		return nil
	}

	candidates := candSrc.Candidates(calleeFacts.Value.Obj)
	var isStub func(graph.ObjectHandle) bool
	if stubs != nil {
		isStub = stubs.IsCompilerStub
	}
	return callopt.OptimizeCall(s.g, collab, bb, ins, calleeFacts.Value.Obj, info, candidates, isStub, s.cfg.PreferCallsiteInvocationSpecFallback)
}
