package optimize

import "spesh/internal/graph"

// EliminateDeadIns repeatedly removes instructions whose result is
// never read, cascading: removing one dead instruction can make the
// instructions feeding its operands dead in turn, so this runs to a
// fixed point rather than a single pass.
func (s *Session) EliminateDeadIns(bb *graph.BasicBlock) {
	s.checkOwner()
	for {
		changed := false
		for cur := bb.FirstIns; cur != nil; {
			next := cur.Next
			if s.insIsDead(cur) {
				s.deleteAndPropagate(bb, cur)
				changed = true
			}
			cur = next
		}
		if !changed {
			return
		}
	}
}

func (s *Session) insIsDead(ins *graph.Instruction) bool {
	if ins.Opcode != graph.OpPhi && !ins.IsPure() {
		return false
	}
	dst, ok := ins.WritesReg()
	if !ok {
		return false
	}
	facts := s.g.FactsDirect(dst)
	return facts.Usages == 0
}

// deleteAndPropagate deletes ins and decrements the usage count of
// every register it read, matching eliminate_dead_ins's usage-count
// cascade: the caller's own fixed-point loop picks those newly
// zero-usage registers' defining instructions up on its next pass.
func (s *Session) deleteAndPropagate(bb *graph.BasicBlock, ins *graph.Instruction) {
	for _, operand := range ins.ReadRegs() {
		facts := s.g.FactsDirect(operand)
		if facts.Usages > 0 {
			facts.Usages--
		}
	}
	graph.DeleteIns(bb, ins)
}

// EliminateDeadBBs removes blocks unreachable from entry, to a fixed
// point, since removing one unreachable block's edges can make a
// further block unreachable. Blocks marked Inlined are always kept —
// they may be entered only through inlining metadata the successor
// walk below doesn't see. Surviving blocks are renumbered (Idx) when
// anything changed, since code generation relies on Idx being dense.
func (s *Session) EliminateDeadBBs(blocks []*graph.BasicBlock) []*graph.BasicBlock {
	s.checkOwner()
	dropped := false
	for {
		reachable := markReachable(s.g.Entry, blocks)
		var kept []*graph.BasicBlock
		changed := false
		for _, bb := range blocks {
			if reachable[bb] || bb.Inlined {
				kept = append(kept, bb)
			} else {
				changed = true
			}
		}
		blocks = kept
		if !changed {
			break
		}
		dropped = true
	}
	if dropped {
		for i, bb := range blocks {
			bb.Idx = i
		}
	}
	s.g.NumBBs = len(blocks)
	return blocks
}

func markReachable(entry *graph.BasicBlock, universe []*graph.BasicBlock) map[*graph.BasicBlock]bool {
	reachable := make(map[*graph.BasicBlock]bool, len(universe))
	var stack []*graph.BasicBlock
	if entry != nil {
		stack = append(stack, entry)
		reachable[entry] = true
	}
	for len(stack) > 0 {
		bb := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, succ := range bb.Succ {
			if !reachable[succ] {
				reachable[succ] = true
				stack = append(stack, succ)
			}
		}
	}
	return reachable
}

// EliminateUnusedLogGuards drops every log guard instruction whose
// observation nothing ended up consuming — tracked by LogGuard.Used,
// which Graph.FactsFor sets the moment any rule reads facts derived
// from that guard.
func (s *Session) EliminateUnusedLogGuards() {
	s.checkOwner()
	for _, lg := range s.g.LogGuards {
		if lg.Used || lg.Ins == nil || lg.BB == nil {
			continue
		}
		graph.DeleteIns(lg.BB, lg.Ins)
	}
}
