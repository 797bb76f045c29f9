// Package optimize drives the specializing optimizer: it walks a
// graph.Graph in dominator order, firing the per-opcode rewrites in
// package rules and the call devirtualization in package callopt,
// then runs the cleanup passes that remove what those rewrites left
// dead, mirroring the source VM's MVM_spesh_optimize.
package optimize

import "spesh/internal/graph"

// Optimize runs one full optimization pass over g: the main
// dominator-order walk, then dead-instruction elimination,
// unreachable-block elimination and unused-log-guard elimination, in
// that fixed order — each pass can only find opportunities the
// previous one created, never the other way around, which is why the
// source VM and this port never interleave them.
func Optimize(g *graph.Graph, collab graph.Collaborators, candSrc CandidateSource, stubs CompilerStubChecker, cfg Config, tracer *Tracer) error {
	s := NewSession(g, cfg, tracer)

	if err := s.OptimizeBB(g.Entry, collab, candSrc, stubs); err != nil {
		return err
	}

	blocks := collectBlocks(g.Entry)
	// Deleting an instruction can leave a writer in another block
	// unread, so sweep every block again until nothing more goes.
	for changed := true; changed; {
		changed = false
		for _, bb := range blocks {
			n := len(bb.Instructions())
			s.EliminateDeadIns(bb)
			if len(bb.Instructions()) != n {
				changed = true
			}
		}
	}
	blocks = s.EliminateDeadBBs(blocks)
	s.EliminateUnusedLogGuards()
	_ = blocks
	return nil
}

// collectBlocks flattens the dominator tree rooted at entry into a
// slice, the "universe" of blocks EliminateDeadBBs reasons about.
func collectBlocks(entry *graph.BasicBlock) []*graph.BasicBlock {
	var out []*graph.BasicBlock
	seen := make(map[*graph.BasicBlock]bool)
	var walk func(bb *graph.BasicBlock)
	walk = func(bb *graph.BasicBlock) {
		if bb == nil || seen[bb] {
			return
		}
		seen[bb] = true
		out = append(out, bb)
		for _, c := range bb.Children {
			walk(c)
		}
	}
	walk(entry)
	return out
}
