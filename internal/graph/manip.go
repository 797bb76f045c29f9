package graph

// Alloc allocates a new, unlinked instruction from the graph's arena.
// In the source VM this comes from a per-graph bump allocator freed
// wholesale at graph destruction; here that contract is
// realized by simply constructing a Go value — it is reclaimed by the
// garbage collector once the graph itself becomes unreachable, with
// no change in the single-writer-per-graph discipline the optimizer
// relies on.
func (g *Graph) Alloc(op Opcode, operands []Operand) *Instruction {
	ins := &Instruction{ID: g.nextInsID, Opcode: op, Operands: operands}
	g.nextInsID++
	return ins
}

// DeleteIns unlinks ins from bb's instruction list. It does not
// decrement usage counts on ins's read operands — callers are
// responsible for propagating usage themselves before or after
// calling DeleteIns, the same way the source VM's call sites each do
// `facts->usages--` around MVM_spesh_manipulate_delete_ins.
func DeleteIns(bb *BasicBlock, ins *Instruction) {
	if ins.Prev != nil {
		ins.Prev.Next = ins.Next
	} else {
		bb.FirstIns = ins.Next
	}
	if ins.Next != nil {
		ins.Next.Prev = ins.Prev
	} else {
		bb.LastIns = ins.Prev
	}
	ins.Prev, ins.Next, ins.Block = nil, nil, nil
}

// InsertInsAfter splices newIns into bb immediately after after. If
// after is nil, newIns becomes the first instruction in bb.
func InsertInsAfter(bb *BasicBlock, after *Instruction, newIns *Instruction) {
	newIns.Block = bb
	if after == nil {
		newIns.Next = bb.FirstIns
		if bb.FirstIns != nil {
			bb.FirstIns.Prev = newIns
		}
		bb.FirstIns = newIns
		if bb.LastIns == nil {
			bb.LastIns = newIns
		}
		return
	}
	newIns.Next = after.Next
	newIns.Prev = after
	if after.Next != nil {
		after.Next.Prev = newIns
	} else {
		bb.LastIns = newIns
	}
	after.Next = newIns
}

// RemoveSuccessor drops the edge bb -> target and any PHI inputs in
// target keyed by bb.
func RemoveSuccessor(bb *BasicBlock, target *BasicBlock) {
	kept := bb.Succ[:0]
	for _, s := range bb.Succ {
		if s != target {
			kept = append(kept, s)
		}
	}
	bb.Succ = kept

	for ins := target.FirstIns; ins != nil; ins = ins.Next {
		if ins.Opcode == OpPhi && ins.PhiInputs != nil {
			delete(ins.PhiInputs, bb)
		}
	}
}
