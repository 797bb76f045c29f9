package graph

import "testing"

func TestAddSpeshSlotGrowsByEightAndReturnsStableIndices(t *testing.T) {
	g := NewGraph(&BasicBlock{Label: "entry"})
	var indices []int16
	for i := 0; i < 20; i++ {
		indices = append(indices, g.AddSpeshSlot(nil))
	}
	for i, idx := range indices {
		if int(idx) != i {
			t.Fatalf("slot %d got index %d", i, idx)
		}
	}
	if len(g.SpeshSlots) != 20 {
		t.Fatalf("expected 20 slots, got %d", len(g.SpeshSlots))
	}
}

func TestFactsForMarksLogGuardUsed(t *testing.T) {
	g := NewGraph(&BasicBlock{Label: "entry"})
	bb := g.Entry
	ins := g.Alloc(OpSpLog, nil)
	idx := g.AddLogGuard(bb, ins)

	op := RegOperand(1, 0)
	f := g.FactsDirect(op)
	f.Flags |= FactFromLogGuard
	f.LogGuard = idx

	if g.LogGuards[idx].Used {
		t.Fatal("log guard should not be used yet")
	}
	g.FactsFor(op)
	if !g.LogGuards[idx].Used {
		t.Fatal("FactsFor should mark the originating log guard used")
	}
}

func buildChain(g *Graph, bb *BasicBlock, n int) []*Instruction {
	var ins []*Instruction
	var prev *Instruction
	for i := 0; i < n; i++ {
		cur := g.Alloc(OpIsConcrete, []Operand{RegOperand(RegOrigin(i), 0), RegOperand(RegOrigin(100+i), 0)})
		InsertInsAfter(bb, prev, cur)
		ins = append(ins, cur)
		prev = cur
	}
	return ins
}

func TestDeleteInsUnlinksFromListAndDoesNotTouchUsages(t *testing.T) {
	g := NewGraph(&BasicBlock{Label: "entry"})
	bb := g.Entry
	ins := buildChain(g, bb, 3)

	readFacts := g.FactsDirect(ins[1].Operands[1])
	readFacts.Usages = 5

	DeleteIns(bb, ins[1])

	if bb.FirstIns != ins[0] || bb.FirstIns.Next != ins[2] {
		t.Fatal("expected middle instruction unlinked")
	}
	if ins[2].Prev != ins[0] {
		t.Fatal("expected next.Prev updated")
	}
	if readFacts.Usages != 5 {
		t.Fatal("DeleteIns must not touch usage counts itself")
	}
}

func TestInsertInsAfterAtHeadAndTail(t *testing.T) {
	g := NewGraph(&BasicBlock{Label: "entry"})
	bb := g.Entry
	a := g.Alloc(OpSet, []Operand{RegOperand(0, 0), RegOperand(1, 0)})
	InsertInsAfter(bb, nil, a)
	if bb.FirstIns != a || bb.LastIns != a {
		t.Fatal("first insert should become both first and last")
	}

	b := g.Alloc(OpSet, []Operand{RegOperand(2, 0), RegOperand(3, 0)})
	InsertInsAfter(bb, a, b)
	if bb.LastIns != b || a.Next != b || b.Prev != a {
		t.Fatal("insert after tail should extend the list")
	}

	c := g.Alloc(OpSet, []Operand{RegOperand(4, 0), RegOperand(5, 0)})
	InsertInsAfter(bb, nil, c)
	if bb.FirstIns != c || c.Next != a {
		t.Fatal("insert at head should become new first")
	}
}

func TestRemoveSuccessorDropsEdgeAndPhiInput(t *testing.T) {
	g := NewGraph(&BasicBlock{Label: "entry"})
	pred := g.Entry
	target := &BasicBlock{Label: "target"}
	pred.Succ = []*BasicBlock{target}

	phi := g.Alloc(OpPhi, []Operand{RegOperand(0, 0)})
	phi.PhiInputs = map[*BasicBlock]Operand{pred: RegOperand(1, 0)}
	InsertInsAfter(target, nil, phi)

	RemoveSuccessor(pred, target)

	if len(pred.Succ) != 0 {
		t.Fatal("expected successor edge removed")
	}
	if _, ok := phi.PhiInputs[pred]; ok {
		t.Fatal("expected phi input for removed predecessor dropped")
	}
}
