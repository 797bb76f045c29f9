package optimize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"spesh/internal/graph"
)

func TestEliminateDeadInsCascades(t *testing.T) {
	bb := &graph.BasicBlock{Label: "entry"}
	g := graph.NewGraph(bb)
	s := NewSession(g, DefaultConfig(), nil)

	r0 := graph.RegOperand(0, 0)
	r1 := graph.RegOperand(1, 0)
	r2 := graph.RegOperand(2, 0)

	// r1 = isconcrete(r0); r2 = isconcrete(r1); neither result used.
	a := g.Alloc(graph.OpIsConcrete, []graph.Operand{r1, r0})
	graph.InsertInsAfter(bb, nil, a)
	b := g.Alloc(graph.OpIsConcrete, []graph.Operand{r2, r1})
	graph.InsertInsAfter(bb, a, b)

	g.FactsFor(r0) // r0's own usage irrelevant here
	g.FactsDirect(r1).Usages = 1
	g.FactsDirect(r2).Usages = 0

	s.EliminateDeadIns(bb)

	require.Nil(t, bb.FirstIns, "expected both instructions eliminated, block still has %v", bb.Instructions())
}

func TestEliminateDeadInsKeepsLiveWrites(t *testing.T) {
	bb := &graph.BasicBlock{Label: "entry"}
	g := graph.NewGraph(bb)
	s := NewSession(g, DefaultConfig(), nil)

	r0 := graph.RegOperand(0, 0)
	r1 := graph.RegOperand(1, 0)
	ins := g.Alloc(graph.OpIsConcrete, []graph.Operand{r1, r0})
	graph.InsertInsAfter(bb, nil, ins)
	g.FactsDirect(r1).Usages = 1

	s.EliminateDeadIns(bb)

	require.Same(t, ins, bb.FirstIns, "expected instruction with a live result to survive")
}

func TestEliminateDeadBBsPreservesInlinedBlocks(t *testing.T) {
	entry := &graph.BasicBlock{Label: "entry"}
	g := graph.NewGraph(entry)
	orphan := &graph.BasicBlock{Label: "orphan"}
	inlined := &graph.BasicBlock{Label: "inlined", Inlined: true}
	s := NewSession(g, DefaultConfig(), nil)

	kept := s.EliminateDeadBBs([]*graph.BasicBlock{entry, orphan, inlined})

	require.NotContains(t, kept, orphan, "expected unreachable, non-inlined block to be dropped")
	require.Contains(t, kept, inlined, "expected inlined block to survive despite being unreachable by successor walk")
}

func TestEliminateUnusedLogGuardsDropsUnconsumedGuard(t *testing.T) {
	bb := &graph.BasicBlock{Label: "entry"}
	g := graph.NewGraph(bb)
	s := NewSession(g, DefaultConfig(), nil)

	logIns := g.Alloc(graph.OpSpLog, nil)
	graph.InsertInsAfter(bb, nil, logIns)
	_ = g.AddLogGuard(bb, logIns)

	s.EliminateUnusedLogGuards()

	require.Nil(t, bb.FirstIns, "expected the never-consulted log guard instruction to be removed")
}

func TestEliminateUnusedLogGuardsKeepsConsumedGuard(t *testing.T) {
	bb := &graph.BasicBlock{Label: "entry"}
	g := graph.NewGraph(bb)
	s := NewSession(g, DefaultConfig(), nil)

	logIns := g.Alloc(graph.OpSpLog, nil)
	graph.InsertInsAfter(bb, nil, logIns)
	idx := g.AddLogGuard(bb, logIns)

	op := graph.RegOperand(0, 0)
	f := g.FactsDirect(op)
	f.Flags |= graph.FactFromLogGuard
	f.LogGuard = idx
	g.FactsFor(op) // marks the guard used

	s.EliminateUnusedLogGuards()

	require.Same(t, logIns, bb.FirstIns, "expected a consulted log guard instruction to survive")
}
