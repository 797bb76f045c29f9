package optimize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"spesh/internal/callopt"
	"spesh/internal/callsite"
	"spesh/internal/graph"
	"spesh/internal/testhost"
)

// fixedCandidates is a CandidateSource that hands back the same
// candidate list regardless of the callee, enough for driving
// OptimizeBB/Optimize end to end without a real spesh-candidate store.
type fixedCandidates struct {
	candidates []callopt.Candidate
}

func (f fixedCandidates) Candidates(graph.ObjectHandle) []callopt.Candidate { return f.candidates }

// 1. Constant-folding istype.
func TestEndToEndConstantFoldingIsType(t *testing.T) {
	entry := &graph.BasicBlock{Label: "entry"}
	g := graph.NewGraph(entry)

	r1 := graph.RegOperand(0, 0)
	r2 := graph.RegOperand(1, 0)
	r3 := graph.RegOperand(2, 0)

	intType := testhost.NewType("Int", graph.ReprIDP6int)
	g.FactsDirect(r2).Flags |= graph.FactKnownType
	g.FactsDirect(r2).Type = intType
	g.FactsDirect(r3).Flags |= graph.FactKnownType
	g.FactsDirect(r3).Type = intType
	g.FactsDirect(r2).Usages = 1
	g.FactsDirect(r3).Usages = 1

	host := testhost.NewHost()
	host.SetTypeCheck(intType, intType, true)

	ins := g.Alloc(graph.OpIsType, []graph.Operand{r1, r2, r3})
	graph.InsertInsAfter(entry, nil, ins)

	err := Optimize(g, host, nil, nil, DefaultConfig(), nil)
	require.NoError(t, err)
	require.Equal(t, graph.OpConstI64_16, ins.Opcode)
	require.Equal(t, int64(1), ins.Operands[1].LitI64)
	require.True(t, g.FactsDirect(r1).Flags.Has(graph.FactKnownValue))
	require.Equal(t, int64(1), g.FactsDirect(r1).Value.Int)
	require.Equal(t, int32(0), g.FactsDirect(r2).Usages, "expected the obj operand's usage decremented")
	require.Equal(t, int32(0), g.FactsDirect(r3).Usages, "expected the want operand's usage decremented")
}

// 2. Branch elimination: a never-taken if_i with a fall-through block
// falls through and the taken edge disappears.
func TestEndToEndBranchElimination(t *testing.T) {
	entry := &graph.BasicBlock{Label: "entry"}
	l1 := &graph.BasicBlock{Label: "L1"}
	l2 := &graph.BasicBlock{Label: "L2"}
	entry.LinearNext = l1
	entry.Children = []*graph.BasicBlock{l1, l2}
	g := graph.NewGraph(entry)
	g.NumBBs = 3

	r1 := graph.RegOperand(0, 0)
	g.FactsDirect(r1).Flags |= graph.FactKnownValue
	g.FactsDirect(r1).Value = graph.TaggedValue{Int: 0}

	branch := g.Alloc(graph.OpIfI, []graph.Operand{r1, graph.BlockOperand(l2)})
	graph.InsertInsAfter(entry, nil, branch)
	entry.AddSuccessor(l2)
	entry.AddSuccessor(l1)

	err := Optimize(g, testhost.NewHost(), nil, nil, DefaultConfig(), nil)
	require.NoError(t, err)
	require.Nil(t, entry.FirstIns, "expected the branch instruction deleted")
	require.NotContains(t, entry.Succ, l2, "expected the taken successor removed")
}

// 3. Method devirtualization: findmeth with a cache hit becomes
// sp_getspeshslot and consumes a usage of the invocant.
func TestEndToEndMethodDevirtualization(t *testing.T) {
	entry := &graph.BasicBlock{Label: "entry"}
	g := graph.NewGraph(entry)

	r1 := graph.RegOperand(0, 0)
	r2 := graph.RegOperand(1, 0)
	greeterType := testhost.NewType("Greeter", graph.ReprIDUnknown)
	g.FactsDirect(r2).Flags |= graph.FactKnownType
	g.FactsDirect(r2).Type = greeterType
	g.FactsDirect(r2).Usages = 1

	host := testhost.NewHost()
	method := testhost.Object{Name: "M", Of: greeterType, IsConcrete: true}
	host.AddMethod(greeterType, "greet", method)

	ins := g.Alloc(graph.OpFindMeth, []graph.Operand{r1, r2, graph.StrLitOperand("greet")})
	graph.InsertInsAfter(entry, nil, ins)

	err := Optimize(g, host, nil, nil, DefaultConfig(), nil)
	require.NoError(t, err)
	require.Equal(t, graph.OpSpGetSpeshSlot, ins.Opcode)
	require.Len(t, g.SpeshSlots, 1)
	require.Equal(t, method, g.SpeshSlots[0])
	require.True(t, g.FactsDirect(r1).Flags.Has(graph.FactKnownValue), "expected the resolved method propagated to dst")
	require.Equal(t, method, g.FactsDirect(r1).Value.Obj)
	require.Equal(t, int32(0), g.FactsDirect(r2).Usages, "expected the invocant's usage decremented")
}

// 4. Callsite interning: two equivalent shapes dedup to one pointer;
// a third, differently-flagged shape gets its own bucket entry.
func TestEndToEndCallsiteInterning(t *testing.T) {
	shapeA := &callsite.Callsite{
		ArgFlags: []callsite.ArgFlag{callsite.ArgObj, callsite.ArgObj, callsite.ArgObj},
		NumPos:   3, ArgCount: 3,
	}
	shapeB := &callsite.Callsite{
		ArgFlags: []callsite.ArgFlag{callsite.ArgObj, callsite.ArgObj, callsite.ArgObj},
		NumPos:   3, ArgCount: 3,
	}
	shapeC := &callsite.Callsite{
		ArgFlags: []callsite.ArgFlag{callsite.ArgObj, callsite.ArgInt, callsite.ArgObj},
		NumPos:   3, ArgCount: 3,
	}

	table := callsite.NewTable()
	table.TryIntern(&shapeA)
	first := shapeA
	table.TryIntern(&shapeB)
	require.Same(t, first, shapeB, "expected the second equivalent shape to be replaced by the first")

	table.TryIntern(&shapeC)
	require.NotSame(t, first, shapeC, "expected a differing flag byte to register separately")
}

// 5. Dead instruction cascade: a chain of unused pure ops all vanish
// at fixed point.
func TestEndToEndDeadInstructionCascade(t *testing.T) {
	entry := &graph.BasicBlock{Label: "entry"}
	g := graph.NewGraph(entry)
	s := NewSession(g, DefaultConfig(), nil)

	r1 := graph.RegOperand(0, 0)
	r2 := graph.RegOperand(1, 0)
	r3 := graph.RegOperand(2, 0)

	i1 := g.Alloc(graph.OpIsConcrete, []graph.Operand{r1, graph.RegOperand(9, 0)})
	graph.InsertInsAfter(entry, nil, i1)
	i2 := g.Alloc(graph.OpIsConcrete, []graph.Operand{r2, r1})
	graph.InsertInsAfter(entry, i1, i2)
	i3 := g.Alloc(graph.OpIsConcrete, []graph.Operand{r3, r2})
	graph.InsertInsAfter(entry, i2, i3)

	g.FactsDirect(r1).Usages = 1
	g.FactsDirect(r2).Usages = 1
	g.FactsDirect(r3).Usages = 0

	s.EliminateDeadIns(entry)

	require.Nil(t, entry.FirstIns, "expected the whole pure chain eliminated")
}

// 6. Inlining decision: a guard-satisfied candidate with no inliner
// available rewrites invoke_o to sp_fastinvoke_o.
func TestEndToEndInvokeBecomesFastInvokeWhenNotInlined(t *testing.T) {
	entry := &graph.BasicBlock{Label: "entry"}
	g := graph.NewGraph(entry)

	codeType := testhost.NewType("Code", graph.ReprIDMVMCode)
	callee := testhost.Object{Name: "fn", Of: codeType, IsConcrete: true}

	calleeReg := graph.RegOperand(0, 0)
	argReg := graph.RegOperand(1, 0)
	g.FactsDirect(calleeReg).Flags |= graph.FactKnownValue
	g.FactsDirect(calleeReg).Value = graph.TaggedValue{IsObj: true, Obj: callee}

	argType := testhost.NewType("Int", graph.ReprIDP6int)
	g.FactsDirect(argReg).Flags |= graph.FactKnownType | graph.FactConcrete
	g.FactsDirect(argReg).Type = argType

	prep := g.Alloc(graph.OpPrepargs, nil)
	graph.InsertInsAfter(entry, nil, prep)
	arg := g.Alloc(graph.OpArgO, []graph.Operand{graph.I16Operand(0), argReg})
	graph.InsertInsAfter(entry, prep, arg)
	invoke := g.Alloc(graph.OpInvokeO, []graph.Operand{graph.RegOperand(2, 0), calleeReg})
	graph.InsertInsAfter(entry, arg, invoke)

	cand := callopt.Candidate{Index: 0, Guards: []graph.ArgGuard{{Slot: 0, Kind: graph.GuardConc, Expect: argType}}}
	candSrc := fixedCandidates{candidates: []callopt.Candidate{cand}}

	host := testhost.NewHost()
	err := Optimize(g, host, candSrc, nil, DefaultConfig(), nil)
	require.NoError(t, err)
	require.Equal(t, graph.OpSpFastInvokeO, invoke.Opcode)
}
