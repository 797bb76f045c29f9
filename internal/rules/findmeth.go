package rules

import "spesh/internal/graph"

// FindMeth implements optimize_method_lookup. Given a known invocant
// type, a cache hit resolves the method once and for all: the method
// object is stashed in a spesh slot and findmeth becomes a cheap
// sp_getspeshslot. A cache miss doesn't mean "no such method" — it
// means the cache can't answer at optimization time — so the rewrite
// falls back to sp_findmeth, a faster guarded lookup that still
// stashes the resolved type and a cache-generation check across two
// spesh slots rather than repeating the full name-based search.
func FindMeth(g *graph.Graph, collab graph.Collaborators, _ *graph.BasicBlock, ins *graph.Instruction) error {
	if ins.Opcode != graph.OpFindMeth {
		return nil
	}
	dst, invocant, nameLit := ins.Operands[0], ins.Operands[1], ins.Operands[2]
	facts := g.FactsFor(invocant)
	if !facts.Flags.Has(graph.FactKnownType) {
		return nil
	}

	if nameLit.Kind != graph.OperandLitStr {
		return nil
	}
	name := nameLit.LitStr

	if method, ok := collab.FindMethodCacheOnly(facts.Type, name); ok {
		slot := g.AddSpeshSlot(method)
		ins.Opcode = graph.OpSpGetSpeshSlot
		ins.Operands = []graph.Operand{dst, graph.I16Operand(slot)}
		dstFacts := g.FactsDirect(dst)
		dstFacts.Flags |= graph.FactKnownValue
		dstFacts.Value = graph.TaggedValue{IsObj: true, Obj: method}
		facts.Usages--
		return nil
	}

	typeSlot := g.AddSpeshSlot(nil)
	cacheSlot := g.AddSpeshSlot(nil)
	ins.Opcode = graph.OpSpFindMeth
	ins.Operands = []graph.Operand{dst, invocant, graph.I16Operand(typeSlot), graph.I16Operand(cacheSlot)}
	return nil
}
