package rules

import "spesh/internal/graph"

// Decont implements optimize_decont. A value that is already known to
// be deconted, or is a type object (type objects are never
// containers), decontainerizes to itself — the instruction degenerates
// to a set, and dst inherits src's facts wholesale. Otherwise, if the
// value's type is known, the representation's container spec gets a
// chance to specialize the fetch through Collaborators.ContainerSpeshHook,
// and whatever decont-shaped facts are available on the source
// propagate onto the destination so later rules downstream of this
// decont see them too.
func Decont(g *graph.Graph, collab graph.Collaborators, bb *graph.BasicBlock, ins *graph.Instruction) error {
	if ins.Opcode != graph.OpDecont {
		return nil
	}
	dst, src := ins.Operands[0], ins.Operands[1]
	facts := g.FactsFor(src)
	dstFacts := g.FactsDirect(dst)

	if facts.Flags.Has(graph.FactDeconted) || facts.Flags.Has(graph.FactTypeObj) {
		ins.Opcode = graph.OpSet
		ins.Operands = []graph.Operand{dst, src}
		dstFacts.CopyFrom(facts)
		return nil
	}

	if facts.Flags.Has(graph.FactKnownType) {
		collab.ContainerSpeshHook(facts.Type, g, bb, ins)
	}

	if facts.Flags.Has(graph.FactKnownDecontType) {
		dstFacts.Flags |= graph.FactKnownType
		dstFacts.Type = facts.DecontType
	}
	if facts.Flags.Has(graph.FactDecontConcrete) {
		dstFacts.Flags |= graph.FactConcrete
	}
	if facts.Flags.Has(graph.FactDecontTypeObj) {
		dstFacts.Flags |= graph.FactTypeObj
	}
	return nil
}
