package callopt

import "spesh/internal/graph"

// Candidate is one spesh candidate a callee offers: a set of argument
// guards that must hold for the candidate to be valid for a given
// call, and an index identifying which compiled version of the callee
// it corresponds to.
type Candidate struct {
	Index  int
	Guards []graph.ArgGuard
}

// MatchCandidate implements try_find_spesh_candidate: a candidate
// matches a call when every one of its guards is satisfied by the
// facts recorded for the corresponding argument slot. A guard whose
// slot has no recorded facts, or whose kind this function doesn't
// recognize, makes the candidate fail to match rather than guess.
func MatchCandidate(ci *CallInfo, cand Candidate) bool {
	for _, guard := range cand.Guards {
		if guard.Slot < 0 || guard.Slot >= MaxArgsForOpt {
			return false
		}
		facts := ci.ArgFacts[guard.Slot]
		if facts == nil {
			return false
		}
		if !guardSatisfied(facts, guard) {
			return false
		}
	}
	return true
}

func guardSatisfied(facts *graph.Facts, guard graph.ArgGuard) bool {
	switch guard.Kind {
	case graph.GuardConc:
		return facts.Flags.Has(graph.FactKnownType) && facts.Flags.Has(graph.FactConcrete) &&
			facts.Type == guard.Expect
	case graph.GuardType:
		return facts.Flags.Has(graph.FactKnownType) && facts.Type == guard.Expect
	case graph.GuardDCConc:
		return facts.Flags.Has(graph.FactKnownDecontType) && facts.Flags.Has(graph.FactDecontConcrete) &&
			facts.DecontType == guard.Expect
	case graph.GuardDCType:
		return facts.Flags.Has(graph.FactKnownDecontType) && facts.DecontType == guard.Expect
	default:
		return false
	}
}

// FindCandidate returns the first matching candidate among
// candidates, in order — matching the source VM's first-match
// semantics for spesh candidate selection.
func FindCandidate(ci *CallInfo, candidates []Candidate) (Candidate, bool) {
	for _, c := range candidates {
		if MatchCandidate(ci, c) {
			return c, true
		}
	}
	return Candidate{}, false
}
