package callopt

import "spesh/internal/graph"

// ResolveResult is the outcome of attempting to devirtualize a call's
// callee down to a concrete, invocable code object.
type ResolveResult struct {
	Target graph.ObjectHandle
	// MultiDispatch is true when Target was reached through a
	// multi-dispatch cache rather than a direct single-dispatch
	// attribute chain. OptimizeCall does not consult it: the rebind
	// decision depends only on whether Target differs from the callee.
	MultiDispatch bool
}

// ResolveCallee implements the devirtualization chain optimize_call
// runs over a callee object handle known via KNOWN_VALUE facts:
//
//  1. if the callee is itself an MVMCode-representation object, it is
//     already directly invocable — no chasing needed.
//  2. otherwise, if its type carries an invocation spec, walk it: for
//     single dispatch, fetch the code object out of the named
//     attribute; for multi dispatch, fetch the dispatch cache
//     attribute and resolve it against the call's argument facts via
//     Collaborators.MultiCacheFindSpesh.
//  3. otherwise, the callee cannot be devirtualized and ok is false —
//     the caller falls back to the unresolved, generic invoke.
//
// quirkSingleDispatchOnMultiInvocant mirrors a known inconsistency in
// the source VM: when an invocation spec is present but reports
// itself as both single- and multi-dispatch capable in ways that
// disagree (`is` vs `m_is` checked against different fields), the
// source always resolves it as single dispatch. Set this true to
// reproduce that behavior exactly; false treats such a spec as multi
// dispatch, which is arguably the more correct reading but diverges
// from observed production behavior.
func ResolveCallee(collab graph.Collaborators, callee graph.ObjectHandle, info *CallInfo, quirkSingleDispatchOnMultiInvocant bool) (ResolveResult, bool) {
	calleeType := callee.Type()
	if calleeType.ReprID() == graph.ReprIDMVMCode {
		return ResolveResult{Target: callee}, true
	}

	invocable, ok := calleeType.(graph.Invocable)
	if !ok {
		return ResolveResult{}, false
	}
	spec, ok := invocable.InvocationSpec()
	if !ok {
		return ResolveResult{}, false
	}

	treatAsMulti := spec.MultiDispatch
	if quirkSingleDispatchOnMultiInvocant && spec.MultiDispatch && spec.AttrName != "" {
		treatAsMulti = false
	}

	if !treatAsMulti {
		code, ok := collab.GetAttribute(callee, spec.ClassHandle, spec.AttrName)
		if !ok {
			return ResolveResult{}, false
		}
		return ResolveResult{Target: code}, true
	}

	cache, ok := collab.GetAttribute(callee, spec.ClassHandle, spec.MDCacheAttrName)
	if !ok {
		return ResolveResult{}, false
	}
	target, ok := collab.MultiCacheFindSpesh(cache, info)
	if !ok {
		return ResolveResult{}, false
	}
	return ResolveResult{Target: target, MultiDispatch: true}, true
}
