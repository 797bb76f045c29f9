// Package callopt implements call-site optimization: tracking the
// argument shape of an in-progress call as prepargs/arg_*/argconst_*
// instructions are seen, then — once the actual invoke is reached —
// attempting speculative devirtualization of the callee and either
// inlining it or rewriting the call to a faster sp_fastinvoke_* form.
package callopt

import (
	"spesh/internal/callsite"
	"spesh/internal/graph"
)

// MaxArgsForOpt bounds how many argument slots CallInfo tracks facts
// for. A call with more arguments than this still executes correctly
// — it just isn't a candidate for the fact-driven optimizations this
// package performs, the same cutoff the source VM uses to keep
// CallInfo a fixed-size structure instead of a dynamic allocation
// per call.
const MaxArgsForOpt = 8

// CallInfo accumulates what's known about one in-progress call: the
// callsite shape once prepargs is seen, and per-argument facts/consts
// as arg_*/argconst_* instructions are encountered walking toward the
// eventual invoke_*.
type CallInfo struct {
	Callsite    *callsite.Callsite
	PrepargsIns *graph.Instruction
	NumArgs     int
	ArgFacts    [MaxArgsForOpt]*graph.Facts
	ArgIsConst  [MaxArgsForOpt]bool
	ArgIns      [MaxArgsForOpt]*graph.Instruction
}

// RecordArg records the instruction (and, when known, the facts) for
// argument slot idx. Slots at or beyond MaxArgsForOpt are silently
// not tracked — the call can still proceed, just without
// optimization support for that slot.
func (ci *CallInfo) RecordArg(idx int, ins *graph.Instruction, facts *graph.Facts, isConst bool) {
	if idx < 0 || idx >= MaxArgsForOpt {
		return
	}
	if idx >= ci.NumArgs {
		ci.NumArgs = idx + 1
	}
	ci.ArgIns[idx] = ins
	ci.ArgFacts[idx] = facts
	ci.ArgIsConst[idx] = isConst
}

// Trackable reports whether this call's full argument count still
// fits within MaxArgsForOpt, the gate the source VM checks before
// doing any devirtualization work at all.
func (ci *CallInfo) Trackable() bool {
	return ci.Callsite != nil && ci.Callsite.ArgCount <= MaxArgsForOpt
}
