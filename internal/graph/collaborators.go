package graph

// Collaborators is the seam between the optimizer and every subsystem
// this package treats as out of scope: the method cache, the
// type-check cache, the multi-dispatch cache, container/representation
// spec hooks, the inliner, the boolification evaluator, and the
// attribute fetcher. Every rule and the call optimizer reach those
// subsystems exclusively through this interface, never through a
// concrete VM type, which is what lets this package's rewrite logic
// be tested without a real VM present (see internal/testhost).
//
// CallInfo is passed as interface{} to avoid an import cycle between
// graph and callopt (callopt depends on graph, not vice versa);
// implementations type-assert it back to *callopt.CallInfo.
type Collaborators interface {
	// FindMethodCacheOnly looks up name in t's method cache without
	// triggering a MRO walk or user-level find_method override. Used
	// by the findmeth rewrite rule.
	FindMethodCacheOnly(t TypeHandle, name string) (ObjectHandle, bool)

	// CanMethodCacheOnly answers whether t responds to name, reading
	// only the method cache. ok is false when the cache can't give a
	// definitive answer (the "don't know yet" case).
	CanMethodCacheOnly(t TypeHandle, name string) (can bool, ok bool)

	// TryCacheTypeCheck answers whether obj (of type objType) is of
	// type want, using the type-check cache. ok is false on a cache
	// miss — the rewrite must be skipped, not that the check failed.
	TryCacheTypeCheck(objType, want TypeHandle) (result bool, ok bool)

	// MultiCacheFindSpesh resolves a multi-dispatch against the
	// current call's argument shape/facts (carried in info, a
	// *callopt.CallInfo), returning the matched candidate if any.
	MultiCacheFindSpesh(cache ObjectHandle, info interface{}) (ObjectHandle, bool)

	// ContainerSpeshHook invokes a container spec's `spesh` hook for
	// t against the decont instruction ins in block bb, returning
	// whether the hook made a rewrite.
	ContainerSpeshHook(t TypeHandle, g *Graph, bb *BasicBlock, ins *Instruction) bool

	// ReprSpeshHook invokes a representation's `spesh` hook for t
	// against ins in block bb, returning whether it made a rewrite.
	ReprSpeshHook(t TypeHandle, g *Graph, bb *BasicBlock, ins *Instruction) bool

	// TryInline attempts to obtain and splice in an inline graph for
	// target's spesh candidate candidateIdx, given the call's info
	// (*callopt.CallInfo) at the invoke instruction ins in block bb.
	// Returns false when inlining is not available, in which case the
	// caller falls back to a fast-invoke rewrite.
	TryInline(g *Graph, info interface{}, bb *BasicBlock, ins *Instruction, target ObjectHandle, candidateIdx int) bool

	// CoerceIsTrue evaluates the boolification of obj for boolification
	// modes that can be resolved at optimization time. ok is false for
	// MVM_BOOL_MODE_CALL_METHOD, which requires calling into the VM
	// and must be left for runtime.
	CoerceIsTrue(obj ObjectHandle) (truth bool, ok bool)

	// GetAttribute fetches the attribute named attrName, declared on
	// class, out of obj — used to walk an invocation spec's
	// class_handle/attr_name chain during call devirtualization.
	GetAttribute(obj ObjectHandle, class TypeHandle, attrName string) (ObjectHandle, bool)
}
