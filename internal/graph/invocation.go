package graph

// InvocationSpec mirrors the source VM's MVMInvocationSpec: metadata
// attached to a non-code object's type describing how to find the
// code object that should actually be invoked when the object is
// called. A type with no invocation spec is not invocable at all.
type InvocationSpec struct {
	// ClassHandle/AttrName identify the attribute holding the code
	// object for single dispatch, or (together with the md_* fields)
	// the class holding the multi-dispatch cache for multi dispatch.
	ClassHandle TypeHandle
	AttrName    string

	// MultiDispatch, when true, means this is a multi-dispatch
	// invocable: Valid/Cache describe where to find the "is this
	// dispatch cacheable" flag and the multi-dispatch cache object.
	MultiDispatch   bool
	MDValidAttrName string
	MDCacheAttrName string
}

// Invocable is implemented by TypeHandle values that carry invocation
// spec metadata. Types with no invocation spec simply don't implement
// it (or their InvocationSpec method returns ok=false), which is a
// normal, common case — most types are not directly invocable.
type Invocable interface {
	InvocationSpec() (*InvocationSpec, bool)
}
