// Package testhost provides an in-memory fake of graph.Collaborators
// and the handful of supporting types (a toy type/method registry,
// fake code objects) that internal/rules, internal/callopt and
// internal/optimize tests exercise the optimizer against. The real
// method cache, type-check cache, multi-dispatch cache and
// representation/container spesh hooks are all out of scope for this
// module — this package exists only so the rewrite logic can be
// driven and asserted on without a real VM present.
package testhost

import (
	"fmt"

	"spesh/internal/graph"
)

// Type is a minimal graph.TypeHandle for tests.
type Type struct {
	Name  string
	Repr  graph.ReprID
	Hll   string
	Inv   *graph.InvocationSpec
	attrs map[string]Object
}

func NewType(name string, repr graph.ReprID) *Type {
	return &Type{Name: name, Repr: repr, attrs: make(map[string]Object)}
}

func (t *Type) ReprID() graph.ReprID { return t.Repr }
func (t *Type) HLL() string          { return t.Hll }
func (t *Type) String() string       { return t.Name }

func (t *Type) InvocationSpec() (*graph.InvocationSpec, bool) {
	if t.Inv == nil {
		return nil, false
	}
	return t.Inv, true
}

// SetAttr records an attribute value on instances of this type. Host.GetAttribute
// does not read these; it answers from Host.Attrs.
func (t *Type) SetAttr(name string, v Object) { t.attrs[name] = v }

// Object is a minimal graph.ObjectHandle for tests.
type Object struct {
	Name       string
	Of         *Type
	IsConcrete bool
}

func (o Object) Concrete() bool      { return o.IsConcrete }
func (o Object) Type() graph.TypeHandle { return o.Of }
func (o Object) String() string      { return fmt.Sprintf("%s(%s)", o.Of.Name, o.Name) }

// Host is a fake graph.Collaborators backed by simple in-memory maps.
// Every lookup table defaults to "don't know" (ok=false) unless a
// test populates it, matching the real caches' behavior on a cold or
// inconclusive entry.
type Host struct {
	Methods       map[methodKey]Object
	CanAnswers    map[methodKey]bool
	TypeChecks    map[typeCheckKey]bool
	Bools         map[Object]bool
	Attrs         map[attrKey]Object
	InlineResults map[string]bool
	MultiResults  map[string]Object
}

type methodKey struct {
	t    graph.TypeHandle
	name string
}

type typeCheckKey struct {
	objType, want graph.TypeHandle
}

type attrKey struct {
	obj   Object
	class graph.TypeHandle
	name  string
}

func NewHost() *Host {
	return &Host{
		Methods:       make(map[methodKey]Object),
		CanAnswers:    make(map[methodKey]bool),
		TypeChecks:    make(map[typeCheckKey]bool),
		Bools:         make(map[Object]bool),
		Attrs:         make(map[attrKey]Object),
		InlineResults: make(map[string]bool),
		MultiResults:  make(map[string]Object),
	}
}

func (h *Host) AddMethod(t graph.TypeHandle, name string, m Object) {
	h.Methods[methodKey{t, name}] = m
	h.CanAnswers[methodKey{t, name}] = true
}

// SetAttr records obj's attrName attribute (declared on class) as v,
// for GetAttribute to return later.
func (h *Host) SetAttr(obj Object, class graph.TypeHandle, attrName string, v Object) {
	h.Attrs[attrKey{obj, class, attrName}] = v
}

// SetTypeCheck records the cached answer for an istype check of objType
// against want, for TryCacheTypeCheck to return later.
func (h *Host) SetTypeCheck(objType, want graph.TypeHandle, result bool) {
	h.TypeChecks[typeCheckKey{objType, want}] = result
}

func (h *Host) FindMethodCacheOnly(t graph.TypeHandle, name string) (graph.ObjectHandle, bool) {
	m, ok := h.Methods[methodKey{t, name}]
	return m, ok
}

func (h *Host) CanMethodCacheOnly(t graph.TypeHandle, name string) (bool, bool) {
	can, ok := h.CanAnswers[methodKey{t, name}]
	return can, ok
}

func (h *Host) TryCacheTypeCheck(objType, want graph.TypeHandle) (bool, bool) {
	result, ok := h.TypeChecks[typeCheckKey{objType, want}]
	return result, ok
}

func (h *Host) MultiCacheFindSpesh(cache graph.ObjectHandle, info interface{}) (graph.ObjectHandle, bool) {
	obj, ok := cache.(Object)
	if !ok {
		return nil, false
	}
	m, ok := h.MultiResults[obj.Name]
	return m, ok
}

func (h *Host) ContainerSpeshHook(t graph.TypeHandle, g *graph.Graph, bb *graph.BasicBlock, ins *graph.Instruction) bool {
	return false
}

func (h *Host) ReprSpeshHook(t graph.TypeHandle, g *graph.Graph, bb *graph.BasicBlock, ins *graph.Instruction) bool {
	return false
}

func (h *Host) TryInline(g *graph.Graph, info interface{}, bb *graph.BasicBlock, ins *graph.Instruction, target graph.ObjectHandle, candidateIdx int) bool {
	obj, ok := target.(Object)
	if !ok {
		return false
	}
	return h.InlineResults[obj.Name]
}

func (h *Host) CoerceIsTrue(obj graph.ObjectHandle) (bool, bool) {
	o, ok := obj.(Object)
	if !ok {
		return false, false
	}
	truth, ok := h.Bools[o]
	return truth, ok
}

func (h *Host) GetAttribute(obj graph.ObjectHandle, class graph.TypeHandle, attrName string) (graph.ObjectHandle, bool) {
	o, ok := obj.(Object)
	if !ok {
		return nil, false
	}
	v, ok := h.Attrs[attrKey{o, class, attrName}]
	return v, ok
}
