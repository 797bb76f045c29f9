// Package graph implements the spesh graph: the per-routine,
// per-argument-profile intermediate representation the specializing
// optimizer mutates in place. The graph is produced upstream by type
// inference and consumed downstream by code generation; this package
// owns only the data model and the manipulation primitives (delete,
// insert, remove-successor, arena allocation) — the rewrite rules
// that drive mutation live in package rules, and the traversal that
// fires them lives in package optimize.
package graph

import "fmt"

// TypeHandle stands in for a 6model type object (an MVMSTable/WHAT
// pair in the source VM). The real type system is out of scope;
// this package only needs type handles to compare for identity and to
// ask a handful of yes/no questions through the Collaborators seam.
type TypeHandle interface {
	// ReprID reports the representation id backing this type, used by
	// the representation-id predicates (islist/ishash/isint/...) and
	// by representation-specialized ops.
	ReprID() ReprID
	// HLL reports the high-level-language this type belongs to, used
	// by hllize.
	HLL() string
	String() string
}

// ObjectHandle stands in for an arbitrary heap object (a method, a
// code object, a logged value, ...). Equality is handle identity.
type ObjectHandle interface {
	// Concrete reports whether this handle is a concrete instance
	// (true) or a type object (false).
	Concrete() bool
	// Type reports the handle's own type.
	Type() TypeHandle
	String() string
}

// ReprID enumerates the compile-time representation ids the optimizer
// cares about. Exposed as a typed enum rather than scattered magic
// numbers so representation-kind switches are exhaustiveness-checkable.
type ReprID int

const (
	ReprIDUnknown ReprID = iota
	ReprIDMVMArray
	ReprIDMVMHash
	ReprIDP6int
	ReprIDP6num
	ReprIDP6str
	ReprIDMVMCode
)

func (r ReprID) String() string {
	switch r {
	case ReprIDMVMArray:
		return "MVMArray"
	case ReprIDMVMHash:
		return "MVMHash"
	case ReprIDP6int:
		return "P6int"
	case ReprIDP6num:
		return "P6num"
	case ReprIDP6str:
		return "P6str"
	case ReprIDMVMCode:
		return "MVMCode"
	default:
		return "Unknown"
	}
}

// TaggedValue holds a known compile-time value of one of the VM's
// primitive register kinds. Exactly one field is meaningful, selected
// by the IsObj, IsNum and IsStr flags; Int applies when none is set.
type TaggedValue struct {
	Obj   ObjectHandle
	Int   int64
	Num   float64
	Str   string
	IsObj bool
	IsNum bool
	IsStr bool
}

// RegOrigin identifies a register by its origin index (the register
// number before SSA renaming); SSAVersion disambiguates successive
// definitions of that register, matching the (orig, i) pair the
// source VM uses to index its facts table.
type RegOrigin int32

// Reg is an (origin, version) pair identifying one SSA value.
type Reg struct {
	Orig    RegOrigin
	Version int32
}

func (r Reg) String() string { return fmt.Sprintf("r%d(%d)", r.Orig, r.Version) }

// OperandKind discriminates the union in Operand.
type OperandKind int

const (
	OperandReg OperandKind = iota
	OperandLitI16
	OperandLitI64
	OperandLitN64
	OperandLitStrIdx
	OperandLitStr
	OperandCallsiteIdx
	OperandBlockTarget
)

// Operand is one operand of an instruction: either a register
// reference (in (origin, SSA version) form), a literal of one of the
// VM's literal kinds, a callsite table index, or a branch target
// block.
type Operand struct {
	Kind OperandKind

	Reg         Reg
	LitI16      int16
	LitI64      int64
	LitN64      float64
	LitStrIdx   int32
	LitStr      string
	CallsiteIdx int32
	Target      *BasicBlock
}

// RegOperand builds a register operand.
func RegOperand(orig RegOrigin, version int32) Operand {
	return Operand{Kind: OperandReg, Reg: Reg{Orig: orig, Version: version}}
}

// I16Operand builds a 16-bit literal-integer operand.
func I16Operand(v int16) Operand { return Operand{Kind: OperandLitI16, LitI16: v} }

// I64Operand builds a 64-bit literal-integer operand.
func I64Operand(v int64) Operand { return Operand{Kind: OperandLitI64, LitI64: v} }

// N64Operand builds a 64-bit literal floating point operand.
func N64Operand(v float64) Operand { return Operand{Kind: OperandLitN64, LitN64: v} }

// StrOperand builds a literal-string-table-index operand.
func StrOperand(idx int32) Operand { return Operand{Kind: OperandLitStrIdx, LitStrIdx: idx} }

// StrLitOperand builds a resolved literal-string operand, used for
// operands like a method name that are already a concrete string at
// graph-build time rather than a string-heap index codegen must
// resolve later (e.g. findmeth's name, can_s's name register aside).
func StrLitOperand(s string) Operand { return Operand{Kind: OperandLitStr, LitStr: s} }

// CallsiteOperand builds a callsite-table-index operand.
func CallsiteOperand(idx int32) Operand { return Operand{Kind: OperandCallsiteIdx, CallsiteIdx: idx} }

// BlockOperand builds a branch-target operand.
func BlockOperand(bb *BasicBlock) Operand { return Operand{Kind: OperandBlockTarget, Target: bb} }

func (o Operand) String() string {
	switch o.Kind {
	case OperandReg:
		return o.Reg.String()
	case OperandLitI16:
		return fmt.Sprintf("i16(%d)", o.LitI16)
	case OperandLitI64:
		return fmt.Sprintf("i64(%d)", o.LitI64)
	case OperandLitN64:
		return fmt.Sprintf("n64(%g)", o.LitN64)
	case OperandLitStrIdx:
		return fmt.Sprintf("str(%d)", o.LitStrIdx)
	case OperandLitStr:
		return fmt.Sprintf("%q", o.LitStr)
	case OperandCallsiteIdx:
		return fmt.Sprintf("cs(%d)", o.CallsiteIdx)
	case OperandBlockTarget:
		if o.Target != nil {
			return o.Target.Label
		}
		return "<nil-bb>"
	default:
		return "?"
	}
}
