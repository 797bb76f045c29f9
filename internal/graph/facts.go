package graph

// FactFlags is the bitset of semantic facts the analysis pass (and
// the optimizer's own rewrites) can assert about a register version.
type FactFlags uint32

const (
	FactKnownType FactFlags = 1 << iota
	FactKnownDecontType
	FactKnownValue
	FactConcrete
	FactTypeObj
	FactDeconted
	FactDecontConcrete
	FactDecontTypeObj
	FactFromLogGuard
)

func (f FactFlags) Has(flag FactFlags) bool { return f&flag != 0 }

// Facts is the per-(register, SSA version) fact record: everything
// the optimizer statically knows about one SSA value. Payload fields
// are meaningful only when the corresponding flag bit is set.
type Facts struct {
	Flags      FactFlags
	Type       TypeHandle
	DecontType TypeHandle
	Value      TaggedValue
	LogGuard   int32 // index into Graph.LogGuards, valid iff FactFromLogGuard
	Usages     int32
}

// CopyFrom copies the flags/type/decont-type/value/log-guard fields
// from src into f, the way the `set` rewrite rule propagates facts
// from source to destination register. Usages is deliberately
// not copied — each register tracks its own use count.
func (f *Facts) CopyFrom(src *Facts) {
	f.Flags = src.Flags
	f.Type = src.Type
	f.DecontType = src.DecontType
	f.Value = src.Value
	f.LogGuard = src.LogGuard
}
