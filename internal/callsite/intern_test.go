package callsite

import "testing"

func TestTryInternDedupesStructurallyEqualShapes(t *testing.T) {
	tbl := NewTable()

	a := &Callsite{ArgFlags: []ArgFlag{ArgObj, ArgInt}, NumPos: 2, ArgCount: 2}
	b := &Callsite{ArgFlags: []ArgFlag{ArgObj, ArgInt}, NumPos: 2, ArgCount: 2}

	tbl.TryIntern(&a)
	tbl.TryIntern(&b)

	if a != b {
		t.Fatal("expected equivalent callsites to intern to the same pointer")
	}
	if !a.IsInterned {
		t.Fatal("expected interned callsite to be marked interned")
	}
}

func TestTryInternKeepsDistinctShapesSeparate(t *testing.T) {
	tbl := NewTable()

	a := &Callsite{ArgFlags: []ArgFlag{ArgObj, ArgInt}, NumPos: 2, ArgCount: 2}
	c := &Callsite{ArgFlags: []ArgFlag{ArgObj, ArgStr}, NumPos: 2, ArgCount: 2}

	tbl.TryIntern(&a)
	tbl.TryIntern(&c)

	if a == c {
		t.Fatal("expected differing flag bytes to register separately")
	}
	if !c.IsInterned {
		t.Fatal("expected second, distinct callsite to also be interned")
	}
}

func TestTryInternSkipsFlatteningCallsites(t *testing.T) {
	tbl := NewTable()
	cs := &Callsite{ArgFlags: []ArgFlag{ArgObj}, NumPos: 1, ArgCount: 1, HasFlattening: true}

	tbl.TryIntern(&cs)

	if cs.IsInterned {
		t.Fatal("callsite with flattening must not be interned")
	}
}

func TestTryInternSkipsNamedArgsWithoutNames(t *testing.T) {
	tbl := NewTable()
	// 1 positional + 1 named flag, ArgCount = 1 + 2*1 = 3, but no ArgNames.
	cs := &Callsite{ArgFlags: []ArgFlag{ArgObj, ArgNamed | ArgObj}, NumPos: 1, ArgCount: 3}

	tbl.TryIntern(&cs)

	if cs.IsInterned {
		t.Fatal("callsite with named args but no names must not be interned")
	}
}

func TestTryInternSkipsAtArityLimit(t *testing.T) {
	tbl := NewTable()
	flags := make([]ArgFlag, MVMInternArityLimit)
	for i := range flags {
		flags[i] = ArgObj
	}
	cs := &Callsite{ArgFlags: flags, NumPos: MVMInternArityLimit, ArgCount: MVMInternArityLimit}

	tbl.TryIntern(&cs)

	if cs.IsInterned {
		t.Fatal("callsite at or above the arity limit must not be interned")
	}
}

func TestTryInternComparesNamedArgumentNames(t *testing.T) {
	tbl := NewTable()

	a := &Callsite{
		ArgFlags: []ArgFlag{ArgNamed | ArgObj}, NumPos: 0, ArgCount: 2,
		ArgNames: []string{"x"},
	}
	b := &Callsite{
		ArgFlags: []ArgFlag{ArgNamed | ArgObj}, NumPos: 0, ArgCount: 2,
		ArgNames: []string{"y"},
	}

	tbl.TryIntern(&a)
	tbl.TryIntern(&b)

	if a == b {
		t.Fatal("callsites with differing named-argument names must not unify")
	}
}

func TestTryInternGrowsBucketPastEight(t *testing.T) {
	tbl := NewTable()
	for i := 0; i < 20; i++ {
		cs := &Callsite{ArgFlags: []ArgFlag{ArgObj}, NumPos: 1, ArgCount: 1, ArgNames: []string{string(rune('a' + i))}}
		// force distinct shapes by giving each callsite its own flag byte so none unify
		cs.NumPos = 1
		cs.ArgFlags = []ArgFlag{ArgFlag(i + 1)}
		tbl.TryIntern(&cs)
	}
	if got := len(tbl.buckets[1]); got <= 8 {
		t.Fatalf("expected bucket to have grown past eight entries, got %d", got)
	}
}

func TestCommonUnknownIDIsFatal(t *testing.T) {
	_, err := Common(CommonCallsiteID(999))
	if err == nil {
		t.Fatal("expected an error for an unknown common callsite id")
	}
}

func TestCommonInvArgIsInterned(t *testing.T) {
	cs, err := Common(InvArg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cs.IsInterned {
		t.Fatal("expected common callsite to be interned")
	}
	if cs.NumPos != 1 {
		t.Fatalf("expected InvArg to have one positional argument, got %d", cs.NumPos)
	}
}
