package textir

import (
	"strings"
	"testing"

	"spesh/internal/graph"
)

func TestParseBuildsInstructionsInOrder(t *testing.T) {
	src := `
block entry:
  r1 = isconcrete r0
  if_i r1, target

block target:
  r2 = set r1
`
	g, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if g.Entry.Label != "entry" {
		t.Fatalf("expected entry block first, got %s", g.Entry.Label)
	}
	insns := g.Entry.Instructions()
	if len(insns) != 2 {
		t.Fatalf("expected 2 instructions in entry, got %d", len(insns))
	}
	if insns[0].Opcode != graph.OpIsConcrete {
		t.Fatalf("expected first instruction isconcrete, got %s", insns[0].Opcode)
	}
	if insns[1].Opcode != graph.OpIfI {
		t.Fatalf("expected second instruction if_i, got %s", insns[1].Opcode)
	}
	if len(g.Entry.Succ) != 1 || g.Entry.Succ[0].Label != "target" {
		t.Fatalf("expected entry to branch to target, got %v", g.Entry.Succ)
	}
}

func TestParseUnknownOpcodeErrors(t *testing.T) {
	_, err := Parse("block entry:\n  r0 = bogusop r1\n")
	if err == nil {
		t.Fatal("expected an error for an unrecognized opcode")
	}
}

func TestPrintRendersBlockHeaderAndOpcode(t *testing.T) {
	bb := &graph.BasicBlock{Label: "entry"}
	g := graph.NewGraph(bb)
	ins := g.Alloc(graph.OpIsConcrete, []graph.Operand{graph.RegOperand(1, 0), graph.RegOperand(0, 0)})
	graph.InsertInsAfter(bb, nil, ins)

	out := Print(g)
	if !strings.Contains(out, "block entry:") {
		t.Fatalf("expected block header in output, got %q", out)
	}
	if !strings.Contains(out, "isconcrete") {
		t.Fatalf("expected opcode mnemonic in output, got %q", out)
	}
}
