package textir

import (
	"fmt"
	"strings"

	"spesh/internal/graph"
)

// Print renders g as text for reading, walking blocks in
// dominator-tree order the same way the driver itself visits them.
// Operands are written with Operand.String and separated by spaces,
// so the output is not in the form Parse reads.
func Print(g *graph.Graph) string {
	var sb strings.Builder
	seen := make(map[*graph.BasicBlock]bool)
	var walk func(bb *graph.BasicBlock)
	walk = func(bb *graph.BasicBlock) {
		if bb == nil || seen[bb] {
			return
		}
		seen[bb] = true
		printBlock(&sb, bb)
		for _, c := range bb.Children {
			walk(c)
		}
	}
	walk(g.Entry)
	return sb.String()
}

func printBlock(sb *strings.Builder, bb *graph.BasicBlock) {
	fmt.Fprintf(sb, "block %s:\n", bb.Label)
	for _, ins := range bb.Instructions() {
		fmt.Fprintf(sb, "  %s\n", printInstruction(ins))
	}
}

func printInstruction(ins *graph.Instruction) string {
	var sb strings.Builder
	operands := ins.Operands
	if dst, ok := ins.WritesReg(); ok && len(operands) > 0 {
		fmt.Fprintf(&sb, "%s = ", dst.String())
		operands = operands[1:]
	}
	sb.WriteString(ins.Opcode.String())
	for _, o := range operands {
		sb.WriteString(" ")
		sb.WriteString(o.String())
	}
	return sb.String()
}
