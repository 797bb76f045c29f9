package textir

import (
	"fmt"

	"github.com/alecthomas/participle/v2"

	"spesh/internal/graph"
)

var parser = participle.MustBuild[Program](
	participle.Lexer(specLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
)

// Parse builds a graph.Graph from source. Register operands are
// identifiers matched case-sensitively across the whole program: the
// first occurrence of a given name fixes its origin index, and every
// instruction always reads/writes SSA version 0 — this notation has
// no syntax for expressing multiple versions of one register, since
// test fixtures built from it are typically pre-SSA-renaming
// snapshots exercising a single rewrite rule in isolation.
func Parse(source string) (*graph.Graph, error) {
	prog, err := parser.ParseString("", source)
	if err != nil {
		return nil, fmt.Errorf("textir: %w", err)
	}
	return build(prog)
}

type builder struct {
	regs   map[string]graph.RegOrigin
	blocks map[string]*graph.BasicBlock
	nextID int32
}

func build(prog *Program) (*graph.Graph, error) {
	if len(prog.Blocks) == 0 {
		return nil, fmt.Errorf("textir: program has no blocks")
	}
	b := &builder{regs: make(map[string]graph.RegOrigin), blocks: make(map[string]*graph.BasicBlock)}

	var ordered []*graph.BasicBlock
	for _, blk := range prog.Blocks {
		bb := &graph.BasicBlock{Label: blk.Label}
		b.blocks[blk.Label] = bb
		ordered = append(ordered, bb)
	}
	for i, bb := range ordered {
		if i+1 < len(ordered) {
			bb.LinearNext = ordered[i+1]
		}
	}

	g := graph.NewGraph(ordered[0])
	g.NumBBs = len(ordered)

	for i, blk := range prog.Blocks {
		bb := ordered[i]
		var prev *graph.Instruction
		for _, pi := range blk.Instructions {
			ins, err := b.buildInstruction(g, pi)
			if err != nil {
				return nil, err
			}
			graph.InsertInsAfter(bb, prev, ins)
			prev = ins
			if target, ok := b.branchTarget(pi); ok {
				bb.AddSuccessor(target)
			}
		}
	}
	return g, nil
}

func (b *builder) reg(name string) graph.RegOrigin {
	if r, ok := b.regs[name]; ok {
		return r
	}
	r := graph.RegOrigin(len(b.regs))
	b.regs[name] = r
	return r
}

func (b *builder) buildInstruction(g *graph.Graph, pi *Instruction) (*graph.Instruction, error) {
	op, ok := graph.OpcodeByName(pi.Opcode)
	if !ok {
		return nil, fmt.Errorf("textir: unknown opcode %q", pi.Opcode)
	}

	var operands []graph.Operand
	if pi.Dest != "" {
		operands = append(operands, graph.RegOperand(b.reg(pi.Dest), 0))
	}
	for _, po := range pi.Operand {
		operands = append(operands, b.buildOperand(po))
	}

	ins := g.Alloc(op, operands)
	return ins, nil
}

func (b *builder) buildOperand(po *Operand) graph.Operand {
	switch {
	case po.Ident != nil:
		if target, ok := b.blocks[*po.Ident]; ok {
			return graph.BlockOperand(target)
		}
		return graph.RegOperand(b.reg(*po.Ident), 0)
	case po.Float != nil:
		return graph.N64Operand(*po.Float)
	case po.Int != nil:
		return graph.I64Operand(*po.Int)
	case po.Str != nil:
		return graph.StrLitOperand(*po.Str)
	default:
		return graph.Operand{}
	}
}

// branchTarget reports the block an instruction transfers control
// to, if any, so the builder can record the successor edge.
func (b *builder) branchTarget(pi *Instruction) (*graph.BasicBlock, bool) {
	for _, po := range pi.Operand {
		if po.Ident == nil {
			continue
		}
		if target, ok := b.blocks[*po.Ident]; ok {
			return target, true
		}
	}
	return nil, false
}
