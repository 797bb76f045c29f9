package textir

// Program is a sequence of blocks, each a label followed by a flat
// list of instructions. There is no dominator-tree or successor-edge
// syntax: the parser adds a successor edge for every operand that
// names a block label and links adjacent blocks through LinearNext.
// It builds no dominator children, so only Entry is reachable through
// Children.
type Program struct {
	Blocks []*Block `@@*`
}

type Block struct {
	Label        string         `"block" @Ident ":"`
	Instructions []*Instruction `@@*`
}

type Instruction struct {
	Dest    string     `[ @Ident "=" ]`
	Opcode  string     `@Ident`
	Operand []*Operand `( @@ ( "," @@ )* )?`
}

// Operand covers every operand shape the notation supports: a bare
// identifier (register or block-label reference), an integer, a
// float, or a quoted string (method names, for findmeth/can_s).
type Operand struct {
	Ident *string  `  @Ident`
	Float *float64 `| @Float`
	Int   *int64   `| @Int`
	Str   *string  `| @String`
}
