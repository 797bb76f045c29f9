// Package textir implements a small textual notation for spesh
// graphs: a terse assembly-like syntax tests can build fixtures from
// instead of constructing graph.Graph values field by field, and that
// a Tracer-adjacent debugging tool could use to print one back out.
// The grammar is newly authored for this notation — it is not the
// teacher's contract language — but it is built the same way the
// teacher builds its own grammar: a participle stateful lexer feeding
// a struct-tag grammar (compare grammar/lexer.go, grammar/grammar.go).
package textir

import "github.com/alecthomas/participle/v2/lexer"

var specLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"Keyword", `block\b`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_.]*`, nil},
		{"Float", `[0-9]+\.[0-9]+`, nil},
		{"Int", `-?[0-9]+`, nil},
		{"String", `"(\\.|[^"])*"`, nil},
		{"Punct", `[=,:()]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
