package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// TypeScriptLexer tokenizes the TypeScript subset produced by the ts
// package.
var TypeScriptLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{Name: "DocComment", Pattern: `/\*\*([^*]|\*+[^*/])*\*+/`, Action: nil},
		{Name: "Comment", Pattern: `//[^\n]*`, Action: nil},

		// Literals
		{Name: "String", Pattern: `"(\\.|[^"\\])*"`, Action: nil},
		{Name: "Number", Pattern: `[0-9]+`, Action: nil},

		// Spread must come before the single dot
		{Name: "Ellipsis", Pattern: `\.\.\.`, Action: nil},

		// Keywords and identifiers
		{Name: "Ident", Pattern: `[a-zA-Z_$][a-zA-Z0-9_$]*`, Action: nil},

		{Name: "Punctuation", Pattern: `[{}()[\];:,.<>|=*]`, Action: nil},

		// Whitespace
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},
	},
})
