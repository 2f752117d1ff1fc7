package grammar

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
)

var parser = participle.MustBuild[Module](
	participle.Lexer(TypeScriptLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(4),
)

// ParseString parses TypeScript source. The filename only labels
// positions in errors.
func ParseString(filename, source string) (*Module, error) {
	return parser.ParseString(filename, source)
}

func ParseFile(path string) (*Module, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseString(path, string(source))
}

// FormatError renders a parse error as a caret-style message pointing into
// src. Errors that carry no position are returned as a single line.
func FormatError(src string, err error) string {
	var pe participle.Error
	if !errors.As(err, &pe) {
		return color.RedString("Unexpected error: %s", err) + "\n"
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		return color.RedString("Syntax error at unknown location: %s", err) + "\n"
	}

	var b strings.Builder
	b.WriteString(color.RedString("Syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column))
	b.WriteString("\n")
	b.WriteString(lines[pos.Line-1])
	b.WriteString("\n")
	b.WriteString(color.HiRedString(strings.Repeat(" ", max(0, pos.Column-1)) + "^"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "→ %s\n", pe.Message())
	return b.String()
}
