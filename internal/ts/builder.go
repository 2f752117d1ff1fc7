// Package ts assembles TypeScript source text through a chain of position
// values. Each position type only offers the operations that are legal at
// that point of the grammar, so an emitter cannot produce a parameter
// inside an expression or close a call it never opened.
//
// Every operation takes its receiver by value and returns a new position;
// nothing is mutated in place.
package ts

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultIndent is the indentation unit used by NewScript.
const DefaultIndent = "  "

// builder is the state shared by all positions: the text written so far
// and the current block depth.
type builder struct {
	out    string
	level  int
	indent string
}

func (b builder) add(parts ...string) builder {
	b.out += strings.Join(parts, "")
	return b
}

// line starts a new line at the current depth. The first line of a script
// is not preceded by a newline.
func (b builder) line() builder {
	if b.out != "" {
		b.out += "\n"
	}
	b.out += strings.Repeat(b.indent, b.level)
	return b
}

func (b builder) push() builder {
	b.level++
	return b
}

func (b builder) pop() builder {
	if b.level == 0 {
		panic("ts: closing a block at depth 0")
	}
	b.level--
	return b
}

// close leaves the current block and writes the closing brace at the
// enclosing depth.
func (b builder) close() builder {
	return b.pop().line().add("}")
}

// Visibility is the access modifier of a class member.
type Visibility int

const (
	Unspecified Visibility = iota
	Public
	Protected
	Private
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return ""
	}
}

func (v Visibility) prefix() string {
	if v == Unspecified {
		return ""
	}
	return v.String() + " "
}

// Export selects how a declaration is exported from its module.
type Export int

const (
	NotExported Export = iota
	ExportNamed
	ExportDefault
)

func (e Export) prefix() string {
	switch e {
	case ExportNamed:
		return "export "
	case ExportDefault:
		return "export default "
	default:
		return ""
	}
}

// ClassKind is the declaration keyword of a Class.
type ClassKind int

const (
	KindClass ClassKind = iota
	KindInterface
	KindAbstractClass
)

func (k ClassKind) String() string {
	switch k {
	case KindInterface:
		return "interface"
	case KindAbstractClass:
		return "abstract class"
	default:
		return "class"
	}
}

// quote writes s as a double-quoted JavaScript string literal. Characters
// that are not printable use \u escapes, with the \u{...} form outside
// the Basic Multilingual Plane. Invalid UTF-8 becomes U+FFFD.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			switch {
			case strconv.IsPrint(r):
				b.WriteRune(r)
			case r > 0xffff:
				fmt.Fprintf(&b, `\u{%x}`, r)
			default:
				fmt.Fprintf(&b, `\u%04x`, r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
