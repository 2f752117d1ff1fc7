package grammar

import (
	"fmt"
	"strings"
)

func indent(level int) string {
	return strings.Repeat("  ", level)
}

// String prints the module in the layout the ts package produces: one
// declaration per line, two-space indentation and a blank line after the
// import block.
func (m *Module) String() string {
	var b strings.Builder
	for i, item := range m.Items {
		b.WriteString(item.StringWithIndent(0))
		b.WriteString("\n")
		if item.Import != nil && i+1 < len(m.Items) && m.Items[i+1].Import == nil {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (i *Item) StringWithIndent(level int) string {
	switch {
	case i.Import != nil:
		return i.Import.String()
	case i.Comment != nil:
		return i.Comment.Text
	case i.Class != nil:
		return i.Class.StringWithIndent(level)
	case i.Stmt != nil:
		return indent(level) + i.Stmt.String()
	}
	return ""
}

func (i *Import) String() string {
	if i.Namespace != "" {
		return fmt.Sprintf("import * as %s from %s;", i.Namespace, i.Path)
	}
	return fmt.Sprintf("import %s from %s;", i.Default, i.Path)
}

func (c *Class) StringWithIndent(level int) string {
	var b strings.Builder
	b.WriteString(indent(level))
	if c.Export != nil {
		b.WriteString("export ")
		if c.Export.Default {
			b.WriteString("default ")
		}
	}
	if c.Abstract {
		b.WriteString("abstract ")
	}
	fmt.Fprintf(&b, "%s %s {\n", c.Kind, c.Name)
	for _, m := range c.Members {
		b.WriteString(m.StringWithIndent(level + 1))
		b.WriteString("\n")
	}
	b.WriteString(indent(level) + "}")
	return b.String()
}

func (m *Member) StringWithIndent(level int) string {
	switch {
	case m.Doc != nil:
		return indent(level) + *m.Doc
	case m.Constructor != nil:
		return indent(level) + "constructor(" + paramList(m.Constructor.Params) + ")" + m.Constructor.Body.StringWithIndent(level)
	case m.Method != nil:
		return m.Method.StringWithIndent(level)
	}
	return ""
}

func (m *Method) StringWithIndent(level int) string {
	var b strings.Builder
	b.WriteString(indent(level))
	if m.Visibility != "" {
		b.WriteString(m.Visibility + " ")
	}
	if m.Async {
		b.WriteString("async ")
	}
	fmt.Fprintf(&b, "%s(%s)", m.Name, paramList(m.Params))
	if m.Returns != nil {
		b.WriteString(": " + m.Returns.String())
	}
	if m.Body != nil {
		b.WriteString(m.Body.StringWithIndent(level))
	} else {
		b.WriteString(";")
	}
	return b.String()
}

func paramList(params []*Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

func (p *Param) String() string {
	var b strings.Builder
	if p.Visibility != "" {
		b.WriteString(p.Visibility + " ")
	}
	if p.Readonly {
		b.WriteString("readonly ")
	}
	if p.Rest {
		b.WriteString("...")
	}
	fmt.Fprintf(&b, "%s: %s", p.Name, p.Type)
	return b.String()
}

func (t *Type) String() string {
	parts := make([]string, len(t.Union))
	for i, term := range t.Union {
		parts[i] = term.String()
	}
	return strings.Join(parts, " | ")
}

func (t *TypeTerm) String() string {
	switch {
	case t.Tuple != nil:
		return "[" + typeList(t.Tuple.Elements) + "]"
	case t.Object != nil:
		if len(t.Object.Fields) == 0 {
			return "{}"
		}
		parts := make([]string, len(t.Object.Fields))
		for i, f := range t.Object.Fields {
			parts[i] = f.Key + ": " + f.Type.String()
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case t.Ref != nil:
		if len(t.Ref.Args) == 0 {
			return t.Ref.Name
		}
		return t.Ref.Name + "<" + typeList(t.Ref.Args) + ">"
	}
	return ""
}

func typeList(types []*Type) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// StringWithIndent prints a block whose opening brace follows a signature
// on the same line.
func (b *Block) StringWithIndent(level int) string {
	if len(b.Statements) == 0 {
		return " {}"
	}
	var out strings.Builder
	out.WriteString(" {\n")
	for _, s := range b.Statements {
		out.WriteString(indent(level+1) + s.String() + "\n")
	}
	out.WriteString(indent(level) + "}")
	return out.String()
}

func (s *Statement) String() string {
	switch {
	case s.Const != nil:
		return fmt.Sprintf("const %s = %s;", s.Const.Name, s.Const.Value)
	case s.Return != nil:
		if s.Return.Value == nil {
			return "return;"
		}
		return fmt.Sprintf("return %s;", s.Return.Value)
	case s.Expr != nil:
		return s.Expr.String() + ";"
	}
	return ""
}

func (e *Expr) String() string {
	var b strings.Builder
	if e.Await {
		b.WriteString("await ")
	}
	b.WriteString(e.Primary.String())
	for _, p := range e.Postfix {
		switch {
		case p.Call != nil:
			parts := make([]string, len(p.Call.Values))
			for i, v := range p.Call.Values {
				parts[i] = v.String()
			}
			b.WriteString("(" + strings.Join(parts, ", ") + ")")
		case p.Index != nil:
			b.WriteString("[" + *p.Index + "]")
		default:
			b.WriteString("." + p.Field)
		}
	}
	return b.String()
}

func (p *Primary) String() string {
	switch {
	case p.This:
		return "this"
	case p.Str != nil:
		return *p.Str
	case p.Number != nil:
		return *p.Number
	}
	return p.Ident
}
