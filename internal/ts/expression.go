package ts

import (
	"strconv"
	"strings"
)

// Expression is the start of a statement. P is the position that End
// returns to once the statement is complete.
type Expression[P any] struct {
	b   builder
	end func(builder) P
}

func (e Expression[P]) operand() Operand[P] { return Operand[P](e) }

func (e Expression[P]) Return() Operand[P] { return Operand[P]{b: e.b.add("return "), end: e.end} }

// Const starts a constant declaration whose initializer follows.
func (e Expression[P]) Const(name string) Operand[P] {
	return Operand[P]{b: e.b.add("const ", name, " = "), end: e.end}
}

func (e Expression[P]) Await() Operand[P]             { return e.operand().Await() }
func (e Expression[P]) This() Member[P]               { return e.operand().This() }
func (e Expression[P]) Ident(name string) Member[P]   { return e.operand().Ident(name) }
func (e Expression[P]) String(value string) Member[P] { return e.operand().String(value) }
func (e Expression[P]) Number(value int64) Member[P]  { return e.operand().Number(value) }

// Operand expects a primary expression, optionally awaited.
type Operand[P any] struct {
	b   builder
	end func(builder) P
}

func (o Operand[P]) primary(text string) Member[P] { return Member[P]{b: o.b.add(text), end: o.end} }

func (o Operand[P]) Await() Operand[P] { return Operand[P]{b: o.b.add("await "), end: o.end} }
func (o Operand[P]) This() Member[P]   { return o.primary("this") }

// Ident writes a bare identifier.
func (o Operand[P]) Ident(name string) Member[P] { return o.primary(name) }

// String writes a double-quoted string literal.
func (o Operand[P]) String(value string) Member[P] { return o.primary(quote(value)) }

func (o Operand[P]) Number(value int64) Member[P] {
	return o.primary(strconv.FormatInt(value, 10))
}

// Member follows a complete primary expression and accepts postfix
// operations or the end of the statement.
type Member[P any] struct {
	b   builder
	end func(builder) P
}

// Dot starts a property access; Field names the property.
func (m Member[P]) Dot() Property[P] { return Property[P]{b: m.b.add("."), end: m.end} }

// Index writes a computed member access with a string key: `["key"]`.
func (m Member[P]) Index(key string) Member[P] {
	return Member[P]{b: m.b.add("[", quote(key), "]"), end: m.end}
}

// Call opens an argument list on the expression written so far.
func (m Member[P]) Call() Call[P] {
	return Call[P]{b: m.b.add("("), end: m.end}
}

// End terminates the statement and returns to the enclosing position.
func (m Member[P]) End() P {
	return m.end(m.b)
}

// Property is the position right after a dot.
type Property[P any] struct {
	b   builder
	end func(builder) P
}

func (p Property[P]) Field(name string) Member[P] {
	return Member[P]{b: p.b.add(name), end: p.end}
}

// Call is an open argument list. args counts the arguments written.
type Call[P any] struct {
	b    builder
	args int
	end  func(builder) P
}

// Arg appends one argument.
func (c Call[P]) Arg(a Arg) Call[P] {
	if c.args > 0 {
		c.b = c.b.add(", ")
	}
	c.b = c.b.add(a.text)
	c.args++
	return c
}

// Args appends each argument in order.
func (c Call[P]) Args(args ...Arg) Call[P] {
	for _, a := range args {
		c = c.Arg(a)
	}
	return c
}

// Close ends the argument list and resumes the expression.
func (c Call[P]) Close() Member[P] {
	return Member[P]{b: c.b.add(")"), end: c.end}
}

// Arg is a complete argument expression.
type Arg struct {
	text string
}

func (a Arg) String() string { return a.text }

// Str is a string literal argument.
func Str(value string) Arg { return Arg{text: quote(value)} }

// Num is a numeric literal argument.
func Num(value int64) Arg { return Arg{text: strconv.FormatInt(value, 10)} }

// Ref refers to a variable or a property path: Ref("this", "contract").
func Ref(path ...string) Arg { return Arg{text: strings.Join(path, ".")} }

// Invoke is a nested call of callee with args.
func Invoke(callee Arg, args ...Arg) Arg {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.text
	}
	return Arg{text: callee.text + "(" + strings.Join(parts, ", ") + ")"}
}

// Awaited prefixes an argument with await.
func Awaited(a Arg) Arg { return Arg{text: "await " + a.text} }
