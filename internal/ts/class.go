package ts

// Class is the body of a class or interface declaration.
type Class struct {
	b builder
}

// Constructor begins a constructor signature.
func (c Class) Constructor() ConstructorSignature {
	return ConstructorSignature{params: params{b: c.b.line().add("constructor(")}}
}

// Method begins a method signature. An Unspecified visibility writes no
// modifier.
func (c Class) Method(name string, visibility Visibility, async bool) MethodSignature {
	b := c.b.line().add(visibility.prefix())
	if async {
		b = b.add("async ")
	}
	return MethodSignature{params: params{b: b.add(name, "(")}}
}

// Doc writes a single-line documentation comment.
func (c Class) Doc(text string) Class {
	return Class{b: c.b.line().add("/** ", text, " */")}
}

// End closes the declaration.
func (c Class) End() Script {
	return Script{b: c.b.close()}
}

// params tracks a parameter list. n is the number of parameters written
// so far and decides whether a separator is needed.
type params struct {
	b builder
	n int
}

func (p params) add(parts ...string) params {
	if p.n > 0 {
		p.b = p.b.add(", ")
	}
	p.b = p.b.add(parts...)
	p.n++
	return p
}

func (p params) param(name string, t Type) params {
	return p.add(name, ": ", t.String())
}

func (p params) rest(name string, t Type) params {
	return p.add("...", name, ": ", t.String())
}

// ConstructorSignature is an open constructor parameter list.
type ConstructorSignature struct {
	params
}

func (s ConstructorSignature) Param(name string, t Type) ConstructorSignature {
	return ConstructorSignature{s.param(name, t)}
}

func (s ConstructorSignature) Rest(name string, t Type) ConstructorSignature {
	return ConstructorSignature{s.rest(name, t)}
}

// Field adds a parameter promoted to a class property.
func (s ConstructorSignature) Field(name string, t Type, visibility Visibility, readonly bool) ConstructorSignature {
	modifier := visibility.prefix()
	if readonly {
		modifier += "readonly "
	}
	return ConstructorSignature{s.add(modifier, name, ": ", t.String())}
}

// End closes the signature with an empty body.
func (s ConstructorSignature) End() Class {
	return Class{b: s.b.add(") {}")}
}

// Body closes the signature and opens the constructor body.
func (s ConstructorSignature) Body() Body {
	return Body{b: s.b.add(") {").push()}
}

// MethodSignature is an open method parameter list.
type MethodSignature struct {
	params
	returns Type
}

func (s MethodSignature) Param(name string, t Type) MethodSignature {
	return MethodSignature{params: s.param(name, t), returns: s.returns}
}

func (s MethodSignature) Rest(name string, t Type) MethodSignature {
	return MethodSignature{params: s.rest(name, t), returns: s.returns}
}

// Returns sets the return type annotation.
func (s MethodSignature) Returns(t Type) MethodSignature {
	s.returns = t
	return s
}

func (s MethodSignature) close() builder {
	b := s.b.add(")")
	if s.returns != nil {
		b = b.add(": ", s.returns.String())
	}
	return b
}

// Abstract ends the member without a body, as in an interface.
func (s MethodSignature) Abstract() Class {
	return Class{b: s.close().add(";")}
}

// Body closes the signature and opens the method body.
func (s MethodSignature) Body() Body {
	return Body{b: s.close().add(" {").push()}
}

// Body is a block of statements inside a constructor or method.
type Body struct {
	b builder
}

// Expression begins an expression statement.
func (b Body) Expression() Expression[Body] {
	return Expression[Body]{b: b.b.line(), end: endStatement}
}

// ReturnAwait begins a `return await ...` statement.
func (b Body) ReturnAwait() Operand[Body] {
	return b.Expression().Return().Await()
}

// End closes the body.
func (b Body) End() Class {
	return Class{b: b.b.close()}
}

func endStatement(b builder) Body {
	return Body{b: b.add(";")}
}
