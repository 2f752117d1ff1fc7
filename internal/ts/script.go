package ts

// Script is the top level of a module.
type Script struct {
	b builder
}

// NewScript starts an empty module indented with DefaultIndent.
func NewScript() Script {
	return NewScriptIndent(DefaultIndent)
}

// NewScriptIndent starts an empty module using unit for each block level.
func NewScriptIndent(unit string) Script {
	return Script{b: builder{indent: unit}}
}

// Import begins an import statement.
func (s Script) Import() Import {
	return Import{b: s.b.line().add("import ")}
}

// ImportDefault writes `import name from "path";`.
func (s Script) ImportDefault(name, path string) Script {
	return s.Import().Default(name).From(path)
}

// ImportAll writes `import * as alias from "path";`.
func (s Script) ImportAll(alias, path string) Script {
	return s.Import().All(alias).From(path)
}

// Blank writes an empty line.
func (s Script) Blank() Script {
	if s.b.out == "" {
		return s
	}
	s.b.out += "\n"
	return s
}

// Comment writes a line comment.
func (s Script) Comment(text string) Script {
	return Script{b: s.b.line().add("// ", text)}
}

// Class opens a class, interface or abstract class declaration.
func (s Script) Class(name string, export Export, kind ClassKind) Class {
	return Class{b: s.b.line().add(export.prefix(), kind.String(), " ", name, " {").push()}
}

// Expression begins a top-level expression statement.
func (s Script) Expression() Expression[Script] {
	return Expression[Script]{b: s.b.line(), end: func(b builder) Script {
		return Script{b: b.add(";")}
	}}
}

// Collect returns the finished module text, terminated by a newline.
func (s Script) Collect() string {
	if s.b.level != 0 {
		panic("ts: collecting a script with unclosed blocks")
	}
	return s.b.out + "\n"
}

// Import is an import statement before its binding is chosen.
type Import struct {
	b builder
}

// Default binds the module's default export to name.
func (i Import) Default(name string) ImportSource {
	return ImportSource{b: i.b.add(name, " from ")}
}

// All binds the module namespace to alias.
func (i Import) All(alias string) ImportSource {
	return ImportSource{b: i.b.add("* as ", alias, " from ")}
}

// ImportSource is an import statement waiting for its module path.
type ImportSource struct {
	b builder
}

func (i ImportSource) From(path string) Script {
	return Script{b: i.b.add(quote(path), ";")}
}
