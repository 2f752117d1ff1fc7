package ts

import (
	"strconv"
	"strings"
)

// Type is a TypeScript type expression.
type Type interface {
	String() string
}

// Keyword is a built-in type written as a single word.
type Keyword string

const (
	Number  Keyword = "number"
	String  Keyword = "string"
	Boolean Keyword = "boolean"
	Object  Keyword = "object"
	Any     Keyword = "any"
	Unknown Keyword = "unknown"
	Never   Keyword = "never"
	Null    Keyword = "null"
	Void    Keyword = "void"
)

// ArrayType renders as Array<Elem>.
type ArrayType struct {
	Elem Type
}

type TupleType struct {
	Elements []Type
}

type UnionType struct {
	Members []Type
}

// NamedType references a class or interface by name.
type NamedType struct {
	Name string
}

// InterfaceType is an inline object literal type. Fields render in order.
type InterfaceType struct {
	Fields []FieldType
}

type FieldType struct {
	Name string
	Type Type
}

type RecordType struct {
	Key   Type
	Value Type
}

type PartialType struct {
	Of Type
}

type PromiseType struct {
	Of Type
}

func Array(elem Type) *ArrayType                   { return &ArrayType{Elem: elem} }
func Tuple(elems ...Type) *TupleType               { return &TupleType{Elements: elems} }
func Union(members ...Type) *UnionType             { return &UnionType{Members: members} }
func Named(name string) *NamedType                 { return &NamedType{Name: name} }
func Interface(fields ...FieldType) *InterfaceType { return &InterfaceType{Fields: fields} }
func Record(key, value Type) *RecordType           { return &RecordType{Key: key, Value: value} }
func Partial(of Type) *PartialType                 { return &PartialType{Of: of} }
func Promise(of Type) *PromiseType                 { return &PromiseType{Of: of} }

func (k Keyword) String() string      { return string(k) }
func (a *ArrayType) String() string   { return "Array<" + a.Elem.String() + ">" }
func (t *TupleType) String() string   { return "[" + join(t.Elements, ", ") + "]" }
func (u *UnionType) String() string   { return join(u.Members, " | ") }
func (n *NamedType) String() string   { return n.Name }
func (r *RecordType) String() string  { return "Record<" + r.Key.String() + ", " + r.Value.String() + ">" }
func (p *PartialType) String() string { return "Partial<" + p.Of.String() + ">" }
func (p *PromiseType) String() string { return "Promise<" + p.Of.String() + ">" }

func (i *InterfaceType) String() string {
	if len(i.Fields) == 0 {
		return "{}"
	}
	parts := make([]string, len(i.Fields))
	for n, f := range i.Fields {
		parts[n] = strconv.Quote(f.Name) + ": " + f.Type.String()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func join(types []Type, sep string) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return strings.Join(parts, sep)
}
