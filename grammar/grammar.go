package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Module is a parsed TypeScript source file.
type Module struct {
	Items []*Item `@@*`
}

type Item struct {
	Pos     lexer.Position
	Import  *Import    `  @@`
	Comment *Comment   `| @@`
	Class   *Class     `| @@`
	Stmt    *Statement `| @@`
}

type Comment struct {
	Text string `@Comment`
}

type Import struct {
	Pos       lexer.Position
	Default   string `"import" ( @Ident`
	Namespace string `         | "*" "as" @Ident )`
	Path      string `"from" @String ";"`
}

type Class struct {
	Pos      lexer.Position
	Export   *Export   `@@?`
	Abstract bool      `@"abstract"?`
	Kind     string    `@( "class" | "interface" )`
	Name     string    `@Ident "{"`
	Members  []*Member `@@* "}"`
}

type Export struct {
	Keyword string `@"export"`
	Default bool   `@"default"?`
}

type Member struct {
	Pos         lexer.Position
	Doc         *string      `  @DocComment`
	Constructor *Constructor `| @@`
	Method      *Method      `| @@`
}

type Constructor struct {
	Params []*Param `"constructor" "(" [ @@ { "," @@ } ] ")"`
	Body   *Block   `@@`
}

type Method struct {
	Pos        lexer.Position
	Visibility string   `@( "public" | "protected" | "private" )?`
	Async      bool     `@"async"?`
	Name       string   `@Ident`
	Params     []*Param `"(" [ @@ { "," @@ } ] ")"`
	Returns    *Type    `[ ":" @@ ]`
	Body       *Block   `( @@`
	Abstract   bool     `| @";" )`
}

type Param struct {
	Visibility string `@( "public" | "protected" | "private" )?`
	Readonly   bool   `@"readonly"?`
	Rest       bool   `@"..."?`
	Name       string `@Ident ":"`
	Type       *Type  `@@`
}

// Type is a union of one or more terms.
type Type struct {
	Union []*TypeTerm `@@ ( "|" @@ )*`
}

type TypeTerm struct {
	Tuple  *TupleType  `  @@`
	Object *ObjectType `| @@`
	Ref    *TypeRef    `| @@`
}

// Open is captured so that empty literals still produce a node.
type TupleType struct {
	Open     string  `@"["`
	Elements []*Type `[ @@ { "," @@ } ] "]"`
}

type ObjectType struct {
	Open   string         `@"{"`
	Fields []*ObjectField `[ @@ { "," @@ } ] "}"`
}

type ObjectField struct {
	Key  string `@( String | Ident ) ":"`
	Type *Type  `@@`
}

// TypeRef is a possibly qualified type name with optional type arguments,
// e.g. Promise<unknown> or ethers.Contract.
type TypeRef struct {
	Name string  `@Ident { @"." @Ident }`
	Args []*Type `[ "<" @@ { "," @@ } ">" ]`
}

type Block struct {
	Open       string       `@"{"`
	Statements []*Statement `@@* "}"`
}

type Statement struct {
	Pos    lexer.Position
	Const  *Const  `  @@`
	Return *Return `| @@`
	Expr   *Expr   `| @@ ";"`
}

type Const struct {
	Name  string `"const" @Ident "="`
	Value *Expr  `@@ ";"`
}

type Return struct {
	Keyword string `@"return"`
	Value   *Expr  `@@? ";"`
}

type Expr struct {
	Await   bool       `@"await"?`
	Primary *Primary   `@@`
	Postfix []*Postfix `@@*`
}

type Primary struct {
	This   bool    `  @"this"`
	Str    *string `| @String`
	Number *string `| @Number`
	Ident  string  `| @Ident`
}

type Postfix struct {
	Field string  `  "." @Ident`
	Index *string `| "[" @String "]"`
	Call  *Args   `| @@`
}

type Args struct {
	Open   string  `@"("`
	Values []*Expr `[ @@ { "," @@ } ] ")"`
}
