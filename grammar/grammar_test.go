package grammar_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abi2ts/grammar"
)

const tokenWrapper = `import AbstractContract from "./AbstractContract";

export default class Token {
  constructor(private readonly contract: AbstractContract) {}
  /** balanceOf(address) 0x70a08231 */
  public async balanceOf(owner: string) {
    return await this.contract.call("balanceOf", owner);
  }
  public async transfer(to: string, amount: number) {
    return await this.contract.call("transfer", to, amount);
  }
}
`

func TestParseWrapper(t *testing.T) {
	module, err := grammar.ParseString("Token.ts", tokenWrapper)
	require.NoError(t, err)
	require.Len(t, module.Items, 2)

	imp := module.Items[0].Import
	require.NotNil(t, imp)
	assert.Equal(t, "AbstractContract", imp.Default)
	assert.Equal(t, `"./AbstractContract"`, imp.Path)

	class := module.Items[1].Class
	require.NotNil(t, class)
	assert.Equal(t, "class", class.Kind)
	assert.Equal(t, "Token", class.Name)
	require.NotNil(t, class.Export)
	assert.True(t, class.Export.Default)
	require.Len(t, class.Members, 4)

	ctor := class.Members[0].Constructor
	require.NotNil(t, ctor)
	require.Len(t, ctor.Params, 1)
	assert.Equal(t, "private", ctor.Params[0].Visibility)
	assert.True(t, ctor.Params[0].Readonly)
	assert.Equal(t, "contract", ctor.Params[0].Name)
	assert.Empty(t, ctor.Body.Statements)

	require.NotNil(t, class.Members[1].Doc)
	assert.Equal(t, "/** balanceOf(address) 0x70a08231 */", *class.Members[1].Doc)

	method := class.Members[3].Method
	require.NotNil(t, method)
	assert.Equal(t, "public", method.Visibility)
	assert.True(t, method.Async)
	assert.Equal(t, "transfer", method.Name)
	require.Len(t, method.Params, 2)
	assert.Equal(t, "amount", method.Params[1].Name)
	assert.Equal(t, "number", method.Params[1].Type.String())

	require.Len(t, method.Body.Statements, 1)
	ret := method.Body.Statements[0].Return
	require.NotNil(t, ret)
	assert.True(t, ret.Value.Await)
	assert.True(t, ret.Value.Primary.This)
	require.Len(t, ret.Value.Postfix, 3)
	assert.Len(t, ret.Value.Postfix[2].Call.Values, 3)

	assert.Equal(t, tokenWrapper, module.String())
}

func TestParseInterface(t *testing.T) {
	source := `export default interface AbstractContract {
  call(target: string, ...args: Array<unknown>): Promise<unknown>;
}
`
	module, err := grammar.ParseString("AbstractContract.ts", source)
	require.NoError(t, err)

	class := module.Items[0].Class
	require.NotNil(t, class)
	assert.Equal(t, "interface", class.Kind)

	call := class.Members[0].Method
	require.NotNil(t, call)
	assert.True(t, call.Abstract)
	assert.Nil(t, call.Body)
	assert.True(t, call.Params[1].Rest)
	assert.Equal(t, "Array<unknown>", call.Params[1].Type.String())
	assert.Equal(t, "Promise<unknown>", call.Returns.String())

	assert.Equal(t, source, module.String())
}

func TestParseLegacyBody(t *testing.T) {
	source := `import ethers from "ethers";

export default class Token {
  constructor(private readonly contract: ethers.Contract) {}
  async transfer(to: string, amount: number): Promise<boolean> {
    const method = this.contract.methods["transfer"];
    const callAction = await method(to, amount);
    return await callAction.send();
  }
}
`
	module, err := grammar.ParseString("Token.ts", source)
	require.NoError(t, err)

	method := module.Items[1].Class.Members[1].Method
	require.NotNil(t, method)
	require.Len(t, method.Body.Statements, 3)
	assert.Equal(t, "method", method.Body.Statements[0].Const.Name)
	assert.Equal(t, `"transfer"`, *method.Body.Statements[0].Const.Value.Postfix[2].Index)

	assert.Equal(t, source, module.String())
}

func TestParseTypes(t *testing.T) {
	source := `class A {
  m(a: number | string | null, b: [number, string], c: { "x": number, "y": Array<Array<string>> }, d: Record<string, Partial<A>>, e: {}, f: []): void;
}
`
	module, err := grammar.ParseString("types.ts", source)
	require.NoError(t, err)

	params := module.Items[0].Class.Members[0].Method.Params
	require.Len(t, params, 6)
	assert.Len(t, params[0].Type.Union, 3)
	assert.Equal(t, source, module.String())
}

func TestParseTopLevelStatements(t *testing.T) {
	source := `import * as web3 from "web3";

// setup
foo.bar(the, "wailers", 42);
`
	module, err := grammar.ParseString("script.ts", source)
	require.NoError(t, err)
	require.Len(t, module.Items, 3)
	assert.Equal(t, "web3", module.Items[0].Import.Namespace)
	assert.Equal(t, "// setup", module.Items[1].Comment.Text)
	assert.Equal(t, source, module.String())
}

func TestParseErrors(t *testing.T) {
	color.NoColor = true

	source := "class A {\n  m(a number) {}\n}\n"
	_, err := grammar.ParseString("bad.ts", source)
	require.Error(t, err)

	formatted := grammar.FormatError(source, err)
	assert.Contains(t, formatted, "Syntax error in bad.ts at line")
	assert.Contains(t, formatted, "^")

	_, err = grammar.ParseString("bad.ts", `foo(1, 2`)
	require.Error(t, err)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Token.ts")
	require.NoError(t, os.WriteFile(path, []byte(tokenWrapper), 0o644))

	module, err := grammar.ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, module.Items, 2)

	_, err = grammar.ParseFile(filepath.Join(t.TempDir(), "missing.ts"))
	assert.ErrorContains(t, err, "failed to read file")
}
