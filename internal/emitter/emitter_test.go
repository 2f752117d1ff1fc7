package emitter_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abi2ts/grammar"
	"abi2ts/internal/abi"
	"abi2ts/internal/emitter"
	diag "abi2ts/internal/errors"
	"abi2ts/internal/ts"
)

func TestTranslate(t *testing.T) {
	supported := []struct {
		dt       abi.DataType
		expected ts.Type
	}{
		{abi.UInt256, ts.Number},
		{abi.UInt8, ts.Number},
		{abi.UInt8Array, ts.Array(ts.Number)},
		{abi.UInt256Array, ts.Array(ts.Number)},
		{abi.String, ts.String},
		{abi.Address, ts.String},
		{abi.Bool, ts.Boolean},
	}
	for _, tc := range supported {
		typ, err := emitter.Translate(tc.dt)
		require.NoError(t, err, tc.dt.String())
		assert.Equal(t, tc.expected, typ, tc.dt.String())
	}

	unsupported := []abi.DataType{
		abi.ContractType("Ownable"),
		abi.EnumType("State"),
		abi.OtherType("tuple"),
		abi.OtherType("bytes32"),
	}
	for _, dt := range unsupported {
		typ, err := emitter.Translate(dt)
		assert.Nil(t, typ)

		var ute *emitter.UnsupportedTypeError
		require.True(t, errors.As(err, &ute), dt.String())
		assert.Equal(t, dt, ute.Type)
	}
}

func tokenContract() *abi.Contract {
	return &abi.Contract{
		Name: "Token",
		ABI: []abi.Entry{
			&abi.Function{
				Name:       "balanceOf",
				Mutability: abi.View,
				Inputs:     []abi.FuncIO{{Name: "owner", Type: abi.Address, InternalType: abi.Address}},
				Outputs:    []abi.FuncIO{{Type: abi.UInt256, InternalType: abi.UInt256}},
			},
		},
	}
}

func TestEmitToken(t *testing.T) {
	out, err := emitter.Emit(tokenContract())
	require.NoError(t, err)

	assert.Equal(t, `import AbstractContract from "./AbstractContract";

export default class Token {
  constructor(private readonly contract: AbstractContract) {}
  public async balanceOf(owner: string) {
    return await this.contract.call("balanceOf", owner);
  }
}
`, out)
}

func TestEmitGolden(t *testing.T) {
	contract, err := abi.DecodeFile("testdata/Token.json")
	require.NoError(t, err)

	selectors := emitter.DefaultOptions()
	selectors.Selectors = true

	legacy := emitter.DefaultOptions()
	legacy.Policy = emitter.PolicyLegacy
	legacy.Capability = emitter.Capability{}

	testCases := []struct {
		name string
		opts emitter.Options
	}{
		{"Token", emitter.DefaultOptions()},
		{"Token_selectors", selectors},
		{"Token_legacy", legacy},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := emitter.New(tc.opts).Emit(contract)
			require.NoError(t, err)
			g.Assert(t, tc.name, []byte(out))

			module, err := grammar.ParseString(tc.name+".ts", out)
			require.NoError(t, err, grammar.FormatError(out, err))
			assert.Equal(t, out, module.String())
		})
	}

	g.Assert(t, "AbstractContract", []byte(emitter.EmitContractAbstraction()))
}

func TestContractAbstraction(t *testing.T) {
	first := emitter.EmitContractAbstraction()
	second := emitter.EmitContractAbstraction()
	assert.Equal(t, first, second)

	module, err := grammar.ParseString("AbstractContract.ts", first)
	require.NoError(t, err)
	assert.Equal(t, "AbstractContract", module.Items[0].Class.Name)

	custom := emitter.New(emitter.Options{
		Capability: emitter.Capability{Name: "Caller", Import: "./Caller", Field: "caller"},
		Indent:     "    ",
	})
	assert.Equal(t, `export default interface Caller {
    call(target: string, ...args: Array<unknown>): Promise<unknown>;
}
`, custom.EmitContractAbstraction())
}

func TestAnonymousParameters(t *testing.T) {
	contract := &abi.Contract{
		Name: "Registry",
		ABI: []abi.Entry{
			&abi.Function{
				Name:       "set",
				Mutability: abi.NonPayable,
				Inputs: []abi.FuncIO{
					{Name: "", Type: abi.String},
					{Name: "x", Type: abi.UInt8},
					{Name: "", Type: abi.Bool},
				},
			},
		},
	}

	out, err := emitter.Emit(contract)
	require.NoError(t, err)

	assert.Contains(t, out, "public async set(_param0: string, x: number, _param1: boolean) {")
	assert.Contains(t, out, `return await this.contract.call("set", _param0, x, _param1);`)
}

func TestUnsupportedTypeAbortsContract(t *testing.T) {
	contract := tokenContract()
	contract.ABI = append(contract.ABI, &abi.Function{
		Name:       "setOwner",
		Mutability: abi.NonPayable,
		Inputs:     []abi.FuncIO{{Name: "next", Type: abi.ContractType("Ownable")}},
	})

	out, err := emitter.Emit(contract)
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Equal(t, `function "setOwner": parameter "next": unsupported type Contract(Ownable)`, err.Error())

	var fe *emitter.FunctionError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "setOwner", fe.Function)
	assert.Equal(t, 1, fe.Entry)
	assert.Equal(t, "next", fe.Param)

	var ute *emitter.UnsupportedTypeError
	require.True(t, errors.As(err, &ute))
	assert.Equal(t, abi.ContractType("Ownable"), ute.Type)
}

func TestUnsupportedOutputAbortsContract(t *testing.T) {
	contract := &abi.Contract{
		Name: "Vault",
		ABI: []abi.Entry{
			&abi.Function{
				Name:       "state",
				Mutability: abi.View,
				Outputs: []abi.FuncIO{
					{Type: abi.Bool},
					{Type: abi.EnumType("Vault.State")},
				},
			},
		},
	}

	out, err := emitter.Emit(contract)
	require.Error(t, err)
	assert.Empty(t, out)

	var fe *emitter.FunctionError
	require.True(t, errors.As(err, &fe))
	assert.Empty(t, fe.Param)
	assert.Equal(t, 1, fe.Output)
	assert.Contains(t, err.Error(), "output 1")
}

func TestConstructorAndEventsProduceNoOutput(t *testing.T) {
	contract := &abi.Contract{
		Name: "Empty",
		ABI: []abi.Entry{
			&abi.Constructor{Mutability: abi.NonPayable, Inputs: []abi.FuncIO{{Name: "a", Type: abi.OtherType("tuple")}}},
			&abi.Event{Name: "Changed", Inputs: []abi.EventInput{{Name: "who", Type: abi.Address}}},
		},
	}

	out, err := emitter.Emit(contract)
	require.NoError(t, err)
	assert.Equal(t, `import AbstractContract from "./AbstractContract";

export default class Empty {
  constructor(private readonly contract: AbstractContract) {}
}
`, out)
}

func TestLegacyGetterPrefix(t *testing.T) {
	contract := &abi.Contract{
		Name: "Config",
		ABI: []abi.Entry{
			&abi.Function{Name: "getLimit", Mutability: abi.Pure, Constant: true},
			&abi.Function{Name: "fetchLimit", Mutability: abi.Pure, Constant: true},
			&abi.Function{Name: "deposit", Mutability: abi.Payable},
		},
	}

	out, err := emitter.New(emitter.Options{Policy: emitter.PolicyLegacy, GetterPrefix: "fetch"}).Emit(contract)
	require.NoError(t, err)

	assert.NotContains(t, out, "getLimit")
	assert.Contains(t, out, "async fetchLimit(): Promise<void> {")
	assert.Contains(t, out, "return await callAction.call();")
	assert.Contains(t, out, "async deposit(): Promise<void> {")
	assert.Equal(t, 1, strings.Count(out, "callAction.send()"))
	assert.Contains(t, out, "import ethers from \"ethers\";")
}

func TestParsePolicy(t *testing.T) {
	p, err := emitter.ParsePolicy("legacy")
	require.NoError(t, err)
	assert.Equal(t, emitter.PolicyLegacy, p)
	assert.Equal(t, "legacy", p.String())

	p, err = emitter.ParsePolicy("uniform")
	require.NoError(t, err)
	assert.Equal(t, emitter.PolicyUniform, p)

	_, err = emitter.ParsePolicy("strict")
	assert.ErrorContains(t, err, `unknown policy "strict"`)
}

func TestCapability(t *testing.T) {
	assert.True(t, emitter.DefaultCapability.Local())
	assert.Equal(t, "AbstractContract", emitter.DefaultCapability.FileStem())
	assert.False(t, emitter.LegacyCapability.Local())

	e := emitter.New(emitter.Options{})
	assert.Equal(t, emitter.DefaultCapability, e.Options().Capability)
	assert.Equal(t, ts.DefaultIndent, e.Options().Indent)
}

func TestSelector(t *testing.T) {
	fn := &abi.Function{
		Name:   "transfer",
		Inputs: []abi.FuncIO{{Name: "to", Type: abi.Address}, {Name: "amount", Type: abi.UInt256}},
	}
	assert.Equal(t, "transfer(address,uint256) 0xa9059cbb", emitter.Selector(fn))
}

func TestDiagnostic(t *testing.T) {
	source := []byte(`{
  "contractName": "Vault",
  "abi": [
    {"type": "function", "name": "lock", "stateMutability": "nonpayable",
     "inputs": [{"name": "state", "type": "enum Vault.State"}], "outputs": []}
  ]
}`)
	contract, err := abi.Decode(source)
	require.NoError(t, err)

	_, err = emitter.Emit(contract)
	require.Error(t, err)

	compilerErr, ok := emitter.Diagnostic(source, err)
	require.True(t, ok)
	assert.Equal(t, diag.ErrorUnsupportedType, compilerErr.Code)
	assert.Equal(t, diag.Position{Line: 4, Column: 35}, compilerErr.Position)
	assert.Equal(t, 4, compilerErr.Length)
	assert.Contains(t, compilerErr.Message, "'enum Vault.State'")

	_, err = abi.Decode([]byte(`{"abi": }`))
	compilerErr, ok = emitter.Diagnostic([]byte(`{"abi": }`), err)
	require.True(t, ok)
	assert.Equal(t, diag.ErrorMalformedJSON, compilerErr.Code)
	assert.Equal(t, 1, compilerErr.Position.Line)

	_, ok = emitter.Diagnostic(source, errors.New("disk full"))
	assert.False(t, ok)
}

func TestDiagnosticPointsAtFailingEntry(t *testing.T) {
	// solc sorts keys, so setOwner's input "owner" precedes the owner function.
	source := []byte(`[
  {"inputs": [{"internalType": "address", "name": "owner", "type": "address"}], "name": "setOwner", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [], "name": "owner", "outputs": [{"internalType": "contract Ownable", "name": "", "type": "contract Ownable"}], "stateMutability": "view", "type": "function"}
]`)
	contract, err := abi.DecodeSource("Ownable.json", source)
	require.NoError(t, err)

	_, err = emitter.Emit(contract)
	require.EqualError(t, err, `function "owner": output 0: unsupported type Contract(Ownable)`)

	compilerErr, ok := emitter.Diagnostic(source, err)
	require.True(t, ok)
	assert.Equal(t, diag.Position{Line: 3, Column: 27}, compilerErr.Position)
	assert.Contains(t, compilerErr.Message, "function 'owner'")
}

func TestWarnings(t *testing.T) {
	source := []byte(`[
  {"type": "function", "name": "limit", "stateMutability": "view", "constant": true, "inputs": [], "outputs": []},
  {"type": "function", "name": "pay", "stateMutability": "payable", "inputs": [], "outputs": []},
  {"type": "function", "name": "pay", "stateMutability": "payable", "inputs": [{"name": "to", "type": "address"}], "outputs": []}
]`)
	contract, err := abi.DecodeSource("Ledger.json", source)
	require.NoError(t, err)

	warnings := emitter.New(emitter.DefaultOptions()).Warnings(source, contract)
	require.Len(t, warnings, 1)
	assert.Equal(t, diag.WarningOverloadedFunction, warnings[0].Code)
	assert.Equal(t, diag.Warning, warnings[0].Level)
	assert.Equal(t, 4, warnings[0].Position.Line)

	warnings = emitter.New(emitter.Options{Policy: emitter.PolicyLegacy, GetterPrefix: "get"}).Warnings(source, contract)
	require.Len(t, warnings, 2)
	assert.Equal(t, diag.WarningOmittedFunction, warnings[0].Code)
	assert.Equal(t, diag.Position{Line: 2, Column: 33}, warnings[0].Position)
	assert.Contains(t, warnings[0].Notes[0], "'get'")
}

func TestInvalidContractName(t *testing.T) {
	for _, name := range []string{"../x", "My Token", "1st", ""} {
		out, err := emitter.Emit(&abi.Contract{Name: name})
		assert.Empty(t, out)

		var ne *emitter.NameError
		require.True(t, errors.As(err, &ne), name)
		assert.Equal(t, name, ne.Name)
	}

	source := []byte(`{
  "contractName": "My Token",
  "abi": []
}`)
	contract, err := abi.Decode(source)
	require.NoError(t, err)
	_, err = emitter.Emit(contract)

	compilerErr, ok := emitter.Diagnostic(source, err)
	require.True(t, ok)
	assert.Equal(t, diag.ErrorInvalidValue, compilerErr.Code)
	assert.Equal(t, diag.Position{Line: 2, Column: 20}, compilerErr.Position)
	assert.Equal(t, len("My Token"), compilerErr.Length)
}
