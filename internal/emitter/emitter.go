// Package emitter turns a decoded contract ABI into a TypeScript wrapper
// class that forwards each function through a capability interface.
package emitter

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"abi2ts/internal/abi"
	"abi2ts/internal/ts"
)

// Policy selects the shape of generated method bodies.
type Policy int

const (
	// PolicyUniform routes every function through the capability's call.
	PolicyUniform Policy = iota
	// PolicyLegacy resolves the function on contract.methods and picks
	// call or send from the state mutability.
	PolicyLegacy
)

func (p Policy) String() string {
	if p == PolicyLegacy {
		return "legacy"
	}
	return "uniform"
}

// ParsePolicy accepts "uniform" or "legacy".
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "uniform":
		return PolicyUniform, nil
	case "legacy":
		return PolicyLegacy, nil
	default:
		return 0, fmt.Errorf("unknown policy %q", s)
	}
}

// Capability describes the object generated wrappers delegate to.
type Capability struct {
	Name    string // type of the constructor field
	Binding string // default import binding, Name up to its first dot when empty
	Import  string // module path
	Field   string // constructor field name
}

func (c Capability) binding() string {
	if c.Binding != "" {
		return c.Binding
	}
	binding, _, _ := strings.Cut(c.Name, ".")
	return binding
}

// Local reports whether the capability is declared by this tool rather
// than imported from a package.
func (c Capability) Local() bool {
	return strings.HasPrefix(c.Import, "./") || strings.HasPrefix(c.Import, "../")
}

// FileStem is the base name of the module declaring a local capability.
func (c Capability) FileStem() string {
	return path.Base(c.Import)
}

var (
	DefaultCapability = Capability{Name: "AbstractContract", Import: "./AbstractContract", Field: "contract"}
	LegacyCapability  = Capability{Name: "ethers.Contract", Binding: "ethers", Import: "ethers", Field: "contract"}
)

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// DefaultGetterPrefix marks constant functions the legacy policy keeps.
const DefaultGetterPrefix = "get"

type Options struct {
	Policy       Policy
	Capability   Capability
	Indent       string
	Selectors    bool
	GetterPrefix string
}

// DefaultOptions returns the uniform policy with the AbstractContract
// capability.
func DefaultOptions() Options {
	return Options{
		Policy:       PolicyUniform,
		Capability:   DefaultCapability,
		Indent:       ts.DefaultIndent,
		GetterPrefix: DefaultGetterPrefix,
	}
}

// Emitter renders contracts with a fixed set of options. It holds no
// mutable state and may be shared.
type Emitter struct {
	opts Options
}

// New returns an Emitter. A zero Capability selects the default for the
// policy and an empty Indent selects ts.DefaultIndent.
func New(opts Options) *Emitter {
	if opts.Capability == (Capability{}) {
		opts.Capability = DefaultCapability
		if opts.Policy == PolicyLegacy {
			opts.Capability = LegacyCapability
		}
	}
	if opts.Indent == "" {
		opts.Indent = ts.DefaultIndent
	}
	return &Emitter{opts: opts}
}

func (e *Emitter) Options() Options {
	return e.opts
}

// Emit renders the wrapper class for c with default options.
func Emit(c *abi.Contract) (string, error) {
	return New(DefaultOptions()).Emit(c)
}

// EmitContractAbstraction renders the default capability interface.
func EmitContractAbstraction() string {
	return New(DefaultOptions()).EmitContractAbstraction()
}

// Emit renders the wrapper class for c. Only function entries produce
// methods. A contract name that is not an identifier, or any
// untranslatable input or output type, fails the whole contract and no
// text is returned.
func (e *Emitter) Emit(c *abi.Contract) (string, error) {
	if !identifier.MatchString(c.Name) {
		return "", &NameError{Name: c.Name}
	}
	capability := e.opts.Capability

	class := ts.NewScriptIndent(e.opts.Indent).
		ImportDefault(capability.binding(), capability.Import).
		Blank().
		Class(c.Name, ts.ExportDefault, ts.KindClass).
		Constructor().
		Field(capability.Field, ts.Named(capability.Name), ts.Private, true).
		End()

	for i, entry := range c.ABI {
		fn, ok := entry.(*abi.Function)
		if !ok || e.skip(fn) {
			continue
		}
		var err error
		if class, err = e.method(class, fn); err != nil {
			var fe *FunctionError
			if errors.As(err, &fe) {
				fe.Entry = i
			}
			return "", err
		}
	}

	return class.End().Collect(), nil
}

// EmitContractAbstraction renders the capability interface every uniform
// wrapper depends on. The output only depends on the options.
func (e *Emitter) EmitContractAbstraction() string {
	return ts.NewScriptIndent(e.opts.Indent).
		Class(e.opts.Capability.Name, ts.ExportDefault, ts.KindInterface).
		Method("call", ts.Unspecified, false).
		Param("target", ts.String).
		Rest("args", ts.Array(ts.Unknown)).
		Returns(ts.Promise(ts.Unknown)).
		Abstract().
		End().
		Collect()
}

func (e *Emitter) skip(fn *abi.Function) bool {
	return e.opts.Policy == PolicyLegacy && fn.Constant && !strings.HasPrefix(fn.Name, e.opts.GetterPrefix)
}

type param struct {
	name string
	typ  ts.Type
}

// parameters names and types the inputs of fn. Anonymous inputs are
// numbered among themselves: _param0, _param1, ...
func parameters(fn *abi.Function) ([]param, error) {
	params := make([]param, len(fn.Inputs))
	anonymous := 0
	for i, in := range fn.Inputs {
		name := in.Name
		if name == "" {
			name = fmt.Sprintf("_param%d", anonymous)
			anonymous++
		}
		typ, err := Translate(in.Type)
		if err != nil {
			return nil, &FunctionError{Function: fn.Name, Param: name, Err: err}
		}
		params[i] = param{name: name, typ: typ}
	}
	return params, nil
}

func results(fn *abi.Function) ([]ts.Type, error) {
	types := make([]ts.Type, len(fn.Outputs))
	for i, out := range fn.Outputs {
		typ, err := Translate(out.Type)
		if err != nil {
			return nil, &FunctionError{Function: fn.Name, Output: i, Err: err}
		}
		types[i] = typ
	}
	return types, nil
}

func (e *Emitter) method(class ts.Class, fn *abi.Function) (ts.Class, error) {
	params, err := parameters(fn)
	if err != nil {
		return class, err
	}
	outputs, err := results(fn)
	if err != nil {
		return class, err
	}

	if e.opts.Selectors {
		class = class.Doc(Selector(fn))
	}

	visibility := ts.Public
	if e.opts.Policy == PolicyLegacy {
		visibility = ts.Unspecified
	}
	sig := class.Method(fn.Name, visibility, true)
	args := make([]ts.Arg, len(params))
	for i, p := range params {
		sig = sig.Param(p.name, p.typ)
		args[i] = ts.Ref(p.name)
	}

	field := e.opts.Capability.Field
	if e.opts.Policy == PolicyUniform {
		return sig.Body().
			ReturnAwait().
			This().Dot().Field(field).Dot().Field("call").
			Call().Arg(ts.Str(fn.Name)).Args(args...).Close().
			End().
			End(), nil
	}

	var returns ts.Type = ts.Void
	if len(outputs) > 0 {
		returns = outputs[0]
	}
	verb := "send"
	if fn.Mutability.ReadOnly() {
		verb = "call"
	}
	return sig.Returns(ts.Promise(returns)).Body().
		Expression().Const("method").This().Dot().Field(field).Dot().Field("methods").Index(fn.Name).End().
		Expression().Const("callAction").Await().Ident("method").Call().Args(args...).Close().End().
		ReturnAwait().Ident("callAction").Dot().Field(verb).Call().Close().End().
		End(), nil
}

// Selector returns the canonical signature of fn followed by its 4-byte
// function selector, e.g. "balanceOf(address) 0x70a08231".
func Selector(fn *abi.Function) string {
	sig := fn.Signature()
	return sig + " " + hexutil.Encode(crypto.Keccak256([]byte(sig))[:4])
}
