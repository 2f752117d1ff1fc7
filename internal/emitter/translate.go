package emitter

import (
	"fmt"

	"abi2ts/internal/abi"
	"abi2ts/internal/ts"
)

// UnsupportedTypeError reports an ABI type with no TypeScript equivalent.
type UnsupportedTypeError struct {
	Type abi.DataType
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported type %s", e.Type)
}

// Translate maps an ABI type to its TypeScript type. Named and
// unrecognized types fail with *UnsupportedTypeError.
func Translate(dt abi.DataType) (ts.Type, error) {
	switch dt.Kind {
	case abi.KindUInt256, abi.KindUInt8:
		return ts.Number, nil
	case abi.KindUInt8Array, abi.KindUInt256Array:
		return ts.Array(ts.Number), nil
	case abi.KindString, abi.KindAddress:
		return ts.String, nil
	case abi.KindBool:
		return ts.Boolean, nil
	default:
		return nil, &UnsupportedTypeError{Type: dt}
	}
}

// FunctionError locates a failure inside one ABI function. Entry is the
// function's index in the contract ABI. Param names the offending input;
// for outputs it is empty and Output holds the index.
type FunctionError struct {
	Function string
	Entry    int
	Param    string
	Output   int
	Err      error
}

func (e *FunctionError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("function %q: parameter %q: %v", e.Function, e.Param, e.Err)
	}
	return fmt.Sprintf("function %q: output %d: %v", e.Function, e.Output, e.Err)
}

func (e *FunctionError) Unwrap() error {
	return e.Err
}

// NameError reports a contract name that cannot be used as a class name
// and output file stem.
type NameError struct {
	Name string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("contract name %q is not a valid identifier", e.Name)
}
