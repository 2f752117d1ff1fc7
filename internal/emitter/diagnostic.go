package emitter

import (
	"errors"

	"abi2ts/internal/abi"
	diag "abi2ts/internal/errors"
)

// Diagnostic converts a decode or emission error for the ABI document
// source into a positioned CompilerError. Decode errors point at their
// offset, unsupported types at the name of the ABI entry using them and
// invalid contract names at the name value.
// It reports false for any other error.
func Diagnostic(source []byte, err error) (diag.CompilerError, bool) {
	var (
		decodeErr *abi.DecodeError
		fnErr     *FunctionError
		typeErr   *UnsupportedTypeError
		nameErr   *NameError
	)

	text := string(source)
	switch {
	case errors.As(err, &decodeErr):
		return diag.Decode(decodeErr.Code, decodeErr.Message, diag.PositionAt(text, decodeErr.Offset)), true

	case errors.As(err, &typeErr):
		function := ""
		offset := int64(-1)
		if errors.As(err, &fnErr) {
			function = fnErr.Function
			offset = abi.NameOffset(source, fnErr.Entry)
		}
		return diag.UnsupportedType(typeErr.Type.Raw(), function, diag.PositionAt(text, offset)), true

	case errors.As(err, &nameErr):
		return diag.InvalidContractName(nameErr.Name, diag.PositionAt(text, abi.ContractNameOffset(source))), true
	}
	return diag.CompilerError{}, false
}

// Warnings reports functions of c that do not come out as one method each
// under the options of e: constant functions the legacy policy omits and
// overloads that repeat a method name. Each warning points at the name of
// the ABI entry in source.
func (e *Emitter) Warnings(source []byte, c *abi.Contract) []diag.CompilerError {
	text := string(source)
	names := abi.NameOffsets(source)
	position := func(entry int) diag.Position {
		if entry >= len(names) {
			return diag.Position{}
		}
		return diag.PositionAt(text, names[entry])
	}

	var warnings []diag.CompilerError
	seen := make(map[string]int)
	for i, entry := range c.ABI {
		fn, ok := entry.(*abi.Function)
		if !ok {
			continue
		}
		if e.skip(fn) {
			warnings = append(warnings, diag.OmittedFunction(fn.Name, e.opts.GetterPrefix, position(i)))
			continue
		}
		seen[fn.Name]++
		if count := seen[fn.Name]; count > 1 {
			warnings = append(warnings, diag.OverloadedFunction(fn.Name, count, position(i)))
		}
	}
	return warnings
}
