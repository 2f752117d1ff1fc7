package lsp

import (
	"fmt"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"abi2ts/internal/abi"
	"abi2ts/internal/emitter"
	diag "abi2ts/internal/errors"
)

// hover describes the function whose name value contains pos, or returns
// nil when there is none or the document does not decode.
func hover(path, text string, pos protocol.Position) *protocol.Hover {
	source := []byte(text)
	contract, err := abi.DecodeSource(path, source)
	if err != nil {
		return nil
	}

	offset := int64(pos.IndexIn(text))
	names := abi.NameOffsets(source)
	for i, entry := range contract.ABI {
		fn, ok := entry.(*abi.Function)
		if !ok || i >= len(names) {
			continue
		}
		start := names[i]
		if start < 0 || offset < start || offset > start+int64(len(fn.Name)) {
			continue
		}

		p := diag.PositionAt(text, start)
		line, column := uint32(p.Line-1), uint32(p.Column-1)
		return &protocol.Hover{
			Contents: protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: describe(fn),
			},
			Range: &protocol.Range{
				Start: protocol.Position{Line: line, Character: column},
				End:   protocol.Position{Line: line, Character: column + uint32(len(fn.Name))},
			},
		}
	}
	return nil
}

// describe renders the TypeScript method a function becomes, its selector
// and its mutability. Untranslatable types are shown as written in the ABI.
func describe(fn *abi.Function) string {
	params := make([]string, len(fn.Inputs))
	for i, in := range fn.Inputs {
		name := in.Name
		if name == "" {
			name = "_"
		}
		params[i] = name + ": " + tsType(in.Type)
	}

	returns := "void"
	if len(fn.Outputs) > 0 {
		returns = tsType(fn.Outputs[0].Type)
	}

	var b strings.Builder
	b.WriteString("```typescript\n")
	fmt.Fprintf(&b, "%s(%s): Promise<%s>\n", fn.Name, strings.Join(params, ", "), returns)
	b.WriteString("```\n")
	sig, selector, _ := strings.Cut(emitter.Selector(fn), " ")
	fmt.Fprintf(&b, "`%s` selector `%s`, %s", sig, selector, fn.Mutability)
	return b.String()
}

func tsType(dt abi.DataType) string {
	t, err := emitter.Translate(dt)
	if err != nil {
		return dt.Raw()
	}
	return t.String()
}
