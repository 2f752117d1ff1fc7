package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"abi2ts/internal/abi"
	"abi2ts/internal/emitter"
	diag "abi2ts/internal/errors"
)

const diagnosticSource = "abi2ts"

// Diagnose decodes and emits the document at path and reports why it
// would fail to generate, or the warnings of a successful generation. A
// clean document yields an empty, non-nil slice so the client clears
// earlier diagnostics.
func Diagnose(e *emitter.Emitter, path, text string) []protocol.Diagnostic {
	source := []byte(text)

	contract, err := abi.DecodeSource(path, source)
	if err == nil {
		_, err = e.Emit(contract)
	}
	if err == nil {
		diagnostics := []protocol.Diagnostic{}
		for _, warning := range e.Warnings(source, contract) {
			diagnostics = append(diagnostics, ConvertCompilerError(warning))
		}
		return diagnostics
	}

	compilerErr, ok := emitter.Diagnostic(source, err)
	if !ok {
		compilerErr = diag.IO(err)
	}
	return []protocol.Diagnostic{ConvertCompilerError(compilerErr)}
}

// ConvertCompilerError transforms a CompilerError into an LSP diagnostic.
// Notes and help text are appended to the message since LSP has no
// separate field for them.
func ConvertCompilerError(err diag.CompilerError) protocol.Diagnostic {
	line := uint32(max(0, err.Position.Line-1))
	start := uint32(max(0, err.Position.Column-1))
	length := uint32(max(1, err.Length))

	message := []string{err.Message}
	message = append(message, err.Notes...)
	for _, s := range err.Suggestions {
		message = append(message, s.Message)
	}
	if err.HelpText != "" {
		message = append(message, err.HelpText)
	}

	severity := protocol.DiagnosticSeverityError
	if err.Level == diag.Warning || diag.IsWarning(err.Code) {
		severity = protocol.DiagnosticSeverityWarning
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: start},
			End:   protocol.Position{Line: line, Character: start + length},
		},
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: err.Code},
		Source:   ptrString(diagnosticSource),
		Message:  strings.Join(message, "\n"),
	}
}

func ptrString(s string) *string {
	return &s
}
