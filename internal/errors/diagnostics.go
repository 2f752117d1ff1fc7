package errors

import (
	"fmt"
	"strings"
)

// DiagnosticBuilder provides a fluent interface for creating diagnostics with suggestions
type DiagnosticBuilder struct {
	err CompilerError
}

// NewError creates a new error-level diagnostic builder
func NewError(code, message string, pos Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewWarning creates a new warning-level diagnostic builder
func NewWarning(code, message string, pos Position) *DiagnosticBuilder {
	b := NewError(code, message, pos)
	b.err.Level = Warning
	return b
}

// WithLength sets the length of the error span
func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *DiagnosticBuilder) WithReplacement(message, replacement string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message, Replacement: replacement})
	return b
}

// WithNote adds a note to the error
func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed diagnostic
func (b *DiagnosticBuilder) Build() CompilerError {
	return b.err
}

// SupportedTypes lists the raw ABI types that translate to TypeScript.
var SupportedTypes = []string{"uint256", "uint8", "uint8[]", "uint256[]", "string", "address", "bool"}

// Decode creates a diagnostic for a document that could not be decoded.
// The code selects the help text.
func Decode(code, message string, pos Position) CompilerError {
	b := NewError(code, message, pos)
	switch code {
	case ErrorMalformedJSON:
		b.WithHelp("the input must be a JSON object with an \"abi\" array, or a bare ABI array")
	case ErrorMissingField:
		b.WithHelp("function entries need name, stateMutability, inputs and outputs")
	case ErrorUnknownEntryType:
		b.WithHelp("entry type must be one of: constructor, event, function")
	case ErrorInvalidValue:
		b.WithHelp("stateMutability must be one of: nonpayable, payable, view, pure")
	}
	return b.Build()
}

// UnsupportedType creates an error for an ABI type with no TypeScript
// representation, used by the named function.
func UnsupportedType(rawType, function string, pos Position) CompilerError {
	b := NewError(ErrorUnsupportedType,
		fmt.Sprintf("type '%s' used by function '%s' has no TypeScript representation", rawType, function), pos).
		WithLength(max(1, len(function))).
		WithNote("supported types: " + strings.Join(SupportedTypes, ", "))

	for _, similar := range findSimilarNames(rawType, SupportedTypes) {
		b.WithReplacement(fmt.Sprintf("did you mean '%s'?", similar), fmt.Sprintf(`"type": "%s"`, similar))
	}
	if len(b.err.Suggestions) == 0 {
		b.WithHelp("structs, enums, tuples and fixed-size integers other than uint8/uint256 are not translated")
	}
	return b.Build()
}

// InvalidConfig creates an error for an unusable configuration. Key is the
// rejected setting, empty when the file itself is unusable.
func InvalidConfig(path, key, message string) CompilerError {
	b := NewError(ErrorInvalidConfig, fmt.Sprintf("%s: %s", path, message), Position{})
	switch key {
	case "policy":
		b.WithHelp("valid policies are 'uniform' and 'legacy'")
	case "capability.name":
		b.WithHelp("a package capability may use a qualified name such as 'ethers.Contract'; a generated one needs a plain identifier")
	}
	return b.Build()
}

// Verify creates an error for generated text the grammar rejected.
func Verify(message string, pos Position) CompilerError {
	return NewError(ErrorVerify, message, pos).
		WithNote("the file was not written").
		WithHelp("this is a bug in abi2ts; please report it with the input ABI").
		Build()
}

// InvalidContractName creates an error for a contract name that cannot
// name a TypeScript class or output file.
func InvalidContractName(name string, pos Position) CompilerError {
	return NewError(ErrorInvalidValue, fmt.Sprintf("contract name '%s' is not a valid identifier", name), pos).
		WithLength(max(1, len(name))).
		WithNote("the name is used as the class name and the output file name").
		WithHelp("use letters, digits, '_' or '$', not starting with a digit").
		Build()
}

// OmittedFunction warns that a constant function without the getter prefix
// produces no method under the legacy policy.
func OmittedFunction(function, prefix string, pos Position) CompilerError {
	return NewWarning(WarningOmittedFunction,
		fmt.Sprintf("constant function '%s' is omitted from the wrapper", function), pos).
		WithLength(max(1, len(function))).
		WithNote(fmt.Sprintf("the legacy policy only keeps constant functions starting with '%s'", prefix)).
		WithHelp("set policy to 'uniform' to wrap every function").
		Build()
}

// OverloadedFunction warns that function is declared count times, which
// TypeScript rejects as a duplicate implementation.
func OverloadedFunction(function string, count int, pos Position) CompilerError {
	return NewWarning(WarningOverloadedFunction,
		fmt.Sprintf("function '%s' is overloaded; the wrapper declares it %d times", function, count), pos).
		WithLength(max(1, len(function))).
		WithNote("TypeScript reports duplicate method implementations").
		Build()
}

// IO creates an error for a failed read or write.
func IO(err error) CompilerError {
	return NewError(ErrorIO, err.Error(), Position{}).Build()
}

func findSimilarNames(target string, candidates []string) []string {
	var similar []string

	for _, candidate := range candidates {
		if candidate != target && levenshteinDistance(target, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}

	return similar
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
