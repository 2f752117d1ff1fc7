package errors

// Error codes for the abi2ts toolchain.
// These codes are used in error messages and documentation
// to provide consistent error identification across the CLI and language server.
//
// Error code ranges:
// E0100-E0199: ABI decoding errors
// E0200-E0299: Type translation errors
// E0300-E0399: Configuration errors
// E0900-E0999: Tooling and I/O errors
// W0001-W0099: Warnings, generation still succeeds

const (
	// E0100: Input is not well-formed JSON
	ErrorMalformedJSON = "E0100"

	// E0101: A required ABI field is absent
	ErrorMissingField = "E0101"

	// E0102: ABI entry "type" is not constructor, event or function
	ErrorUnknownEntryType = "E0102"

	// E0103: A field holds a value outside its allowed set (e.g. stateMutability)
	ErrorInvalidValue = "E0103"

	// E0104: A field holds the wrong JSON type
	ErrorWrongJSONType = "E0104"

	// E0200: ABI type has no TypeScript representation
	ErrorUnsupportedType = "E0200"

	// E0300: Invalid configuration file or flag combination
	ErrorInvalidConfig = "E0300"

	// E0900: Reading inputs or writing artifacts failed
	ErrorIO = "E0900"

	// E0901: Generated output does not parse
	ErrorVerify = "E0901"

	// W0001: A constant function is left out under the legacy policy
	WarningOmittedFunction = "W0001"

	// W0002: Several ABI functions share a name and become duplicate methods
	WarningOverloadedFunction = "W0002"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorMalformedJSON:
		return "Input is not well-formed JSON"
	case ErrorMissingField:
		return "A required ABI field is missing"
	case ErrorUnknownEntryType:
		return "ABI entry type is not supported"
	case ErrorInvalidValue:
		return "ABI field holds an invalid value"
	case ErrorWrongJSONType:
		return "ABI field holds a value of the wrong JSON type"
	case ErrorUnsupportedType:
		return "ABI type cannot be represented in TypeScript"
	case ErrorInvalidConfig:
		return "Configuration is invalid"
	case ErrorIO:
		return "File could not be read or written"
	case ErrorVerify:
		return "Generated TypeScript failed verification"
	case WarningOmittedFunction:
		return "Function is omitted from the wrapper"
	case WarningOverloadedFunction:
		return "Overloaded function is declared more than once"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return code != "" && code[0] == 'W'
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0100" && code < "E0200":
		return "Decode"
	case code >= "E0200" && code < "E0300":
		return "Type Translation"
	case code >= "E0300" && code < "E0400":
		return "Configuration"
	case code >= "E0900" && code < "E1000":
		return "Tooling"
	case IsWarning(code):
		return "Warning"
	default:
		return "Unknown"
	}
}
