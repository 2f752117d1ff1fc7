package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Position is a 1-based location in a source document. A zero Line means
// the location is unknown and no source excerpt is printed.
type Position struct {
	Line   int
	Column int
}

// PositionAt converts a byte offset into a line/column position.
// Negative or out-of-range offsets yield the zero Position.
func PositionAt(source string, offset int64) Position {
	if offset < 0 || offset > int64(len(source)) {
		return Position{}
	}
	prefix := source[:offset]
	line := strings.Count(prefix, "\n") + 1
	column := int(offset) - (strings.LastIndex(prefix, "\n") + 1) + 1
	return Position{Line: line, Column: column}
}

// ErrorLevel represents the severity of a diagnostic
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// CompilerError represents a structured diagnostic with suggestions and context
type CompilerError struct {
	Level       ErrorLevel
	Code        string       // Error code like E0200
	Message     string       // Primary message
	Position    Position     // Location in source, zero if unknown
	Length      int          // Length of the problematic region
	Suggestions []Suggestion // Suggested fixes
	Notes       []string     // Additional context notes
	HelpText    string       // Help text for the error
}

func (e CompilerError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s[%s]: %s", e.Level, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Level, e.Message)
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message     string // Description of the suggestion
	Replacement string // Suggested replacement text (optional)
}

// ErrorReporter renders diagnostics for one input document
type ErrorReporter struct {
	filename string
	lines    []string
}

// NewErrorReporter creates a new error reporter for a file
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatError formats a diagnostic with a header, a source excerpt around
// the position (when known) and any suggestions, notes and help text.
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var out strings.Builder

	levelColor := er.getLevelColor(err.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if err.Code != "" {
		fmt.Fprintf(&out, "%s[%s]: %s\n", levelColor(string(err.Level)), err.Code, err.Message)
	} else {
		fmt.Fprintf(&out, "%s: %s\n", levelColor(string(err.Level)), err.Message)
	}

	width := er.getLineNumberWidth(err.Position.Line)
	indent := strings.Repeat(" ", width)
	line := err.Position.Line

	if line <= 0 || line > len(er.lines) {
		fmt.Fprintf(&out, "%s %s %s\n", indent, dim("-->"), er.filename)
	} else {
		fmt.Fprintf(&out, "%s %s %s:%d:%d\n", indent, dim("-->"), er.filename, line, err.Position.Column)
		fmt.Fprintf(&out, "%s %s\n", indent, dim("│"))
		if line > 1 {
			fmt.Fprintf(&out, "%s %s %s\n", dim(fmt.Sprintf("%*d", width, line-1)), dim("│"), er.lines[line-2])
		}
		fmt.Fprintf(&out, "%s %s %s\n", bold(fmt.Sprintf("%*d", width, line)), dim("│"), er.lines[line-1])
		fmt.Fprintf(&out, "%s %s %s\n", indent, dim("│"), er.createMarker(err.Position.Column, err.Length, err.Level))
		if line < len(er.lines) {
			fmt.Fprintf(&out, "%s %s %s\n", dim(fmt.Sprintf("%*d", width, line+1)), dim("│"), er.lines[line])
		}
	}

	if len(err.Suggestions) > 0 {
		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Fprintf(&out, "%s %s\n", indent, dim("│"))
		for i, suggestion := range err.Suggestions {
			if i == 0 {
				fmt.Fprintf(&out, "%s %s %s: %s\n", indent, cyan("help"), cyan("try"), suggestion.Message)
			} else {
				fmt.Fprintf(&out, "%s %s %s\n", indent, cyan("    "), suggestion.Message)
			}
			if suggestion.Replacement != "" {
				fmt.Fprintf(&out, "%s %s %s\n", indent, cyan("│"), cyan(suggestion.Replacement))
			}
		}
	}

	blue := color.New(color.FgBlue).SprintFunc()
	for _, note := range err.Notes {
		fmt.Fprintf(&out, "%s %s %s %s\n", indent, dim("│"), blue("note:"), note)
	}

	if err.HelpText != "" {
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(&out, "%s %s %s %s\n", indent, dim("│"), green("help:"), err.HelpText)
	}

	if err.Code != "" {
		fmt.Fprintf(&out, "%s %s\n", indent, dim(fmt.Sprintf("= %s %s: %s", GetErrorCategory(err.Code), err.Code, GetErrorDescription(err.Code))))
	}

	out.WriteString("\n")
	return out.String()
}

// getLevelColor returns the appropriate color function for an error level
func (er *ErrorReporter) getLevelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

// createMarker creates the caret underline below the offending column
func (er *ErrorReporter) createMarker(column, length int, level ErrorLevel) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", max(0, column-1))
	return spaces + er.getLevelColor(level)(strings.Repeat("^", length))
}

// getLineNumberWidth calculates the width needed for line numbers
func (er *ErrorReporter) getLineNumberWidth(line int) int {
	return max(3, len(fmt.Sprintf("%d", line)))
}
