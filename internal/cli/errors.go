package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2"

	"abi2ts/internal/config"
	"abi2ts/internal/emitter"
	diag "abi2ts/internal/errors"
)

// Exit codes for the command.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// ExitError is returned once a failure has been reported to the user.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// GetExitCode extracts the exit code from an error returned by the command.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// VerifyError reports generated text the grammar rejected.
type VerifyError struct {
	File string
	Text string
	Err  error
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("%s: generated output does not parse: %v", e.File, e.Err)
}

func (e *VerifyError) Unwrap() error {
	return e.Err
}

// fail prints err as a diagnostic against source and returns the ExitError
// the command finishes with.
func fail(w io.Writer, path string, source []byte, err error) error {
	filename, text, compilerErr := Diagnostic(path, source, err)
	reporter := diag.NewErrorReporter(filename, text)
	fmt.Fprint(w, reporter.FormatError(compilerErr))
	log.Debugf("%s: %v", path, err)
	return &ExitError{Code: ExitFailure, Message: "generation failed", Err: err}
}

// Diagnostic converts an error raised while processing path into a
// CompilerError. It also returns the document the position refers to, which
// is the generated text for verification failures.
func Diagnostic(path string, source []byte, err error) (string, string, diag.CompilerError) {
	if compilerErr, ok := emitter.Diagnostic(source, err); ok {
		return path, string(source), compilerErr
	}

	var (
		cfgErr    *config.Error
		verifyErr *VerifyError
	)
	switch {
	case errors.As(err, &cfgErr):
		return cfgErr.Path, "", diag.InvalidConfig(cfgErr.Path, cfgErr.Key, cfgErr.Err.Error())

	case errors.As(err, &verifyErr):
		var pe participle.Error
		if errors.As(verifyErr.Err, &pe) {
			pos := diag.Position{Line: pe.Position().Line, Column: pe.Position().Column}
			return verifyErr.File, verifyErr.Text, diag.Verify(pe.Message(), pos)
		}
		return verifyErr.File, verifyErr.Text, diag.Verify(verifyErr.Err.Error(), diag.Position{})

	default:
		return path, string(source), diag.IO(err)
	}
}
