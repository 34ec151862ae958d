package barg

import (
	"errors"
	"fmt"
)

// ErrorKind is a user-visible label identifying the class of parse failure,
// per spec.md §7.
type ErrorKind string

const (
	KindInvalidOption      ErrorKind = "InvalidOption"
	KindIllegalBinding     ErrorKind = "IllegalBinding"
	KindDSLSyntax          ErrorKind = "DSLSyntax"
	KindMissingSubcommand  ErrorKind = "MissingSubcommand"
	KindMissingRequired    ErrorKind = "MissingRequired"
	KindParamLikeValue     ErrorKind = "ParamLikeValue"
	KindTypeMismatch       ErrorKind = "TypeMismatch"
	KindUnknownFormat      ErrorKind = "UnknownFormat"
	KindInvalidChoice      ErrorKind = "InvalidChoice"
	KindUnknownFlag        ErrorKind = "UnknownFlag"
	KindMissingSpare       ErrorKind = "MissingSpare"
	KindRegexUnsupported   ErrorKind = "RegexUnsupported"
	KindDuplicatePattern   ErrorKind = "DuplicatePattern"
)

// ParseError is the error type returned for every recoverable parse failure.
// It carries the machine-readable Kind alongside a human-readable message.
type ParseError struct {
	Kind    ErrorKind
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newParseError(kind ErrorKind, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ProgrammingError wraps errors caused by incorrect library setup (a DSL
// that breaks a cross-declaration invariant, such as a binding declared
// twice in one scope) as opposed to bad end-user input; DSL syntax errors
// are *ParseError values of kind DSLSyntax instead. Mirrors the
// teacher's ProgrammingError (ra_cmd_parse.go): these indicate a bug in the
// embedding program, not in what the user typed.
type ProgrammingError struct {
	msg string
}

func (e *ProgrammingError) Error() string { return e.msg }

func newProgrammingError(format string, args ...any) *ProgrammingError {
	return &ProgrammingError{msg: fmt.Sprintf(format, args...)}
}

// HelpInvokedErr is returned (via errors.Is) when help was rendered instead of a successful parse.
var HelpInvokedErr = errors.New("help invoked")

// CompletionInvokedErr is returned (via errors.Is) when a completion stream was emitted instead of a parse.
var CompletionInvokedErr = errors.New("completion invoked")

type helpInvokedError struct {
	long bool
}

func (e *helpInvokedError) Error() string  { return HelpInvokedErr.Error() }
func (e *helpInvokedError) Unwrap() error  { return HelpInvokedErr }

type completionInvokedError struct {
	output string
}

func (e *completionInvokedError) Error() string { return CompletionInvokedErr.Error() }
func (e *completionInvokedError) Unwrap() error { return CompletionInvokedErr }

// ErrorHook is the embedding program's error handler, matching §6's
// error-hook contract: returning 0 suppresses the error (parse continues
// to report success to the caller); any non-zero return is the exit code.
type ErrorHook func(kind ErrorKind, description string) int
