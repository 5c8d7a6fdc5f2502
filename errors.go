package goschema

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/reoring/goschema/i18n"
)

// Diagnostic codes (exported consts for IDE completion and type safety by convention)
const (
	CodeMismatch     = "mismatch"
	CodeInvalidType  = "invalid_type"
	CodeFalsy        = "falsy"
	CodeRaised       = "raised"
	CodeMissingKey   = "missing_key"
	CodeWrongKey     = "wrong_key"
	CodeInvalidValue = "invalid_value"
	CodeNoMatch      = "no_match"
	CodeFailed       = "failed"
)

// Diagnostic is one level of a validation failure. Empty strings mean the
// slot is absent.
type Diagnostic struct {
	Code string // Code of the auto message; empty when Auto is absent.
	Auto string // Auto-generated message.
	Err  string // Caller-supplied message.
}

// Error is a validation failure. It holds one Diagnostic per nesting level
// traversed, innermost first and outermost last.
//
// An *Error is never mutated; extending it returns a new value.
type Error struct {
	diags []Diagnostic
}

// NewError returns a single-level failure. Callables passed to Pred, PredErr
// or Use return it to fail with their own diagnostics.
func NewError(auto, err string) *Error {
	return &Error{diags: []Diagnostic{{Auto: auto, Err: err}}}
}

func newError(code string, data map[string]string, err string) *Error {
	return &Error{diags: []Diagnostic{{Code: code, Auto: i18n.T(code, data), Err: err}}}
}

// extend returns a copy of e with d appended as the outermost level.
func (e *Error) extend(d Diagnostic) *Error {
	out := make([]Diagnostic, len(e.diags), len(e.diags)+1)
	copy(out, e.diags)
	return &Error{diags: append(out, d)}
}

// wrap appends an absent-auto level carrying the caller message.
func (e *Error) wrap(msg string) *Error { return e.extend(Diagnostic{Err: msg}) }

// Diagnostics returns a copy of all levels, outermost last.
func (e *Error) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(e.diags))
	copy(out, e.diags)
	return out
}

// Autos returns the auto-generated channel, index aligned with Errors.
func (e *Error) Autos() []string {
	out := make([]string, len(e.diags))
	for i, d := range e.diags {
		out[i] = d.Auto
	}
	return out
}

// Errors returns the caller-supplied channel, index aligned with Autos.
func (e *Error) Errors() []string {
	out := make([]string, len(e.diags))
	for i, d := range e.diags {
		out[i] = d.Err
	}
	return out
}

// Message picks the text to show a user: the outermost caller message if
// any level has one, else the outermost auto message, else a generic
// failure text.
func (e *Error) Message() string {
	for i := len(e.diags) - 1; i >= 0; i-- {
		if e.diags[i].Err != "" {
			return e.diags[i].Err
		}
	}
	for i := len(e.diags) - 1; i >= 0; i-- {
		if e.diags[i].Auto != "" {
			return e.diags[i].Auto
		}
	}
	return i18n.T(CodeFailed, nil)
}

func (e *Error) Error() string { return e.Message() }

// ExitCode is the process status a command-line tool should exit with.
func (e *Error) ExitCode() int { return 1 }

// LogValue exposes both channels to structured loggers.
func (e *Error) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("message", e.Message()),
		slog.Any("autos", e.Autos()),
		slog.Any("errors", e.Errors()),
	)
}

// AsError extracts an *Error from err using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

var (
	exitOutput io.Writer = os.Stderr
	exitFunc             = os.Exit
)

// Exit terminates the process with err's message on stderr. Validation
// failures exit with their ExitCode, other errors with 1. A nil err is a
// no-op.
func Exit(err error) {
	if err == nil {
		return
	}
	code := 1
	msg := err.Error()
	if e, ok := AsError(err); ok {
		code = e.ExitCode()
		msg = e.Message()
	}
	fmt.Fprintln(exitOutput, msg)
	exitFunc(code)
}
