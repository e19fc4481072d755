// Package diagnostics defines the error kinds the compiler core can raise
// and a single formatted error type carrying a code, a message, and an
// optional source position — the same DiagnosticError{Code, Token, File}
// shape the teacher's analyzer and LSP layers build on.
package diagnostics

import (
	"fmt"

	"github.com/ilang-hdl/ilc/internal/token"
)

// ErrorCode identifies the kind of a DiagnosticError. Kept as a string (not
// an int enum) so codes are stable across refactors and read directly in
// test failure output.
type ErrorCode string

const (
	ErrParseError               ErrorCode = "E-PARSE"
	ErrSignatureResolutionFailed ErrorCode = "E-SIGRES"
	ErrUndefinedComponent       ErrorCode = "E-UNDEFCOMP"
	ErrUndefinedPort            ErrorCode = "E-UNDEFPORT"
	ErrDuplicateInstance        ErrorCode = "E-DUPINST"
	ErrMismatchedPortWidths     ErrorCode = "E-WIDTH"
	ErrMalformedControl         ErrorCode = "E-MALFORMED"
	ErrInternal                 ErrorCode = "E-INTERNAL"
)

// DiagnosticError is the single error type surfaced from elaboration and
// passes. There is no local recovery (§7): callers propagate it immediately.
type DiagnosticError struct {
	Code    ErrorCode
	Message string
	Pos     token.Position
	// Excerpt is the offending source line, filled in by a caller that has
	// access to the original text; empty when unavailable (e.g. synthesized
	// errors raised by a pass that has no direct source span).
	Excerpt string
}

func (e *DiagnosticError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newErr(code ErrorCode, pos token.Position, msg string) *DiagnosticError {
	return &DiagnosticError{Code: code, Message: msg, Pos: pos}
}

// ParseError reports a surface-syntax failure from the (external) parser.
func ParseError(pos token.Position, message string) *DiagnosticError {
	return newErr(ErrParseError, pos, message)
}

// SignatureResolutionFailed reports a primitive or component whose signature
// could not be resolved: unknown name, arity mismatch, or a width expression
// that failed to evaluate (§4.1).
func SignatureResolutionFailed(pos token.Position, name string) *DiagnosticError {
	return newErr(ErrSignatureResolutionFailed, pos, fmt.Sprintf("could not resolve signature for %q", name))
}

// UndefinedComponent reports a structure item referencing an unknown
// instance name.
func UndefinedComponent(pos token.Position, name string) *DiagnosticError {
	return newErr(ErrUndefinedComponent, pos, fmt.Sprintf("undefined instance %q", name))
}

// UndefinedPort reports a wire endpoint naming a port that does not exist on
// its instance, or using a boundary port in the wrong direction.
func UndefinedPort(pos token.Position, name string) *DiagnosticError {
	return newErr(ErrUndefinedPort, pos, fmt.Sprintf("undefined port %q", name))
}

// DuplicateInstance reports two structure declarations claiming the same
// instance name.
func DuplicateInstance(pos token.Position, name string) *DiagnosticError {
	return newErr(ErrDuplicateInstance, pos, fmt.Sprintf("duplicate instance %q", name))
}

// DuplicateComponent reports two component definitions in the same
// namespace claiming the same name.
func DuplicateComponent(pos token.Position, name string) *DiagnosticError {
	return newErr(ErrDuplicateInstance, pos, fmt.Sprintf("duplicate component %q", name))
}

// MismatchedPortWidths reports a wire whose endpoints disagree on width.
func MismatchedPortWidths(pos token.Position, srcPort string, srcWidth int, dstPort string, dstWidth int) *DiagnosticError {
	return newErr(ErrMismatchedPortWidths, pos, fmt.Sprintf(
		"mismatched port widths: %s is %d bits wide but %s is %d bits wide", srcPort, srcWidth, dstPort, dstWidth))
}

// MalformedControl reports a control-tree shape the language does not allow,
// e.g. @sync on an Enable/Invoke leaf (§4.4 precondition).
func MalformedControl(pos token.Position, reason string) *DiagnosticError {
	return newErr(ErrMalformedControl, pos, reason)
}

// Internal reports an invariant violated by a previous pass. Never expected
// on valid input; a pass encountering one should not attempt recovery.
func Internal(message string) *DiagnosticError {
	return newErr(ErrInternal, token.Position{}, message)
}
