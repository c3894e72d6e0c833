// Package diagnostics defines the structured compile errors shared by all
// pipeline stages. Every error carries a stable code, the source position of
// the offending token, and a human-readable message.
package diagnostics

import (
	"fmt"

	"github.com/solbind/solbind/internal/token"
)

type Code string

// Lexer errors (L), parser errors (P), analyzer errors (A), binder errors (B).
const (
	ErrL001 Code = "L001" // illegal character
	ErrL002 Code = "L002" // unterminated block comment

	ErrP000 Code = "P000" // internal: missing token stream
	ErrP001 Code = "P001" // unexpected token
	ErrP002 Code = "P002" // expected a specific token
	ErrP004 Code = "P004" // indexed outside an event parameter list

	ErrA001 Code = "A001" // duplicate contract name
	ErrA002 Code = "A002" // duplicate error/event name
	ErrA003 Code = "A003" // duplicate function signature
	ErrA004 Code = "A004" // unknown or malformed parameter type
	ErrA006 Code = "A006" // too many indexed event parameters

	ErrB001 Code = "B001" // internal: group construction failed
	ErrB002 Code = "B002" // selector collision between two definitions
)

type DiagnosticError struct {
	Code    Code
	Message string
	File    string
	Line    int
	Column  int
}

func NewError(code Code, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Message: message,
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

func (e *DiagnosticError) Error() string {
	pos := fmt.Sprintf("%d:%d", e.Line, e.Column)
	if e.File != "" {
		pos = e.File + ":" + pos
	}
	return fmt.Sprintf("%s: [%s] %s", pos, e.Code, e.Message)
}
