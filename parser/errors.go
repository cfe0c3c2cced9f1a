package parser

import (
	"fmt"
	"strings"
)

// Position spans the source range an offending token (or lexer cursor)
// occupies. Start and end are tracked independently so a diagnostic can
// report the whole lexeme rather than a single point.
type Position struct {
	Filename    string
	StartLine   int
	EndLine     int
	StartCol    int
	EndCol      int
	StartOffset int
	EndOffset   int
}

// Phase identifies which pass of the assembler raised an error.
type Phase string

const (
	PhaseLexer     Phase = "LEXER"
	PhaseParser    Phase = "PARSER"
	PhaseAssembler Phase = "ASSEMBLER"
)

// ErrorKind categorizes the kind of failure a pass can report.
type ErrorKind int

const (
	ErrorLexical ErrorKind = iota
	ErrorSyntax
	ErrorDuplicateSymbol
	ErrorUndefinedSymbol
	ErrorOutOfMemory
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorLexical:
		return "lexical"
	case ErrorSyntax:
		return "syntax"
	case ErrorDuplicateSymbol:
		return "duplicate symbol"
	case ErrorUndefinedSymbol:
		return "undefined symbol"
	case ErrorOutOfMemory:
		return "out of memory"
	default:
		return "unknown"
	}
}

// Error is a located diagnostic raised by any of the three passes.
type Error struct {
	Phase   Phase
	Kind    ErrorKind
	Pos     Position
	Message string
}

// NewError creates a located diagnostic for the given phase and kind.
func NewError(phase Phase, kind ErrorKind, pos Position, message string) *Error {
	return &Error{Phase: phase, Kind: kind, Pos: pos, Message: message}
}

// Error renders the diagnostic per the fixed user-visible format:
// "<PHASE> ERROR - from line(col: C1): L1, to line(col: C2): L2: <message>"
func (e *Error) Error() string {
	return fmt.Sprintf(
		"%s ERROR - from line(col: %d): %d, to line(col: %d): %d: %s",
		e.Phase, e.Pos.StartCol, e.Pos.StartLine, e.Pos.EndCol, e.Pos.EndLine, e.Message,
	)
}

// ErrorList aggregates the diagnostics collected by the lexer or parser.
// The assembler driver still aborts on the first hard failure (the spec's
// no-recovery policy), but lexing and parsing accumulate into this list so
// everything found up to the abort point can be reported together.
type ErrorList struct {
	Errors []*Error
}

// Add appends a diagnostic to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// HasErrors reports whether any diagnostic has been recorded.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Error implements the error interface, joining every recorded diagnostic.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}
	lines := make([]string, 0, len(el.Errors))
	for _, e := range el.Errors {
		lines = append(lines, e.Error())
	}
	return strings.Join(lines, "\n")
}

// First returns the first recorded diagnostic, or nil if none was recorded.
func (el *ErrorList) First() *Error {
	if len(el.Errors) == 0 {
		return nil
	}
	return el.Errors[0]
}
