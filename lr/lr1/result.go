package lr1

import (
	"fmt"
)

// Result is the outcome of a parse run. Code is set for successful runs only.
// Message is always populated: it holds the verbose trace (if requested),
// followed by either "OK" or a syntax error message.
type Result struct {
	Success bool
	Code    []string
	Message string
	Error   *SyntaxError // set if Success is false
}

// SyntaxError describes the token at which parsing failed.
type SyntaxError struct {
	Line, Col int
	Lexeme    string
	Terminal  string // grammar terminal the token has been mapped to
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Syntax error at %d:%d near '%s'", e.Line, e.Col, e.Lexeme)
}

// InternalError is raised (as a panic) when the parser tables are inconsistent,
// e.g., when a reduce is not followed by a GOTO entry. It never denotes an
// error in the input.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string {
	return "internal parser error: " + e.Msg
}

func internal(msg string) {
	tracer().Errorf("internal parser error: %s", msg)
	panic(&InternalError{Msg: msg})
}
