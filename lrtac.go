package lrtac

import "fmt"

// --- Token kinds -------------------------------------------------------------

// TokKind is a category type for a Token, as assigned by a scanner.
type TokKind int

// Token kinds produced by the scanners of this module.
const (
	Keyword TokKind = iota
	Identifier
	IntConst
	FloatConst
	Operator
	Delimiter
	Error
	EOF
)

var kindNames = [...]string{
	"KEYWORD", "IDENTIFIER", "INT_CONST", "FLOAT_CONST",
	"OPERATOR", "DELIMITER", "ERROR", "EOF",
}

func (k TokKind) String() string {
	if k < Keyword || k > EOF {
		return fmt.Sprintf("TokKind(%d)", int(k))
	}
	return kindNames[k]
}

// EOFLexeme is the lexeme of end-of-input tokens.
const EOFLexeme = "$"

// --- Tokens ----------------------------------------------------------------

// Token represents an input token. Tokens are produced by a scanner and
// are immutable values.
//
// An example would be a token for a floating point number:
//
//    Kind   = FloatConst   // category of the token
//    Lexeme = "3.1416"     // lexeme as it appeared in the input
//    Line   = 2            // 1-based line of the first character
//    Col    = 7            // 1-based column of the first character
//
type Token struct {
	Kind   TokKind
	Lexeme string
	Line   int
	Col    int
}

// MakeToken creates a token.
func MakeToken(kind TokKind, lexeme string, line, col int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Line: line, Col: col}
}

// EOFToken creates an end-of-input token at a given position.
func EOFToken(line, col int) Token {
	return Token{Kind: EOF, Lexeme: EOFLexeme, Line: line, Col: col}
}

// IsEOF is a predicate: is t an end-of-input token?
func (t Token) IsEOF() bool {
	return t.Kind == EOF
}

// Span returns the columns covered by the token's lexeme within its line.
func (t Token) Span() Span {
	from := uint64(t.Col)
	return Span{from, from + uint64(len([]rune(t.Lexeme)))}
}

func (t Token) String() string {
	return fmt.Sprintf("(%s,%s) @%d:%d", t.Lexeme, t.Kind, t.Line, t.Col)
}

// --- Spans ------------------------------------------------------------

// Span is a run of input positions: a start position and the position just
// behind the end.
type Span [2]uint64

// To returns the position just behind the span.
func (s Span) To() uint64 {
	return s[1]
}
