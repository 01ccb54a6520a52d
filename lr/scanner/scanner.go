/*
Package scanner defines an interface for scanners to be used with parsers of package lr,
and implements a tokenizer for the mini language, driven by a hand-rolled DFA.

The DFA recognizes identifiers, integer and float constants, operators of
length one or two, and delimiters. Scanning follows the maximal-munch rule:
the longest prefix accepted by the DFA becomes the next token. Keywords are
scanned as identifiers and re-classified by a lookup in a fixed keyword set.

Characters which cannot start any token yield an error token containing the
single offending character; the tokenizer continues after it.

A second implementation, backed by lexmachine, lives in sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package scanner

import (
	"fmt"

	"github.com/npillmayer/lrtac"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrtac.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lrtac.scanner")
}

// Tokenizer is a scanner interface. After the end of input has been reached,
// NextToken returns EOF tokens.
type Tokenizer interface {
	NextToken() lrtac.Token
	SetErrorHandler(func(error))
}

// Keywords of the mini language. Keywords are scanned as identifiers first.
var keywords = map[string]bool{
	"int": true, "float": true, "char": true, "if": true, "else": true,
	"while": true, "for": true, "return": true, "void": true, "double": true,
	"main": true, "do": true, "include": true,
}

// IsKeyword is a predicate: is s a keyword of the mini language?
func IsKeyword(s string) bool {
	return keywords[s]
}

// Operator characters. Every operator starts with one of OperatorStart and may
// be followed by at most one of OperatorCompound.
const (
	OperatorStart    = "+-*/=!<>|&%"
	OperatorCompound = "=<>|&+-"
	Delimiters       = "()[]{};,"
)

// LexicalError is reported to a tokenizer's error handler for every character
// which cannot start a token.
type LexicalError struct {
	Char rune
	Line int
	Col  int
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("illegal character %q at %d:%d", e.Char, e.Line, e.Col)
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// TokenizeWith reads all tokens from a tokenizer, up to and including the
// first EOF token. The result always ends with exactly one EOF token.
func TokenizeWith(t Tokenizer) []lrtac.Token {
	var tokens []lrtac.Token
	for {
		tok := t.NextToken()
		tokens = append(tokens, tok)
		if tok.IsEOF() {
			return tokens
		}
	}
}

// Tokenize splits a source text into tokens, using the DFA tokenizer.
// Lexical errors are contained in the result as tokens of kind lrtac.Error.
func Tokenize(source string) []lrtac.Token {
	return TokenizeWith(NewTokenizer(source))
}
