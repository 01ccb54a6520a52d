package scanner

import "github.com/npillmayer/lrtac"

// DFATokenizer is the default tokenizer for the mini language. Create one
// with NewTokenizer.
type DFATokenizer struct {
	dfa   *DFA
	input []rune
	pos   int // index of next rune to scan
	line  int
	col   int
	Error func(error) // error handler
}

var _ Tokenizer = (*DFATokenizer)(nil)

// Option configures a DFA tokenizer.
type Option func(t *DFATokenizer)

// ErrorHandler sets a handler for lexical errors.
func ErrorHandler(h func(error)) Option {
	return func(t *DFATokenizer) {
		t.SetErrorHandler(h)
	}
}

// NewTokenizer creates a tokenizer for a source text.
func NewTokenizer(source string, opts ...Option) *DFATokenizer {
	t := &DFATokenizer{
		dfa:   scannerDFA,
		input: []rune(source),
		line:  1,
		col:   1,
		Error: logError,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DFATokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DFATokenizer) NextToken() lrtac.Token {
	t.skipWhitespace()
	if t.pos >= len(t.input) {
		return lrtac.EOFToken(t.line, t.col)
	}
	start := t.pos
	state := Start
	lastAccept, lastKind := -1, lrtac.Error
	for p := start; p < len(t.input); p++ {
		if state = t.dfa.Next(state, t.input[p]); state == NoState {
			break
		}
		if kind, ok := t.dfa.Accepts(state); ok {
			lastAccept, lastKind = p+1, kind
		}
	}
	if lastAccept < 0 { // no accepting state reached: skip a single character
		r := t.input[start]
		t.Error(&LexicalError{Char: r, Line: t.line, Col: t.col})
		return t.emit(lrtac.Error, start, start+1)
	}
	if lastKind == lrtac.Identifier && IsKeyword(string(t.input[start:lastAccept])) {
		lastKind = lrtac.Keyword
	}
	return t.emit(lastKind, start, lastAccept)
}

// emit a token for input[from:to] and advance behind it. Tokens never
// contain newlines.
func (t *DFATokenizer) emit(kind lrtac.TokKind, from, to int) lrtac.Token {
	tok := lrtac.MakeToken(kind, string(t.input[from:to]), t.line, t.col)
	t.pos = to
	t.col += to - from
	tracer().Debugf("token %s", tok)
	return tok
}

func (t *DFATokenizer) skipWhitespace() {
	for t.pos < len(t.input) && isSpace(t.input[t.pos]) {
		if t.input[t.pos] == '\n' {
			t.line++
			t.col = 1
		} else {
			t.col++
		}
		t.pos++
	}
}

// isSpace reports blanks, tabs and line breaks. Other Unicode spaces are
// lexical errors.
func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
