package lexmach

import (
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/lrtac"
	"github.com/npillmayer/lrtac/lr/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'lrtac.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lrtac.scanner")
}

// LMAdapter holds a compiled lexmachine lexer for the mini language.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter registers the token patterns and compiles them into a DFA.
// Compilation errors are returned unchanged.
func NewLMAdapter() (*LMAdapter, error) {
	lx := lexmachine.NewLexer()
	adapter := &LMAdapter{Lexer: lx}
	adapter.Lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	adapter.Lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), MakeToken(lrtac.Identifier))
	adapter.Lexer.Add([]byte(`[0-9]+`), MakeToken(lrtac.IntConst))
	adapter.Lexer.Add([]byte(`[0-9]*\.[0-9]+`), MakeToken(lrtac.FloatConst))
	for _, lit := range operators() {
		adapter.Lexer.Add([]byte(literal(lit)), MakeToken(lrtac.Operator))
	}
	for _, lit := range strings.Split(scanner.Delimiters, "") {
		adapter.Lexer.Add([]byte(literal(lit)), MakeToken(lrtac.Delimiter))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("lexmachine: cannot compile patterns: %v", err)
		return nil, err
	}
	return adapter, nil
}

// all operators of length one or two
func operators() []string {
	var ops []string
	for _, c1 := range scanner.OperatorStart {
		ops = append(ops, string(c1))
		for _, c2 := range scanner.OperatorCompound {
			ops = append(ops, string(c1)+string(c2))
		}
	}
	return ops
}

// literal escapes every character of lit for use in a lexmachine pattern.
func literal(lit string) string {
	return "\\" + strings.Join(strings.Split(lit, ""), "\\")
}

// Scanner starts a tokenizer on input.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &LMScanner{scanner: s, input: []byte(input), Error: logError, line: 1, col: 1}, nil
}

// LMScanner is a scanner.Tokenizer on top of a lexmachine scanner.
type LMScanner struct {
	scanner   *lexmachine.Scanner
	input     []byte
	Error     func(error)
	line, col int // position behind the last token
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler installs h as the receiver of lexical errors. A nil
// handler restores logging.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	lms.Error = h
	if h == nil {
		lms.Error = logError
	}
}

func logError(e error) {
	tracer().Errorf("lexmachine: %v", e)
}

// NextToken returns the next token of the input, or EOF.
//
// Unmatched input is skipped one byte at a time, each byte yielding a token
// of kind lrtac.Error. Keywords are re-classified the same way as by the
// DFA tokenizer.
func (lms *LMScanner) NextToken() lrtac.Token {
	tok, err, eof := lms.scanner.Next()
	if err != nil {
		ui, is := err.(*machines.UnconsumedInput)
		if !is {
			lms.Error(err)
			return lrtac.EOFToken(lms.line, lms.col)
		}
		ch, size := utf8.DecodeRune(lms.input[ui.StartTC:])
		lms.scanner.TC = ui.StartTC + size
		lms.Error(&scanner.LexicalError{Char: ch, Line: ui.StartLine, Col: ui.StartColumn})
		return lms.token(lrtac.Error, string(ch), ui.StartLine, ui.StartColumn)
	}
	if eof {
		return lrtac.EOFToken(lms.line, lms.col)
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("lexmachine token %d %q", token.Type, token.Lexeme)
	kind := lrtac.TokKind(token.Type)
	lexeme := string(token.Lexeme)
	if kind == lrtac.Identifier && scanner.IsKeyword(lexeme) {
		kind = lrtac.Keyword
	}
	return lms.token(kind, lexeme, token.StartLine, token.StartColumn)
}

func (lms *LMScanner) token(kind lrtac.TokKind, lexeme string, line, col int) lrtac.Token {
	lms.line, lms.col = line, col+len(lexeme)
	return lrtac.MakeToken(kind, lexeme, line, col)
}

// --- Actions ----------------------------------------------------------------

// Skip drops a match, e.g. whitespace.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken returns an action emitting matches as tokens of kind.
func MakeToken(kind lrtac.TokKind) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(kind), string(m.Bytes), m), nil
	}
}
