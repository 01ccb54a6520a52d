/*
Package lr1 provides a table-driven LR(1) shift-reduce parser. Clients have
to use the tools of package lr to prepare the grammar analysis; the parser
builds ACTION and GOTO tables from it on first use and utilizes them to
create a right derivation for a given token sequence.

The parser does not build a parse tree. Instead, every shift and every
reduce is reported to a Translator, which synthesizes attributes for grammar
symbols bottom-up (syntax-directed translation). The attributes live on the
parse stack alongside the states.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := lr.NewGrammarBuilder("Assignment")
	b.LHS("A").T("id").T("=").N("E").End()   // A --> id = E
	b.LHS("E").T("id").End()                 // E --> id
	g, err := b.Grammar()

This grammar is subjected to grammar analysis and wrapped into a parser.
Tables are built lazily and may be shared by concurrent parse runs:

	p := lr1.NewParser(lr.Analysis(g))
	if p.Tables().HasConflicts { ... }  // not an LR(1) grammar

Finally parse some tokens, translating with a client-provided Translator:

	result := p.Parse(tokens, translator, false)
	if !result.Success { fmt.Println(result.Error) }

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr1

import (
	"fmt"
	"strings"
	"sync"

	"github.com/npillmayer/lrtac"
	"github.com/npillmayer/lrtac/lr"
	"github.com/npillmayer/lrtac/tac"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrtac.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrtac.lr")
}

// Names of the abstract terminals tokens are mapped to.
const (
	IdentTerminal = "id"  // identifiers
	NumTerminal   = "num" // integer and float constants
	ErrorTerminal = "err" // lexical errors; no grammar rule uses it
)

// TerminalName maps a token to the name of the grammar terminal it
// represents. Operators, delimiters and keywords represent themselves.
func TerminalName(tok lrtac.Token) string {
	switch tok.Kind {
	case lrtac.Identifier:
		return IdentTerminal
	case lrtac.IntConst, lrtac.FloatConst:
		return NumTerminal
	case lrtac.EOF:
		return lr.EOFName
	case lrtac.Error:
		return ErrorTerminal
	}
	return tok.Lexeme
}

// Translator is the semantic-action hook of the parser.
//
// Shift returns the attribute of a shifted token. Reduce synthesizes the
// attribute of a rule's left hand side from the attributes of its right hand
// side, given in left-to-right order. Accept receives the attribute of the
// start symbol and returns the final instruction list.
type Translator interface {
	Shift(tok lrtac.Token) tac.Attr
	Reduce(rule *lr.Rule, rhs []tac.Attr) tac.Attr
	Accept(final tac.Attr) []string
}

// Parser is an LR(1)-parser type. Create and initialize one with lr1.NewParser(...)
type Parser struct {
	G     *lr.Grammar
	lrgen *lr.TableGenerator
	once  sync.Once
}

// NewParser creates an LR(1) parser for an analysed grammar. Parser tables
// are created on first use.
func NewParser(ga *lr.LRAnalysis) *Parser {
	return &Parser{
		G:     ga.Grammar(),
		lrgen: lr.NewTableGenerator(ga),
	}
}

// Tables returns the table generator of the parser, with tables built.
// Tables are built exactly once; afterwards they are read-only.
func (p *Parser) Tables() *lr.TableGenerator {
	p.once.Do(func() {
		p.lrgen.CreateTables()
		tracer().Infof("LR(1) parser for %s has %d states", p.G.Name, p.lrgen.CFSM().Size())
	})
	return p.lrgen
}

// We store triples of state-IDs, grammar symbols and attributes on the parse stack.
// The bottom item carries the start state and no symbol.
type stackitem struct {
	state int
	sym   *lr.Symbol
	attr  tac.Attr
}

// Parse runs the parser over a token sequence, reporting shifts and reductions
// to a translator. If the tokens are not terminated by an end-of-input token,
// one is appended. All run state is local to the call, thus a parser may
// be used by concurrent runs as long as each run has its own translator.
//
// Syntax errors are reported as part of the result. Internal inconsistencies
// of the parser tables panic with an *InternalError.
func (p *Parser) Parse(tokens []lrtac.Token, tr Translator, verbose bool) *Result {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	lrgen := p.Tables()
	actions, gotos := lrgen.ActionTable(), lrgen.GotoTable()
	tokens = terminated(tokens)
	var trace strings.Builder
	stack := make([]stackitem, 1, 64)
	stack[0] = stackitem{state: lrgen.CFSM().S0.ID}
	ip := 0
	for {
		if ip >= len(tokens) {
			internal("input exhausted without end-of-input token")
		}
		tok := tokens[ip]
		tos := stack[len(stack)-1]
		A := p.terminal(tok)
		action := actions.Action(tos.state, A)
		tracer().Debugf("state=%d, token=%v, action=%s", tos.state, tok, action)
		if verbose {
			fmt.Fprintf(&trace, "State=%d, lookahead=%s, action=%s\n", tos.state, tok, action)
		}
		switch action.Kind {
		case lr.ErrorAction:
			err := &SyntaxError{
				Line:     tok.Line,
				Col:      tok.Col,
				Lexeme:   tok.Lexeme,
				Terminal: TerminalName(tok),
			}
			tracer().Infof("%v", err)
			trace.WriteString(err.Error())
			return &Result{Message: trace.String(), Error: err}
		case lr.Accept:
			if verbose {
				trace.WriteString("Accept.\n")
			}
			if len(stack) < 2 {
				trace.WriteString("OK(no code)")
				return &Result{Success: true, Code: []string{}, Message: trace.String()}
			}
			code := tr.Accept(stack[len(stack)-1].attr)
			trace.WriteString("OK")
			return &Result{Success: true, Code: code, Message: trace.String()}
		case lr.Shift:
			stack = append(stack, stackitem{ // push a terminal state onto stack
				state: action.Target,
				sym:   A,
				attr:  tr.Shift(tok),
			})
			ip++
		case lr.Reduce:
			rule := p.G.Rule(action.Target)
			if rule == nil {
				internal(fmt.Sprintf("reduce by unknown rule %d", action.Target))
			}
			var attr tac.Attr
			stack, attr = p.reduce(stack, rule, tr)
			state := stack[len(stack)-1].state // TOS
			next := gotos.Value(state, rule.LHS)
			if next == gotos.NullValue() {
				internal(fmt.Sprintf("no GOTO from state %d on %s", state, rule.LHS))
			}
			tracer().Debugf("reduced %v, next state = %d", rule, next)
			stack = append(stack, stackitem{ // push a non-terminal state onto stack
				state: int(next),
				sym:   rule.LHS,
				attr:  attr,
			})
		}
	}
}

// terminal finds the grammar terminal for a token. Tokens without a
// corresponding terminal map to nil, which has no ACTION entry.
func (p *Parser) terminal(tok lrtac.Token) *lr.Symbol {
	A := p.G.SymbolByName(TerminalName(tok))
	if A == nil || !A.IsTerminal() {
		return nil
	}
	return A
}

// reduce performs a reduce action for a rule
//
//    LHS --> X1 ... Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn should be represented on the stack as states
//
//    [TOS]  Sn(Xn, attr_n) ... S1(X1, attr_1)  ...
//
// The handle is popped and its attributes are handed to the translator,
// left to right.
func (p *Parser) reduce(stack []stackitem, rule *lr.Rule, tr Translator) ([]stackitem, tac.Attr) {
	tracer().Debugf("reduce %v", rule)
	n := rule.Len()
	if len(stack)-1 < n {
		internal(fmt.Sprintf("stack underflow reducing %v", rule))
	}
	handle := stack[len(stack)-n:]
	rhs := make([]tac.Attr, n)
	for i, sym := range rule.RHS() {
		if handle[i].sym != sym {
			tracer().Errorf("expected %v on stack, got %v", sym, handle[i].sym)
			internal(fmt.Sprintf("handle mismatch reducing %v", rule))
		}
		rhs[i] = handle[i].attr
	}
	stack = stack[:len(stack)-n]
	return stack, tr.Reduce(rule, rhs)
}

// --- Helpers ----------------------------------------------------------

// terminated returns tokens ending with exactly one end-of-input token,
// appending one behind the last token if necessary.
func terminated(tokens []lrtac.Token) []lrtac.Token {
	if len(tokens) > 0 && tokens[len(tokens)-1].IsEOF() {
		return tokens
	}
	line, col := 1, 1
	if len(tokens) > 0 {
		last := tokens[len(tokens)-1]
		line, col = last.Line, int(last.Span().To())
	}
	toks := make([]lrtac.Token, len(tokens), len(tokens)+1)
	copy(toks, tokens)
	return append(toks, lrtac.EOFToken(line, col))
}
