/*
Package lang implements the mini language: its fixed grammar, the
syntax-directed translation into three-address code, and a facade for
clients.

The language consists of blocks of statements. A statement is an assignment
`id = E;`, an `if (C) { B } else { B }` or a `for (A C; A1) { B }` loop.
Expressions use + - * / over identifiers, numbers and parentheses.
Conditions compare two expressions with one of < > <= >= != ==.

Usage

	tokens := lang.Tokenize("for(i=1;i<10;i=i+1){a=1;}")
	result := lang.ParseAndGenerate(tokens, false)
	if result.Success {
	    for _, instr := range result.Code { fmt.Println(instr) }
	}

Temporaries (t1, t2, ...) and labels (L1, L2, ...) are numbered per
generator. ParseAndGenerate uses a fresh generator for every run, so numbering
starts at 1. Clients wanting to continue numbering across runs use
ParseWithGenerator.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package lang

import (
	"sync"

	"github.com/npillmayer/lrtac"
	"github.com/npillmayer/lrtac/lr"
	"github.com/npillmayer/lrtac/lr/lr1"
	"github.com/npillmayer/lrtac/lr/scanner"
	"github.com/npillmayer/lrtac/runtime"
	"github.com/npillmayer/lrtac/tac"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrtac.lang'.
func tracer() tracing.Trace {
	return tracing.Select("lrtac.lang")
}

// Tokenize splits source text into tokens, terminated by exactly one
// end-of-input token.
func Tokenize(source string) []lrtac.Token {
	return scanner.Tokenize(source)
}

// Parser parses token sequences of the language and translates them to TAC.
// A parser may be shared by concurrent parse runs.
type Parser struct {
	p *lr1.Parser
}

// NewParser creates a parser for the language. Its tables are built on first use.
func NewParser() *Parser {
	return &Parser{p: lr1.NewParser(analysis())}
}

var defaultParser struct {
	once sync.Once
	p    *Parser
}

// DefaultParser returns a parser shared by all clients of this package.
func DefaultParser() *Parser {
	defaultParser.once.Do(func() {
		defaultParser.p = NewParser()
	})
	return defaultParser.p
}

// Tables returns the parser's table generator, with tables built.
func (p *Parser) Tables() *lr.TableGenerator {
	return p.p.Tables()
}

// Result is the outcome of a parse run. Symbols holds the names the
// translated program defines; it is populated for failed runs as far as
// translation got.
type Result struct {
	lr1.Result
	Symbols *runtime.SymbolTable
}

// ParseAndGenerate parses tokens and translates them to TAC, using a fresh
// TAC generator. With verbose set, the result's message holds a trace line
// for every parser step.
func (p *Parser) ParseAndGenerate(tokens []lrtac.Token, verbose bool) *Result {
	return p.ParseWithGenerator(tokens, tac.NewGenerator(), verbose)
}

// ParseWithGenerator parses tokens and translates them to TAC, allocating
// temporaries and labels from gen. Numbering continues where previous runs
// with gen stopped. The result's code holds the instructions of this run only.
func (p *Parser) ParseWithGenerator(tokens []lrtac.Token, gen *tac.Generator, verbose bool) *Result {
	syms := runtime.NewSymbolTable()
	r := p.p.Parse(tokens, NewScheme(gen, syms), verbose)
	if r.Success {
		tracer().Infof("translated %d tokens into %d instructions", len(tokens), len(r.Code))
	}
	return &Result{Result: *r, Symbols: syms}
}

// ParseAndGenerate parses tokens with the default parser, see
// Parser.ParseAndGenerate.
func ParseAndGenerate(tokens []lrtac.Token, verbose bool) *Result {
	return DefaultParser().ParseAndGenerate(tokens, verbose)
}

// Compile tokenizes and translates source text with the default parser.
func Compile(source string, verbose bool) *Result {
	return ParseAndGenerate(Tokenize(source), verbose)
}
