package lr

import (
	"errors"
	"fmt"
	"strings"
)

// EOFName is the name of the end-of-input terminal of every grammar.
const EOFName = "$"

// Symbol is a grammar symbol, either a terminal or a non-terminal.
// Symbols are unique within a grammar, i.e. they may be compared by pointer.
// Value is a serial number, assigned in order of first appearance; it is used
// as a column index for parser tables.
type Symbol struct {
	Name     string
	Value    int
	terminal bool
}

// IsTerminal returns true if this symbol represents a terminal.
func (A *Symbol) IsTerminal() bool {
	return A.terminal
}

func (A *Symbol) String() string {
	return A.Name
}

// Rule is a type for rules of a grammar. Rules cannot be shared between grammars.
type Rule struct {
	Serial int       // order number of this rule within a grammar
	LHS    *Symbol   // symbol of left hand side
	rhs    []*Symbol // right hand side symbols
}

// RHS gets the right hand side of a rule as a shallow copy. Clients should treat it
// as read-only.
func (r *Rule) RHS() []*Symbol {
	dup := make([]*Symbol, len(r.rhs))
	copy(dup, r.rhs)
	return dup
}

// Len returns the number of right hand side symbols.
func (r *Rule) Len() int {
	return len(r.rhs)
}

func (r *Rule) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d: %s ->", r.Serial, r.LHS.Name))
	for _, A := range r.rhs {
		b.WriteByte(' ')
		b.WriteString(A.Name)
	}
	return b.String()
}

// Grammar is a type for a context-free grammar. Grammars are created by a
// GrammarBuilder and are immutable afterwards.
//
// Rule 0 of every grammar is the augmented start rule S' -> S, where S is the
// start symbol of the grammar.
type Grammar struct {
	Name    string
	rules   []*Rule
	symbols []*Symbol // all symbols, index = Symbol.Value
	byName  map[string]*Symbol
	eof     *Symbol
}

// Size returns the number of rules of a grammar, including the start rule.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rule gets a grammar rule by serial number.
func (g *Grammar) Rule(no int) *Rule {
	if no < 0 || no >= len(g.rules) {
		return nil
	}
	return g.rules[no]
}

// Start returns the augmented start symbol S'.
func (g *Grammar) Start() *Symbol {
	return g.rules[0].LHS
}

// EOF returns the end-of-input terminal.
func (g *Grammar) EOF() *Symbol {
	return g.eof
}

// SymbolByName gets a symbol for a given name, or nil if no such symbol exists.
func (g *Grammar) SymbolByName(name string) *Symbol {
	return g.byName[name]
}

// SymbolCount returns the number of symbols, terminals and non-terminals.
func (g *Grammar) SymbolCount() int {
	return len(g.symbols)
}

// EachSymbol iterates over all symbols of the grammar, in order of their values.
func (g *Grammar) EachSymbol(f func(A *Symbol)) {
	for _, A := range g.symbols {
		f(A)
	}
}

// EachTerminal iterates over all terminals of the grammar, including EOF.
func (g *Grammar) EachTerminal(f func(A *Symbol)) {
	for _, A := range g.symbols {
		if A.IsTerminal() {
			f(A)
		}
	}
}

// EachNonTerminal iterates over all non-terminals of the grammar.
func (g *Grammar) EachNonTerminal(f func(A *Symbol)) {
	for _, A := range g.symbols {
		if !A.IsTerminal() {
			f(A)
		}
	}
}

// Terminals returns the terminals of the grammar, in order of their values.
func (g *Grammar) Terminals() []*Symbol {
	var T []*Symbol
	g.EachTerminal(func(A *Symbol) { T = append(T, A) })
	return T
}

// NonTerminals returns the non-terminals of the grammar, in order of their values.
func (g *Grammar) NonTerminals() []*Symbol {
	var N []*Symbol
	g.EachNonTerminal(func(A *Symbol) { N = append(N, A) })
	return N
}

// FindNonTermRules returns all rules with left hand side A, in serial order.
func (g *Grammar) FindNonTermRules(A *Symbol) []*Rule {
	var R []*Rule
	for _, r := range g.rules {
		if r.LHS == A {
			R = append(R, r)
		}
	}
	return R
}

// Dump is a debugging helper, tracing all rules at level Debug.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%s", r)
	}
	tracer().Debugf("-------------------------------------------------------")
}

func (g *Grammar) String() string {
	var b strings.Builder
	for _, r := range g.rules {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// --- Grammar Builder -------------------------------------------------------

// GrammarBuilder is a builder type for grammars. Create with NewGrammarBuilder.
//
//    b := lr.NewGrammarBuilder("G")
//    b.LHS("E").N("E").T("+").N("T").End()
//    b.LHS("E").N("T").End()
//    b.LHS("T").T("id").End()
//    g, err := b.Grammar()
//
// The first left hand side symbol is the start symbol of the grammar, unless
// a different one is set with StartSymbol.
type GrammarBuilder struct {
	name     string
	start    string
	g        *Grammar
	rule     *Rule
	declared map[*Symbol]bool // declared as terminal by T()
	err      error
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	g := &Grammar{
		Name:   gname,
		byName: make(map[string]*Symbol),
	}
	// rule 0 and S' are fixed up when the grammar is completed
	g.rules = append(g.rules, &Rule{Serial: 0})
	return &GrammarBuilder{
		name:     gname,
		g:        g,
		declared: make(map[*Symbol]bool),
	}
}

// RuleBuilder is a builder type for rules; see GrammarBuilder.
type RuleBuilder struct {
	gb   *GrammarBuilder
	rule *Rule
}

// LHS starts a rule given the left hand side symbol (non-terminal).
func (gb *GrammarBuilder) LHS(s string) *RuleBuilder {
	if gb.rule != nil {
		gb.fail(fmt.Errorf("rule %s not terminated by End()", gb.rule))
	}
	A := gb.symbol(s)
	if gb.start == "" {
		gb.start = s
	}
	gb.rule = &Rule{Serial: len(gb.g.rules), LHS: A}
	return &RuleBuilder{gb: gb, rule: gb.rule}
}

// StartSymbol sets the start symbol of the grammar.
func (gb *GrammarBuilder) StartSymbol(s string) *GrammarBuilder {
	gb.start = s
	return gb
}

func (gb *GrammarBuilder) symbol(name string) *Symbol {
	if A, ok := gb.g.byName[name]; ok {
		return A
	}
	A := &Symbol{Name: name, Value: len(gb.g.symbols)}
	gb.g.symbols = append(gb.g.symbols, A)
	gb.g.byName[name] = A
	return A
}

func (gb *GrammarBuilder) fail(err error) {
	if gb.err == nil {
		gb.err = err
	}
}

// N appends a non-terminal to the builder.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	A := rb.gb.symbol(s)
	rb.rule.rhs = append(rb.rule.rhs, A)
	return rb
}

// T appends a terminal to the builder.
func (rb *RuleBuilder) T(s string) *RuleBuilder {
	A := rb.gb.symbol(s)
	rb.gb.declared[A] = true
	rb.rule.rhs = append(rb.rule.rhs, A)
	return rb
}

// End a rule.
func (rb *RuleBuilder) End() *Rule {
	gb := rb.gb
	if len(rb.rule.rhs) == 0 {
		gb.fail(fmt.Errorf("rule for %s has an empty right hand side; epsilon rules are not supported",
			rb.rule.LHS))
	}
	gb.g.rules = append(gb.g.rules, rb.rule)
	gb.rule = nil
	return rb.rule
}

// Grammar returns the (completed) grammar. It checks the grammar for
// consistency: every symbol used as a non-terminal has to have at least one
// rule, and no symbol may be both a declared terminal and a left hand side.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.err != nil {
		return nil, gb.err
	}
	if gb.rule != nil {
		return nil, fmt.Errorf("rule %s not terminated by End()", gb.rule)
	}
	g := gb.g
	if len(g.rules) == 1 {
		return nil, errors.New("grammar has no rules")
	}
	if _, exists := g.byName[EOFName]; exists {
		return nil, fmt.Errorf("symbol name %q is reserved for end of input", EOFName)
	}
	S, ok := g.byName[gb.start]
	if !ok {
		return nil, fmt.Errorf("start symbol %s does not occur in any rule", gb.start)
	}
	if _, exists := g.byName[gb.start+"'"]; exists {
		return nil, fmt.Errorf("symbol name %s' is reserved for the augmented start symbol", gb.start)
	}
	g.rules[0].LHS = gb.symbol(gb.start + "'")
	g.rules[0].rhs = []*Symbol{S}
	lhs := make(map[*Symbol]bool)
	for _, r := range g.rules {
		lhs[r.LHS] = true
	}
	if !lhs[S] {
		return nil, fmt.Errorf("start symbol %s has no rule", S)
	}
	for _, A := range g.symbols {
		if lhs[A] {
			if gb.declared[A] {
				return nil, fmt.Errorf("symbol %s is used as a terminal and as a left hand side", A)
			}
			continue
		}
		if !gb.declared[A] {
			return nil, fmt.Errorf("non-terminal %s has no rule", A)
		}
		A.terminal = true
	}
	g.eof = gb.symbol(EOFName)
	g.eof.terminal = true
	gb.g = nil // builder is spent
	return g, nil
}
