package lr

import (
	"fmt"
	"html"
	"io"
	"strconv"

	"github.com/dekarrin/rosed"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/lrtac/lr/sparse"
	"github.com/npillmayer/schuko/gconf"
)

// Refer to "Compilers: Principles, Techniques, and Tools" by Aho, Lam, Sethi & Ullman,
// Section 4.7.2 Constructing LR(1) Sets of Items

// === Closure and Goto-Set Operations =======================================

// Compute the closure of an LR(1) item.
func (ga *LRAnalysis) closure(i Item) *ItemSet {
	S := newItemSet()
	S.Add(i)
	return ga.closureSet(S)
}

// Compute the closure of an item set. For every item [A -> α • B β, a] and every
// rule B -> γ, items [B -> • γ, b] are added for every b in FIRST(β a).
// Every new item is put onto a worklist, so the loop ends as soon as no more
// items are added.
func (ga *LRAnalysis) closureSet(S *ItemSet) *ItemSet {
	C := newItemSet() // add start items to closure
	C.Add(S.Items()...)
	work := C.Items()
	for len(work) > 0 {
		item := work[0]
		work = work[1:]
		B := item.PeekSymbol() // get symbol B after dot
		if B == nil || B.IsTerminal() {
			continue
		}
		lookaheads := ga.firstOfSequence(item.beta(), item.la)
		for _, r := range ga.g.FindNonTermRules(B) {
			for _, b := range lookaheads {
				ii := Item{rule: r, dot: 0, la: b}
				if !C.Contains(ii) {
					C.Add(ii)
					work = append(work, ii)
				}
			}
		}
	}
	return C
}

func (ga *LRAnalysis) gotoSet(closure *ItemSet, A *Symbol) *ItemSet {
	// for every item in closure C
	// if item in C:  N -> ... *A ...
	//     advance N -> ... A * ...
	gotoset := newItemSet()
	for _, i := range closure.Items() {
		if i.PeekSymbol() == A {
			gotoset.Add(i.Advance())
		}
	}
	return gotoset
}

func (ga *LRAnalysis) gotoSetClosure(S *ItemSet, A *Symbol) *ItemSet {
	gclosure := ga.closureSet(ga.gotoSet(S, A))
	tracer().Debugf("goto(%s) --%s--> %s", S, A, gclosure)
	return gclosure
}

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     int      // serial ID of this state
	items  *ItemSet // configuration items within this state
	Accept bool     // does this state accept on end of input?
}

// CFSM edge between 2 states, directed and labeled with a grammar symbol
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label *Symbol
}

// Items returns the items of a state, in canonical order.
func (s *CFSMState) Items() []Item {
	return s.items.Items()
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	s.items.Dump()
	tracer().Debugf("-------------------------")
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, i := range s.items.Items() {
		if i.rule.Serial == 0 && i.IsComplete() {
			return true
		}
	}
	return false
}

// symbolsAfterDot returns every symbol immediately after a dot in s, in order
// of symbol values.
func (s *CFSMState) symbolsAfterDot() []*Symbol {
	syms := newSymbolSet()
	for _, i := range s.items.Items() {
		if A := i.PeekSymbol(); A != nil {
			syms.Add(A)
		}
	}
	return asSymbols(syms.Values())
}

// We need this for the set of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(c1.ID, c2.ID)
}

// CFSM is the characteristic finite state machine for a LR grammar, i.e. the
// canonical collection of LR(1) item sets together with their goto transitions.
// Will be constructed by a TableGenerator.
// Clients normally do not use it directly. Nevertheless, there are some methods
// defined on it, e.g, for debugging purposes.
type CFSM struct {
	g       *Grammar                // this CFSM is for Grammar g
	states  *treeset.Set            // all the states, ordered by ID
	byID    []*CFSMState            // states indexed by ID
	buckets map[string][]*CFSMState // states by hash of their item sets
	edges   *arraylist.List         // all the edges between states
	trans   map[[2]int]*CFSMState   // (state ID, symbol value) -> target
	S0      *CFSMState              // start state
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *Grammar) *CFSM {
	return &CFSM{
		g:       g,
		states:  treeset.NewWith(stateComparator),
		buckets: make(map[string][]*CFSMState),
		edges:   arraylist.New(),
		trans:   make(map[[2]int]*CFSMState),
	}
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return c.states.Size()
}

// State returns the state with a given ID, or nil.
func (c *CFSM) State(id int) *CFSMState {
	if id < 0 || id >= len(c.byID) {
		return nil
	}
	return c.byID[id]
}

// Add a state to the CFSM. Checks first if an equal state is present; the
// flag tells if a new state has been created.
func (c *CFSM) addState(iset *ItemSet) (*CFSMState, bool) {
	key := iset.key()
	for _, s := range c.buckets[key] {
		if s.items.Equals(iset) {
			return s, false
		}
	}
	s := &CFSMState{ID: len(c.byID), items: iset}
	s.Accept = s.containsCompletedStartRule()
	c.byID = append(c.byID, s)
	c.buckets[key] = append(c.buckets[key], s)
	c.states.Add(s)
	return s, true
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym *Symbol) *cfsmEdge {
	e := &cfsmEdge{from: s0, to: s1, label: sym}
	c.edges.Add(e)
	c.trans[[2]int{s0.ID, sym.Value}] = s1
	return e
}

// target returns the state reached from s over an edge labeled A, or nil.
func (c *CFSM) target(s *CFSMState, A *Symbol) *CFSMState {
	return c.trans[[2]int{s.ID, A.Value}]
}

// Construct the canonical collection of LR(1) item sets. States are numbered
// in order of discovery: every state is visited in order of its ID, and its
// successors are computed in order of symbol values. This makes state
// numbering deterministic.
func (lrgen *TableGenerator) buildCFSM() *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	cfsm := emptyCFSM(lrgen.g)
	closure0 := lrgen.ga.closure(StartItem(lrgen.g))
	cfsm.S0, _ = cfsm.addState(closure0)
	cfsm.S0.Dump()
	for k := 0; k < len(cfsm.byID); k++ { // byID grows while we iterate
		s := cfsm.byID[k]
		for _, A := range s.symbolsAfterDot() {
			gotoset := lrgen.ga.gotoSetClosure(s.items, A)
			snew, isNew := cfsm.addState(gotoset)
			if isNew {
				snew.Dump()
			}
			cfsm.addEdge(s, snew, A)
		}
	}
	tracer().Infof("CFSM for %s has %d states", lrgen.g.Name, cfsm.Size())
	return cfsm
}

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) CFSM2GraphViz(w io.Writer) error {
	var err error
	write := func(format string, args ...interface{}) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}
	write(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.byID {
		write("s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s.items))
	}
	it := c.edges.Iterator()
	for it.Next() {
		edge := it.Value().(*cfsmEdge)
		write("s%03d -> s%03d [label=%q]\n", edge.from.ID, edge.to.ID, edge.label.Name)
	}
	write("}\n")
	return err
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(S *ItemSet) string {
	var b []byte
	for k, i := range S.Items() {
		if k > 0 {
			b = append(b, "\\l"...)
		}
		for _, r := range i.String() {
			switch r {
			case '{', '}', '<', '>', '|', '"', '\\':
				b = append(b, '\\')
			}
			b = append(b, string(r)...)
		}
	}
	return string(append(b, "\\l"...))
}

// === Tables ================================================================

// AcceptAction is the ACTION table entry for accepting the input. Shift entries
// are encoded as the (positive) target state, reduce entries as the negative
// rule serial. As rule 0 is never reduced, 0 is free to denote accept.
const AcceptAction int32 = 0

// TableGenerator is a generator object to construct LR parser tables.
// Clients usually create a Grammar G, then a LRAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and parser tables for an LR(1)-parser recognizing grammar G.
type TableGenerator struct {
	g            *Grammar
	ga           *LRAnalysis
	dfa          *CFSM
	gototable    *Table
	actiontable  *Table
	HasConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *LRAnalysis) *TableGenerator {
	lrgen := &TableGenerator{}
	lrgen.g = ga.Grammar()
	lrgen.ga = ga
	return lrgen
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Usually clients call lrgen.CreateTables() beforehand, but it is possible
// to call lrgen.CFSM() directly. The CFSM will be created, if it has not
// been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = lrgen.buildCFSM()
	}
	return lrgen.dfa
}

// GotoTable returns the GOTO table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously.
func (lrgen *TableGenerator) GotoTable() *Table {
	if lrgen.gototable == nil {
		tracer().P("lr", "gen").Errorf("tables not yet initialized")
	}
	return lrgen.gototable
}

// ActionTable returns the ACTION table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously.
func (lrgen *TableGenerator) ActionTable() *Table {
	if lrgen.actiontable == nil {
		tracer().P("lr", "gen").Errorf("tables not yet initialized")
	}
	return lrgen.actiontable
}

// CreateTables creates the necessary data structures for an LR(1) parser.
// Tables are built once; subsequent calls do nothing.
func (lrgen *TableGenerator) CreateTables() {
	if lrgen.actiontable != nil && lrgen.gototable != nil {
		return
	}
	lrgen.CFSM()
	lrgen.actiontable, lrgen.gototable, lrgen.HasConflicts = lrgen.buildTables()
}

// States returns all states of the CFSM, ordered by ID.
func (lrgen *TableGenerator) States() []*CFSMState {
	c := lrgen.CFSM()
	states := make([]*CFSMState, 0, c.Size())
	it := c.states.Iterator()
	for it.Next() {
		states = append(states, it.Value().(*CFSMState))
	}
	return states
}

// For building the tables we iterate over all the states of the CFSM.
// An inner loop iterates over all the LR(1) items within a CFSM-state.
// If an item has a terminal immediately after the dot, we produce a shift
// entry to the goto-target; for a non-terminal we produce a GOTO entry.
// If an item's dot is behind the complete RHS of a rule, we produce a
// reduce-entry for the item's lookahead, or an accept-entry if the rule is
// the start rule.
//
// Entries are never doubled: a later entry overwrites an earlier one. Overwriting
// a different value is a conflict, which we trace and report by flag.
// If configuration flag "panic-on-conflict" is set, a conflict panics instead.
func (lrgen *TableGenerator) buildTables() (*Table, *Table, bool) {
	statescnt := lrgen.dfa.Size()
	symcnt := lrgen.g.SymbolCount()
	tracer().Infof("ACTION and GOTO tables of size %d x %d", statescnt, symcnt)
	actions := newTable("ACTION", statescnt, symcnt)
	gotos := newTable("GOTO", statescnt, symcnt)
	hasConflicts := false
	set := func(state *CFSMState, A *Symbol, val int32) {
		old := actions.set(state.ID, A, val)
		if old != actions.NullValue() && old != val {
			hasConflicts = true
			tracer().Errorf("conflict in state %d on %s: %s replaced by %s", state.ID, A,
				decode(old, actions.NullValue()), decode(val, actions.NullValue()))
			if gconf.GetBool("panic-on-conflict") {
				panic(fmt.Sprintf("LR(1) conflict in state %d on %s", state.ID, A))
			}
		}
	}
	for _, state := range lrgen.dfa.byID {
		for _, i := range state.items.Items() {
			if A := i.PeekSymbol(); A != nil {
				target := lrgen.dfa.target(state, A)
				if target == nil {
					panic(fmt.Sprintf("CFSM has no transition from state %d on %s", state.ID, A))
				}
				if A.IsTerminal() {
					set(state, A, int32(target.ID))
				} else {
					gotos.set(state.ID, A, int32(target.ID))
				}
			} else if i.rule.Serial == 0 {
				set(state, lrgen.g.EOF(), AcceptAction)
			} else {
				set(state, i.la, -int32(i.rule.Serial))
			}
		}
	}
	tracer().Infof("ACTION table has %d entries, GOTO table has %d entries",
		actions.ValueCount(), gotos.ValueCount())
	return actions, gotos, hasConflicts
}

// Table is a parser table, i.e. a sparse matrix indexed by state and symbol.
type Table struct {
	name   string
	matrix *sparse.IntMatrix
}

func newTable(name string, states, symbols int) *Table {
	return &Table{
		name:   name,
		matrix: sparse.NewIntMatrix(states, symbols, sparse.DefaultNullValue),
	}
}

func (t *Table) set(state int, A *Symbol, val int32) int32 {
	return t.matrix.Set(state, A.Value, val)
}

// NullValue returns the value for empty table entries.
func (t *Table) NullValue() int32 {
	return t.matrix.NullValue()
}

// Value returns the raw table entry for (state, A), or NullValue. A nil symbol
// is valid and yields NullValue.
func (t *Table) Value(state int, A *Symbol) int32 {
	if A == nil || state < 0 || state >= t.matrix.M() {
		return t.matrix.NullValue()
	}
	return t.matrix.Value(state, A.Value)
}

// ValueCount returns the number of non-empty table entries.
func (t *Table) ValueCount() int {
	return t.matrix.ValueCount()
}

// Overwrites returns how often an entry has been replaced by a different value
// while filling the table.
func (t *Table) Overwrites() int {
	return t.matrix.Overwrites()
}

// Action returns the decoded ACTION table entry for (state, A).
func (t *Table) Action(state int, A *Symbol) Action {
	return decode(t.Value(state, A), t.NullValue())
}

// ActionKind is the kind of an ACTION table entry.
type ActionKind int8

// Kinds of parser actions
const (
	ErrorAction ActionKind = iota
	Shift
	Reduce
	Accept
)

// Action is a decoded ACTION table entry. For shift actions, Target is the
// state to shift to, for reduce actions it is the serial of the rule to reduce.
type Action struct {
	Kind   ActionKind
	Target int
}

func decode(v int32, null int32) Action {
	switch {
	case v == null:
		return Action{Kind: ErrorAction}
	case v == AcceptAction:
		return Action{Kind: Accept}
	case v > 0:
		return Action{Kind: Shift, Target: int(v)}
	}
	return Action{Kind: Reduce, Target: int(-v)}
}

func (a Action) String() string {
	switch a.Kind {
	case Shift:
		return "shift " + strconv.Itoa(a.Target)
	case Reduce:
		return "reduce " + strconv.Itoa(a.Target)
	case Accept:
		return "accept"
	}
	return "error"
}

// short form for table cells
func (a Action) cell() string {
	switch a.Kind {
	case Shift:
		return "s" + strconv.Itoa(a.Target)
	case Reduce:
		return "r" + strconv.Itoa(a.Target)
	case Accept:
		return "acc"
	}
	return ""
}

// === Table Export ==========================================================

// TablesString renders ACTION and GOTO tables as a text table, one row per state.
func (lrgen *TableGenerator) TablesString() string {
	lrgen.CreateTables()
	terms, nonterms := lrgen.g.Terminals(), lrgen.tableNonTerminals()
	header := []string{"state"}
	for _, A := range terms {
		header = append(header, A.Name)
	}
	for _, A := range nonterms {
		header = append(header, A.Name)
	}
	data := [][]string{header}
	for _, state := range lrgen.States() {
		row := []string{strconv.Itoa(state.ID)}
		row = append(row, lrgen.actiontable.cells(state.ID, terms, actionCell)...)
		row = append(row, lrgen.gototable.cells(state.ID, nonterms, gotoCell)...)
		data = append(data, row)
	}
	return rosed.Edit("").
		InsertTableOpts(0, data, 6*len(header)+8, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// non-terminals without S'
func (lrgen *TableGenerator) tableNonTerminals() []*Symbol {
	var N []*Symbol
	lrgen.g.EachNonTerminal(func(A *Symbol) {
		if A != lrgen.g.Start() {
			N = append(N, A)
		}
	})
	return N
}

// cells renders one state's row for the columns symvec. Empty entries
// render as "".
func (t *Table) cells(state int, symvec []*Symbol, cell func(v, null int32) string) []string {
	entries := make(map[int]int32)
	t.matrix.Row(state, func(j int, v int32) {
		entries[j] = v
	})
	row := make([]string, len(symvec))
	for k, A := range symvec {
		if v, ok := entries[A.Value]; ok {
			row[k] = cell(v, t.NullValue())
		}
	}
	return row
}

func actionCell(v, null int32) string {
	return decode(v, null).cell()
}

func gotoCell(v, _ int32) string {
	return strconv.Itoa(int(v))
}

// GotoTableAsHTML exports a GOTO-table in HTML-format.
func GotoTableAsHTML(lrgen *TableGenerator, w io.Writer) {
	if lrgen.gototable == nil {
		tracer().Errorf("GOTO table not yet created, cannot export to HTML")
		return
	}
	parserTableAsHTML(lrgen, lrgen.tableNonTerminals(), lrgen.gototable, w, gotoCell)
}

// ActionTableAsHTML exports the LR(1) ACTION-table in HTML-format.
func ActionTableAsHTML(lrgen *TableGenerator, w io.Writer) {
	if lrgen.actiontable == nil {
		tracer().Errorf("ACTION table not yet created, cannot export to HTML")
		return
	}
	parserTableAsHTML(lrgen, lrgen.g.Terminals(), lrgen.actiontable, w, actionCell)
}

func parserTableAsHTML(lrgen *TableGenerator, symvec []*Symbol, table *Table, w io.Writer,
	cell func(v, null int32) string) {
	//
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("%s table of size = %d<p>", table.name, table.ValueCount()))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	for _, A := range symvec {
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", html.EscapeString(A.Name)))
	}
	io.WriteString(w, "</tr>\n")
	for _, state := range lrgen.States() {
		io.WriteString(w, fmt.Sprintf("<tr><td>state %d</td>\n", state.ID))
		for _, td := range table.cells(state.ID, symvec, cell) {
			if td == "" {
				td = "&nbsp;"
			}
			io.WriteString(w, "<td>")
			io.WriteString(w, td)
			io.WriteString(w, "</td>\n")
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}
