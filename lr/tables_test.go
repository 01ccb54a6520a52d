package lr

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

// The LR(1) example grammar of the dragon book (Fig. 4.41), which has
// 10 canonical LR(1) item sets.
//
//     S ➞ C C
//     C ➞ c C  |  d
//
func makeCCGrammar(t *testing.T) *LRAnalysis {
	b := NewGrammarBuilder("CC")
	b.LHS("S").N("C").N("C").End()
	b.LHS("C").T("c").N("C").End()
	b.LHS("C").T("d").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return Analysis(g)
}

func TestClosure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtac.lr")
	defer teardown()
	//
	ga := makeCCGrammar(t)
	C := ga.closure(StartItem(ga.Grammar()))
	var items []string
	for _, i := range C.Items() {
		items = append(items, i.String())
	}
	assert.Equal(t, []string{
		"S' -> • S, $",
		"S -> • C C, $",
		"C -> • c C, c",
		"C -> • c C, d",
		"C -> • d, c",
		"C -> • d, d",
	}, items)
}

func TestGotoSet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtac.lr")
	defer teardown()
	//
	ga := makeCCGrammar(t)
	g := ga.Grammar()
	I0 := ga.closure(StartItem(g))
	I := ga.gotoSetClosure(I0, g.SymbolByName("C"))
	assert.Equal(t, "{ S -> C • C, $, C -> • c C, $, C -> • d, $ }", I.String())
	J := ga.gotoSetClosure(I0, g.SymbolByName("$"))
	assert.True(t, J.Empty())
}

func TestItemSetEquality(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtac.lr")
	defer teardown()
	//
	ga := makeCCGrammar(t)
	g := ga.Grammar()
	r := g.Rule(2)
	c, d := g.SymbolByName("c"), g.SymbolByName("d")
	S1, S2 := newItemSet(), newItemSet()
	S1.Add(Item{r, 0, c}, Item{r, 1, d}, Item{r, 0, d})
	S2.Add(Item{r, 0, d}, Item{r, 0, c}, Item{r, 1, d}, Item{r, 0, c})
	assert.True(t, S1.Equals(S2), "order of insertion must not matter")
	assert.Equal(t, S1.key(), S2.key())
	S2.Add(Item{r, 2, d})
	assert.False(t, S1.Equals(S2))
}

func TestCanonicalCollection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtac.lr")
	defer teardown()
	//
	lrgen := NewTableGenerator(makeCCGrammar(t))
	lrgen.CreateTables()
	assert := assert.New(t)
	assert.Equal(10, lrgen.CFSM().Size())
	assert.False(lrgen.HasConflicts)
	states := lrgen.States()
	for k, s := range states {
		assert.Equal(k, s.ID, "states are numbered consecutively")
		for _, other := range states[k+1:] {
			assert.False(s.items.Equals(other.items), "states %d and %d are equal", s.ID, other.ID)
		}
	}
	accepting := 0
	for _, s := range states {
		if s.Accept {
			accepting++
		}
	}
	assert.Equal(1, accepting)
}

func TestCreateTablesIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtac.lr")
	defer teardown()
	//
	lrgen := NewTableGenerator(makeCCGrammar(t))
	lrgen.CreateTables()
	action, gotos := lrgen.ActionTable(), lrgen.GotoTable()
	lrgen.CreateTables()
	if lrgen.ActionTable() != action || lrgen.GotoTable() != gotos {
		t.Errorf("tables have been rebuilt")
	}
}

// Parse "c d d" by hand, following the tables.
func TestActionTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtac.lr")
	defer teardown()
	//
	lrgen := NewTableGenerator(makeCCGrammar(t))
	lrgen.CreateTables()
	g := lrgen.g
	A, G := lrgen.ActionTable(), lrgen.GotoTable()
	c, d, eof := g.SymbolByName("c"), g.SymbolByName("d"), g.EOF()
	input := []*Symbol{c, d, d, eof}
	stack := []int{0}
	reductions := []int{}
	for steps := 0; steps < 20; steps++ {
		state := stack[len(stack)-1]
		act := A.Action(state, input[0])
		t.Logf("state %d, lookahead %s: %s", state, input[0], act)
		switch act.Kind {
		case Shift:
			stack = append(stack, act.Target)
			input = input[1:]
			continue
		case Reduce:
			r := g.Rule(act.Target)
			reductions = append(reductions, r.Serial)
			stack = stack[:len(stack)-r.Len()]
			next := G.Value(stack[len(stack)-1], r.LHS)
			if next == G.NullValue() {
				t.Fatalf("no GOTO for %s in state %d", r.LHS, stack[len(stack)-1])
			}
			stack = append(stack, int(next))
			continue
		case Accept:
			assert.Equal(t, []int{3, 2, 3, 1}, reductions)
			return
		}
		t.Fatalf("unexpected error action")
	}
	t.Errorf("parse did not terminate")
}

func TestActionEncoding(t *testing.T) {
	null := int32(-99)
	assert.Equal(t, Action{Kind: Shift, Target: 4}, decode(4, null))
	assert.Equal(t, Action{Kind: Reduce, Target: 4}, decode(-4, null))
	assert.Equal(t, Action{Kind: Accept}, decode(AcceptAction, null))
	assert.Equal(t, Action{Kind: ErrorAction}, decode(null, null))
	assert.Equal(t, "shift 4", decode(4, null).String())
	assert.Equal(t, "reduce 4", decode(-4, null).String())
	assert.Equal(t, "accept", decode(0, null).String())
	assert.Equal(t, "error", decode(null, null).String())
}

func TestConflictsAreReported(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtac.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Ambiguous")
	b.LHS("E").N("E").T("+").N("E").End()
	b.LHS("E").T("id").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	lrgen := NewTableGenerator(Analysis(g))
	lrgen.CreateTables()
	if !lrgen.HasConflicts {
		t.Errorf("expected ambiguous grammar to have conflicts")
	}
}

func TestTableExports(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtac.lr")
	defer teardown()
	//
	lrgen := NewTableGenerator(makeCCGrammar(t))
	lrgen.CreateTables()
	text := lrgen.TablesString()
	t.Logf("\n%s", text)
	lines := strings.Split(text, "\n")
	assert.True(t, len(lines) > 10, "expected one line per state plus header")
	assert.Contains(t, text, "acc")
	var buf bytes.Buffer
	ActionTableAsHTML(lrgen, &buf)
	assert.Contains(t, buf.String(), "ACTION table")
	buf.Reset()
	GotoTableAsHTML(lrgen, &buf)
	assert.Contains(t, buf.String(), "<td>state 9</td>")
	buf.Reset()
	if err := lrgen.CFSM().CFSM2GraphViz(&buf); err != nil {
		t.Fatal(err)
	}
	assert.Contains(t, buf.String(), "s000 -> s")
	assert.Contains(t, buf.String(), "lightgray")
}

// Row-wise export cells have to match the single-entry lookups.
func TestTableRowCells(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtac.lr")
	defer teardown()
	//
	lrgen := NewTableGenerator(makeCCGrammar(t))
	lrgen.CreateTables()
	terms, nonterms := lrgen.g.Terminals(), lrgen.tableNonTerminals()
	filled := 0
	for _, state := range lrgen.States() {
		actions := lrgen.actiontable.cells(state.ID, terms, actionCell)
		for k, A := range terms {
			assert.Equal(t, lrgen.actiontable.Action(state.ID, A).cell(), actions[k],
				"ACTION[%d,%s]", state.ID, A.Name)
			if actions[k] != "" {
				filled++
			}
		}
		gotos := lrgen.gototable.cells(state.ID, nonterms, gotoCell)
		for k, A := range nonterms {
			expected := ""
			if v := lrgen.gototable.Value(state.ID, A); v != lrgen.gototable.NullValue() {
				expected = strconv.Itoa(int(v))
			}
			assert.Equal(t, expected, gotos[k], "GOTO[%d,%s]", state.ID, A.Name)
			if gotos[k] != "" {
				filled++
			}
		}
	}
	assert.Equal(t, lrgen.actiontable.ValueCount()+lrgen.gototable.ValueCount(), filled)
}
