package lang

import (
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/lrtac/lr"
	"github.com/npillmayer/lrtac/runtime"
	"github.com/npillmayer/lrtac/tac"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestGrammarRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtac.lang")
	defer teardown()
	//
	g := Grammar()
	assert := assert.New(t)
	assert.Equal(25, g.Size())
	assert.Equal("0: B' -> B", g.Rule(0).String())
	assert.Equal("1: R -> for ( A C ; A1 ) { B }", g.Rule(RuleFor).String())
	assert.Equal("9: C -> E == E", g.Rule(RuleEq).String())
	assert.Equal("12: I -> if ( C ) { B } else { B }", g.Rule(RuleIf).String())
	assert.Equal("20: F -> num", g.Rule(RuleNumber).String())
	assert.Equal("24: S -> R", g.Rule(RuleStmtFor).String())
	for _, name := range []string{"id", "num", "for", "if", "else", "<=", "==", ";", "{", "$"} {
		A := g.SymbolByName(name)
		if assert.NotNil(A, name) {
			assert.True(A.IsTerminal(), name)
		}
	}
	for _, name := range []string{"R", "A", "A1", "C", "S", "I", "E", "T", "F", "B", "B'"} {
		assert.False(g.SymbolByName(name).IsTerminal(), name)
	}
	assert.Len(g.FindNonTermRules(g.SymbolByName("C")), 6)
}

func names(syms []*lr.Symbol) []string {
	var n []string
	for _, A := range syms {
		n = append(n, A.Name)
	}
	return n
}

func TestFirstSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtac.lang")
	defer teardown()
	//
	g := Grammar()
	ga := lr.Analysis(g)
	assert.ElementsMatch(t, []string{"(", "id", "num"}, names(ga.First(g.SymbolByName("E"))))
	assert.ElementsMatch(t, []string{"(", "id", "num"}, names(ga.First(g.SymbolByName("C"))))
	assert.ElementsMatch(t, []string{"for", "id", "if"}, names(ga.First(g.SymbolByName("B"))))
	g.EachTerminal(func(A *lr.Symbol) {
		assert.Equal(t, []string{A.Name}, names(ga.First(A)))
	})
	// FIRST(LHS) contains FIRST of the first RHS symbol, for every rule
	for i := 0; i < g.Size(); i++ {
		r := g.Rule(i)
		lhs := names(ga.First(r.LHS))
		for _, a := range names(ga.First(r.RHS()[0])) {
			assert.Contains(t, lhs, a, r.String())
		}
	}
	// a second analysis yields identical sets
	ga2 := lr.Analysis(g)
	g.EachNonTerminal(func(A *lr.Symbol) {
		assert.Equal(t, names(ga.First(A)), names(ga2.First(A)), A.Name)
	})
}

func TestTablesHaveNoConflicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtac.lang")
	defer teardown()
	//
	p := NewParser()
	lrgen := p.Tables()
	assert.False(t, lrgen.HasConflicts)
	assert.Equal(t, 0, lrgen.ActionTable().Overwrites(), "at most one ACTION entry per cell")
	assert.Same(t, lrgen, p.Tables(), "tables are built once")
	accepts := 0
	g := Grammar()
	for _, state := range lrgen.States() {
		g.EachTerminal(func(A *lr.Symbol) {
			if lrgen.ActionTable().Action(state.ID, A).Kind == lr.Accept {
				accepts++
				assert.Equal(t, g.EOF(), A)
			}
		})
	}
	assert.Equal(t, 1, accepts)
}

func TestGoldenAssignment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtac.lang")
	defer teardown()
	//
	r := Compile("a=1;", false)
	assert.True(t, r.Success)
	assert.Equal(t, []string{"a = 1"}, r.Code)
	assert.Equal(t, "OK", r.Message)
}

func TestGoldenFor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtac.lang")
	defer teardown()
	//
	r := Compile("for(i=1;i<10;i=i+1){a=1;}", false)
	assert.True(t, r.Success)
	assert.Equal(t, []string{
		"i = 1",
		"L1:",
		"ifFalse i < 10 goto L2",
		"a = 1",
		"t1 = i + 1",
		"i = t1",
		"goto L1",
		"L2:",
	}, r.Code)
	assert.Equal(t, []string{"a", "i"}, r.Symbols.Names(runtime.Variable))
	assert.Equal(t, []string{"t1"}, r.Symbols.Names(runtime.Temporary))
	assert.Equal(t, []string{"L1", "L2"}, r.Symbols.Names(runtime.Label))
	assert.Equal(t, 2, r.Symbols.ResolveTag("i").Defs)
}

func TestGoldenIfElse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtac.lang")
	defer teardown()
	//
	r := Compile("if(a>1){b=2;}else{b=3;}", false)
	assert.True(t, r.Success)
	assert.Equal(t, []string{
		"ifFalse a > 1 goto L1",
		"b = 2",
		"goto L2",
		"L1:",
		"b = 3",
		"L2:",
	}, r.Code)
	assert.Equal(t, []string{"L1", "L2"}, r.Symbols.Names(runtime.Label))
	// the if-statement's placeholder place
	assert.Equal(t, []string{"t1"}, r.Symbols.Names(runtime.Temporary))
}

func TestGoldenMissingBrace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtac.lang")
	defer teardown()
	//
	r := Compile("if(a>1){b=2;}else{b=3;", false)
	assert.False(t, r.Success)
	assert.Nil(t, r.Code)
	assert.Equal(t, 1, r.Error.Line)
	assert.Equal(t, 23, r.Error.Col)
	assert.Equal(t, "Syntax error at 1:23 near '$'", r.Message)
	//
	r = Compile("for(i=1;i<10;i=i+1) a=1; }", false)
	assert.False(t, r.Success)
	assert.Equal(t, "Syntax error at 1:21 near 'a'", r.Message)
	//
	r = Compile("a = 1;\nif (a > 1) {\n  b = 2;\n}\n", false)
	assert.False(t, r.Success)
	assert.Equal(t, 5, r.Error.Line)
	assert.Equal(t, 1, r.Error.Col)
}

func TestGoldenIllegalCharacter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtac.lang")
	defer teardown()
	//
	tokens := Tokenize("a = 1 @ 2;")
	assert.Equal(t, "@", tokens[3].Lexeme)
	r := ParseAndGenerate(tokens, false)
	assert.False(t, r.Success)
	assert.Equal(t, "@", r.Error.Lexeme)
	assert.Equal(t, "err", r.Error.Terminal)
	assert.Equal(t, 7, r.Error.Col)
}

func TestGoldenGeneratorReuse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtac.lang")
	defer teardown()
	//
	p := NewParser()
	src := "x = a + b;"
	r1 := p.ParseAndGenerate(Tokenize(src), false)
	r2 := p.ParseAndGenerate(Tokenize(src), false)
	assert.Equal(t, []string{"t1 = a + b", "x = t1"}, r1.Code)
	assert.Equal(t, r1.Code, r2.Code, "fresh generators do not leak numbering")
	//
	gen := tac.NewGenerator()
	r1 = p.ParseWithGenerator(Tokenize(src), gen, false)
	r2 = p.ParseWithGenerator(Tokenize(src), gen, false)
	assert.Equal(t, []string{"t1 = a + b", "x = t1"}, r1.Code)
	assert.Equal(t, []string{"t2 = a + b", "x = t2"}, r2.Code, "shared generator continues numbering")
	assert.Equal(t, 4, gen.Len())
}

func TestExpressions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtac.lang")
	defer teardown()
	//
	tests := []struct {
		src  string
		code []string
	}{
		{"x = a + b * c;", []string{"t1 = b * c", "t2 = a + t1", "x = t2"}},
		{"x = (a + b) * c;", []string{"t1 = a + b", "t2 = t1 * c", "x = t2"}},
		{"x = a - b - c;", []string{"t1 = a - b", "t2 = t1 - c", "x = t2"}},
		{"x = a / 2.5;", []string{"t1 = a / 2.5", "x = t1"}},
		{"x = 1; y = x;", []string{"x = 1", "y = x"}},
		{"if(a+1>b){x=1;}else{x=2;}", []string{
			"t1 = a + 1", "ifFalse t1 > b goto L1", "x = 1", "goto L2", "L1:", "x = 2", "L2:"}},
	}
	for _, tt := range tests {
		r := Compile(tt.src, false)
		if assert.True(t, r.Success, tt.src) {
			assert.Equal(t, tt.code, r.Code, tt.src)
		}
	}
}

func TestNestedLoops(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtac.lang")
	defer teardown()
	//
	r := Compile("for(i = 1;i <= 10; i = i + 1){ for(j = 0 ;j < i;j = j + 1){a = j + 1;}}", false)
	if !assert.True(t, r.Success, r.Message) {
		return
	}
	assert.Equal(t, []string{
		"i = 1",
		"L3:",
		"ifFalse i <= 10 goto L4",
		"j = 0",
		"L1:",
		"ifFalse j < i goto L2",
		"t3 = j + 1",
		"a = t3",
		"t2 = j + 1",
		"j = t2",
		"goto L1",
		"L2:",
		"t1 = i + 1",
		"i = t1",
		"goto L3",
		"L4:",
	}, r.Code)
	intp := runtime.NewInterpreter()
	assert.NoError(t, intp.Run(r.Code))
	a, _ := intp.Value("a")
	i, _ := intp.Value("i")
	assert.Equal(t, 10.0, a)
	assert.Equal(t, 11.0, i)
}

func TestVerboseTrace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtac.lang")
	defer teardown()
	//
	r := Compile("a=1;", true)
	assert.True(t, r.Success)
	assert.True(t, strings.HasPrefix(r.Message, "State=0, lookahead=(a,IDENTIFIER) @1:1, action=shift "), r.Message)
	assert.True(t, strings.HasSuffix(r.Message, "action=accept\nAccept.\nOK"), r.Message)
	//
	r = Compile("a=;", true)
	assert.False(t, r.Success)
	assert.Contains(t, r.Message, "State=")
	assert.True(t, strings.HasSuffix(r.Message, "Syntax error at 1:3 near ';'"), r.Message)
}

func TestConcurrentRuns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtac.lang")
	defer teardown()
	//
	var wg sync.WaitGroup
	results := make([]*Result, 8)
	for k := range results {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			results[k] = Compile("for(i=1;i<10;i=i+1){a=1;}", false)
		}(k)
	}
	wg.Wait()
	for _, r := range results {
		assert.True(t, r.Success)
		assert.Equal(t, "t1 = i + 1", r.Code[4])
		assert.Equal(t, "L1:", r.Code[1])
	}
}
