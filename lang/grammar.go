package lang

import (
	"sync"

	"github.com/npillmayer/lrtac/lr"
)

// Serial numbers of the grammar rules. Rule 0 is the augmented start rule
// B' -> B.
const (
	RuleFor        = 1  // R  -> for ( A C ; A1 ) { B }
	RuleAssign     = 2  // A  -> id = E ;
	RuleStep       = 3  // A1 -> id = E
	RuleLess       = 4  // C  -> E < E
	RuleGreater    = 5  // C  -> E > E
	RuleLessEq     = 6  // C  -> E <= E
	RuleGreaterEq  = 7  // C  -> E >= E
	RuleNotEq      = 8  // C  -> E != E
	RuleEq         = 9  // C  -> E == E
	RuleStmtAssign = 10 // S  -> A
	RuleStmtIf     = 11 // S  -> I
	RuleIf         = 12 // I  -> if ( C ) { B } else { B }
	RulePlus       = 13 // E  -> E + T
	RuleMinus      = 14 // E  -> E - T
	RuleExprTerm   = 15 // E  -> T
	RuleTimes      = 16 // T  -> T * F
	RuleDivide     = 17 // T  -> T / F
	RuleTermFactor = 18 // T  -> F
	RuleIdent      = 19 // F  -> id
	RuleNumber     = 20 // F  -> num
	RuleParens     = 21 // F  -> ( E )
	RuleSeq        = 22 // B  -> B S
	RuleBlockStmt  = 23 // B  -> S
	RuleStmtFor    = 24 // S  -> R
)

var relops = []string{"<", ">", "<=", ">=", "!=", "=="}

func makeGrammar() (*lr.Grammar, error) {
	b := lr.NewGrammarBuilder("TAC")
	b.StartSymbol("B")
	b.LHS("R").T("for").T("(").N("A").N("C").T(";").N("A1").T(")").T("{").N("B").T("}").End()
	b.LHS("A").T("id").T("=").N("E").T(";").End()
	b.LHS("A1").T("id").T("=").N("E").End()
	for _, op := range relops {
		b.LHS("C").N("E").T(op).N("E").End()
	}
	b.LHS("S").N("A").End()
	b.LHS("S").N("I").End()
	b.LHS("I").T("if").T("(").N("C").T(")").T("{").N("B").T("}").
		T("else").T("{").N("B").T("}").End()
	b.LHS("E").N("E").T("+").N("T").End()
	b.LHS("E").N("E").T("-").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").N("T").T("*").N("F").End()
	b.LHS("T").N("T").T("/").N("F").End()
	b.LHS("T").N("F").End()
	b.LHS("F").T("id").End()
	b.LHS("F").T("num").End()
	b.LHS("F").T("(").N("E").T(")").End()
	b.LHS("B").N("B").N("S").End()
	b.LHS("B").N("S").End()
	b.LHS("S").N("R").End()
	return b.Grammar()
}

var grammar struct {
	once sync.Once
	g    *lr.Grammar
	ga   *lr.LRAnalysis
}

// Grammar returns the grammar of the language. It is built once and is
// immutable.
func Grammar() *lr.Grammar {
	return analysis().Grammar()
}

func analysis() *lr.LRAnalysis {
	grammar.once.Do(func() {
		g, err := makeGrammar()
		if err != nil {
			tracer().Errorf("grammar: %v", err)
			panic(err)
		}
		grammar.g = g
		grammar.ga = lr.Analysis(g)
	})
	return grammar.ga
}
