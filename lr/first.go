package lr

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// LRAnalysis is an object for grammar analysis (computing FIRST-sets).
//
// FIRST-sets are computed from the first right hand side symbol of each rule
// only. This is correct for grammars without epsilon-rules, which is the
// only kind of grammar a GrammarBuilder will produce. Extending this to
// nullable prefixes requires concatenating FIRST-sets across the rule.
type LRAnalysis struct {
	g      *Grammar
	first  map[*Symbol]*treeset.Set // FIRST-set per symbol, ordered by symbol value
	passes int                      // iterations until fixed point
}

// Analysis creates an analyser for a grammar. The analyser immediately
// computes the FIRST-sets for the grammar.
func Analysis(g *Grammar) *LRAnalysis {
	ga := &LRAnalysis{g: g}
	ga.computeFirst()
	return ga
}

// Grammar returns the grammar this analyser operates on.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// We need this for sets of symbols. It sorts symbols by value.
func symbolComparator(s1, s2 interface{}) int {
	return utils.IntComparator(s1.(*Symbol).Value, s2.(*Symbol).Value)
}

func newSymbolSet() *treeset.Set {
	return treeset.NewWith(symbolComparator)
}

// computeFirst grows the FIRST-sets until no set changes any more.
// FIRST(a) = {a} for terminals; for every rule A -> X ..., FIRST(A) includes FIRST(X).
func (ga *LRAnalysis) computeFirst() {
	ga.first = make(map[*Symbol]*treeset.Set, ga.g.SymbolCount())
	ga.g.EachSymbol(func(A *Symbol) {
		F := newSymbolSet()
		if A.IsTerminal() {
			F.Add(A)
		}
		ga.first[A] = F
	})
	ga.passes = 0
	for changed := true; changed; {
		changed = ga.firstPass()
		ga.passes++
	}
	tracer().Debugf("FIRST-sets converged after %d passes", ga.passes)
	ga.g.EachNonTerminal(func(A *Symbol) {
		tracer().Debugf("FIRST(%s) = %v", A, ga.first[A].Values())
	})
}

// firstPass does one iteration over all rules and reports if any set grew.
func (ga *LRAnalysis) firstPass() bool {
	grown := false
	for _, r := range ga.g.rules {
		F := ga.first[r.LHS]
		size := F.Size()
		F.Add(ga.first[r.rhs[0]].Values()...)
		if F.Size() > size {
			grown = true
		}
	}
	return grown
}

// First returns FIRST(A) in order of symbol values.
func (ga *LRAnalysis) First(A *Symbol) []*Symbol {
	F, ok := ga.first[A]
	if !ok {
		return nil
	}
	return asSymbols(F.Values())
}

// firstOfSequence returns FIRST(beta la), consulting only the first symbol:
// FIRST(beta[0]) if beta is non-empty, {la} otherwise.
func (ga *LRAnalysis) firstOfSequence(beta []*Symbol, la *Symbol) []*Symbol {
	if len(beta) == 0 {
		return []*Symbol{la}
	}
	return ga.First(beta[0])
}

func asSymbols(vals []interface{}) []*Symbol {
	syms := make([]*Symbol, len(vals))
	for i, v := range vals {
		syms[i] = v.(*Symbol)
	}
	return syms
}
