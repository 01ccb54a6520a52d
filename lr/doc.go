/*
Package lr implements prerequisites for canonical LR(1) parsing.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals are
identified by name; a parser maps input tokens to terminal names.
Epsilon-productions are not supported.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("E").N("E").T("+").N("T").End()  // E  ->  E + T
    b.LHS("E").N("T").End()                // E  ->  T
    b.LHS("T").T("id").End()               // T  ->  id
    b.LHS("T").T("(").N("E").T(")").End()  // T  ->  ( E )

This results in the following trivial grammar:

   g, _ := b.Grammar()
   fmt.Print(g)

   0: E' -> E
   1: E -> E + T
   2: E -> T
   3: T -> id
   4: T -> ( E )

Rule 0 is added by the builder. The end-of-input terminal is called "$".

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LRAnalysis object, which computes FIRST sets
for the grammar by fixed-point iteration. Only the first right hand side
symbol of every rule is considered, which is sufficient in the absence of
epsilon-productions.

    ga := lr.Analysis(g)
    ga.Grammar().EachNonTerminal(func(A *lr.Symbol) {
        fmt.Printf("FIRST(%s) = %v\n", A, ga.First(A))
    })

    // Output:
    FIRST(E) = [id (]
    FIRST(T) = [id (]
    FIRST(E') = [id (]

Parser Construction

Using grammar analysis as input, a bottom-up parser can be constructed.
First a characteristic finite state machine (CFSM) is built from the
grammar, i.e. the canonical collection of LR(1) item sets. The CFSM will
then be transformed into a GOTO table and an ACTION table. The CFSM will
not be thrown away, but is made available to the client.  This is intended
for debugging purposes. It can be exported to Graphviz's Dot-format.

Example:

    lrgen := lr.NewTableGenerator(ga)  // ga is a LRAnalysis, see above
    lrgen.CreateTables()               // construct LR(1) parser tables
    fmt.Println(lrgen.TablesString())

ACTION table entries are encoded as int32: shift entries are the (positive)
number of the state to shift to, reduce entries are the negative serial of
the rule to reduce, and AcceptAction (0) means accept. Conflicting entries
overwrite each other; the generator reports them with HasConflicts.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrtac.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrtac.lr")
}
