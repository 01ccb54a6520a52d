/*
Package lrtac is a miniature compiler front end for a small imperative language.

The language knows assignments, relational conditions, if/else and for-loops
over arithmetic expressions. Source text is tokenized by a hand-rolled
deterministic finite automaton, parsed by a canonical LR(1) parser built from
a fixed grammar, and translated into linear three-address code (TAC) by
semantic actions attached to reductions. Package structure is as follows:

■ lr: Package lr implements grammars, FIRST-sets and the construction of
canonical LR(1) ACTION and GOTO tables.

■ lr/scanner: Package scanner implements the DFA-based tokenizer.

■ lr/lr1: Package lr1 implements the table-driven shift-reduce parser,
calling a translator on every reduction.

■ tac: Package tac provides primitives for emitting three-address code.

■ runtime: Package runtime provides symbol tables and an interpreter for
three-address code.

■ lang: Package lang ties everything together for the mini language.

The command line tool tacc (in cmd/tacc) drives tokenizing, translation and
execution of programs.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package lrtac
