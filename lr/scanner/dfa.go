package scanner

import (
	"fmt"
	"strings"

	"github.com/npillmayer/lrtac"
)

// State is a state of the scanner DFA.
type State int8

// States of the scanner DFA. Dot is the only non-accepting state besides Start:
// a '.' has to be followed by a digit to become part of a float.
const (
	Start State = iota
	Ident
	IntNum
	Dot
	FloatNum
	Op
	Op2
	Delim
	nStates
	NoState State = -1
)

var stateNames = [...]string{"START", "ID", "INT", "DOT", "FLOAT", "OP", "OP2", "DELIM"}

func (s State) String() string {
	if s < Start || s >= nStates {
		return "NONE"
	}
	return stateNames[s]
}

// charClass partitions input characters. Transitions are defined per class.
type charClass int8

const (
	ccLetter   charClass = iota // ASCII letters and '_'
	ccDigit                     // 0-9
	ccDot                       // '.'
	ccOpCompd                   // operator character which may compound
	ccOp                        // other operator character
	ccDelim                     // delimiter
	ccOther                     // everything else
	nClasses
)

func classOf(r rune) charClass {
	switch {
	case r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z':
		return ccLetter
	case '0' <= r && r <= '9':
		return ccDigit
	case r == '.':
		return ccDot
	case strings.ContainsRune(OperatorCompound, r):
		return ccOpCompd
	case strings.ContainsRune(OperatorStart, r):
		return ccOp
	case strings.ContainsRune(Delimiters, r):
		return ccDelim
	}
	return ccOther
}

// DFA is the deterministic finite automaton driving the tokenizer. It is
// immutable after construction and may be shared between tokenizers.
type DFA struct {
	trans  [nStates][nClasses]State
	accept [nStates]lrtac.TokKind
}

const notAccepting lrtac.TokKind = -1

// The DFA is constructed once.
var scannerDFA = newDFA()

func newDFA() *DFA {
	d := &DFA{}
	for s := Start; s < nStates; s++ {
		d.accept[s] = notAccepting
		for c := charClass(0); c < nClasses; c++ {
			d.trans[s][c] = NoState
		}
	}
	d.add(Start, ccLetter, Ident)
	d.add(Start, ccDigit, IntNum)
	d.add(Start, ccDot, Dot)
	d.add(Start, ccOpCompd, Op)
	d.add(Start, ccOp, Op)
	d.add(Start, ccDelim, Delim)
	d.add(Ident, ccLetter, Ident)
	d.add(Ident, ccDigit, Ident)
	d.add(IntNum, ccDigit, IntNum)
	d.add(IntNum, ccDot, Dot)
	d.add(Dot, ccDigit, FloatNum)
	d.add(FloatNum, ccDigit, FloatNum)
	d.add(Op, ccOpCompd, Op2)
	d.accept[Ident] = lrtac.Identifier
	d.accept[IntNum] = lrtac.IntConst
	d.accept[FloatNum] = lrtac.FloatConst
	d.accept[Op] = lrtac.Operator
	d.accept[Op2] = lrtac.Operator
	d.accept[Delim] = lrtac.Delimiter
	return d
}

// add a transition. Every (state, class) pair has at most one transition.
func (d *DFA) add(from State, c charClass, to State) {
	if d.trans[from][c] != NoState {
		panic(fmt.Sprintf("scanner DFA: duplicate transition from %s", from))
	}
	d.trans[from][c] = to
}

// Next returns the state reached from s on input r, or NoState.
func (d *DFA) Next(s State, r rune) State {
	if s < Start || s >= nStates {
		return NoState
	}
	return d.trans[s][classOf(r)]
}

// Accepts returns the token kind for an accepting state s. The flag is false
// for non-accepting states.
func (d *DFA) Accepts(s State) (lrtac.TokKind, bool) {
	if s < Start || s >= nStates || d.accept[s] == notAccepting {
		return lrtac.Error, false
	}
	return d.accept[s], true
}
