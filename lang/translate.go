package lang

import (
	"github.com/npillmayer/lrtac"
	"github.com/npillmayer/lrtac/lr"
	"github.com/npillmayer/lrtac/runtime"
	"github.com/npillmayer/lrtac/tac"
)

// Scheme is the syntax-directed translation scheme of the language. It
// synthesizes place/code attributes on every reduction and allocates
// temporaries and labels from a TAC generator. Every name the translated
// program defines is recorded in a symbol table.
//
// The if/else action deliberately places the condition's code in front of
// its ifFalse jump, unlike the classic scheme, which drops it. Without it a
// condition such as "a+1 < b" would test a temporary that is never computed.
//
// A Scheme is used for a single parse run.
type Scheme struct {
	gen  *tac.Generator
	syms *runtime.SymbolTable
	mark int // start of this run's code within the generator's buffer
}

// NewScheme creates a translation scheme emitting to gen and recording
// symbols into syms.
func NewScheme(gen *tac.Generator, syms *runtime.SymbolTable) *Scheme {
	return &Scheme{gen: gen, syms: syms, mark: gen.Len()}
}

// Shift creates the attribute of a token: its lexeme is its place.
func (s *Scheme) Shift(tok lrtac.Token) tac.Attr {
	return tac.Leaf(tok.Lexeme)
}

// Reduce performs the semantic action of a rule.
func (s *Scheme) Reduce(rule *lr.Rule, rhs []tac.Attr) tac.Attr {
	switch rule.Serial {
	case RuleFor: // for ( A C ; A1 ) { B }
		init, cond, step, body := rhs[2], rhs[3], rhs[5], rhs[8]
		begin, end := s.newLabel(), s.newLabel()
		code := tac.Concat(
			init.Code,
			[]string{tac.Label(begin)},
			cond.Code,
			[]string{tac.IfFalse(cond.Place, end)},
			body.Code,
			step.Code,
			[]string{tac.Goto(begin), tac.Label(end)},
		)
		return tac.Attr{Code: code}
	case RuleAssign, RuleStep: // id = E
		dest, e := rhs[0].Place, rhs[2]
		s.syms.Record(dest, runtime.Variable)
		return tac.Attr{
			Place: dest,
			Code:  tac.Concat(e.Code, []string{tac.Copy(dest, e.Place)}),
		}
	case RuleLess, RuleGreater, RuleLessEq, RuleGreaterEq, RuleNotEq, RuleEq:
		e1, op, e2 := rhs[0], rhs[1].Place, rhs[2]
		return tac.Attr{
			Place: tac.Cond(e1.Place, op, e2.Place),
			Code:  tac.Concat(e1.Code, e2.Code),
		}
	case RuleIf: // if ( C ) { B } else { B }
		cond, then, els := rhs[2], rhs[5], rhs[9]
		elseL, end := s.newLabel(), s.newLabel()
		code := tac.Concat(
			cond.Code,
			[]string{tac.IfFalse(cond.Place, elseL)},
			then.Code,
			[]string{tac.Goto(end), tac.Label(elseL)},
			els.Code,
			[]string{tac.Label(end)},
		)
		// statements have no value; the temporary is a placeholder
		return tac.Attr{Place: s.newTemp(), Code: code}
	case RulePlus, RuleMinus, RuleTimes, RuleDivide:
		l, op, r := rhs[0], rhs[1].Place, rhs[2]
		t := s.newTemp()
		return tac.Attr{
			Place: t,
			Code:  tac.Concat(l.Code, r.Code, []string{tac.Binary(t, l.Place, op, r.Place)}),
		}
	case RuleSeq:
		return tac.Attr{Code: tac.Concat(rhs[0].Code, rhs[1].Code)}
	case RuleParens:
		return rhs[1]
	}
	// pass-through rules: S -> A | I | R, E -> T, T -> F, F -> id | num, B -> S
	return rhs[0]
}

// Accept flushes the code of the start symbol into the generator and
// returns the instructions emitted during this run.
func (s *Scheme) Accept(final tac.Attr) []string {
	s.gen.Emit(final.Code...)
	return tac.Concat(s.gen.Code()[s.mark:])
}

func (s *Scheme) newTemp() string {
	t := s.gen.NewTemp()
	s.syms.Record(t, runtime.Temporary)
	return t
}

func (s *Scheme) newLabel() string {
	l := s.gen.NewLabel()
	s.syms.Record(l, runtime.Label)
	return l
}
