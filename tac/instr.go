package tac

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Kind is the kind of a TAC instruction.
type Kind int8

// Kinds of instructions
const (
	CopyInstr Kind = iota
	BinaryInstr
	LabelInstr
	GotoInstr
	IfFalseInstr
)

// Instr is a decoded TAC instruction. Fields not used by an instruction kind
// are empty.
type Instr struct {
	Kind  Kind
	Dest  string // target of copy and binary instructions
	Arg1  string
	Op    string // arithmetic or relational operator
	Arg2  string
	Label string // label to define or jump to
}

func (i Instr) String() string {
	switch i.Kind {
	case CopyInstr:
		return Copy(i.Dest, i.Arg1)
	case BinaryInstr:
		return Binary(i.Dest, i.Arg1, i.Op, i.Arg2)
	case LabelInstr:
		return Label(i.Label)
	case GotoInstr:
		return Goto(i.Label)
	}
	return IfFalse(Cond(i.Arg1, i.Op, i.Arg2), i.Label)
}

// Copy renders "dest = src".
func Copy(dest, src string) string {
	return dest + " = " + src
}

// Binary renders "dest = a op b".
func Binary(dest, a, op, b string) string {
	return dest + " = " + a + " " + op + " " + b
}

// Cond renders a condition "a op b".
func Cond(a, op, b string) string {
	return a + " " + op + " " + b
}

// Label renders a label definition "L:".
func Label(l string) string {
	return l + ":"
}

// Goto renders "goto L".
func Goto(l string) string {
	return "goto " + l
}

// IfFalse renders "ifFalse cond goto L".
func IfFalse(cond, l string) string {
	return "ifFalse " + cond + " goto " + l
}

// Arithmetic and relational operators.
var (
	ArithOps    = []string{"+", "-", "*", "/"}
	RelationOps = []string{"<", ">", "<=", ">=", "!=", "=="}
)

// Decode parses an instruction line in one of the textual forms produced by
// this package.
func Decode(line string) (Instr, error) {
	f := strings.Fields(line)
	switch {
	case len(f) == 1 && strings.HasSuffix(f[0], ":") && len(f[0]) > 1:
		return Instr{Kind: LabelInstr, Label: strings.TrimSuffix(f[0], ":")}, nil
	case len(f) == 2 && f[0] == "goto":
		return Instr{Kind: GotoInstr, Label: f[1]}, nil
	case len(f) == 3 && f[1] == "=":
		return Instr{Kind: CopyInstr, Dest: f[0], Arg1: f[2]}, nil
	case len(f) == 5 && f[1] == "=" && slices.Contains(ArithOps, f[3]):
		return Instr{Kind: BinaryInstr, Dest: f[0], Arg1: f[2], Op: f[3], Arg2: f[4]}, nil
	case len(f) == 6 && f[0] == "ifFalse" && f[4] == "goto" && slices.Contains(RelationOps, f[2]):
		return Instr{Kind: IfFalseInstr, Arg1: f[1], Op: f[2], Arg2: f[3], Label: f[5]}, nil
	}
	return Instr{}, fmt.Errorf("malformed TAC instruction: %q", line)
}
