package tac

import (
	"fmt"
	"strings"
)

// Attr is a synthesized attribute of a grammar symbol: the name of the place
// holding its value (variable, temporary, constant or condition text), and the
// instructions its subtree has emitted so far.
type Attr struct {
	Place string
	Code  []string
}

// Leaf creates an attribute without code.
func Leaf(place string) Attr {
	return Attr{Place: place}
}

func (a Attr) String() string {
	return fmt.Sprintf("%s code:[%s]", a.Place, strings.Join(a.Code, "; "))
}

// Concat concatenates code fragments into a new slice.
func Concat(fragments ...[]string) []string {
	n := 0
	for _, f := range fragments {
		n += len(f)
	}
	code := make([]string, 0, n)
	for _, f := range fragments {
		code = append(code, f...)
	}
	return code
}

// Generator allocates names for temporaries and labels and collects emitted
// instructions. Counters are never reset, so names are never reused within
// the lifetime of a generator.
type Generator struct {
	temps  int
	labels int
	code   []string
}

// NewGenerator creates a TAC generator with fresh counters.
func NewGenerator() *Generator {
	return &Generator{}
}

// NewTemp allocates the next temporary name.
func (g *Generator) NewTemp() string {
	g.temps++
	return fmt.Sprintf("t%d", g.temps)
}

// NewLabel allocates the next label name.
func (g *Generator) NewLabel() string {
	g.labels++
	return fmt.Sprintf("L%d", g.labels)
}

// Emit appends instructions to the code buffer. Instructions are not validated.
func (g *Generator) Emit(instrs ...string) {
	for _, instr := range instrs {
		tracer().Debugf("emit %s", instr)
	}
	g.code = append(g.code, instrs...)
}

// Code returns a copy of all instructions emitted so far.
func (g *Generator) Code() []string {
	return append([]string(nil), g.code...)
}

// Len returns the number of instructions emitted so far.
func (g *Generator) Len() int {
	return len(g.code)
}

// Counts returns the number of temporaries and labels allocated so far.
func (g *Generator) Counts() (temps, labels int) {
	return g.temps, g.labels
}
