package tac

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestGeneratorNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtac.tac")
	defer teardown()
	//
	g := NewGenerator()
	assert := assert.New(t)
	assert.Equal("t1", g.NewTemp())
	assert.Equal("L1", g.NewLabel())
	assert.Equal("t2", g.NewTemp())
	assert.Equal("L2", g.NewLabel())
	temps, labels := g.Counts()
	assert.Equal(2, temps)
	assert.Equal(2, labels)
	h := NewGenerator()
	assert.Equal("t1", h.NewTemp(), "counters are per generator")
}

func TestGeneratorEmit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtac.tac")
	defer teardown()
	//
	g := NewGenerator()
	g.Emit("a = 1")
	g.Emit("b = 2", "c = 3")
	code := g.Code()
	assert.Equal(t, []string{"a = 1", "b = 2", "c = 3"}, code)
	code[0] = "x"
	assert.Equal(t, "a = 1", g.Code()[0], "Code returns a copy")
	assert.Equal(t, 3, g.Len())
}

func TestInstructionForms(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("x = y", Copy("x", "y"))
	assert.Equal("t1 = a * 2", Binary("t1", "a", "*", "2"))
	assert.Equal("L3:", Label("L3"))
	assert.Equal("goto L3", Goto("L3"))
	assert.Equal("ifFalse i <= 10 goto L2", IfFalse(Cond("i", "<=", "10"), "L2"))
}

func TestDecode(t *testing.T) {
	for _, line := range []string{
		"x = y",
		"t1 = a * 2",
		"L3:",
		"goto L3",
		"ifFalse i <= 10 goto L2",
	} {
		instr, err := Decode(line)
		if err != nil {
			t.Errorf("cannot decode %q: %v", line, err)
			continue
		}
		if instr.String() != line {
			t.Errorf("expected %q to re-encode to itself, is %q", line, instr.String())
		}
	}
	for _, line := range []string{"", ":", "x = a % b", "goto", "ifFalse a b goto L", "x := y"} {
		if _, err := Decode(line); err == nil {
			t.Errorf("expected %q to be rejected", line)
		}
	}
}

func TestConcat(t *testing.T) {
	code := Concat([]string{"a"}, nil, []string{"b", "c"})
	assert.Equal(t, []string{"a", "b", "c"}, code)
	assert.Equal(t, []string{}, Concat())
}
