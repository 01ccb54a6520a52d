package runtime

import (
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func setupTracing(t *testing.T) func() {
	gtrace.SyntaxTracer = gotestingadapter.New(t)
	gtrace.SyntaxTracer.SetTraceLevel(tracing.LevelInfo)
	return gotestingadapter.RedirectTracing(t)
}

func TestRunArithmetic(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	intp := NewInterpreter()
	err := intp.Run([]string{
		"t1 = 2 * 3",
		"t2 = 1 + t1",
		"x = t2",
		"t3 = x / 2",
		"y = t3",
	})
	assert.NoError(t, err)
	x, _ := intp.Value("x")
	y, _ := intp.Value("y")
	assert.Equal(t, 7.0, x)
	assert.Equal(t, 3.5, y)
	assert.Equal(t, 5, intp.Steps())
	assert.Equal(t, []string{"x", "y"}, intp.Globals.SymbolTable.Names(Variable))
	assert.Equal(t, []string{"t1", "t2", "t3"}, intp.Globals.SymbolTable.Names(Temporary))
}

func TestRunNamesLikeFloatSpecials(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	intp := NewInterpreter()
	err := intp.Run([]string{
		"inf = 3",
		"NaN = 4",
		"Infinity = 5",
		"a = inf",
		"b = NaN",
		"t1 = Infinity + .5",
		"c = t1",
		"d = 1e3",
	})
	assert.NoError(t, err)
	for name, expected := range map[string]float64{"a": 3, "b": 4, "c": 5.5, "d": 1000} {
		v, ok := intp.Value(name)
		assert.True(t, ok, name)
		assert.Equal(t, expected, v, name)
	}
}

func TestRunLoop(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	// for (i = 0; i < 5; i = i + 1) { s = s + i; }
	intp := NewInterpreter()
	err := intp.Run([]string{
		"i = 0",
		"L1:",
		"ifFalse i < 5 goto L2",
		"t1 = s + i",
		"s = t1",
		"t2 = i + 1",
		"i = t2",
		"goto L1",
		"L2:",
	})
	assert.NoError(t, err)
	s, _ := intp.Value("s")
	i, _ := intp.Value("i")
	assert.Equal(t, 10.0, s)
	assert.Equal(t, 5.0, i)
}

func TestRunIfElse(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	prog := []string{
		"ifFalse a != 0 goto L1",
		"x = 1",
		"goto L2",
		"L1:",
		"x = 2",
		"L2:",
	}
	intp := NewInterpreter()
	assert.NoError(t, intp.Run(prog))
	x, _ := intp.Value("x")
	assert.Equal(t, 2.0, x, "undefined a reads as 0")
	intp.Globals.Set("a", 3, Variable)
	assert.NoError(t, intp.Run(prog))
	x, _ = intp.Value("x")
	assert.Equal(t, 1.0, x)
}

func TestRunErrors(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	tests := []struct {
		name string
		prog []string
	}{
		{"division by zero", []string{"t1 = 1 / 0"}},
		{"undefined label", []string{"goto L9"}},
		{"duplicate label", []string{"L1:", "L1:"}},
		{"malformed", []string{"x = = y"}},
		{"endless loop", []string{"L1:", "goto L1"}},
	}
	for _, tt := range tests {
		intp := NewInterpreter()
		intp.MaxSteps = 100
		err := intp.Run(tt.prog)
		if assert.Error(t, err, tt.name) {
			_, ok := err.(*RuntimeError)
			assert.True(t, ok, tt.name)
		}
	}
}

func TestNamePredicates(t *testing.T) {
	assert.True(t, IsTemporary("t12"))
	assert.False(t, IsTemporary("total"))
	assert.False(t, IsTemporary("t"))
	assert.True(t, IsLabel("L3"))
	assert.False(t, IsLabel("Lx"))
}
