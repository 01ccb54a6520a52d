/*
Package runtime implements a small runtime for executing three-address code,
consisting of symbol tables, memory frames and an interpreter.

For a thorough discussion of an interpreter's runtime environment, refer to
"Language Implementation Patterns" by Terence Parr.

Symbol Tables

Symbol tables collect the names a TAC program defines. Every name is
classified as a variable, a temporary or a label.

Memory Frames

Memory frames store the values of variables and temporaries during
interpretation. Values are float64; integer constants are promoted.

Interpreter

The interpreter decodes TAC lines, resolves labels and executes the program.
Reading a variable which has never been assigned yields 0.

----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software or the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package runtime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/lrtac/tac"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global syntax tracer
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}

// DefaultMaxSteps is the default limit of executed instructions.
const DefaultMaxSteps = 100000

// Interpreter executes TAC programs.
type Interpreter struct {
	Globals  *MemoryFrame // global memory
	MaxSteps int          // limit of executed instructions, to catch endless loops
	steps    int
}

// NewInterpreter creates an interpreter with empty global memory.
func NewInterpreter() *Interpreter {
	return &Interpreter{
		Globals:  NewMemoryFrame("global"),
		MaxSteps: DefaultMaxSteps,
	}
}

// RuntimeError is an error during execution of a TAC program.
type RuntimeError struct {
	Line  int    // index of the offending instruction
	Instr string // the offending instruction
	Msg   string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at instruction %d '%s': %s", e.Line, e.Instr, e.Msg)
}

// Steps returns the number of instructions executed by the last run.
func (intp *Interpreter) Steps() int {
	return intp.steps
}

// Value returns the current value of a variable or temporary.
func (intp *Interpreter) Value(name string) (float64, bool) {
	return intp.Globals.Get(name)
}

// Run executes a TAC program. Memory is kept between runs.
func (intp *Interpreter) Run(code []string) error {
	prog := make([]tac.Instr, len(code))
	labels := make(map[string]int)
	for i, line := range code {
		instr, err := tac.Decode(line)
		if err != nil {
			return &RuntimeError{Line: i, Instr: line, Msg: err.Error()}
		}
		if instr.Kind == tac.LabelInstr {
			if _, dup := labels[instr.Label]; dup {
				return &RuntimeError{Line: i, Instr: line, Msg: "duplicate label"}
			}
			labels[instr.Label] = i
		}
		prog[i] = instr
	}
	intp.steps = 0
	pc := 0
	for pc < len(prog) {
		if intp.MaxSteps > 0 && intp.steps >= intp.MaxSteps {
			return &RuntimeError{Line: pc, Instr: code[pc], Msg: "step limit exceeded"}
		}
		intp.steps++
		instr := prog[pc]
		T().Debugf("exec %3d: %s", pc, instr)
		next := pc + 1
		switch instr.Kind {
		case tac.CopyInstr:
			intp.Globals.Set(instr.Dest, intp.value(instr.Arg1), kindOf(instr.Dest))
		case tac.BinaryInstr:
			v, err := arith(intp.value(instr.Arg1), instr.Op, intp.value(instr.Arg2))
			if err != nil {
				return &RuntimeError{Line: pc, Instr: code[pc], Msg: err.Error()}
			}
			intp.Globals.Set(instr.Dest, v, kindOf(instr.Dest))
		case tac.LabelInstr:
		case tac.GotoInstr, tac.IfFalseInstr:
			if instr.Kind == tac.IfFalseInstr && compare(intp.value(instr.Arg1), instr.Op, intp.value(instr.Arg2)) {
				break
			}
			target, ok := labels[instr.Label]
			if !ok {
				return &RuntimeError{Line: pc, Instr: code[pc], Msg: "undefined label " + instr.Label}
			}
			next = target
		}
		pc = next
	}
	return nil
}

// value evaluates an operand, which is either a numeric constant or a name.
// Only operands shaped like number literals are parsed, so names such as
// "inf" or "nan" stay variables.
func (intp *Interpreter) value(operand string) float64 {
	if isNumber(operand) {
		if v, err := strconv.ParseFloat(operand, 64); err == nil {
			return v
		}
	}
	v, ok := intp.Globals.Get(operand)
	if !ok {
		T().Infof("read of undefined variable %s, using 0", operand)
	}
	return v
}

func isNumber(operand string) bool {
	operand = strings.TrimPrefix(operand, "-")
	return operand != "" && (operand[0] == '.' || '0' <= operand[0] && operand[0] <= '9')
}

func arith(a float64, op string, b float64) (float64, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if b == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return a / b, nil
	}
	return 0, fmt.Errorf("unknown operator %s", op)
}

func compare(a float64, op string, b float64) bool {
	switch op {
	case "<":
		return a < b
	case ">":
		return a > b
	case "<=":
		return a <= b
	case ">=":
		return a >= b
	case "!=":
		return a != b
	}
	return a == b
}

// IsTemporary is a predicate: is name a generated temporary (t1, t2, ...)?
func IsTemporary(name string) bool {
	if len(name) < 2 || name[0] != 't' {
		return false
	}
	_, err := strconv.Atoi(name[1:])
	return err == nil
}

// IsLabel is a predicate: is name a generated label (L1, L2, ...)?
func IsLabel(name string) bool {
	if len(name) < 2 || name[0] != 'L' {
		return false
	}
	_, err := strconv.Atoi(name[1:])
	return err == nil
}

func kindOf(name string) TagKind {
	if IsTemporary(name) {
		return Temporary
	}
	return Variable
}
