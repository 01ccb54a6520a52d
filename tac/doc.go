/*
Package tac provides primitives for emitting three-address code (TAC).

Three-address code is a linear intermediate representation where each
instruction has at most one operator. Instructions are plain text lines of
one of the following forms:

    x = y                    copy
    t1 = a + b               binary operation (+ - * /)
    L1:                      label definition
    goto L1                  unconditional jump
    ifFalse a < b goto L1    conditional jump (< > <= >= != ==)

A Generator allocates fresh temporaries (t1, t2, …) and labels (L1, L2, …)
and accumulates instructions in order. Generators are not safe for
concurrent use; use one generator per translation.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package tac

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrtac.tac'.
func tracer() tracing.Trace {
	return tracing.Select("lrtac.tac")
}
