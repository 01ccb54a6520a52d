/*
Command tacc is a command line driver for the mini language. It tokenizes
programs, translates them into three-address code, prints the LR(1) parser
tables and runs translated programs.

	tacc tokens  'a = 1;'
	tacc compile -v 'for(i=1;i<10;i=i+1){a=1;}'
	tacc compile --sample 2 --symbols
	tacc tables --states
	tacc run 'x = 2; y = x * 3;'
	tacc repl

Programs are given as arguments or selected from built-in samples. Defaults
may be set in a TOML configuration file:

	trace   = "Info"        # Debug | Info | Error
	verbose = true          # print the parser trace
	scanner = "lexmachine"  # dfa | lexmachine
	symbols = true          # print the symbol table

Command line flags override configuration values.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrtac.tacc'
func tracer() tracing.Trace {
	return tracing.Select("lrtac.tacc")
}
