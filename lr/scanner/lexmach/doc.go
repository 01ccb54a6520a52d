/*
Package lexmach provides a tokenizer for the mini language which is backed by the
lexmachine scanner generator. It produces the same token classes as the DFA
tokenizer of package scanner and may be used as a drop-in replacement.

Background on lexmachine:
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

The patterns are compiled once per adapter; every input gets its own
scanner:

	lm, err := lexmach.NewLMAdapter()
	if err != nil {
		return err
	}
	scan, err := lm.Scanner("a = b + 1;")
	if err != nil {
		return err
	}
	tokens := scanner.TokenizeWith(scan)

Line and column numbers are the ones lexmachine reports.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package lexmach
