package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/lrtac"
	"github.com/npillmayer/lrtac/lang"
	"github.com/npillmayer/lrtac/lr/scanner"
	"github.com/npillmayer/lrtac/lr/scanner/lexmach"
)

// Built-in sample programs. Sample 1 contains a negative constant, which the
// grammar does not support; it demonstrates a syntax error.
var samples = []string{
	"for(i = 1;i <= 10;i = i + 1){ if(a<1){a = 2;b = 1;if(b > 1){b = -23;} else{b = 30;}} else {a = 0;} }",
	"for(i = 1;i <= 10; i = i + 1){ for(j = 0 ;j < i;j = j + 1){a = j + 1;}}",
	"a=1;",
	"for(i=1;i<10;i=i+1){a=1;}",
	"if(a>1){b=2;}else{b=3;}",
	"x = (a + b) * c / 2.5; if (x != 0) { y = 1; } else { y = 0; }",
}

// source selects the program text: a built-in sample or the command arguments.
func source(args []string, sample int) (string, error) {
	if sample != 0 {
		if sample < 0 || sample > len(samples) {
			return "", fmt.Errorf("no sample %d, choose 1..%d", sample, len(samples))
		}
		return samples[sample-1], nil
	}
	if len(args) == 0 {
		return "", fmt.Errorf("no program given; use arguments or --sample")
	}
	return strings.Join(args, " "), nil
}

// tokenize splits a program into tokens using the configured scanner backend.
func tokenize(src string, backend string) ([]lrtac.Token, error) {
	if backend == LexmachineScanner {
		lm, err := lexmach.NewLMAdapter()
		if err != nil {
			return nil, fmt.Errorf("cannot create lexmachine scanner: %w", err)
		}
		sc, err := lm.Scanner(src)
		if err != nil {
			return nil, fmt.Errorf("cannot create lexmachine scanner: %w", err)
		}
		return scanner.TokenizeWith(sc), nil
	}
	return lang.Tokenize(src), nil
}

// program reads the program text and tokenizes it.
func program(args []string) ([]lrtac.Token, error) {
	src, err := source(args, *rootFlags.sample)
	if err != nil {
		return nil, err
	}
	tracer().Infof("program: %s", src)
	return tokenize(src, conf.Scanner)
}
