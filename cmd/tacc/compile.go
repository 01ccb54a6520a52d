package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/lrtac"
	"github.com/npillmayer/lrtac/lang"
	"github.com/npillmayer/lrtac/runtime"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	verbose *bool
	symbols *bool
}{}

var runFlags = struct {
	maxSteps *int
	temps    *bool
}{}

func init() {
	tokensCmd := &cobra.Command{
		Use:     "tokens [program]",
		Short:   "Print the tokens of a program",
		Example: `  tacc tokens 'a = 1.5 * b;'`,
		RunE:    runTokens,
	}
	rootCmd.AddCommand(tokensCmd)
	//
	compileCmd := &cobra.Command{
		Use:     "compile [program]",
		Short:   "Translate a program into three-address code",
		Example: `  tacc compile -v 'if(a>1){b=2;}else{b=3;}'`,
		RunE:    runCompile,
	}
	compileFlags.verbose = compileCmd.Flags().BoolP("verbose", "v", false, "print the parser trace")
	compileFlags.symbols = compileCmd.Flags().Bool("symbols", false, "print the symbol table")
	rootCmd.AddCommand(compileCmd)
	//
	runCmd := &cobra.Command{
		Use:     "run [program]",
		Short:   "Translate a program and execute its three-address code",
		Example: `  tacc run --sample 2`,
		RunE:    runRun,
	}
	runFlags.maxSteps = runCmd.Flags().Int("max-steps", runtime.DefaultMaxSteps, "limit of executed instructions")
	runFlags.temps = runCmd.Flags().Bool("temps", false, "print temporaries, too")
	rootCmd.AddCommand(runCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	tokens, err := program(args)
	if err != nil {
		return err
	}
	for _, tok := range tokens {
		fmt.Fprintln(cmd.OutOrStdout(), tok)
	}
	return nil
}

var errParse = errors.New("parse failed")

func runCompile(cmd *cobra.Command, args []string) error {
	r, err := compile(args, *compileFlags.verbose || conf.Verbose)
	if err != nil {
		return err
	}
	printCode(cmd.OutOrStdout(), r.Code)
	if *compileFlags.symbols || conf.Symbols {
		printSymbols(r.Symbols)
	}
	return nil
}

func runRun(cmd *cobra.Command, args []string) error {
	r, err := compile(args, conf.Verbose)
	if err != nil {
		return err
	}
	intp := runtime.NewInterpreter()
	intp.MaxSteps = *runFlags.maxSteps
	if err := intp.Run(r.Code); err != nil {
		return err
	}
	pterm.Info.Println(fmt.Sprintf("executed %d instructions", intp.Steps()))
	printValues(cmd.OutOrStdout(), intp, *runFlags.temps)
	return nil
}

// compile tokenizes and translates a program. Parse traces are printed in
// verbose mode; syntax errors are reported and turned into an error.
func compile(args []string, verbose bool) (*lang.Result, error) {
	tokens, err := program(args)
	if err != nil {
		return nil, err
	}
	return compileTokens(tokens, verbose)
}

func compileTokens(tokens []lrtac.Token, verbose bool) (*lang.Result, error) {
	r := lang.ParseAndGenerate(tokens, verbose)
	if verbose {
		pterm.Println(r.Message)
	}
	if !r.Success {
		if r.Error != nil {
			pterm.Error.Println(r.Error.Error())
		}
		return r, errParse
	}
	pterm.Info.Println(fmt.Sprintf("Parse succeeded, %d instructions", len(r.Code)))
	return r, nil
}

func printCode(w io.Writer, code []string) {
	for _, instr := range code {
		fmt.Fprintf(w, "  %s\n", instr)
	}
}

// printSymbols displays a symbol table as a tree, grouped by kind of tag.
func printSymbols(syms *runtime.SymbolTable) {
	ll := pterm.LeveledList{}
	for _, kind := range []runtime.TagKind{runtime.Variable, runtime.Temporary, runtime.Label} {
		names := syms.Names(kind)
		ll = append(ll, pterm.LeveledListItem{Level: 0, Text: fmt.Sprintf("%s (%d)", kind, len(names))})
		for _, name := range names {
			tag := syms.ResolveTag(name)
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: fmt.Sprintf("%s  defs=%d", name, tag.Defs)})
		}
	}
	pterm.Println("symbols")
	pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render()
}

func printValues(w io.Writer, intp *runtime.Interpreter, temps bool) {
	syms := intp.Globals.SymbolTable
	names := syms.Names(runtime.Variable)
	if temps {
		names = append(names, syms.Names(runtime.Temporary)...)
	}
	for _, name := range names {
		v, _ := intp.Value(name)
		fmt.Fprintf(w, "%s = %g\n", name, v)
	}
}
