package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/lrtac/lang"
	"github.com/npillmayer/lrtac/runtime"
	"github.com/npillmayer/lrtac/tac"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactively translate and run programs",
		Long: `repl reads programs line by line, translates each into three-address code
and executes it. Memory persists between lines, and temporaries and labels
keep their numbering for the whole session.

Commands:
  :verbose   toggle the parser trace
  :symbols   toggle printing of symbol tables
  :norun     toggle execution
  :vars      print all variables
  :quit      leave (or <ctrl>D)`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
	rootCmd.AddCommand(cmd)
}

// Session is the state of an interactive session.
type Session struct {
	parser  *lang.Parser
	gen     *tac.Generator
	intp    *runtime.Interpreter
	out     io.Writer
	verbose bool
	symbols bool
	norun   bool
}

// NewSession creates a session writing its output to out.
func NewSession(out io.Writer) *Session {
	return &Session{
		parser:  lang.DefaultParser(),
		gen:     tac.NewGenerator(),
		intp:    runtime.NewInterpreter(),
		out:     out,
		verbose: conf.Verbose,
		symbols: conf.Symbols,
	}
}

func runREPL(cmd *cobra.Command, args []string) error {
	repl, err := readline.New("tacc> ")
	if err != nil {
		return fmt.Errorf("cannot start REPL: %w", err)
	}
	defer repl.Close()
	pterm.Info.Println("Welcome to tacc")
	tracer().Infof("Quit with <ctrl>D")
	s := NewSession(cmd.OutOrStdout())
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit := s.Eval(line); quit {
			break
		}
	}
	fmt.Fprintln(os.Stderr, "Good bye!")
	return nil
}

// Eval handles a line of input, which is either a command or a program.
// It returns true if the session should end.
func (s *Session) Eval(line string) bool {
	switch line {
	case ":quit", ":q":
		return true
	case ":verbose":
		s.verbose = !s.verbose
		return false
	case ":symbols":
		s.symbols = !s.symbols
		return false
	case ":norun":
		s.norun = !s.norun
		return false
	case ":vars":
		printValues(s.out, s.intp, true)
		return false
	}
	tokens, err := tokenize(line, conf.Scanner)
	if err != nil {
		pterm.Error.Println(err.Error())
		return false
	}
	r := s.parser.ParseWithGenerator(tokens, s.gen, s.verbose)
	if s.verbose {
		pterm.Println(r.Message)
	}
	if !r.Success {
		pterm.Error.Println(r.Error.Error())
		return false
	}
	printCode(s.out, r.Code)
	if s.symbols {
		printSymbols(r.Symbols)
	}
	if s.norun {
		return false
	}
	if err := s.intp.Run(r.Code); err != nil {
		pterm.Error.Println(err.Error())
		return false
	}
	for _, name := range r.Symbols.Names(runtime.Variable) {
		v, _ := s.intp.Value(name)
		fmt.Fprintf(s.out, "%s = %g\n", name, v)
	}
	return false
}
