package main

import (
	"fmt"

	"github.com/npillmayer/lrtac/lang"
	"github.com/npillmayer/lrtac/lr"
	"github.com/spf13/cobra"
)

var tablesFlags = struct {
	html    *bool
	dot     *bool
	states  *bool
	grammar *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Print the LR(1) parser tables of the language",
		Example: `  tacc tables --states
  tacc tables --dot | dot -Tsvg > cfsm.svg`,
		Args: cobra.NoArgs,
		RunE: runTables,
	}
	tablesFlags.html = cmd.Flags().Bool("html", false, "print ACTION and GOTO tables as HTML")
	tablesFlags.dot = cmd.Flags().Bool("dot", false, "print the LR(1) automaton in Graphviz format")
	tablesFlags.states = cmd.Flags().Bool("states", false, "print the item sets of all states")
	tablesFlags.grammar = cmd.Flags().Bool("grammar", false, "print the grammar rules")
	rootCmd.AddCommand(cmd)
}

func runTables(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	lrgen := lang.DefaultParser().Tables()
	if lrgen.HasConflicts {
		tracer().Errorf("parser tables have conflicts")
	}
	switch {
	case *tablesFlags.grammar:
		fmt.Fprint(w, lang.Grammar().String())
	case *tablesFlags.html:
		lr.ActionTableAsHTML(lrgen, w)
		lr.GotoTableAsHTML(lrgen, w)
	case *tablesFlags.dot:
		if err := lrgen.CFSM().CFSM2GraphViz(w); err != nil {
			return fmt.Errorf("cannot write automaton: %w", err)
		}
	case *tablesFlags.states:
		for _, state := range lrgen.States() {
			fmt.Fprintf(w, "state %d:\n", state.ID)
			for _, item := range state.Items() {
				fmt.Fprintf(w, "    %s\n", item)
			}
		}
	default:
		fmt.Fprintln(w, lrgen.TablesString())
	}
	return nil
}
