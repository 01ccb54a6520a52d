package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	config  *string
	trace   *string
	scanner *string
	sample  *int
}{}

// conf holds the effective settings after flags have been parsed.
var conf = defaultConfig()

var rootCmd = &cobra.Command{
	Use:   "tacc",
	Short: "Translate mini-language programs into three-address code",
	Long: `tacc tokenizes and parses programs of a small imperative language with a
canonical LR(1) parser and translates them into three-address code (TAC).
It can print tokens, parser traces, LR(1) tables and symbol tables, and it
runs translated programs with a TAC interpreter.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	rootFlags.config = pf.String("config", "", "TOML configuration file")
	rootFlags.trace = pf.String("trace", "", "trace level [Debug|Info|Error]")
	rootFlags.scanner = pf.String("scanner", "", "scanner backend [dfa|lexmachine]")
	rootFlags.sample = pf.IntP("sample", "n", 0, fmt.Sprintf("use built-in sample program 1..%d", len(samples)))
}

// setup reads the configuration file, if any, and applies flag overrides.
func setup(cmd *cobra.Command, args []string) error {
	c := defaultConfig()
	if *rootFlags.config != "" {
		var err error
		if c, err = loadConfig(*rootFlags.config); err != nil {
			return fmt.Errorf("cannot read configuration %s: %w", *rootFlags.config, err)
		}
	}
	if *rootFlags.trace != "" {
		c.Trace = *rootFlags.trace
	}
	if *rootFlags.scanner != "" {
		c.Scanner = *rootFlags.scanner
	}
	if err := c.validate(); err != nil {
		return err
	}
	conf = c
	setTraceLevel(conf.Trace)
	tracer().Debugf("configuration: %+v", conf)
	return nil
}

// Execute runs the root command and reports errors.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err.Error())
	}
	return err
}
