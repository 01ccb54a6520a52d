package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds the settings of tacc. Values are read from a TOML file and
// may be overridden by command line flags.
type Config struct {
	Trace   string `toml:"trace"`
	Verbose bool   `toml:"verbose"`
	Scanner string `toml:"scanner"`
	Symbols bool   `toml:"symbols"`
}

// Scanner backends
const (
	DFAScanner        = "dfa"
	LexmachineScanner = "lexmachine"
)

func defaultConfig() Config {
	return Config{Trace: "Error", Scanner: DFAScanner}
}

// loadConfig reads a configuration file. Settings missing from the file
// keep their default values.
func loadConfig(path string) (Config, error) {
	c := defaultConfig()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return c, err
	}
	return c, checkConfig(c, md)
}

// parseConfig reads configuration settings from a string.
func parseConfig(data string) (Config, error) {
	c := defaultConfig()
	md, err := toml.Decode(data, &c)
	if err != nil {
		return c, err
	}
	return c, checkConfig(c, md)
}

func checkConfig(c Config, md toml.MetaData) error {
	if undec := md.Undecoded(); len(undec) > 0 {
		return fmt.Errorf("unknown configuration key %q", undec[0].String())
	}
	return c.validate()
}

func (c Config) validate() error {
	switch c.Scanner {
	case DFAScanner, LexmachineScanner:
		return nil
	}
	return fmt.Errorf("unknown scanner %q, expected %q or %q", c.Scanner, DFAScanner, LexmachineScanner)
}
