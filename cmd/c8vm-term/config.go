package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

var errMissingProgram = errors.New("missing program file")

// Config defines program configuration.
type Config struct {
	Program     string // Path to the program file to load.
	Debug       bool   // Start paused, with single stepping available?
	LogFile     string // File receiving log output; the terminal is owned by the display.
	ShowVersion bool   // Print version information and exit?
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	c, err := parseFlags(os.Args[0], os.Args[1:], os.Stderr)
	switch {
	case err == flag.ErrHelp:
		os.Exit(0)
	case err != nil:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if c.ShowVersion {
		fmt.Println(Version())
		os.Exit(0)
	}

	return c
}

// parseFlags parses the given arguments into a new configuration.
func parseFlags(name string, args []string, output io.Writer) (*Config, error) {
	var c Config

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "%s [options] <program file>\n", name)
		fs.PrintDefaults()
	}

	fs.BoolVar(&c.Debug, "debug", c.Debug, "Run in debug mode. Execution starts paused.")
	fs.StringVar(&c.LogFile, "log", c.LogFile, "Write log output to this file instead of discarding it.")
	fs.BoolVar(&c.ShowVersion, "version", c.ShowVersion, "Display version information.")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if c.ShowVersion {
		return &c, nil
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return nil, errMissingProgram
	}

	c.Program = fs.Arg(0)
	return &c, nil
}
