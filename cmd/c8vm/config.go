package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/hexaflex/c8vm/devices/display"
)

var errMissingProgram = errors.New("missing program file")

// Config defines program configuration.
type Config struct {
	Program     string        // Path to the program file to load.
	ScaleFactor int           // Amount by which each pixel is scaled (virtual resolution)
	Fullscreen  bool          // Run in fullscreen?
	Debug       bool          // Start paused, with single stepping available?
	PrintTrace  bool          // Print instruction trace data?
	Foreground  display.Color // Color of lit pixels.
	Background  display.Color // Color of unlit pixels.
	ShowVersion bool          // Print version information and exit?
}

// colorValue exposes a display.Color as a flag value.
type colorValue struct {
	c *display.Color
}

func (v colorValue) String() string {
	if v.c == nil {
		return ""
	}
	return v.c.String()
}

func (v colorValue) Set(s string) error {
	c, err := display.ParseColor(s)
	if err != nil {
		return err
	}
	*v.c = c
	return nil
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
	c.ScaleFactor = 10
	c.Foreground = display.White
	c.Background = display.Black

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "%s [options] <program file>\n", name)
		fs.PrintDefaults()
	}

	fs.BoolVar(&c.Debug, "debug", c.Debug, "Run in debug mode. Execution starts paused.")
	fs.BoolVar(&c.PrintTrace, "trace", c.PrintTrace, "Print instruction trace data.")
	fs.IntVar(&c.ScaleFactor, "scale-factor", c.ScaleFactor, "Pixel scale factor for the display.")
	fs.BoolVar(&c.Fullscreen, "fullscreen", c.Fullscreen, "Run the display in fullscreen or windowed mode.")
	fs.Var(colorValue{&c.Foreground}, "fg", "Foreground color as RRGGBB.")
	fs.Var(colorValue{&c.Background}, "bg", "Background color as RRGGBB.")
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

	if c.ScaleFactor < 1 {
		return nil, errors.Errorf("invalid scale factor %d", c.ScaleFactor)
	}

	c.Program = fs.Arg(0)
	c.PrintTrace = c.PrintTrace || c.Debug
	return &c, nil
}
