// Package cmd implements the allot command-line application.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/allot"
	"github.com/etnz/allot/config"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&allocateCmd{}, "allocation")
	c.Register(&validateCmd{}, "allocation")
	c.Register(&orderCmd{}, "allocation")
	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "allot.yaml", "Path to the YAML configuration file")
var Verbose = flag.Bool("v", false, "Enable debug logging of the allocation passes")
var rawOutput = flag.Bool("raw", false, "Print markdown as is, without terminal rendering")

// stdout receives the command results.
var stdout io.Writer = os.Stdout

// loadConfig loads the configuration and the logger it describes.
func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if *Verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, cfg.Logger(), nil
}

// decodeRequestFile reads a request from a file, "-" reads stdin.
func decodeRequestFile(filename string) (allot.Request, error) {
	if filename == "-" {
		return allot.DecodeRequest(os.Stdin)
	}
	f, err := os.Open(filename)
	if err != nil {
		return allot.Request{}, fmt.Errorf("error opening request file %q: %w", filename, err)
	}
	defer f.Close()

	req, err := allot.DecodeRequest(f)
	if err != nil {
		return allot.Request{}, fmt.Errorf("%q: %w", filename, err)
	}
	return req, nil
}

// printMarkdown renders markdown for the terminal, unless -raw is set.
func printMarkdown(md string) {
	if *rawOutput {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	// rendering is cosmetic, fall back to the raw markdown.
	fmt.Fprint(stdout, md)
}
