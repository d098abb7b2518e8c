package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/allot"
	"github.com/etnz/allot/renderer"
	"github.com/google/subcommands"
)

type orderCmd struct {
	file string
}

func (*orderCmd) Name() string     { return "order" }
func (*orderCmd) Synopsis() string { return "show the order in which plans are processed" }
func (*orderCmd) Usage() string {
	return `allot order [-f <request>]

  Displays the plans of a request in processing order, one-time plans first,
  with the limit of each portfolio.
`
}

func (c *orderCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "request.json", "Request file (JSON), - for stdin")
}

func (c *orderCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, _, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	req, err := decodeRequestFile(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.PlansMarkdown(allot.Order(req.Plans), cfg.Currency))
	return subcommands.ExitSuccess
}
