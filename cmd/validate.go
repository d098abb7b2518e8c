package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/allot"
	"github.com/google/subcommands"
)

type validateCmd struct {
	file string
}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "check a request without allocating it" }
func (*validateCmd) Usage() string {
	return `allot validate [-f <request>]

  Checks the plans and deposits of a request against the configured rules.
`
}

func (c *validateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "request.json", "Request file (JSON), - for stdin")
}

func (c *validateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, _, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	rules, err := cfg.AllotRules()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	req, err := decodeRequestFile(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := rules.Validate(req.Plans, req.Deposits); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid request %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(stdout, "Request %q is valid: %d plan(s), %d deposit(s) totaling %s\n",
		c.file, len(req.Plans), len(req.Deposits), allot.Sum(req.Deposits...).Format(cfg.Currency))
	return subcommands.ExitSuccess
}
