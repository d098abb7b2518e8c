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

type allocateCmd struct {
	file     string
	deposits string
	path     string
	json     bool
	trace    bool
}

func (*allocateCmd) Name() string     { return "allocate" }
func (*allocateCmd) Synopsis() string { return "split deposits across the plans of a request" }
func (*allocateCmd) Usage() string {
	return `allot allocate [-f <request>] [-deposits <document> [-path <jsonpath>]] [-json] [-trace] [<deposit>...]

  Allocates the deposits of a request across its plans and prints the balance
  of every portfolio. Deposits given as arguments, or selected from another
  JSON document, replace the deposits of the request.
`
}

func (c *allocateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "request.json", "Request file (JSON), - for stdin")
	f.StringVar(&c.deposits, "deposits", "", "JSON document to read the deposits from")
	f.StringVar(&c.path, "path", "$.deposits", "JSONPath selecting the deposits in the -deposits document")
	f.BoolVar(&c.json, "json", false, "Print JSON instead of markdown")
	f.BoolVar(&c.trace, "trace", false, "Detail every allocation pass")
}

// request reads the request and applies the deposit overrides.
func (c *allocateCmd) request(args []string) (allot.Request, error) {
	req, err := decodeRequestFile(c.file)
	if err != nil {
		return req, err
	}

	if c.deposits != "" {
		f, err := os.Open(c.deposits)
		if err != nil {
			return req, fmt.Errorf("error opening deposits file %q: %w", c.deposits, err)
		}
		defer f.Close()
		if req.Deposits, err = allot.DecodeDepositsAt(f, c.path); err != nil {
			return req, fmt.Errorf("%q: %w", c.deposits, err)
		}
	}

	if len(args) > 0 {
		if req.Deposits, err = allot.ParseDeposits(args); err != nil {
			return req, err
		}
	}
	return req, nil
}

func (c *allocateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, log, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	req, err := c.request(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	allocator, err := cfg.Allocator(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := allocator.Allocate(req.Plans, req.Deposits)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.json {
		if c.trace {
			err = allot.EncodeReport(stdout, report)
		} else {
			err = allot.EncodeBalances(stdout, report.Balances)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.ReportMarkdown(report, cfg.Currency, c.trace))
	return subcommands.ExitSuccess
}
