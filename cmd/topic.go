package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/etnz/allot/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `allot topic [-list] [<topic>...]

  Prints the documentation of each topic, "*" for all of them. Without a topic
  the overview is printed.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "list", false, "Print the topic names only")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.list {
		names, err := docs.GetAllTopics()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing topics: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintln(stdout, strings.Join(names, "\n"))
		return subcommands.ExitSuccess
	}

	// a topic asked for twice is printed once.
	var names []string
	for _, name := range f.Args() {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		names = []string{"readme"}
	}

	content, err := docs.GetTopics(names...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(content)
	return subcommands.ExitSuccess
}
