package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/allot/cmd"
	"github.com/google/subcommands"
)

func main() {
	// answers shell completion requests and exits, no-op otherwise.
	cmd.Completion().Complete("allot")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
