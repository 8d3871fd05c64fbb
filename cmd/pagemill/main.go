package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/pagemill/cmd/pagemill/commands"
	ferrors "git.home.luguber.info/inful/pagemill/internal/foundation/errors"
	"git.home.luguber.info/inful/pagemill/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := commands.NewGlobal(os.Stdout, os.Stderr)

	parser := kong.Parse(cli,
		kong.Name("pagemill"),
		kong.Description("Compile a tree of markdown content into a static HTML site."),
		kong.UsageOnError(),
		kong.Bind(global),
		kong.Vars{"version": version.String()},
	)

	if err := parser.Run(global, cli); err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
	}
}
